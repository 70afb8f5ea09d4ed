package dashboard

import (
	"sync"
	"time"
)

// progressTicker drives an indeterminate save indicator. It advances
// toward but never reaches 100 on its own; only finish forces completion.
type progressTicker struct {
	mu       sync.Mutex
	value    int
	stopped  bool
	stop     chan struct{}
	onChange func(int)
}

func newProgressTicker(onChange func(int)) *progressTicker {
	return &progressTicker{
		stop:     make(chan struct{}),
		onChange: onChange,
	}
}

func (p *progressTicker) start(interval time.Duration) {
	if interval <= 0 {
		interval = 150 * time.Millisecond
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ticker.C:
				p.advance()
			}
		}
	}()
}

func (p *progressTicker) advance() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	// Halve the remaining distance to 95 so the bar slows down instead of
	// stalling at an arbitrary cap.
	p.value += (95 - p.value) / 8
	if p.value > 95 {
		p.value = 95
	}
	v := p.value
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil {
		cb(v)
	}
}

func (p *progressTicker) finish() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.value = 100
	cb := p.onChange
	close(p.stop)
	p.mu.Unlock()

	if cb != nil {
		cb(100)
	}
}

func (p *progressTicker) halt() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.stop)
	p.mu.Unlock()
}

func (p *progressTicker) current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}
