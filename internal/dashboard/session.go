package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
)

const defaultRefetchDelay = time.Second

// Session is one professional's pricing dashboard state: the service
// collection, the unit catalog, and per-record configuration and save
// machinery. The collection is only ever mutated through applyUpdate,
// which funnels into MergeServiceUpdate.
type Session struct {
	mu             sync.Mutex
	professionalID uuid.UUID
	client         PersistenceClient
	logger         *logger.Logger

	records  []*model.ServicePricingRecord
	revision uint64
	units    []model.ValuationUnit

	savers map[uuid.UUID]*Saver
	states map[uuid.UUID]*ConfigState

	refetchDelay time.Duration
	refetchTimer *time.Timer

	closeDelay   time.Duration
	closeHandler func(recordID uuid.UUID)
}

type SessionOption func(*Session)

// WithRefetchDelay overrides the debounce window for the post-optimistic
// full refetch.
func WithRefetchDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.refetchDelay = d }
}

// WithCloseHandler registers the callback that dismisses a record's
// configuration surface after a successful save.
func WithCloseHandler(delay time.Duration, fn func(recordID uuid.UUID)) SessionOption {
	return func(s *Session) {
		s.closeDelay = delay
		s.closeHandler = fn
	}
}

func NewSession(client PersistenceClient, professionalID uuid.UUID, log *logger.Logger, opts ...SessionOption) *Session {
	if log == nil {
		log = logger.NewLogger(nil)
	}
	s := &Session{
		professionalID: professionalID,
		client:         client,
		logger:         log,
		savers:         make(map[uuid.UUID]*Saver),
		states:         make(map[uuid.UUID]*ConfigState),
		refetchDelay:   defaultRefetchDelay,
		closeDelay:     2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the pricing collection and the unit catalog. A failed unit
// fetch degrades to the built-in list; a failed pricing fetch is fatal to
// the load.
func (s *Session) Load(ctx context.Context) error {
	records, err := s.client.FetchPricing(ctx, s.professionalID)
	if err != nil {
		return err
	}

	units, err := s.client.FetchValuationUnits(ctx)
	if err != nil {
		s.logger.Error(err, "failed to fetch valuation units, using built-in list")
		units = model.BuiltinUnits()
	}
	if len(units) == 0 {
		units = model.BuiltinUnits()
	}

	s.mu.Lock()
	s.records = records
	s.units = units
	s.revision++
	s.mu.Unlock()
	return nil
}

// Records returns the current collection snapshot.
func (s *Session) Records() []*model.ServicePricingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.ServicePricingRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Session) Units() []model.ValuationUnit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ValuationUnit, len(s.units))
	copy(out, s.units)
	return out
}

func (s *Session) Record(id uuid.UUID) *model.ServicePricingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Session) findLocked(id uuid.UUID) *model.ServicePricingRecord {
	for _, rec := range s.records {
		if rec.ProfessionalServiceID == id {
			return rec
		}
	}
	return nil
}

// DisplayedUnit resolves the effective valuation unit for a record,
// honoring any in-flight optimistic choice.
func (s *Session) DisplayedUnit(id uuid.UUID) model.ValuationUnit {
	s.mu.Lock()
	rec := s.findLocked(id)
	units := s.units
	saver := s.savers[id]
	s.mu.Unlock()

	var overlay *model.ServicePricingRecord
	if saver != nil {
		overlay = saver.OptimisticRecord()
	}
	return ResolveDisplayedUnit(rec, overlay, units)
}

// ConfigFor returns the record's configuration state, creating and
// unit-seeding it on first access.
func (s *Session) ConfigFor(id uuid.UUID) *ConfigState {
	s.mu.Lock()
	state, ok := s.states[id]
	if !ok {
		state = NewConfigState()
		s.states[id] = state
	}
	s.mu.Unlock()

	if !ok {
		state.SeedUnit(s.DisplayedUnit(id).UnitID)
	}
	return state
}

func (s *Session) saverFor(id uuid.UUID) *Saver {
	s.mu.Lock()
	defer s.mu.Unlock()
	saver, ok := s.savers[id]
	if !ok {
		saver = NewSaver(s.client, s.applyUpdate, s.logger)
		if s.closeHandler != nil {
			recordID := id
			saver.SetCloseHandler(s.closeDelay, func() { s.closeHandler(recordID) })
		}
		s.savers[id] = saver
	}
	return saver
}

// SaveParams names the inputs to one save on one record.
type SaveParams struct {
	RecordID   uuid.UUID
	Result     *model.QuantificationResult
	Notes      string
	OnProgress func(int)
}

// Save runs the optimistic save protocol for one record. Saves on
// different records are independent; a second save on the same record
// while one is in flight returns ErrSaveInFlight.
func (s *Session) Save(ctx context.Context, params SaveParams) error {
	s.mu.Lock()
	rec := s.findLocked(params.RecordID)
	units := s.units
	s.mu.Unlock()

	if rec == nil {
		return apperrors.Precondition("no pricing data to save")
	}

	state := s.ConfigFor(params.RecordID)
	return s.saverFor(params.RecordID).Save(ctx, SaveRequest{
		Record:     rec,
		Result:     params.Result,
		Config:     state.Config(),
		Market:     state.MarketConditions(),
		Notes:      params.Notes,
		Units:      units,
		OnProgress: params.OnProgress,
	})
}

// Rollback is the manual affordance for a record; no-op when the record
// has nothing to revert.
func (s *Session) Rollback(id uuid.UUID) bool {
	s.mu.Lock()
	saver := s.savers[id]
	s.mu.Unlock()
	if saver == nil {
		return false
	}
	return saver.Rollback()
}

// Saving reports whether a save is in flight for the record.
func (s *Session) Saving(id uuid.UUID) bool {
	s.mu.Lock()
	saver := s.savers[id]
	s.mu.Unlock()
	return saver != nil && saver.InFlight()
}

// CanClose reports whether the record's configuration surface may be
// dismissed; closing while a save is in flight is disallowed.
func (s *Session) CanClose(id uuid.UUID) bool {
	return !s.Saving(id)
}

// SaveError returns the last save failure for the record, if any.
func (s *Session) SaveError(id uuid.UUID) error {
	s.mu.Lock()
	saver := s.savers[id]
	s.mu.Unlock()
	if saver == nil {
		return nil
	}
	return saver.LastError()
}

// applyUpdate is the single entry point mutating the collection. An
// optimistic publish additionally schedules the debounced full refetch.
func (s *Session) applyUpdate(rec *model.ServicePricingRecord, optimistic bool) {
	s.mu.Lock()
	s.records = MergeServiceUpdate(s.records, rec)
	s.revision++
	s.mu.Unlock()

	if optimistic {
		s.scheduleRefetch()
	}
}

// scheduleRefetch debounces: publishes in quick succession collapse to a
// single refetch.
func (s *Session) scheduleRefetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refetchTimer != nil {
		s.refetchTimer.Stop()
	}
	s.refetchTimer = time.AfterFunc(s.refetchDelay, s.refetch)
}

// refetch reconciles the collection with the remote store. If anything
// local changed while the fetch was in the air, the stale result is
// dropped; a newer optimistic update must not be clobbered.
func (s *Session) refetch() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultSaveTimeout)
	defer cancel()

	s.mu.Lock()
	rev := s.revision
	s.mu.Unlock()

	records, err := s.client.FetchPricing(ctx, s.professionalID)
	if err != nil {
		s.logger.Error(err, "collection refetch failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revision != rev {
		s.logger.Debug("discarding stale refetch result",
			"fetched_at_revision", rev, "current_revision", s.revision)
		return
	}
	s.records = records
	s.revision++
}
