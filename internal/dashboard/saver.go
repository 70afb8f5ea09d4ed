package dashboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	apperrors "github.com/servly/pricing-api/pkg/errors"
	"github.com/servly/pricing-api/pkg/logger"
)

// SaveState is the per-record save lifecycle.
type SaveState int

const (
	SaveIdle SaveState = iota
	SaveSaving
	SaveSucceeded
	SaveFailed
)

func (s SaveState) String() string {
	switch s {
	case SaveSaving:
		return "saving"
	case SaveSucceeded:
		return "succeeded"
	case SaveFailed:
		return "failed"
	default:
		return "idle"
	}
}

// ErrSaveInFlight is returned when a second save is triggered on a record
// whose previous save has not resolved. One writer per record; saves on
// different records are independent.
var ErrSaveInFlight = apperrors.Precondition("a save is already in progress for this service")

// SaveRequest carries everything one save needs. Record is the current
// live record; Result must hold a non-nil RecommendedPrice.
type SaveRequest struct {
	Record     *model.ServicePricingRecord
	Result     *model.QuantificationResult
	Config     model.PricingConfig
	Market     model.MarketConditions
	Notes      string
	Units      []model.ValuationUnit
	OnProgress func(int)
}

// Saver runs the optimistic save protocol for one record: snapshot,
// optimistic publish, persistence call, then reconcile or roll back. The
// publish function is the only path through which it touches the owning
// collection.
type Saver struct {
	mu           sync.Mutex
	state        SaveState
	rollbackData *model.ServicePricingRecord
	optimistic   *model.ServicePricingRecord
	lastError    error

	client       PersistenceClient
	publish      func(rec *model.ServicePricingRecord, optimistic bool)
	logger       *logger.Logger
	successDelay time.Duration
	onClose      func()
}

func NewSaver(client PersistenceClient, publish func(rec *model.ServicePricingRecord, optimistic bool), log *logger.Logger) *Saver {
	if publish == nil {
		publish = func(*model.ServicePricingRecord, bool) {}
	}
	if log == nil {
		log = logger.NewLogger(nil)
	}
	return &Saver{
		client:       client,
		publish:      publish,
		logger:       log,
		successDelay: 2 * time.Second,
	}
}

// SetCloseHandler registers the callback fired shortly after a successful
// save, used to dismiss the configuration surface.
func (s *Saver) SetCloseHandler(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if delay > 0 {
		s.successDelay = delay
	}
	s.onClose = fn
}

func (s *Saver) State() SaveState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// InFlight reports whether a save is currently awaiting its response.
func (s *Saver) InFlight() bool {
	return s.State() == SaveSaving
}

// CanClose is false while a save is in flight: abandoning an unresolved
// write would leave no way to observe its outcome.
func (s *Saver) CanClose() bool {
	return s.State() != SaveSaving
}

// OptimisticRecord returns the pending optimistic shadow, nil outside the
// in-flight window.
func (s *Saver) OptimisticRecord() *model.ServicePricingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.optimistic
}

// RollbackData returns the pre-save snapshot, nil once cleared.
func (s *Saver) RollbackData() *model.ServicePricingRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbackData
}

func (s *Saver) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Save runs the protocol to completion: the optimistic record is published
// before the network round trip, then either reconciled with the server
// response or rolled back. Blocking; run it on its own goroutine when the
// caller must stay responsive.
func (s *Saver) Save(ctx context.Context, req SaveRequest) error {
	s.mu.Lock()
	if s.state == SaveSaving {
		s.mu.Unlock()
		return ErrSaveInFlight
	}
	if req.Result == nil || req.Result.RecommendedPrice == nil {
		s.mu.Unlock()
		return apperrors.Precondition("no pricing data to save")
	}
	if req.Record == nil || req.Record.ProfessionalServiceID == uuid.Nil {
		s.mu.Unlock()
		return apperrors.Precondition("pricing record has no identifier")
	}

	snapshot := req.Record.Clone()
	optimistic := buildOptimisticRecord(snapshot, req)

	s.state = SaveSaving
	s.rollbackData = snapshot
	s.optimistic = optimistic
	s.lastError = nil
	s.mu.Unlock()

	s.publish(optimistic, true)

	progress := newProgressTicker(req.OnProgress)
	progress.start(0)

	update := buildUpdate(optimistic)
	saved, err := s.client.UpdatePricing(ctx, optimistic.ProfessionalServiceID, update)
	if err != nil {
		progress.halt()
		return s.fail(err)
	}

	// Best-effort audit trail; a failed snapshot write never reverses the
	// pricing update it describes.
	if snap := buildSnapshot(optimistic, req); snap != nil {
		if auditErr := s.client.WriteQuantificationSnapshot(ctx, snap); auditErr != nil {
			s.logger.Error(auditErr, "quantification snapshot write failed",
				"professional_service_id", optimistic.ProfessionalServiceID.String())
		}
	}

	merged := reconcileServerRecord(optimistic, saved)
	progress.finish()

	s.mu.Lock()
	s.state = SaveSucceeded
	s.optimistic = nil
	s.rollbackData = nil
	onClose := s.onClose
	delay := s.successDelay
	s.mu.Unlock()

	s.publish(merged, false)

	if onClose != nil {
		time.AfterFunc(delay, onClose)
	}
	return nil
}

func (s *Saver) fail(cause error) error {
	err := cause
	switch apperrors.Code(cause) {
	case apperrors.ErrValidation, apperrors.ErrNotFound, apperrors.ErrBadRequest:
		// persistence layer rejected the payload; keep the original text
	default:
		err = apperrors.Transport("failed to save pricing", cause)
	}

	s.mu.Lock()
	s.state = SaveFailed
	s.optimistic = nil
	s.lastError = err
	rollback := s.rollbackData
	s.mu.Unlock()

	// Automatic rollback republishes the snapshot but keeps it around for
	// the manual affordance until the user dismisses the error.
	if rollback != nil {
		s.publish(rollback, false)
	}
	return err
}

// Rollback is the manual affordance: republish the snapshot and clear the
// optimistic state. No-op (returns false) when there is nothing to revert.
func (s *Saver) Rollback() bool {
	s.mu.Lock()
	rollback := s.rollbackData
	if rollback == nil {
		s.mu.Unlock()
		return false
	}
	s.rollbackData = nil
	s.optimistic = nil
	if s.state != SaveSaving {
		s.state = SaveIdle
	}
	s.mu.Unlock()

	s.publish(rollback, false)
	return true
}

// buildOptimisticRecord merges the computed recommendation over a deep
// copy of the snapshot.
func buildOptimisticRecord(snapshot *model.ServicePricingRecord, req SaveRequest) *model.ServicePricingRecord {
	out := snapshot.Clone()

	price := *req.Result.RecommendedPrice
	out.CustomPrice = &price

	if req.Result.TradeCalculations != nil && req.Result.TradeCalculations.TotalDuration != nil {
		duration := *req.Result.TradeCalculations.TotalDuration
		out.CustomDurationMinutes = &duration
	}

	unitID, unitObj := resolveTargetUnit(req.Config, snapshot, req.Units)
	if unitID != nil {
		out.CustomValuationUnitID = unitID
		out.CustomValuationUnit = unitObj
	}

	out.AdditionalNotes = req.Notes
	return out
}

// buildUpdate derives the persistence payload from the optimistic record.
// Deterministic: the same inputs always produce the same payload, so a
// re-save with an unchanged result overwrites with identical data.
func buildUpdate(optimistic *model.ServicePricingRecord) *model.PricingUpdate {
	return &model.PricingUpdate{
		CustomPrice:           optimistic.CustomPrice,
		CustomDurationMinutes: optimistic.CustomDurationMinutes,
		CustomValuationUnitID: optimistic.CustomValuationUnitID,
		AdditionalNotes:       optimistic.AdditionalNotes,
	}
}

func buildSnapshot(optimistic *model.ServicePricingRecord, req SaveRequest) *model.QuantificationSnapshot {
	if optimistic.ProfessionalID == uuid.Nil || optimistic.ServiceID == uuid.Nil {
		return nil
	}

	market := req.Market
	if req.Result.MarketConditions != nil {
		market = *req.Result.MarketConditions
	}

	cfgJSON, err := json.Marshal(req.Config)
	if err != nil {
		return nil
	}
	marketJSON, err := json.Marshal(market)
	if err != nil {
		return nil
	}

	var derived json.RawMessage
	if req.Result.TradeCalculations != nil {
		derived, _ = json.Marshal(req.Result.TradeCalculations)
	}

	return &model.QuantificationSnapshot{
		ProfessionalID:   optimistic.ProfessionalID,
		ServiceID:        optimistic.ServiceID,
		Model:            req.Result.Model,
		Config:           cfgJSON,
		MarketConditions: marketJSON,
		DerivedFigures:   derived,
	}
}

// reconcileServerRecord merges the confirmed response over the optimistic
// guess. Server fields win wherever both sides carry a value; nested
// sub-objects the server did not expand are kept from the optimistic copy.
func reconcileServerRecord(optimistic, saved *model.ServicePricingRecord) *model.ServicePricingRecord {
	if saved == nil {
		return optimistic
	}
	merged := saved.Clone()
	if merged.Service == nil {
		merged.Service = optimistic.Service
	}
	if merged.CustomValuationUnit == nil {
		merged.CustomValuationUnit = optimistic.CustomValuationUnit
	}
	return merged
}
