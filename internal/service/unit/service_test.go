package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/pkg/logger"
)

type stubUnitRepo struct {
	units []model.ValuationUnit
	err   error
	calls int
}

func (r *stubUnitRepo) ListActive(ctx context.Context) ([]model.ValuationUnit, error) {
	r.calls++
	return r.units, r.err
}

func TestListUnits(t *testing.T) {
	repo := &stubUnitRepo{units: []model.ValuationUnit{
		{UnitID: "hour", UnitCode: "hour", DisplayName: "per hour", IsActive: true},
	}}
	svc := NewService(repo, time.Minute, logger.NewLogger(nil))

	units := svc.ListUnits(context.Background())
	require.Len(t, units, 1)
	assert.Equal(t, "hour", units[0].UnitCode)
}

func TestListUnitsCachesCatalog(t *testing.T) {
	repo := &stubUnitRepo{units: model.BuiltinUnits()}
	svc := NewService(repo, time.Minute, logger.NewLogger(nil))

	svc.ListUnits(context.Background())
	svc.ListUnits(context.Background())
	assert.Equal(t, 1, repo.calls)
}

func TestListUnitsFallsBackOnError(t *testing.T) {
	repo := &stubUnitRepo{err: errors.New("relation does not exist")}
	svc := NewService(repo, time.Minute, logger.NewLogger(nil))

	units := svc.ListUnits(context.Background())
	assert.Equal(t, model.BuiltinUnits(), units)

	// Failures are not cached; the next call retries the catalog.
	svc.ListUnits(context.Background())
	assert.Equal(t, 2, repo.calls)
}

func TestListUnitsFallsBackOnEmptyCatalog(t *testing.T) {
	repo := &stubUnitRepo{}
	svc := NewService(repo, time.Minute, logger.NewLogger(nil))

	assert.Equal(t, model.BuiltinUnits(), svc.ListUnits(context.Background()))
}
