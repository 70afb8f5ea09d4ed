package unit

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/servly/pricing-api/internal/model"
	"github.com/servly/pricing-api/internal/repository"
	"github.com/servly/pricing-api/pkg/logger"
)

const cacheKey = "valuation_units"

type UnitServicer interface {
	ListUnits(ctx context.Context) []model.ValuationUnit
}

// Service serves the valuation unit catalog. Catalog reads are cached; a
// failed fetch degrades to the built-in list so unit pickers stay usable.
type Service struct {
	repo   repository.UnitRepository
	cache  *gocache.Cache
	logger *logger.Logger
}

func NewService(repo repository.UnitRepository, ttl time.Duration, logger *logger.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		repo:   repo,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
}

// ListUnits never fails: on a repository error the built-in fallback list
// is returned and the failure is logged only.
func (s *Service) ListUnits(ctx context.Context) []model.ValuationUnit {
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.([]model.ValuationUnit)
	}

	units, err := s.repo.ListActive(ctx)
	if err != nil {
		s.logger.Error(err, "failed to fetch valuation units, using built-in list")
		return model.BuiltinUnits()
	}
	if len(units) == 0 {
		return model.BuiltinUnits()
	}

	s.cache.Set(cacheKey, units, gocache.DefaultExpiration)
	return units
}
