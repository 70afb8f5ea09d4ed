package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servly/pricing-api/internal/model"
	apperrors "github.com/servly/pricing-api/pkg/errors"
)

type fakePricingService struct {
	records []*model.ServicePricingRecord
	record  *model.ServicePricingRecord
	err     error

	lastUpdate *model.PricingUpdate
}

func (f *fakePricingService) ListPricing(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error) {
	return f.records, f.err
}

func (f *fakePricingService) GetPricing(ctx context.Context, professionalServiceID uuid.UUID) (*model.ServicePricingRecord, error) {
	return f.record, f.err
}

func (f *fakePricingService) UpdatePricing(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error) {
	f.lastUpdate = update
	return f.record, f.err
}

func setupRouter(svc *fakePricingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func floatPtr(f float64) *float64 { return &f }

func TestListPricingHandler(t *testing.T) {
	svc := &fakePricingService{
		records: []*model.ServicePricingRecord{{ProfessionalServiceID: uuid.New()}},
	}
	router := setupRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/professionals/"+uuid.NewString()+"/pricing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string                        `json:"status"`
		Data   []*model.ServicePricingRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Len(t, body.Data, 1)
}

func TestListPricingHandlerInvalidID(t *testing.T) {
	router := setupRouter(&fakePricingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/professionals/not-a-uuid/pricing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPricingHandlerNotFound(t *testing.T) {
	router := setupRouter(&fakePricingService{err: apperrors.NotFound("professional", nil)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/professionals/"+uuid.NewString()+"/pricing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPricingHandler(t *testing.T) {
	record := &model.ServicePricingRecord{ProfessionalServiceID: uuid.New()}
	router := setupRouter(&fakePricingService{record: record})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/"+record.ProfessionalServiceID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePricingHandler(t *testing.T) {
	record := &model.ServicePricingRecord{
		ProfessionalServiceID: uuid.New(),
		CustomPrice:           floatPtr(75),
	}
	svc := &fakePricingService{record: record}
	router := setupRouter(svc)

	payload, _ := json.Marshal(map[string]any{
		"custom_price":     75,
		"additional_notes": "includes disposal",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/pricing/"+record.ProfessionalServiceID.String(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastUpdate)
	assert.Equal(t, 75.0, *svc.lastUpdate.CustomPrice)
	assert.Equal(t, "includes disposal", svc.lastUpdate.AdditionalNotes)
}

func TestUpdatePricingHandlerMissingPrice(t *testing.T) {
	router := setupRouter(&fakePricingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/pricing/"+uuid.NewString(), bytes.NewBufferString(`{"additional_notes":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdatePricingHandlerServiceValidation(t *testing.T) {
	router := setupRouter(&fakePricingService{err: apperrors.Validation("custom price must not be negative", nil)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/pricing/"+uuid.NewString(), bytes.NewBufferString(`{"custom_price":-1}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdatePricingHandlerInvalidID(t *testing.T) {
	router := setupRouter(&fakePricingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/pricing/nope", bytes.NewBufferString(`{"custom_price":10}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
