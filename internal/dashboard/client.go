package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/servly/pricing-api/internal/model"
	apperrors "github.com/servly/pricing-api/pkg/errors"
)

// PersistenceClient is the remote boundary of the dashboard. Injected so
// tests can substitute a fake; nothing in this package reaches the network
// any other way.
type PersistenceClient interface {
	FetchPricing(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error)
	FetchValuationUnits(ctx context.Context) ([]model.ValuationUnit, error)
	UpdatePricing(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error)
	WriteQuantificationSnapshot(ctx context.Context, snap *model.QuantificationSnapshot) error
}

// DefaultSaveTimeout bounds the primary save round trip. A timeout is a
// transport failure and triggers rollback like any other network error.
const DefaultSaveTimeout = 30 * time.Second

// HTTPClient talks to the pricing API.
type HTTPClient struct {
	rc *resty.Client
}

func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")
	return &HTTPClient{rc: rc}
}

type recordListEnvelope struct {
	Status  string                        `json:"status"`
	Message string                        `json:"message"`
	Data    []*model.ServicePricingRecord `json:"data"`
}

type recordEnvelope struct {
	Status  string                      `json:"status"`
	Message string                      `json:"message"`
	Data    *model.ServicePricingRecord `json:"data"`
}

type unitListEnvelope struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Data    []model.ValuationUnit `json:"data"`
}

func (c *HTTPClient) FetchPricing(ctx context.Context, professionalID uuid.UUID) ([]*model.ServicePricingRecord, error) {
	var envelope recordListEnvelope
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope).
		Get(fmt.Sprintf("/api/v1/professionals/%s/pricing", professionalID))
	if err != nil {
		return nil, apperrors.Transport("failed to fetch pricing list", err)
	}
	if err := statusError(resp, envelope.Message); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *HTTPClient) FetchValuationUnits(ctx context.Context) ([]model.ValuationUnit, error) {
	var envelope unitListEnvelope
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(&envelope).
		SetError(&envelope).
		Get("/api/v1/valuation-units")
	if err != nil {
		return nil, apperrors.Transport("failed to fetch valuation units", err)
	}
	if err := statusError(resp, envelope.Message); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *HTTPClient) UpdatePricing(ctx context.Context, professionalServiceID uuid.UUID, update *model.PricingUpdate) (*model.ServicePricingRecord, error) {
	var envelope recordEnvelope
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(update).
		SetResult(&envelope).
		SetError(&envelope).
		Put(fmt.Sprintf("/api/v1/pricing/%s", professionalServiceID))
	if err != nil {
		return nil, apperrors.Transport("failed to update pricing", err)
	}
	if err := statusError(resp, envelope.Message); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

func (c *HTTPClient) WriteQuantificationSnapshot(ctx context.Context, snap *model.QuantificationSnapshot) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(snap).
		Post("/api/v1/quantifications")
	if err != nil {
		return apperrors.Transport("failed to write quantification snapshot", err)
	}
	return statusError(resp, "")
}

func statusError(resp *resty.Response, message string) error {
	if resp.IsSuccess() {
		return nil
	}
	if message == "" {
		message = resp.Status()
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return apperrors.NotFound("record", fmt.Errorf("%s", message))
	case http.StatusBadRequest:
		return apperrors.BadRequest(message, nil)
	case http.StatusUnprocessableEntity:
		return apperrors.Validation(message, nil)
	case http.StatusUnauthorized:
		return apperrors.Unauthorized(fmt.Errorf("%s", message))
	default:
		return apperrors.Transport(message, nil)
	}
}
