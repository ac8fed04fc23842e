package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/api/middleware"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

type stubRateService struct {
	tiers    []shipping.Tier
	rate     *models.ShippingRate
	err      error
	created  *shipping.OverrideInput
	deleted  *uuid.UUID
	resetMkt enums.Marketplace
}

func (s *stubRateService) MergedTable(context.Context, uuid.UUID, enums.Marketplace) ([]shipping.Tier, error) {
	return s.tiers, s.err
}

func (s *stubRateService) ResolveShippingCost(context.Context, uuid.UUID, enums.Marketplace, enums.RateType, decimal.Decimal) (decimal.Decimal, error) {
	return decimal.RequireFromString("49.90"), s.err
}

func (s *stubRateService) CreateOverride(_ context.Context, _ uuid.UUID, input shipping.OverrideInput) (*models.ShippingRate, error) {
	s.created = &input
	return s.rate, s.err
}

func (s *stubRateService) UpdateOverride(_ context.Context, _ uuid.UUID, _ uuid.UUID, input shipping.OverrideInput) (*models.ShippingRate, error) {
	return s.rate, s.err
}

func (s *stubRateService) DeleteOverride(_ context.Context, _ uuid.UUID, rateID uuid.UUID) error {
	s.deleted = &rateID
	return s.err
}

func (s *stubRateService) ResetOverrides(_ context.Context, _ uuid.UUID, marketplace enums.Marketplace) error {
	s.resetMkt = marketplace
	return s.err
}

func scopedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithStoreID(req.Context(), uuid.NewString()))
}

func TestRateTableReturnsMergedTiers(t *testing.T) {
	svc := &stubRateService{tiers: shipping.DefaultDesiTiers()}
	handler := RateTable(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodGet, "/api/v1/rates?marketplace=trendyol", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Tiers []shipping.Tier `json:"tiers"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Tiers) != len(svc.tiers) {
		t.Fatalf("tier count = %d, want %d", len(envelope.Data.Tiers), len(svc.tiers))
	}
}

func TestRateTableRequiresMarketplace(t *testing.T) {
	handler := RateTable(&stubRateService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodGet, "/api/v1/rates", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRateResolveSuccess(t *testing.T) {
	handler := RateResolve(&stubRateService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodGet, "/api/v1/rates/resolve?marketplace=trendyol&rate_type=desi&value=2.5", ""))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Cost decimal.Decimal `json:"cost"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Cost.Equal(decimal.RequireFromString("49.90")) {
		t.Fatalf("cost = %s, want 49.90", envelope.Data.Cost)
	}
}

func TestRateResolveRejectsUnknownRateType(t *testing.T) {
	handler := RateResolve(&stubRateService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodGet, "/api/v1/rates/resolve?marketplace=trendyol&rate_type=weight&value=2", ""))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRateOverrideCreate(t *testing.T) {
	svc := &stubRateService{rate: &models.ShippingRate{ID: uuid.New()}}
	handler := RateOverrideCreate(svc, nil)

	body := `{"marketplace":"trendyol","rate_type":"desi","min_value":"0","max_value":"2","cost":"34.90","vat_included":true}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodPost, "/api/v1/rates/overrides", body))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.created == nil {
		t.Fatal("expected CreateOverride to be called")
	}
	if !svc.created.Cost.Equal(decimal.RequireFromString("34.90")) {
		t.Fatalf("override cost = %s, want 34.90", svc.created.Cost)
	}
}

func TestRateOverrideCreateRejectsUnknownField(t *testing.T) {
	handler := RateOverrideCreate(&stubRateService{}, nil)

	body := `{"marketplace":"trendyol","rate_type":"desi","max_value":"2","cost":"34.90","carrier":"yurtici"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodPost, "/api/v1/rates/overrides", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRateOverrideDelete(t *testing.T) {
	svc := &stubRateService{}
	handler := RateOverrideDelete(svc, nil)

	rateID := uuid.New()
	req := scopedRequest(http.MethodDelete, "/api/v1/rates/overrides/"+rateID.String(), "")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("rateId", rateID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if svc.deleted == nil || *svc.deleted != rateID {
		t.Fatalf("expected delete for %s", rateID)
	}
}

func TestRateOverrideDeleteInvalidID(t *testing.T) {
	handler := RateOverrideDelete(&stubRateService{}, nil)

	req := scopedRequest(http.MethodDelete, "/api/v1/rates/overrides/not-a-uuid", "")
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("rateId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRateOverridesReset(t *testing.T) {
	svc := &stubRateService{}
	handler := RateOverridesReset(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, scopedRequest(http.MethodPost, "/api/v1/rates/overrides/reset?marketplace=hepsiburada", ""))

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
	if svc.resetMkt != enums.MarketplaceHepsiburada {
		t.Fatalf("reset marketplace = %s, want hepsiburada", svc.resetMkt)
	}
}
