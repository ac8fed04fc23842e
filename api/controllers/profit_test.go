package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/api/middleware"
	"github.com/sellerboard/sellerboard-backend/internal/finance"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

type stubRateResolver struct {
	cost       decimal.Decimal
	err        error
	resolved   bool
	gotStoreID uuid.UUID
	gotValue   decimal.Decimal
}

func (s *stubRateResolver) MergedTable(context.Context, uuid.UUID, enums.Marketplace) ([]shipping.Tier, error) {
	return nil, nil
}

func (s *stubRateResolver) ResolveShippingCost(_ context.Context, storeID uuid.UUID, _ enums.Marketplace, _ enums.RateType, value decimal.Decimal) (decimal.Decimal, error) {
	s.resolved = true
	s.gotStoreID = storeID
	s.gotValue = value
	return s.cost, s.err
}

func (s *stubRateResolver) CreateOverride(context.Context, uuid.UUID, shipping.OverrideInput) (*models.ShippingRate, error) {
	return nil, nil
}

func (s *stubRateResolver) UpdateOverride(context.Context, uuid.UUID, uuid.UUID, shipping.OverrideInput) (*models.ShippingRate, error) {
	return nil, nil
}

func (s *stubRateResolver) DeleteOverride(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (s *stubRateResolver) ResetOverrides(context.Context, uuid.UUID, enums.Marketplace) error {
	return nil
}

func profitJSONRequest(t *testing.T, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithStoreID(req.Context(), uuid.NewString()))
}

func decodeProfitEnvelope(t *testing.T, resp *httptest.ResponseRecorder) finance.ProfitResult {
	t.Helper()
	var envelope struct {
		Data finance.ProfitResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestProfitCalculateExplicitShipping(t *testing.T) {
	resolver := &stubRateResolver{}
	handler := ProfitCalculate(resolver, nil)

	body := `{"marketplace":"trendyol","sales_price":"500","buy_price":"250","commission_rate":"0.15","vat_rate":"20","shipping_cost":"30"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, profitJSONRequest(t, "/api/v1/profit/calculate", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resolver.resolved {
		t.Fatal("explicit shipping cost must not hit the rate resolver")
	}

	result := decodeProfitEnvelope(t, resp)
	if !result.NetProfit.Equal(decimal.RequireFromString("61.67")) {
		t.Fatalf("net profit = %s, want 61.67", result.NetProfit)
	}
	if !result.TotalCost.Equal(decimal.RequireFromString("438.33")) {
		t.Fatalf("total cost = %s, want 438.33", result.TotalCost)
	}
}

func TestProfitCalculateResolvesDesi(t *testing.T) {
	resolver := &stubRateResolver{cost: decimal.RequireFromString("64.90")}
	handler := ProfitCalculate(resolver, nil)

	body := `{"marketplace":"trendyol","sales_price":"500","buy_price":"250","commission_rate":"0.15","vat_rate":"20","desi":"4.2"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, profitJSONRequest(t, "/api/v1/profit/calculate", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if !resolver.resolved {
		t.Fatal("desi request must resolve shipping through the rate table")
	}
	if !resolver.gotValue.Equal(decimal.RequireFromString("4.2")) {
		t.Fatalf("resolved desi = %s, want 4.2", resolver.gotValue)
	}

	result := decodeProfitEnvelope(t, resp)
	if !result.ShippingCost.Equal(resolver.cost) {
		t.Fatalf("shipping cost = %s, want %s", result.ShippingCost, resolver.cost)
	}
}

func TestProfitCalculateInvalidMarketplace(t *testing.T) {
	handler := ProfitCalculate(&stubRateResolver{}, nil)

	body := `{"marketplace":"etsy","sales_price":"500","buy_price":"250"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, profitJSONRequest(t, "/api/v1/profit/calculate", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProfitCalculateDesiWithoutStoreContext(t *testing.T) {
	handler := ProfitCalculate(&stubRateResolver{}, nil)

	body := `{"marketplace":"trendyol","sales_price":"500","buy_price":"250","desi":"2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profit/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestProfitSimulateDeltas(t *testing.T) {
	handler := ProfitSimulate(&stubRateResolver{}, nil)

	body := `{"marketplace":"trendyol","sales_price":"500","buy_price":"250","commission_rate":"0.15","vat_rate":"20","shipping_cost":"30","new_sales_price":"550"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, profitJSONRequest(t, "/api/v1/profit/simulate", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data finance.Simulation `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Data.Simulated.SalesPrice.Equal(decimal.RequireFromString("550")) {
		t.Fatalf("simulated sales price = %s, want 550", envelope.Data.Simulated.SalesPrice)
	}
	wantDelta := envelope.Data.Simulated.NetProfit.Sub(envelope.Data.Current.NetProfit)
	if !envelope.Data.ProfitDelta.Equal(wantDelta) {
		t.Fatalf("profit delta = %s, want %s", envelope.Data.ProfitDelta, wantDelta)
	}
}

func TestProfitSimulateMissingNewPrice(t *testing.T) {
	handler := ProfitSimulate(&stubRateResolver{}, nil)

	body := `{"marketplace":"trendyol","sales_price":"500","buy_price":"250"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, profitJSONRequest(t, "/api/v1/profit/simulate", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
