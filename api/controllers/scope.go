package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/api/middleware"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

// storeScope pulls the active store out of the request context. Routes using
// it sit behind the auth and store-context middleware, so a miss here means a
// token without a store binding.
func storeScope(r *http.Request) (uuid.UUID, error) {
	raw := middleware.StoreIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeForbidden, "store context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id")
	}
	return id, nil
}

func marketplaceParam(r *http.Request) (enums.Marketplace, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("marketplace"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "marketplace is required").
			WithDetails(map[string]any{"field": "marketplace"})
	}
	marketplace := enums.Marketplace(strings.ToLower(raw))
	if !marketplace.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace").
			WithDetails(map[string]any{"field": "marketplace", "value": raw})
	}
	return marketplace, nil
}

func decimalParam(r *http.Request, key string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").
			WithDetails(map[string]any{"field": key})
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "query parameter must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

func pathUUID(param string, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier").
			WithDetails(map[string]any{"field": param})
	}
	return id, nil
}
