package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/api/validators"
	product "github.com/sellerboard/sellerboard-backend/internal/products"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
	"github.com/sellerboard/sellerboard-backend/pkg/pagination"
)

// snapshotQueue publishes snapshots for asynchronous ingestion.
type snapshotQueue interface {
	Enqueue(ctx context.Context, storeID uuid.UUID, snapshot product.SnapshotInput) (string, error)
}

// ProductList returns one cursor page of the store's tracked products.
func ProductList(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		marketplace, err := marketplaceParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListPage(r.Context(), storeID, product.ListInput{
			Marketplace: marketplace,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// ProductGet loads a single tracked product by barcode.
func ProductGet(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		marketplace, err := marketplaceParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		barcode := strings.TrimSpace(chi.URLParam(r, "barcode"))
		if barcode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required"))
			return
		}

		row, err := svc.GetByBarcode(r.Context(), storeID, marketplace, barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}

// ProductSnapshot applies one scraped snapshot synchronously. The browser
// extension normally publishes snapshots through Pub/Sub; this endpoint is
// the direct path for manual entry from the dashboard.
func ProductSnapshot(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload product.SnapshotInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.ApplySnapshot(r.Context(), storeID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}

// ProductSnapshotEnqueue queues one snapshot for asynchronous ingestion by
// the scrape worker instead of applying it in the request path.
func ProductSnapshotEnqueue(queue snapshotQueue, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if queue == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "snapshot queue unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload product.SnapshotInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		messageID, err := queue.Enqueue(r.Context(), storeID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"message_id": messageID})
	}
}
