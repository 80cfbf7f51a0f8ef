package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/producers-backend/api/responses"
	"github.com/angelmondragon/producers-backend/api/validators"
	"github.com/angelmondragon/producers-backend/internal/producers"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/logger"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
	"github.com/angelmondragon/producers-backend/pkg/storage"
	"github.com/angelmondragon/producers-backend/pkg/types"
)

type bulkStatusRequest struct {
	IDs []string `json:"ids"`
}

type bulkStatusResponse struct {
	Updated int64 `json:"updated"`
}

// AdminListProducers serves the administrative listing with search, state and
// creation date filters.
func AdminListProducers(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "producer service unavailable"))
			return
		}

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.Query = validators.QueryFilter(r, "q")
		filters.State = validators.QueryFilter(r, "state")
		if err := parseCreatedRange(r, &filters); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r, pagination.AdminPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.AdminList(r.Context(), producers.ListProducersInput{
			Filters:    filters,
			Pagination: params,
			BaseURL:    urlBuilder(r, resolver).Absolute(r.URL.RequestURI()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func parseCreatedRange(r *http.Request, filters *producers.ListFilters) error {
	after, err := validators.ParseQueryTime(r, "created_after", false)
	if err != nil {
		return err
	}
	before, err := validators.ParseQueryTime(r, "created_before", true)
	if err != nil {
		return err
	}
	if after != nil && before != nil && !after.Before(*before) {
		return pkgerrors.Validation(map[string]string{"created_before": "must be later than created_after"})
	}
	filters.CreatedAfter = after
	filters.CreatedBefore = before
	return nil
}

// AdminActivateProducers marks the selected producers active.
func AdminActivateProducers(svc producers.Service, logg *logger.Logger) http.HandlerFunc {
	return bulkStatus(svc, logg, true)
}

// AdminDeactivateProducers marks the selected producers inactive.
func AdminDeactivateProducers(svc producers.Service, logg *logger.Logger) http.HandlerFunc {
	return bulkStatus(svc, logg, false)
}

func bulkStatus(svc producers.Service, logg *logger.Logger, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "producer service unavailable"))
			return
		}

		var payload bulkStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ids, err := parseIDs(payload.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetActive(r.Context(), ids, active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"is_active": active,
				"selected":  len(ids),
				"updated":   updated,
			})
			logg.Info(ctx, "producers.status_changed")
		}
		responses.WriteSuccess(w, bulkStatusResponse{Updated: updated})
	}
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	errs := types.FieldErrors{}
	ids := make([]uuid.UUID, 0, len(raw))
	for i, value := range raw {
		id, err := uuid.Parse(strings.TrimSpace(value))
		if err != nil {
			errs.Add(fmt.Sprintf("ids[%d]", i), "must be a valid id")
			continue
		}
		ids = append(ids, id)
	}
	if !errs.Empty() {
		return nil, pkgerrors.Validation(errs)
	}
	return ids, nil
}

// AdminProducerGallery lists a producer's gallery in display order.
func AdminProducerGallery(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "producer service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, producerIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		images, err := svc.Gallery(r.Context(), id, urlBuilder(r, resolver))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, images)
	}
}

// AdminReplaceProducerGallery replaces a producer's gallery with the ordered list sent.
func AdminReplaceProducerGallery(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "producer service unavailable"))
			return
		}

		id, err := validators.ParseUUIDParam(r, producerIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithProducerID(ctx, id.String())
		}

		var payload producers.ReplaceGalleryInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		images, err := svc.ReplaceGallery(ctx, id, payload, urlBuilder(r, resolver))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithField(ctx, "images", len(images)), "producer.gallery_replaced")
		}
		responses.WriteSuccess(w, images)
	}
}
