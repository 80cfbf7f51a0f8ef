package controllers

import (
	"net/http"

	"github.com/angelmondragon/producers-backend/api/middleware"
	"github.com/angelmondragon/producers-backend/api/responses"
	"github.com/angelmondragon/producers-backend/api/validators"
	"github.com/angelmondragon/producers-backend/internal/producers"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/logger"
	"github.com/angelmondragon/producers-backend/pkg/pagination"
	"github.com/angelmondragon/producers-backend/pkg/storage"
)

const producerIDParam = "id"

// ListProducers serves the public, paginated producer listing.
func ListProducers(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
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
		params, err := validators.ParsePagination(r, pagination.DefaultPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		urls := urlBuilder(r, resolver)
		page, err := svc.List(r.Context(), producers.ListProducersInput{
			Filters:    filters,
			Pagination: params,
			BaseURL:    urls.Absolute(r.URL.RequestURI()),
		}, urls)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

// CreateProducer stores a new producer and answers 201 with its representation.
func CreateProducer(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "producer service unavailable"))
			return
		}

		var payload producers.ProducerInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		producer, err := svc.Create(r.Context(), payload, urlBuilder(r, resolver))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithProducerID(r.Context(), producer.ID.String()), "producer.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, producer)
	}
}

// GetProducer returns one producer by id.
func GetProducer(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
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

		producer, err := svc.Get(r.Context(), id, urlBuilder(r, resolver))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, producer)
	}
}

// ReplaceProducer applies a full update; omitted fields return to their defaults.
func ReplaceProducer(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return updateProducer(svc, resolver, logg, true)
}

// PatchProducer applies a partial update; only the keys sent change.
func PatchProducer(svc producers.Service, resolver storage.Resolver, logg *logger.Logger) http.HandlerFunc {
	return updateProducer(svc, resolver, logg, false)
}

func updateProducer(svc producers.Service, resolver storage.Resolver, logg *logger.Logger, full bool) http.HandlerFunc {
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

		var payload producers.ProducerInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		urls := urlBuilder(r, resolver)
		var producer *producers.ProducerDTO
		if full {
			producer, err = svc.Replace(ctx, id, payload, urls)
		} else {
			producer, err = svc.Patch(ctx, id, payload, urls)
		}
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "producer.updated")
		}
		responses.WriteSuccess(w, producer)
	}
}

// DeleteProducer removes a producer together with its gallery.
func DeleteProducer(svc producers.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "producer.deleted")
		}
		responses.WriteNoContent(w)
	}
}

func parseListFilters(r *http.Request) (producers.ListFilters, error) {
	active, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return producers.ListFilters{}, err
	}
	return producers.ListFilters{
		Type:     validators.QueryFilter(r, "type"),
		City:     validators.QueryFilter(r, "city"),
		IsActive: active,
	}, nil
}

func urlBuilder(r *http.Request, resolver storage.Resolver) producers.URLBuilder {
	return producers.URLBuilder{
		Origin:   middleware.OriginFromContext(r.Context()),
		Resolver: resolver,
	}
}
