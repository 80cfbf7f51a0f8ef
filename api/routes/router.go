package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/producers-backend/api/controllers"
	"github.com/angelmondragon/producers-backend/api/middleware"
	"github.com/angelmondragon/producers-backend/api/responses"
	"github.com/angelmondragon/producers-backend/internal/producers"
	"github.com/angelmondragon/producers-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/producers-backend/pkg/errors"
	"github.com/angelmondragon/producers-backend/pkg/logger"
	"github.com/angelmondragon/producers-backend/pkg/metrics"
	"github.com/angelmondragon/producers-backend/pkg/storage"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	resolver storage.Resolver,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	producerService producers.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(cfg.CORS),
		middleware.Origin(cfg.App.PublicBaseURL),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), nil, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, resolver))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/v1/producers", func(r chi.Router) {
		r.Get("/", controllers.ListProducers(producerService, resolver, logg))
		r.Post("/", controllers.CreateProducer(producerService, resolver, logg))
		r.Get("/{id}", controllers.GetProducer(producerService, resolver, logg))
		r.Put("/{id}", controllers.ReplaceProducer(producerService, resolver, logg))
		r.Patch("/{id}", controllers.PatchProducer(producerService, resolver, logg))
		r.Delete("/{id}", controllers.DeleteProducer(producerService, logg))
	})

	r.Route("/admin/v1/producers", func(r chi.Router) {
		r.Get("/", controllers.AdminListProducers(producerService, resolver, logg))
		r.Post("/activate", controllers.AdminActivateProducers(producerService, logg))
		r.Post("/deactivate", controllers.AdminDeactivateProducers(producerService, logg))
		r.Get("/{id}/gallery", controllers.AdminProducerGallery(producerService, resolver, logg))
		r.Put("/{id}/gallery", controllers.AdminReplaceProducerGallery(producerService, resolver, logg))
	})

	return r
}
