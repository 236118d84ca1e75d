package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smileroute/smileroute-backend/api/controllers"
	"github.com/smileroute/smileroute-backend/api/controllers/quotesessions"
	"github.com/smileroute/smileroute-backend/api/middleware"
	promosvc "github.com/smileroute/smileroute-backend/internal/promotions"
	"github.com/smileroute/smileroute-backend/internal/quote"
	treatmentsvc "github.com/smileroute/smileroute-backend/internal/treatments"
	"github.com/smileroute/smileroute-backend/pkg/config"
	"github.com/smileroute/smileroute-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	cachePinger controllers.Pinger,
	treatmentsService treatmentsvc.Service,
	promotionsService *promosvc.Service,
	sessionsService *quote.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/livez", controllers.HealthLive(cfg))
	r.Get("/healthz", controllers.HealthReady(cfg, logg, dbPinger, cachePinger))
	r.Get("/ping", controllers.Ping())

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	sessions := quotesessions.NewController(sessionsService, treatmentsService, promotionsService, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/treatments", controllers.ListTreatments(treatmentsService, logg))
		r.Get("/treatments/{treatmentID}", controllers.GetTreatment(treatmentsService, logg))
		r.Get("/promotions", controllers.LookupPromotion(promotionsService, logg))

		r.Route("/quote-sessions", func(r chi.Router) {
			r.Post("/", sessions.Create)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", sessions.Get)
				r.Delete("/", sessions.Delete)
				r.Put("/patient", sessions.UpdatePatient)
				r.Post("/items", sessions.AddItem)
				r.Patch("/items/{treatmentID}", sessions.SetQuantity)
				r.Delete("/items/{treatmentID}", sessions.RemoveItem)
				r.Post("/promotion", sessions.ApplyPromotion)
				r.Delete("/promotion", sessions.RemovePromotion)
				r.Post("/submit", sessions.Submit)
			})
		})
	})

	return r
}
