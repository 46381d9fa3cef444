package api

import (
	"net/http"
	"time"

	_ "parcels/docs"
	parcelhandler "parcels/internal/parcel/handler"
	ratehandler "parcels/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

const defaultRegistrationRate = 60

type Options struct {
	// Session resolves the caller's user id for every /api/v1 route.
	Session func(http.Handler) http.Handler
	// RegistrationRatePerMinute caps registrations per client IP; zero takes the default.
	RegistrationRatePerMinute int
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(parcels *parcelhandler.Handler, rates *ratehandler.Handler, opts Options) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	ratePerMinute := opts.RegistrationRatePerMinute
	if ratePerMinute <= 0 {
		ratePerMinute = defaultRegistrationRate
	}

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Session != nil {
			r.Use(opts.Session)
		}

		r.With(httprate.LimitByIP(ratePerMinute, time.Minute)).
			Post("/parcels/registration", parcels.Register)
		r.Get("/parcels", parcels.List)
		r.Get("/parcels/{id}", parcels.Get)
		r.Post("/parcels/{id}/assign-company", parcels.AssignCompany)

		r.Get("/parcel-types", parcels.ParcelTypes)
		r.Get("/transport-companies", parcels.TransportCompanies)

		r.Get("/rates/usd", rates.GetUSD)
		r.Post("/rates/usd/refresh", rates.ScheduleRefresh)
	})
	return router
}
