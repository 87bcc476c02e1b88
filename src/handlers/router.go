// src/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/Gunasri-hub/Tariff-Impact-sub000/src/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig holds the handlers and middleware settings of the HTTP API.
type RouterConfig struct {
	Calculator   *CalculatorHandler
	Calculations *CalculationHandler
	Reference    *ReferenceHandler

	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	MaxBodyBytes       int64
}

// NewRouter builds the chi router serving the API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(ContextualLoggerMiddleware)
	r.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.RateLimitPerSecond > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	r.Use(BodyLimitMiddleware(cfg.MaxBodyBytes))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSON(w, r, http.StatusOK, map[string]string{"message": "Tariff Impact API is running"})
	})

	r.Route("/api/metadata", func(r chi.Router) {
		r.Get("/calculator/ping", cfg.Calculator.HandlePing)
		r.Post("/calculator/run", cfg.Calculator.HandleRun)

		if cfg.Calculations != nil {
			r.Post("/calculations", cfg.Calculations.HandleSave)
			r.Get("/calculations", cfg.Calculations.HandleList)
			r.Get("/calculations/{id}", cfg.Calculations.HandleGet)
		}

		if cfg.Reference != nil {
			r.Get("/countries", cfg.Reference.HandleListCountries)
			r.Get("/countries/{id}", cfg.Reference.HandleGetCountry)
			r.Get("/products", cfg.Reference.HandleListProducts)
			r.Get("/products/{id}", cfg.Reference.HandleGetProduct)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.SendJSONError(w, r, "Not found", http.StatusNotFound)
	})

	return r
}
