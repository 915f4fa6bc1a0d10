package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(deductionHandler DeductionHandler, workerHandler WorkerHandler, payCalcHandler PayCalcHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "estate-payroll"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/deduction-types", func(r chi.Router) {
			r.Get("/", deductionHandler.ListTypes)
			r.Post("/", deductionHandler.CreateType)
			r.Post("/seed-defaults", deductionHandler.SeedDefaults)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deductionHandler.GetType)
				r.Delete("/", deductionHandler.DeactivateType)
				r.Put("/wage-ranges", deductionHandler.ReplaceWageRanges)
			})
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", workerHandler.List)
			r.Post("/", workerHandler.Create)
			r.Get("/{id}", workerHandler.GetByID)
		})

		r.Route("/pay-calculations", func(r chi.Router) {
			r.Get("/", payCalcHandler.List)
			r.Post("/", payCalcHandler.Generate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", payCalcHandler.GetByID)
				r.Get("/details", payCalcHandler.ListDetails)
				r.Post("/finalize", payCalcHandler.Finalize)
			})
		})
	})

	return r
}
