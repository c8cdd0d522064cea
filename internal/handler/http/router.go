package http

import (
	"log/slog"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/auth"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/middleware"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	calendarHandler CalendarHandler,
	contractHandler ContractHandler,
	requestHandler RequestHandler,
	healthRecordHandler HealthRecordHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelInfo,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/business-days/{date}", calendarHandler.BusinessDay)
				r.Get("/holidays", calendarHandler.Holidays)
			})

			r.Route("/contracts", func(r chi.Router) {
				r.Use(middleware.RequireWorkspace)
				r.Get("/", contractHandler.List)
				r.Post("/", contractHandler.Create)
				r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/bulk", contractHandler.BulkDeactivate)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.UUIDParam("id"))
					r.Get("/", contractHandler.Get)
					r.Put("/", contractHandler.Update)
					r.Delete("/", contractHandler.Deactivate)
					r.Patch("/reactivate", contractHandler.Reactivate)
					r.Get("/requests", contractHandler.ListRequests)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Use(middleware.RequireWorkspace)
				r.Route("/vacations", func(r chi.Router) {
					r.Post("/", requestHandler.CreateVacation)
					r.Post("/validate", requestHandler.ValidateVacation)
					r.With(middleware.UUIDParam("id")).Put("/{id}", requestHandler.UpdateVacation)
				})
				r.Post("/licenses", requestHandler.CreateLicense)
				r.Post("/overtimes", requestHandler.CreateOvertime)
				r.Post("/resignations", requestHandler.CreateResignation)

				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.UUIDParam("id"))
					r.Get("/", requestHandler.Get)
					r.Delete("/", requestHandler.Deactivate)
					r.Patch("/reactivate", requestHandler.Reactivate)

					// Admin or HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Post("/approve", requestHandler.Approve)
						r.Post("/reject", requestHandler.Reject)
					})
				})
			})

			r.Route("/health-records", func(r chi.Router) {
				r.Use(middleware.RequireWorkspace)
				r.Get("/", healthRecordHandler.List)
				r.Post("/", healthRecordHandler.Create)
				r.Get("/export", healthRecordHandler.ExportExpiring)
				r.With(middleware.RequireRole(auth.RoleAdmin)).Delete("/bulk", healthRecordHandler.BulkDeactivate)
				r.Route("/{id}", func(r chi.Router) {
					r.Use(middleware.UUIDParam("id"))
					r.Get("/", healthRecordHandler.Get)
					r.Put("/", healthRecordHandler.Update)
					r.Delete("/", healthRecordHandler.Deactivate)
					r.Patch("/reactivate", healthRecordHandler.Reactivate)
				})
			})
		})
	})

	return r
}
