package rest

import (
	"context"
	"net/http"

	core_port "catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	projectHandler *ProjectHandler,
	mediaHandler *MediaHandler,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	authMiddleware *AuthMiddleware,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// публичные роуты
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/verify-totp", authHandler.VerifyTOTP)

		// роуты для аутентифицированных пользователей
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/profile", authHandler.Profile)
			r.Post("/auth/totp/setup", authHandler.SetupTOTP)
			r.Post("/auth/totp/enable", authHandler.EnableTOTP)
			r.Post("/auth/totp/disable", authHandler.DisableTOTP)

			r.Get("/projects", projectHandler.FindProjects)
			r.Post("/projects", projectHandler.CreateProject)
			r.Get("/projects/{projectID}", projectHandler.GetProject)
			r.Put("/projects/{projectID}", projectHandler.UpdateProject)
			r.Get("/projects/{projectID}/similar", projectHandler.FindSimilarProjects)

			r.Get("/media/{mediaID}/download", mediaHandler.DownloadMedia)

			// админские роуты
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)

				r.Delete("/projects/{projectID}", projectHandler.DeleteProject)
				r.Post("/projects/bulk-delete", projectHandler.BulkDeleteProjects)
				r.Post("/projects/import", projectHandler.ImportProjects)
				r.Get("/projects/import/template", projectHandler.DownloadTemplate)
				r.Get("/projects/export", projectHandler.ExportProjects)
				r.Patch("/projects/{projectID}/visibility", projectHandler.SetProjectVisibility)

				r.Post("/projects/{projectID}/media", mediaHandler.UploadMedia)
				r.Delete("/media/{mediaID}", mediaHandler.DeleteMedia)
				r.Patch("/media/{mediaID}/visibility", mediaHandler.SetMediaVisibility)

				r.Get("/users", userHandler.ListUsers)
				r.Post("/users", userHandler.CreateUser)
				r.Put("/users/{userID}", userHandler.UpdateUser)
				r.Delete("/users/{userID}", userHandler.DeleteUser)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
