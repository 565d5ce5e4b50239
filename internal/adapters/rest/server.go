package rest

import (
	"context"
	"fmt"
	"net/http"

	core_port "home-finder-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the REST API server.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer wires the routes and middleware.
func NewServer(
	port string,
	jwtSecret string,
	properties *PropertyHandler,
	users *UserHandler,
	favorites *FavoritesHandler,
	webhooks *WebhookHandler,
	baseLogger core_port.LoggerPort,
) *Server {
	r := chi.NewRouter()

	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/properties", func(r chi.Router) {
			r.Get("/", properties.FindProperties)
			r.Get("/featured", properties.GetFeaturedProperties)
			r.Get("/{propertyID}", properties.GetPropertyDetails)
		})

		r.Route("/users", func(r chi.Router) {
			// The favorites group is keyed by the token subject, so it
			// sits behind auth while the rest of the user API serves
			// trusted internal callers.
			r.Route("/favorites", func(r chi.Router) {
				r.Use(AuthMiddleware(jwtSecret))

				r.Get("/", favorites.GetUserFavorites)
				r.Post("/", favorites.AddToFavorites)
				r.Get("/ids", favorites.GetUserFavoriteIDs)
				r.Get("/status/{propertyID}", favorites.GetFavoriteStatus)
				r.Delete("/{propertyID}", favorites.RemoveFromFavorites)
			})

			r.Get("/", users.ListUsers)
			r.Post("/", users.CreateUser)
			r.Get("/clerk/{clerkID}", users.GetUserByClerkID)
			r.Get("/email/{email}", users.GetUserByEmail)
			r.Get("/{userID}", users.GetUserByID)
			r.Put("/{userID}", users.UpdateUser)
			r.Delete("/{userID}", users.DeleteUser)
		})

		r.Post("/webhooks/identity", webhooks.HandleIdentityEvent)
	})

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// Start runs the HTTP server until it is stopped.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
