// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"member-service/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(memberHandler *handler.MemberHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Member API routes
	r.Route("/members", func(r chi.Router) {
		r.Get("/", memberHandler.ListMembers)
		r.Post("/", memberHandler.CreateMember)
		r.Get("/email/{email}", memberHandler.GetMemberByEmail)
		r.Get("/{memberID}", memberHandler.GetMemberByID)
		r.Put("/{memberID}", memberHandler.UpdateMember)
		r.Delete("/{memberID}", memberHandler.DeleteMember)
	})

	return r
}
