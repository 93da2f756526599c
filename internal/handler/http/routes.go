package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/me", h.currentUser)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/accounts", h.listAccounts)
		r.Post("/api/accounts", h.createAccount)
		r.Get("/api/accounts/sync", h.syncState)
		r.Put("/api/accounts/{id}", h.updateAccount)
		r.Delete("/api/accounts/{id}", h.deleteAccount)
		r.Post("/api/accounts/{id}/disconnect", h.disconnectAccount)
		r.Post("/api/accounts/{id}/connect", h.connectAccount)
		r.Post("/api/accounts/{id}/deploy", h.deployAccount)
		r.Post("/api/accounts/{id}/check-config", h.checkAccountConfig)
	})

	return router
}
