package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Get("/api/auth/params", h.params)
		r.Post("/api/auth/login", h.login)

		r.With(h.withUnlockLimit).Post("/api/emergency/unlock", h.unlock)

		r.Get("/api/version/", h.getServerVersion)
	})

	// owner or emergency credential; non-GET routes reject read-only scopes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.withWriteScope)

		r.Route("/api/files", func(r chi.Router) {
			r.Post("/", h.uploadFile)
			r.Get("/", h.listFiles)
			r.Get("/{id}", h.getFile)
			r.Get("/{id}/blob", h.getFileBlob)
			r.Delete("/{id}", h.deleteFile)
			r.Put("/{id}/emergency-key", h.updateEmergencyWrap)
		})

		r.Route("/api/emergency", func(r chi.Router) {
			r.With(h.withOwnerScope).Get("/", h.getEmergencyAccess)
			r.Put("/", h.setEmergencyAccess)
			r.Post("/rotation/lease", h.acquireRotationLease)
			r.Delete("/rotation/lease", h.releaseRotationLease)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
