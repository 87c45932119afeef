package http

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)

	// infrastructure routes
	router.Get("/favicon.ico", h.favicon)
	router.Get("/api/version/", h.getServerVersion)
	if h.serveUploads {
		prefix := strings.TrimRight(h.files.PublicPrefix, "/")
		router.Handle(prefix+"/*", h.uploads(prefix))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/auth/signup", h.signup)
		r.Post("/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/auth/me", withOwner(h.me))
		r.Delete("/auth/me", withOwner(h.deleteMe))

		r.Route("/items", func(r chi.Router) {
			r.Get("/", withOwner(h.listItems))
			r.Post("/", withOwner(h.createItem))
			r.Get("/by-room/{room}", withOwner(h.itemsByRoom))
			r.Get("/by-category/{category}", withOwner(h.itemsByCategory))

			r.Get("/{itemID}", withOwner(h.getItem))
			r.Put("/{itemID}", withOwner(h.updateItem))
			r.Delete("/{itemID}", withOwner(h.deleteItem))
			r.Post("/{itemID}/upload-image", withOwner(h.uploadImage))
		})

		r.Get("/search/", withOwner(h.search))
		r.Get("/images/", withOwner(h.gallery))
		r.Get("/rooms/list", withOwner(h.roomCounts))
		r.Get("/categories/list", withOwner(h.categoryCounts))
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) favicon(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// uploads serves the files of the local upload directory under prefix.
// Directory listings are not served.
func (h *Handler) uploads(prefix string) http.Handler {
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(h.files.UploadDir)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			notFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
