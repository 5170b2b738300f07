// Package router sets up all HTTP routes and middleware chains for the
// village portal. The article editor endpoints live at /articles; the
// visitor-facing site reads from /berita, /produk, /kuliner, /booklet
// and /profil.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"desaportal/internal/handlers"
	"desaportal/internal/middleware"
	"desaportal/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, auth *handlers.Auth, articles *handlers.Articles,
	catalog *handlers.Catalog, media *handlers.Media, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	// Auth endpoints. Login and 2FA verification are rate limited to
	// slow down credential brute forcing.
	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter.Middleware).Post("/login", auth.Login)
		r.With(loginLimiter.Middleware).Post("/2fa/verify", auth.TwoFAVerify)
		r.Post("/2fa/setup", auth.TwoFASetup)
		r.Post("/logout", auth.Logout)
		r.Get("/me", auth.Me)
	})

	// Article aggregate endpoints. Reads and writes share the paths the
	// editor uses; writes require a verified session.
	r.Route("/articles", func(r chi.Router) {
		r.Get("/{id}", articles.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", articles.List)
			r.Post("/", articles.Create)
			r.Put("/{id}", articles.Update)
			r.Delete("/{id}", articles.Delete)
		})
	})

	// Admin area: catalogs, booklets, profile, media.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalog.ListProducts)
			r.Post("/", catalog.CreateProduct)
			r.Put("/{id}", catalog.UpdateProduct)
			r.Delete("/{id}", catalog.DeleteProduct)
		})

		r.Route("/culinary", func(r chi.Router) {
			r.Get("/", catalog.ListCulinary)
			r.Post("/", catalog.CreateCulinary)
			r.Put("/{id}", catalog.UpdateCulinary)
			r.Delete("/{id}", catalog.DeleteCulinary)
		})

		r.Route("/booklets", func(r chi.Router) {
			r.Get("/", catalog.ListBooklets)
			r.Post("/", catalog.CreateBooklet)
			r.Put("/{id}", catalog.UpdateBooklet)
			r.Delete("/{id}", catalog.DeleteBooklet)
		})

		r.Put("/profile", catalog.UpdateProfile)

		r.Route("/media", func(r chi.Router) {
			r.Get("/", media.List)
			r.Post("/upload", media.Upload)
			r.Delete("/{id}", media.Delete)
		})
	})

	// Upload path the editor calls directly.
	r.With(middleware.RequireAuth).Post("/media/upload", media.Upload)

	// Public routes — cached reads.
	r.Get("/berita", public.ListArticles)
	r.Get("/berita/{slug}", public.GetArticle)
	r.Get("/pengumuman", public.ListAnnouncements)
	r.Get("/produk", public.ListProducts)
	r.Get("/kuliner", public.ListCulinary)
	r.Get("/booklet", public.ListBooklets)
	r.Get("/profil", public.GetProfile)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
