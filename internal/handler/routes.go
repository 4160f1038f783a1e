package handler

import (
	"log/slog"
	"net/http"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/service"
)

// Deps bundles what the routes need.
type Deps struct {
	Auth          *service.AuthService
	Slides        *service.SlideService
	Articles      *service.ArticleService
	Assets        domain.AssetStore
	LoginLimiter  *service.TokenBucket
	MaxUploadSize int64
	CookieSecure  bool
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, d Deps) {
	authHandler := NewAuthHandler(d.Auth, d.LoginLimiter, d.CookieSecure)
	slideHandler := NewSlideHandler(d.Slides, d.Assets, d.MaxUploadSize)
	articleHandler := NewArticleHandler(d.Articles)

	optional := func(h http.HandlerFunc) http.Handler { return OptionalAuth(d.Auth, h) }
	admin := func(action string, h http.HandlerFunc) http.Handler { return RequireAdmin(d.Auth, action, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /api/auth/me", optional(authHandler.HandleMe))

	mux.Handle("GET /api/content/slides", optional(slideHandler.HandleGet))
	mux.Handle("POST /api/content/slides", admin("create a slide", slideHandler.HandleCreate))
	mux.Handle("PUT /api/content/slides", admin("update a slide", slideHandler.HandleUpdate))
	mux.Handle("DELETE /api/content/slides", admin("delete a slide", slideHandler.HandleDelete))
	mux.HandleFunc("/api/content/slides", methodUnavailable)
	mux.Handle("POST /api/content/slides/images", admin("upload a slide image", slideHandler.HandleUploadImage))
	mux.HandleFunc("GET /api/content/slides/slideshow", slideHandler.HandleSlideshow)
	mux.HandleFunc("GET /img/slides/{name}", slideHandler.HandleImage)

	mux.Handle("GET /api/content/articles", optional(articleHandler.HandleGet))
	mux.Handle("POST /api/content/articles", admin("create an article", articleHandler.HandleCreate))
	mux.Handle("PUT /api/content/articles", admin("update an article", articleHandler.HandleUpdate))
	mux.Handle("DELETE /api/content/articles", admin("delete an article", articleHandler.HandleDelete))
	mux.HandleFunc("/api/content/articles", methodUnavailable)
	mux.HandleFunc("GET /api/content/articles/page/{pageid}", articleHandler.HandlePage)
}

// Wrap applies the middleware shared by every route.
func Wrap(mux http.Handler, logger *slog.Logger) http.Handler {
	return RequestID(logger, AccessLog(SecurityHeaders(mux)))
}
