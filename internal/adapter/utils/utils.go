package utils

import (
	"context"
	"net"
	"net/http"

	_ "github.com/akolanti/ResumeAPI/cmd/api/docs"
	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/http-swagger"
)

func GetNewUUID() string {
	return uuid.New().String()
}

// NewRouter returns a chi router with the swagger UI and /metrics already mounted.
// chi requires middlewares before any route, so they are passed in here.
func NewRouter(middlewares ...func(http.Handler) http.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middlewares...)
	InitSwagger(router)
	router.Handle("/metrics", promhttp.Handler())
	return router
}

func InitSwagger(r *chi.Mux) {
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)
}

// ClientKey is the host part of RemoteAddr. RealIP has already rewritten it when proxy headers are trusted.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return r.RemoteAddr
	}
	return host
}

func ClientKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(config.CLIENT_KEY).(string)
	return key, ok && key != ""
}
