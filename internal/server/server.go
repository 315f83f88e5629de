package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"

	"github.com/akolanti/ResumeAPI/internal/adapter/utils"
	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/handlers"
	"github.com/akolanti/ResumeAPI/internal/middleware"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type RouterOptions struct {
	AllowedOrigins    []string
	TrustProxyHeaders bool
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// NewRouter mounts the API routes behind CORS and, when enabled, RealIP.
func NewRouter(h *handlers.ChatHandler, chain *middleware.Chain, opts RouterOptions) http.Handler {
	var middlewares []func(http.Handler) http.Handler
	if opts.TrustProxyHeaders {
		middlewares = append(middlewares, chimiddleware.RealIP)
	}
	middlewares = append(middlewares, cors.Handler(corsOptions(opts.AllowedOrigins)))

	r := utils.NewRouter(middlewares...)

	r.Get("/", chain.WrapPublic(h.Root))
	r.Post("/chat", chain.Wrap(h.Chat))
	r.Get("/quota", chain.Wrap(h.Quota))
	r.Get("/resume", chain.Wrap(h.Resume))
	return r
}

// corsOptions reflects the request origin when every origin is allowed.
// A literal "*" is not valid next to Access-Control-Allow-Credentials.
func corsOptions(origins []string) cors.Options {
	options := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if slices.Contains(origins, "*") {
		options.AllowedOrigins = nil
		options.AllowOriginFunc = func(_ *http.Request, _ string) bool { return true }
	}
	return options
}

// CreateServer must run before ListenAndServe and ShutDownHandler are started.
func CreateServer(listenAddr string, handler http.Handler) {
	_logger = logger_i.NewLogger("Server")

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      handler,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
}

// ListenAndServe blocks and returns nil once the server is shut down.
func ListenAndServe() error {
	_logger.Info("Server is listening at", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err, "addr", server.Addr)
		return err
	}
	return nil
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		// stops janitors and closes redis
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Shut down gracefully")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
