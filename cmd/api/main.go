// @title           Resume Chat API
// @version         1.0
// @description     Answers questions about a resume through a hosted LLM, with a per-client question limit.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/ResumeAPI/internal/chat"
	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/customHttpClient"
	"github.com/akolanti/ResumeAPI/internal/data/redisStore"
	"github.com/akolanti/ResumeAPI/internal/data/store"
	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
	"github.com/akolanti/ResumeAPI/internal/domain/resumeModel"
	"github.com/akolanti/ResumeAPI/internal/handlers"
	"github.com/akolanti/ResumeAPI/internal/llm"
	"github.com/akolanti/ResumeAPI/internal/llm/gemini"
	"github.com/akolanti/ResumeAPI/internal/llm/groq"
	"github.com/akolanti/ResumeAPI/internal/middleware"
	"github.com/akolanti/ResumeAPI/internal/server"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

var listenAddr string

func main() {
	settings, err := config.Load()
	if err != nil {
		logger_i.Init(false, "info")
		logger_i.NewLogger("main").Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger_i.Init(settings.IsProd, settings.LogLevel)
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	document, err := resumeModel.Load(settings.ResumePath)
	if err != nil {
		logger.Error("Could not load resume", "path", settings.ResumePath, "error", err)
		os.Exit(1)
	}
	logger.Info("Resume loaded", "name", document.Resume.Name)

	quota := initQuotaStore(serviceContext, settings, logger)

	llmProvider, err := initProvider(serviceContext, settings)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "provider", settings.LLMProvider, "error", err)
		os.Exit(1)
	}

	chatService := chat.NewService(quota, llmProvider, document, settings.LLMTimeout)

	chain := middleware.NewChain(middleware.Options{
		AuthToken:          settings.AuthToken,
		RateLimitPerSecond: settings.RateLimitPerSecond,
		BurstRateLimit:     settings.BurstRateLimit,
		LimiterIdleTTL:     config.RateLimiterIdleTTL,
	})
	chain.Limiter().StartJanitor(serviceContext, config.RateLimiterCleanupEvery)
	if settings.AuthToken == "" {
		logger.Warn("API_TOKEN is not set, the API is public")
	}

	router := server.NewRouter(handlers.NewChatHandler(chatService, document), chain, server.RouterOptions{
		AllowedOrigins:    settings.AllowedOrigins,
		TrustProxyHeaders: settings.TrustProxyHeaders,
	})

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)
	serverFailed := make(chan error, 1)

	server.CreateServer(listenAddr, router)
	go server.ShutDownHandler(server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	})
	go func() {
		if err := server.ListenAndServe(); err != nil {
			serverFailed <- err
		}
	}()

	select {
	case <-stopExecution:
		logger.Info("Server stopped")
	case err := <-serverFailed:
		logger.Error("Server stopped unexpectedly", "error", err)
		closeExternalServices()
		os.Exit(1)
	}
}

// initQuotaStore falls back to memory when redis is requested but unreachable.
func initQuotaStore(ctx context.Context, settings *config.Settings, logger *logger_i.Logger) quotaModel.QuotaStore {
	if settings.QuotaBackend == config.QuotaBackendRedis {
		redisQuota := store.GetRedisQuotaStore(ctx, redisStore.Options{
			Addr:     settings.RedisAddr,
			Password: settings.RedisPassword,
		}, settings.QuestionLimit, settings.QuotaTTL)
		if redisQuota != nil {
			logger.Info("Using redis quota store", "limit", settings.QuestionLimit, "ttl", settings.QuotaTTL)
			return redisQuota
		}
		logger.Error("Redis quota store is offline, counters will live in memory")
	}

	memQuota := store.InitInMemoryQuotaStore(settings.QuestionLimit, settings.QuotaTTL)
	memQuota.StartJanitor(ctx, config.QuotaCleanupEvery)
	logger.Info("Using in-memory quota store", "limit", settings.QuestionLimit, "ttl", settings.QuotaTTL)
	return memQuota
}

func initProvider(ctx context.Context, settings *config.Settings) (llm.Provider, error) {
	opts := llm.Options{
		APIKey:      settings.LLMAPIKey,
		Model:       settings.LLMModel,
		BaseURL:     settings.LLMBaseURL,
		Temperature: settings.ModelTemperature,
	}
	httpClient := customHttpClient.GetHTTPClient()

	if settings.LLMProvider == config.ProviderGemini {
		return gemini.NewGeminiClient(ctx, opts, httpClient)
	}
	return groq.NewGroqClient(opts, httpClient), nil
}
