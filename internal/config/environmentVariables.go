package config

import (
	"log/slog"
	"time"
)

type ContextKey string

const (
	LOG_LEVEL_PROD = slog.LevelInfo

	TRACE_ID_KEY ContextKey = "traceId"
	CLIENT_KEY   ContextKey = "clientKey"

	//burst limiter, independent of the question quota
	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5
	RateLimiterIdleTTL          = 15 * time.Minute
	RateLimiterCleanupEvery     = 2 * time.Minute

	//questions each client may ask
	DefaultQuestionLimit = 3
	QuotaCleanupEvery    = 5 * time.Minute
	QuotaKeyPrefix       = "quota:"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 45 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":8000"

	//llm
	ProviderGroq     = "groq"
	ProviderGemini   = "gemini"
	GroqBaseURL      = "https://api.groq.com/openai/v1/"
	GroqModelName    = "meta-llama/llama-4-scout-17b-16e-instruct"
	GeminiModelName  = "gemini-2.5-flash-lite-preview-09-2025"
	LLMTimeout       = 30 * time.Second
	ModelTemperature = 0.7

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//quota backends
	QuotaBackendMemory = "memory"
	QuotaBackendRedis  = "redis"

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisQuotaStore   = 0
	RedisPingTimeout  = 3 * time.Second
	RedisReadTimeout  = 5 * time.Second
	RedisWriteTimeout = 5 * time.Second

	LivenessMessage = "Resume Chatbot API is running!"
)
