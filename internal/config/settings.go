package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingAPIKey   = errors.New("missing LLM api key")
	ErrInvalidSettings = errors.New("invalid settings")
)

// Settings is the runtime configuration read from the environment (and .env) at startup.
type Settings struct {
	ListenAddr string
	IsProd     bool
	LogLevel   string

	LLMProvider      string
	LLMAPIKey        string
	LLMModel         string
	LLMBaseURL       string
	LLMTimeout       time.Duration
	ModelTemperature float64

	AllowedOrigins    []string
	TrustProxyHeaders bool
	AuthToken         string

	QuestionLimit int
	QuotaBackend  string
	QuotaTTL      time.Duration
	RedisAddr     string
	RedisPassword string

	ResumePath string

	RateLimitPerSecond float64
	BurstRateLimit     int
}

func Load() (*Settings, error) {
	_ = godotenv.Load() // a missing .env is fine, the process env still applies

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ServerListenAddr)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LLM_PROVIDER", ProviderGroq)
	v.SetDefault("LLM_TIMEOUT", LLMTimeout.String())
	v.SetDefault("MODEL_TEMPERATURE", ModelTemperature)
	v.SetDefault("ALLOWED_ORIGINS", "*")
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("QUESTION_LIMIT", DefaultQuestionLimit)
	v.SetDefault("QUOTA_BACKEND", QuotaBackendMemory)
	v.SetDefault("QUOTA_TTL", "0")
	v.SetDefault("REDIS_ADDR", RedisAddr)
	v.SetDefault("RATE_LIMIT_PER_SECOND", RATE_LIMIT_PER_SECOND)
	v.SetDefault("BURST_RATE_LIMIT", BURST_RATE_LIMIT_PER_SECOND)

	s := &Settings{
		ListenAddr:         v.GetString("LISTEN_ADDR"),
		IsProd:             strings.EqualFold(v.GetString("APP_ENV"), "production"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		LLMProvider:        strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		LLMModel:           v.GetString("LLM_MODEL"),
		LLMBaseURL:         v.GetString("LLM_BASE_URL"),
		LLMTimeout:         durationSetting(v, "LLM_TIMEOUT"),
		ModelTemperature:   v.GetFloat64("MODEL_TEMPERATURE"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		TrustProxyHeaders:  v.GetBool("TRUST_PROXY_HEADERS"),
		AuthToken:          v.GetString("API_TOKEN"),
		QuestionLimit:      v.GetInt("QUESTION_LIMIT"),
		QuotaBackend:       strings.ToLower(strings.TrimSpace(v.GetString("QUOTA_BACKEND"))),
		QuotaTTL:           durationSetting(v, "QUOTA_TTL"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		ResumePath:         v.GetString("RESUME_PATH"),
		RateLimitPerSecond: v.GetFloat64("RATE_LIMIT_PER_SECOND"),
		BurstRateLimit:     v.GetInt("BURST_RATE_LIMIT"),
	}
	s.LLMAPIKey = firstNonEmpty(v.GetString("LLM_API_KEY"), v.GetString("GROQ_API_KEY"), v.GetString("GROQ_API_KE"))
	if s.LLMProvider == ProviderGemini {
		s.LLMAPIKey = firstNonEmpty(v.GetString("LLM_API_KEY"), v.GetString("GEMINI_API_KEY"))
	}

	applyProviderDefaults(s)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	switch s.LLMProvider {
	case ProviderGroq, ProviderGemini:
	default:
		return fmt.Errorf("%w: unknown LLM_PROVIDER %q", ErrInvalidSettings, s.LLMProvider)
	}
	if s.LLMAPIKey == "" {
		return fmt.Errorf("%w for provider %s", ErrMissingAPIKey, s.LLMProvider)
	}
	if s.QuestionLimit < 1 {
		return fmt.Errorf("%w: QUESTION_LIMIT must be > 0", ErrInvalidSettings)
	}
	switch s.QuotaBackend {
	case QuotaBackendMemory, QuotaBackendRedis:
	default:
		return fmt.Errorf("%w: unknown QUOTA_BACKEND %q", ErrInvalidSettings, s.QuotaBackend)
	}
	if s.QuotaTTL < 0 || (s.QuotaTTL > 0 && s.QuotaTTL < time.Second) {
		return fmt.Errorf("%w: QUOTA_TTL must be 0 or at least 1s, got %s", ErrInvalidSettings, s.QuotaTTL)
	}
	if s.LLMTimeout < time.Second {
		return fmt.Errorf("%w: LLM_TIMEOUT must be at least 1s, got %s", ErrInvalidSettings, s.LLMTimeout)
	}
	if s.RateLimitPerSecond <= 0 || s.BurstRateLimit <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_PER_SECOND and BURST_RATE_LIMIT must be > 0", ErrInvalidSettings)
	}
	return nil
}

func applyProviderDefaults(s *Settings) {
	if s.LLMTimeout == 0 {
		s.LLMTimeout = LLMTimeout
	}
	switch s.LLMProvider {
	case ProviderGemini:
		if s.LLMModel == "" {
			s.LLMModel = GeminiModelName
		}
	default:
		if s.LLMModel == "" {
			s.LLMModel = GroqModelName
		}
		if s.LLMBaseURL == "" {
			s.LLMBaseURL = GroqBaseURL
		}
	}
}

// durationSetting reads a bare integer as seconds, anything else as a Go duration string.
func durationSetting(v *viper.Viper, key string) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if seconds, err := strconv.Atoi(raw); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return v.GetDuration(key)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
