package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/llm"
	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client      *genai.Client
	modelName   string
	temperature float32
	logger      *logger_i.Logger
}

func NewGeminiClient(ctx context.Context, opts llm.Options, httpClient *http.Client) (llm.Provider, error) {
	model := opts.Model
	if model == "" {
		model = config.GeminiModelName
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	c, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", model)
	return &llmClient{
		client:      c,
		modelName:   model,
		temperature: float32(opts.Temperature),
		logger:      logger,
	}, nil
}

func (c *llmClient) Name() string {
	return config.ProviderGemini
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.FromContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics(config.ProviderGemini, time.Since(start)) }()

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(prompt),
		&genai.GenerateContentConfig{Temperature: genai.Ptr(c.temperature)},
	)
	if err != nil {
		log.Error("gemini generation failed", "error", err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		log.Warn("gemini returned an empty completion")
		return "", llm.ErrEmptyCompletion
	}
	return text, nil
}
