package groq

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
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// llmClient talks to Groq through its OpenAI-compatible chat completions endpoint.
type llmClient struct {
	client      openai.Client
	modelName   string
	temperature float64
	logger      *logger_i.Logger
}

func NewGroqClient(opts llm.Options, httpClient *http.Client) llm.Provider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = config.GroqBaseURL
	}
	model := opts.Model
	if model == "" {
		model = config.GroqModelName
	}

	requestOptions := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(1),
	}
	if httpClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(httpClient))
	}

	logger := logger_i.NewLogger("llm_groq")
	logger.Info("Groq client created", "model", model)
	return &llmClient{
		client:      openai.NewClient(requestOptions...),
		modelName:   model,
		temperature: opts.Temperature,
		logger:      logger,
	}
}

func (c *llmClient) Name() string {
	return config.ProviderGroq
}

func (c *llmClient) Generate(ctx context.Context, prompt string) (string, error) {
	log := c.logger.FromContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics(config.ProviderGroq, time.Since(start)) }()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		log.Error("groq completion failed", "error", err)
		return "", fmt.Errorf("groq completion: %w", err)
	}
	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		log.Warn("groq returned an empty completion", "id", completion.ID)
		return "", llm.ErrEmptyCompletion
	}

	log.Debug("groq completion received", "tokens", completion.Usage.TotalTokens)
	return completion.Choices[0].Message.Content, nil
}
