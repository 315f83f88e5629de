package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
	"github.com/akolanti/ResumeAPI/internal/domain/resumeModel"
	"github.com/akolanti/ResumeAPI/internal/llm"
	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

var (
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrLLMGeneration = errors.New("llm generation failed")
)

// Answer is what the chat endpoint relays to the client.
type Answer struct {
	Reply        string
	Remaining    int
	Limit        int
	LimitReached bool
}

// Service answers questions about the loaded resume while enforcing the per-client quota.
type Service interface {
	Ask(ctx context.Context, clientKey string, question string) (Answer, error)
	Remaining(ctx context.Context, clientKey string) (int, error)
	Limit() int
}

type service struct {
	quota       quotaModel.QuotaStore
	llmProvider llm.Provider
	document    *resumeModel.Document
	timeout     time.Duration
	logger      *logger_i.Logger
}

func NewService(quota quotaModel.QuotaStore, provider llm.Provider, document *resumeModel.Document, timeout time.Duration) Service {
	return &service{
		quota:       quota,
		llmProvider: provider,
		document:    document,
		timeout:     timeout,
		logger:      logger_i.NewLogger("Chat Service"),
	}
}

func RefusalMessage(limit int) string {
	return fmt.Sprintf("You have reached the limit of %d questions. Thanks for your interest in this resume!", limit)
}

func (s *service) Ask(ctx context.Context, clientKey string, question string) (Answer, error) {
	log := s.logger.FromContext(ctx).With("client", clientKey)

	if strings.TrimSpace(question) == "" {
		metrics.RecordQuestion(metrics.OutcomeRejected)
		return Answer{}, ErrEmptyQuestion
	}

	reservation, err := s.quota.Reserve(ctx, clientKey)
	if err != nil {
		metrics.RecordQuestion(metrics.OutcomeFailed)
		return Answer{}, fmt.Errorf("reserve question: %w", err)
	}
	if !reservation.Allowed {
		log.Info("question limit reached", "used", reservation.Used)
		metrics.RecordQuestion(metrics.OutcomeRefused)
		return Answer{
			Reply:        RefusalMessage(reservation.Limit),
			Remaining:    0,
			Limit:        reservation.Limit,
			LimitReached: true,
		}, nil
	}

	userPrompt, err := BuildPrompt(s.document.Rendered(), question)
	if err != nil {
		metrics.RecordQuestion(metrics.OutcomeFailed)
		return Answer{}, fmt.Errorf("build prompt: %w", err)
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log.Debug("calling llm", "provider", s.llmProvider.Name(), "remaining", reservation.Remaining)
	reply, err := s.llmProvider.Generate(llmCtx, userPrompt)
	if err != nil {
		log.Error("llm call failed", "error", err)
		metrics.RecordQuestion(metrics.OutcomeFailed)
		return Answer{}, fmt.Errorf("%w: %w", ErrLLMGeneration, err)
	}

	metrics.RecordQuestion(metrics.OutcomeAnswered)
	return Answer{
		Reply:     reply,
		Remaining: reservation.Remaining,
		Limit:     reservation.Limit,
	}, nil
}

func (s *service) Remaining(ctx context.Context, clientKey string) (int, error) {
	return s.quota.Remaining(ctx, clientKey)
}

func (s *service) Limit() int {
	return s.quota.Limit()
}
