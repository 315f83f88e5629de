package chat

import (
	"context"
	"sync"

	"github.com/akolanti/ResumeAPI/internal/domain/quotaModel"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "mock reply", nil
}

func (m *MockLLM) Name() string {
	return "mock"
}

func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// MockQuota implements quotaModel.QuotaStore
type MockQuota struct {
	OnReserve   func(ctx context.Context, clientKey string) (quotaModel.Reservation, error)
	OnRemaining func(ctx context.Context, clientKey string) (int, error)
}

func (m *MockQuota) Reserve(ctx context.Context, clientKey string) (quotaModel.Reservation, error) {
	if m.OnReserve != nil {
		return m.OnReserve(ctx, clientKey)
	}
	return quotaModel.NewReservation(true, 1, 3), nil
}

func (m *MockQuota) Remaining(ctx context.Context, clientKey string) (int, error) {
	if m.OnRemaining != nil {
		return m.OnRemaining(ctx, clientKey)
	}
	return 3, nil
}

func (m *MockQuota) Limit() int {
	return 3
}
