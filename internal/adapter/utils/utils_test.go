package utils

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/google/uuid"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:8080", "2001:db8::1"},
		{"203.0.113.9", "203.0.113.9"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = tt.remoteAddr
		if got := ClientKey(r); got != tt.want {
			t.Errorf("ClientKey(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}

func TestClientKeyFromContext(t *testing.T) {
	if _, ok := ClientKeyFromContext(context.Background()); ok {
		t.Error("empty context should not carry a client key")
	}
	ctx := context.WithValue(context.Background(), config.CLIENT_KEY, "10.1.1.1")
	if key, ok := ClientKeyFromContext(ctx); !ok || key != "10.1.1.1" {
		t.Errorf("got %q, %v", key, ok)
	}
}

func TestGetNewUUID(t *testing.T) {
	if _, err := uuid.Parse(GetNewUUID()); err != nil {
		t.Errorf("not a uuid: %v", err)
	}
}
