package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/akolanti/ResumeAPI/internal/config"
)

var (
	client *http.Client
	once   sync.Once
)

// GetHTTPClient returns the pooled client shared by every outbound LLM call.
// Per-request deadlines come from the caller's context.
func GetHTTPClient() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return client
}
