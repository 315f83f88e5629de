package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

type Options struct {
	// AuthToken enables bearer auth when non-empty.
	AuthToken          string
	RateLimitPerSecond float64
	BurstRateLimit     int
	LimiterIdleTTL     time.Duration
}

// Chain runs every request through trace injection, client identification,
// optional auth and the burst limiter before the handler sees it.
type Chain struct {
	authToken string
	limiter   *IPRateLimiter
}

func NewChain(opts Options) *Chain {
	return &Chain{
		authToken: opts.AuthToken,
		limiter:   NewIPRateLimiter(rate.Limit(opts.RateLimitPerSecond), opts.BurstRateLimit, opts.LimiterIdleTTL),
	}
}

func (c *Chain) Limiter() *IPRateLimiter {
	return c.limiter
}

// Wrap applies the full pipeline.
func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, true)
}

// WrapPublic only traces and counts the request.
func (c *Chain) WrapPublic(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, false)
}

func (c *Chain) wrap(next http.HandlerFunc, guarded bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := metrics.NewHttpStatusRecorder(w)
		defer func() {
			metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
		}()

		re := c.processRequest(requestResponseStruct{req: r, writer: rec}, guarded)
		if !handleBadRequest(re) {
			return
		}
		next(rec, re.req)
	}
}

func (c *Chain) processRequest(re requestResponseStruct, guarded bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	re = identifyClient(re)
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	if !guarded {
		return re
	}

	re = c.authenticate(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return c.rateLimiter(re)
}
