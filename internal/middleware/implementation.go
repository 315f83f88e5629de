package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/akolanti/ResumeAPI/internal/adapter/utils"
	"github.com/akolanti/ResumeAPI/internal/config"
	"github.com/akolanti/ResumeAPI/internal/handlers"
	"github.com/akolanti/ResumeAPI/internal/metrics"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

const traceHeader = "X-Trace-Id"

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusBadRequest,
			errorMessage: "request is empty",
		}
		return re
	}
	trace := strings.TrimSpace(req.Header.Get(traceHeader))
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(traceHeader, trace)
	re.writer.Header().Set(traceHeader, trace)
	re.req = req.WithContext(ctx)
	return re
}

func identifyClient(re requestResponseStruct) requestResponseStruct {
	key := utils.ClientKey(re.req)
	re.logger = re.logger.With("client", key)
	re.req = re.req.WithContext(context.WithValue(re.req.Context(), config.CLIENT_KEY, key))
	return re
}

func (c *Chain) authenticate(re requestResponseStruct) requestResponseStruct {
	if c.authToken == "" {
		return re
	}
	if !IsValidBearerToken(re.req.Header.Get("Authorization"), c.authToken, re.logger) {
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusUnauthorized,
			errorMessage: "Unauthorized",
		}
		return re
	}
	re.logger.Debug("Authorized")
	return re
}

func IsValidBearerToken(authHeader string, token string, log *logger_i.Logger) bool {
	if authHeader == "" {
		log.Warn("Empty authorization header")
		return false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Warn("No Bearer header")
		return false
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimPrefix(authHeader, "Bearer ")), []byte(token)) != 1 {
		log.Warn("Invalid authorization header")
		return false
	}
	return true
}

func (c *Chain) rateLimiter(re requestResponseStruct) requestResponseStruct {
	key, _ := utils.ClientKeyFromContext(re.req.Context())
	if !c.limiter.Allow(key) {
		metrics.IncrementRateLimited()
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
		return re
	}
	return re
}

func handleBadRequest(re requestResponseStruct) bool {
	if re.badRequest.isBadRequest {
		re.logger.Warn("Rejected request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage)
		if re.badRequest.httpCode == http.StatusTooManyRequests {
			re.writer.Header().Set("Retry-After", "1")
		}
		handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
		return false
	}
	return true
}
