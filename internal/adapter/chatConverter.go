package adapter

import (
	"github.com/akolanti/ResumeAPI/internal/api"
	"github.com/akolanti/ResumeAPI/internal/chat"
	"github.com/akolanti/ResumeAPI/internal/config"
)

func ToChatResponse(answer chat.Answer) api.ChatResponse {
	return api.ChatResponse{
		Response:           answer.Reply,
		RemainingQuestions: answer.Remaining,
		LimitReached:       answer.LimitReached,
	}
}

func ToQuotaResponse(remaining int, limit int) api.QuotaResponse {
	return api.QuotaResponse{
		RemainingQuestions: remaining,
		Limit:              limit,
	}
}

func ToStatusResponse() api.StatusResponse {
	return api.StatusResponse{Message: config.LivenessMessage}
}

func BadRequest(message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Message: message,
		},
	}
}
