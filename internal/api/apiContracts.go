package api

type ChatResponse struct {
	Response           string `json:"response" example:"He has worked with Docker, Kubernetes and AWS."`
	RemainingQuestions int    `json:"remaining_questions" example:"2"`
	LimitReached       bool   `json:"limit_reached,omitempty" example:"false"`
}

type QuotaResponse struct {
	RemainingQuestions int `json:"remaining_questions" example:"3"`
	Limit              int `json:"limit" example:"3"`
}

type StatusResponse struct {
	Message string `json:"message" example:"Resume Chatbot API is running!"`
}

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
}

// requests---------------------

type ChatRequest struct {
	Question string `json:"question" validate:"required" example:"What cloud platforms has he used?"`
}
