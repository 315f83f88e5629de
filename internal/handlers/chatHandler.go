package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akolanti/ResumeAPI/internal/adapter"
	"github.com/akolanti/ResumeAPI/internal/adapter/utils"
	"github.com/akolanti/ResumeAPI/internal/api"
	"github.com/akolanti/ResumeAPI/internal/chat"
	"github.com/akolanti/ResumeAPI/internal/domain/resumeModel"
	"github.com/akolanti/ResumeAPI/pkg/logger_i"
)

const maxChatBodySize = 64 << 10

type ChatHandler struct {
	service  chat.Service
	document *resumeModel.Document
	logger   *logger_i.Logger
}

func NewChatHandler(service chat.Service, document *resumeModel.Document) *ChatHandler {
	return &ChatHandler{
		service:  service,
		document: document,
		logger:   logger_i.NewLogger("ChatHandler"),
	}
}

// Root godoc
// @Summary      Liveness check
// @Tags         Status
// @Produce      json
// @Success      200  {object}  api.StatusResponse
// @Router       / [get]
func (h *ChatHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse())
}

// Chat godoc
// @Summary      Ask a question about the resume
// @Description  Each client may ask a limited number of questions. Once the limit is reached the reply is a fixed refusal and the model is not called.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest    true  "The question"
// @Success      200      {object}  api.ChatResponse   "Model reply, or the refusal with limit_reached set"
// @Failure      400      {object}  api.ErrorResponse  "Malformed body or empty question"
// @Failure      429      {object}  api.ErrorResponse  "Too many requests"
// @Failure      500      {object}  api.ErrorResponse  "Model or quota store failure"
// @Router       /chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, request *http.Request) {
	log := h.logger.FromContext(request.Context())
	if !validateContext(request.Context(), log) {
		return
	}

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Error("Couldn't close the chat request body", "error", err)
		}
	}(request.Body)

	decoder := json.NewDecoder(http.MaxBytesReader(w, request.Body, maxChatBodySize))
	if err := decoder.Decode(&requestData); err != nil {
		log.Warn("Bad chat request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}
	// the body must hold exactly one JSON value
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		log.Warn("Bad chat request, trailing data after the body", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	answer, err := h.service.Ask(request.Context(), clientKey(request), requestData.Question)
	switch {
	case errors.Is(err, chat.ErrEmptyQuestion):
		WriteErrorResponse(w, http.StatusBadRequest, "question must not be empty")
		return
	case err != nil:
		log.Error("chat failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(answer))
}

// Quota godoc
// @Summary      Remaining questions for the caller
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  api.QuotaResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /quota [get]
func (h *ChatHandler) Quota(w http.ResponseWriter, r *http.Request) {
	log := h.logger.FromContext(r.Context())
	remaining, err := h.service.Remaining(r.Context(), clientKey(r))
	if err != nil {
		log.Error("could not read quota", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToQuotaResponse(remaining, h.service.Limit()))
}

// Resume godoc
// @Summary      The resume the assistant answers from
// @Tags         Resume
// @Produce      json
// @Success      200  {object}  resumeModel.Resume
// @Router       /resume [get]
func (h *ChatHandler) Resume(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, h.document.Rendered()); err != nil {
		h.logger.FromContext(r.Context()).Error("Error writing resume", "error", err)
	}
}

func clientKey(r *http.Request) string {
	if key, ok := utils.ClientKeyFromContext(r.Context()); ok {
		return key
	}
	return utils.ClientKey(r)
}
