package resume_draft

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/api/middleware"
	resumeDraft "github.com/m04kA/SMC-GearBookingService/internal/usecase/resume_draft"
)

const (
	msgSessionNotFound  = "сессия не найдена"
	msgInvalidSessionID = "некорректный ID сессии"
)

type Handler struct {
	useCase ResumeDraftUseCase
	logger  Logger
}

func NewHandler(useCase ResumeDraftUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/resume
// Вызывается клиентом после возврата со входа; повторный вызов ничего не восстанавливает
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Execute(r.Context(), &resumeDraft.Request{
		SessionID:       sessionID,
		ClientSessionID: middleware.GetClientSessionID(r.Context()),
		Auth:            middleware.GetAuthStatus(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, resumeDraft.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/resume - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, resumeDraft.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/resume - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSessionID)

		default:
			h.logger.Error("POST /sessions/{id}/resume - Failed to resume draft: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/resume - session_id=%s, restored=%t", sessionID, result.Restored)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
