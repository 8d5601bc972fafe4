package resume_draft

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
)

// UseCase восстанавливает выбранные даты из черновика, когда вход завершен
type UseCase struct {
	sessions SessionsService
	drafts   DraftsService
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionsService, drafts DraftsService, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		drafts:   drafts,
		logger:   logger,
	}
}

// Execute выполняет use case восстановления черновика
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	view, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, uc.mapSessionError(req.SessionID, err)
	}

	event, err := uc.drafts.Resume(ctx, req.ClientSessionID, view.Listing.ID, req.Auth)
	if err != nil {
		uc.logger.Error("ResumeDraft: drafts error for session_id=%s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: resume draft: %v", ErrInternal, err)
	}
	if event == nil {
		return &Response{View: view}, nil
	}

	res, err := uc.sessions.Submit(ctx, req.SessionID, *event, req.Auth)
	if err != nil {
		return nil, uc.mapSessionError(req.SessionID, err)
	}

	uc.logger.Info("ResumeDraft: dates restored for session_id=%s", req.SessionID)
	return &Response{View: res.View, Restored: res.Accepted}, nil
}

func (uc *UseCase) mapSessionError(sessionID string, err error) error {
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	uc.logger.Error("ResumeDraft: sessions error for session_id=%s: %v", sessionID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
