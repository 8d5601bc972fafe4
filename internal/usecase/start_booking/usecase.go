package start_booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/drafts"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
)

// UseCase начало бронирования: проверка дат, проверка входа и перехват для черновика
type UseCase struct {
	sessions SessionsService
	drafts   DraftsService
	loginURL string
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionsService, drafts DraftsService, loginURL string, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		drafts:   drafts,
		loginURL: loginURL,
		logger:   logger,
	}
}

// Execute выполняет use case начала бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("StartBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее состояние сессии
	view, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, uc.mapSessionError(req.SessionID, err)
	}

	// 3. Повторный жест из другого этапа ничего не меняет
	if view.Session.Stage != domain.StageDetails {
		uc.logger.Info("StartBooking: session_id=%s already in stage %s", req.SessionID, view.Session.Stage)
		return &Response{View: view, Accepted: false}, nil
	}

	// 4. Даты должны пройти проверку доступности
	if !view.RangeValid {
		uc.logger.Warn("StartBooking: invalid range for session_id=%s", req.SessionID)
		return nil, ErrInvalidRange
	}

	// 5. Статус входа еще не известен
	if req.Auth.IsLoading {
		return nil, ErrAuthPending
	}

	// 6. Не вошел: сохраняем черновик, отмечаем в истории и отправляем на вход
	if !req.Auth.IsAuthenticated {
		if err := uc.drafts.Save(ctx, req.ClientSessionID, view.Session); err != nil {
			if errors.Is(err, drafts.ErrNoClientSession) {
				return nil, ErrNoClientSession
			}
			uc.logger.Error("StartBooking: failed to save draft for session_id=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: save draft: %v", ErrInternal, err)
		}

		res, err := uc.sessions.Submit(ctx, req.SessionID, domain.Simple(domain.EventRequireAuth), req.Auth)
		if err != nil {
			return nil, uc.mapSessionError(req.SessionID, err)
		}

		uc.logger.Info("StartBooking: authentication required, draft saved for session_id=%s", req.SessionID)
		return &Response{
			View:        res.View,
			Accepted:    false,
			RequireAuth: true,
			RedirectURL: uc.redirectURL(view.Listing.ID),
		}, nil
	}

	// 7. Вошел: запускаем переход, даты перепроверяются вместе с ним
	res, err := uc.sessions.StartBooking(ctx, req.SessionID, req.Auth)
	if err != nil {
		return nil, uc.mapSessionError(req.SessionID, err)
	}

	return &Response{View: res.View, Accepted: res.Accepted}, nil
}

func (uc *UseCase) redirectURL(listingID int64) string {
	q := url.Values{}
	q.Set("returnTo", fmt.Sprintf("/listings/%d", listingID))
	return uc.loginURL + "?" + q.Encode()
}

func (uc *UseCase) mapSessionError(sessionID string, err error) error {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, sessions.ErrInvalidRange):
		uc.logger.Warn("StartBooking: dates changed before the transition for session_id=%s", sessionID)
		return ErrInvalidRange
	}
	uc.logger.Error("StartBooking: sessions error for session_id=%s: %v", sessionID, err)
	return fmt.Errorf("%w: %v", ErrInternal, err)
}
