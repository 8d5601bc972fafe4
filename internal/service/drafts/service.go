package drafts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	draftRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/draft"
)

// Service переносит незавершенную попытку бронирования через редирект на аутентификацию.
// Черновик используется ровно один раз: он удаляется при чтении, даже если оказался испорчен.
type Service struct {
	repo    DraftRepository
	ttl     time.Duration
	metrics Metrics
	logger  Logger
}

// NewService создает новый экземпляр сервиса черновиков
func NewService(repo DraftRepository, ttl time.Duration, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Save сохраняет выбор пользователя перед редиректом на вход
func (s *Service) Save(ctx context.Context, clientSessionID string, session domain.BookingSession) error {
	if clientSessionID == "" {
		return ErrNoClientSession
	}

	draft := domain.Draft{
		ListingID:        session.ListingID,
		ProtectionChoice: session.ProtectionChoice,
	}
	if session.StartDate != nil {
		draft.StartDate = session.StartDate.Format(domain.DateFormat)
	}
	if session.EndDate != nil {
		draft.EndDate = session.EndDate.Format(domain.DateFormat)
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal draft: %v", ErrInternal, err)
	}

	if err := s.repo.Put(ctx, Key(clientSessionID, session.ListingID), data, s.ttl); err != nil {
		s.metrics.ObserveDraftOperation("save", "error")
		s.logger.Error("Save: failed to store draft for listing_id=%d: %v", session.ListingID, err)
		return fmt.Errorf("%w: Save - store draft: %v", ErrInternal, err)
	}

	s.metrics.ObserveDraftOperation("save", "ok")
	s.logger.Info("Save: draft stored for listing_id=%d", session.ListingID)
	return nil
}

// Resume возвращает событие SET_DATES для восстановления дат, если черновик есть и корректен.
// Пока статус аутентификации загружается или пользователь не вошел, ничего не происходит
// и черновик остается на месте. Повторный вызов после успешного восстановления вернет nil.
func (s *Service) Resume(ctx context.Context, clientSessionID string, listingID int64, auth domain.AuthStatus) (*domain.Event, error) {
	if auth.IsLoading || !auth.IsAuthenticated || clientSessionID == "" {
		return nil, nil
	}

	data, err := s.repo.Take(ctx, Key(clientSessionID, listingID))
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			s.metrics.ObserveDraftOperation("resume", "empty")
			return nil, nil
		}
		s.metrics.ObserveDraftOperation("resume", "error")
		s.logger.Error("Resume: failed to read draft for listing_id=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: Resume - take draft: %v", ErrInternal, err)
	}

	event, ok := decode(data, listingID)
	if !ok {
		// черновик уже удален, испорченные данные просто теряются
		s.metrics.ObserveDraftOperation("resume", "corrupted")
		s.logger.Warn("Resume: discarded corrupted draft for listing_id=%d", listingID)
		return nil, nil
	}

	s.metrics.ObserveDraftOperation("resume", "restored")
	s.logger.Info("Resume: draft restored for listing_id=%d", listingID)
	return event, nil
}

// Key ключ черновика: браузерная сессия + объявление
func Key(clientSessionID string, listingID int64) string {
	return fmt.Sprintf("%s:%d", clientSessionID, listingID)
}

func decode(data []byte, listingID int64) (*domain.Event, bool) {
	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, false
	}
	if draft.ListingID != listingID {
		return nil, false
	}

	start, err := domain.ParseDate(draft.StartDate)
	if err != nil {
		return nil, false
	}
	end, err := domain.ParseDate(draft.EndDate)
	if err != nil {
		return nil, false
	}
	if !domain.SpanWithinLimit(start, end) {
		return nil, false
	}

	event := domain.SetDates(&start, &end)
	return &event, true
}
