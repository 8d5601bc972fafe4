package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-GearBookingService/internal/availability"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-GearBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-GearBookingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-GearBookingService/internal/lifecycle"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

// Service держит сессии бронирования открытых карточек объявлений.
// Все изменения сессии идут через lifecycle.Reduce в порядке подачи.
type Service struct {
	repo         SessionRepository
	listings     ListingServiceClient
	availability AvailabilityRepository
	publisher    IntentPublisher
	metrics      Metrics
	logger       Logger

	loadTimeout time.Duration
	newID       func() string
	now         func() time.Time

	loads sync.WaitGroup
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	repo SessionRepository,
	listings ListingServiceClient,
	availability AvailabilityRepository,
	publisher IntentPublisher,
	metrics Metrics,
	logger Logger,
	loadTimeout time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		listings:     listings,
		availability: availability,
		publisher:    publisher,
		metrics:      metrics,
		logger:       logger,
		loadTimeout:  loadTimeout,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Open создает сессию для карточки объявления и запускает фоновую загрузку доступности.
// До прихода снимка все даты считаются условно доступными.
func (s *Service) Open(ctx context.Context, req models.OpenRequest) (*models.SessionView, error) {
	s.logger.Info("Open: opening session for listing_id=%d", req.ListingID)

	listing, err := s.getListing(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	entry := sessionRepo.Entry{
		ID:              s.newID(),
		ClientSessionID: req.ClientSessionID,
		Session:         lifecycle.New(listing.ID, listing.Title),
		Listing:         *listing,
		Window:          pendingWindow(*listing),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("Open: failed to store session for listing_id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: Open - create session: %v", ErrInternal, err)
	}
	s.metrics.SetActiveSessions(s.repo.Count())

	s.loadAvailabilityAsync(entry.ID, listing.ID)

	s.logger.Info("Open: session_id=%s opened for listing_id=%d", entry.ID, listing.ID)
	return toView(entry), nil
}

// Get возвращает текущее представление сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.SessionView, error) {
	entry, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, s.mapRepoError("Get", sessionID, err)
	}
	return toView(entry), nil
}

// Submit применяет событие к сессии. Недопустимое событие не ошибка: Accepted=false.
// Для принятых событий с внешними последствиями публикуются намерения.
func (s *Service) Submit(ctx context.Context, sessionID string, event domain.Event, auth domain.AuthStatus) (*models.SubmitResult, error) {
	return s.submit(ctx, "Submit", sessionID, event, auth, nil)
}

// StartBooking подает START_BOOKING. Даты проверяются под той же блокировкой, что и переход:
// если они не проходят проверку доступности, сессия не меняется и возвращается ErrInvalidRange.
func (s *Service) StartBooking(ctx context.Context, sessionID string, auth domain.AuthStatus) (*models.SubmitResult, error) {
	return s.submit(ctx, "StartBooking", sessionID, domain.StartBooking(false), auth, func(e *sessionRepo.Entry) error {
		if e.Session.Stage == domain.StageDetails &&
			!availability.IsRangeValid(e.Session.StartDate, e.Session.EndDate, e.Window) {
			return ErrInvalidRange
		}
		return nil
	})
}

// submit guard выполняется под блокировкой сессии до перехода; ошибка guard отменяет изменение
func (s *Service) submit(
	ctx context.Context,
	op, sessionID string,
	event domain.Event,
	auth domain.AuthStatus,
	guard func(e *sessionRepo.Entry) error,
) (*models.SubmitResult, error) {
	var (
		prev     domain.BookingSession
		accepted bool
	)

	entry, err := s.repo.Update(ctx, sessionID, func(e *sessionRepo.Entry) error {
		if guard != nil {
			if err := guard(e); err != nil {
				return err
			}
		}

		// параметры, которые определяет объявление, а не клиент
		switch event.Type {
		case domain.EventStartBooking:
			event.RequiresProtection = e.Listing.Protection.RequiresProtection
		case domain.EventReset:
			event.ListingID = e.Listing.ID
			event.Title = e.Listing.Title
		}

		prev = e.Session
		e.Session, accepted = lifecycle.Reduce(e.Session, event)
		return nil
	})
	if errors.Is(err, ErrInvalidRange) {
		s.metrics.ObserveLifecycleEvent(string(event.Type), false)
		s.logger.Warn("%s: invalid range for session_id=%s", op, sessionID)
		return nil, err
	}
	if err != nil {
		return nil, s.mapRepoError(op, sessionID, err)
	}

	s.metrics.ObserveLifecycleEvent(string(event.Type), accepted)

	if !accepted {
		s.logger.Info("%s: event %s ignored in stage %s, session_id=%s", op, event.Type, entry.Session.Stage, sessionID)
		return &models.SubmitResult{View: toView(entry), Accepted: false}, nil
	}

	s.logger.Info("%s: event %s accepted, session_id=%s, stage %s -> %s",
		op, event.Type, sessionID, prev.Stage, entry.Session.Stage)

	s.publishIntents(ctx, entry, prev, event, auth)

	return &models.SubmitResult{View: toView(entry), Accepted: true}, nil
}

// ResetIfListingChanged сбрасывает сессию, если карточка теперь показывает другое объявление.
// Возвращает changed=false, если объявление то же самое.
func (s *Service) ResetIfListingChanged(ctx context.Context, sessionID string, listingID int64) (*models.SessionView, bool, error) {
	current, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, false, s.mapRepoError("ResetIfListingChanged", sessionID, err)
	}
	if current.Listing.ID == listingID {
		return toView(current), false, nil
	}

	listing, err := s.getListing(ctx, listingID)
	if err != nil {
		return nil, false, err
	}

	// объявление могли сменить параллельным запросом, пока шла загрузка: сравниваем еще раз под блокировкой
	var (
		changed    bool
		previousID int64
	)
	entry, err := s.repo.Update(ctx, sessionID, func(e *sessionRepo.Entry) error {
		if e.Listing.ID == listingID {
			return nil
		}
		changed = true
		previousID = e.Listing.ID
		e.Listing = *listing
		e.Session, _ = lifecycle.Reduce(e.Session, domain.Reset(listing.ID, listing.Title))
		e.Window = pendingWindow(*listing)
		return nil
	})
	if err != nil {
		return nil, false, s.mapRepoError("ResetIfListingChanged", sessionID, err)
	}
	if !changed {
		return toView(entry), false, nil
	}

	s.logger.Info("ResetIfListingChanged: session_id=%s switched listing %d -> %d", sessionID, previousID, listingID)
	s.loadAvailabilityAsync(sessionID, listing.ID)

	return toView(entry), true, nil
}

// Close закрывает сессию. Незавершенная загрузка доступности будет проигнорирована.
func (s *Service) Close(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return s.mapRepoError("Close", sessionID, err)
	}
	s.metrics.SetActiveSessions(s.repo.Count())
	s.logger.Info("Close: session_id=%s closed", sessionID)
	return nil
}

// SweepIdle удаляет сессии без активности дольше idleTTL
func (s *Service) SweepIdle(ctx context.Context, idleTTL time.Duration) int {
	removed := s.repo.DeleteIdle(ctx, s.now().Add(-idleTTL))
	s.metrics.SetActiveSessions(s.repo.Count())
	if len(removed) > 0 {
		s.logger.Info("SweepIdle: removed %d idle sessions", len(removed))
	}
	return len(removed)
}

// Wait ждет завершения фоновых загрузок доступности
func (s *Service) Wait() {
	s.loads.Wait()
}

func (s *Service) getListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingservice.ErrListingNotFound) {
			s.logger.Warn("listing_id=%d not found", listingID)
			return nil, ErrListingNotFound
		}
		s.logger.Error("ListingService error for listing_id=%d: %v", listingID, err)
		return nil, fmt.Errorf("%w: listing_id=%d: %v", ErrListingUnavailable, listingID, err)
	}
	return listing, nil
}

// loadAvailabilityAsync результат загрузки приходит отдельным обновлением и применяется,
// только если сессия еще жива и показывает то же объявление
func (s *Service) loadAvailabilityAsync(sessionID string, listingID int64) {
	s.loads.Add(1)
	go func() {
		defer s.loads.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
		defer cancel()

		window, err := s.availability.GetWindow(ctx, listingID)
		if err != nil {
			s.metrics.ObserveAvailabilityLoad("error")
			s.logger.Error("Availability load failed for listing_id=%d, session_id=%s: %v", listingID, sessionID, err)
			return
		}

		_, err = s.repo.Update(ctx, sessionID, func(e *sessionRepo.Entry) error {
			if e.Listing.ID != listingID {
				return errStaleLoad
			}
			e.Window = loadedWindow(e.Listing, *window)
			return nil
		})

		switch {
		case err == nil:
			s.metrics.ObserveAvailabilityLoad("applied")
			s.logger.Debug("Availability applied: session_id=%s, listing_id=%d", sessionID, listingID)
		case errors.Is(err, sessionRepo.ErrSessionNotFound), errors.Is(err, errStaleLoad):
			s.metrics.ObserveAvailabilityLoad("discarded")
			s.logger.Debug("Availability discarded: session_id=%s, listing_id=%d: %v", sessionID, listingID, err)
		default:
			s.metrics.ObserveAvailabilityLoad("error")
			s.logger.Error("Availability apply failed: session_id=%s: %v", sessionID, err)
		}
	}()
}

func (s *Service) publishIntents(ctx context.Context, entry sessionRepo.Entry, prev domain.BookingSession, event domain.Event, auth domain.AuthStatus) {
	kinds := intentKinds(prev, entry.Session, event)
	if len(kinds) == 0 {
		return
	}

	view := toView(entry)
	for _, kind := range kinds {
		intent := domain.Intent{
			ID:               s.newID(),
			Kind:             kind,
			SessionID:        entry.ID,
			ListingID:        entry.Listing.ID,
			UserID:           auth.UserID,
			ProtectionChoice: entry.Session.ProtectionChoice,
			ClaimStatus:      entry.Session.ClaimStatus,
			Quote:            view.Quote,
			OccurredAt:       s.now().UTC(),
		}
		if entry.Session.StartDate != nil {
			intent.StartDate = entry.Session.StartDate.Format(domain.DateFormat)
		}
		if entry.Session.EndDate != nil {
			intent.EndDate = entry.Session.EndDate.Format(domain.DateFormat)
		}

		err := s.publisher.Publish(ctx, intent)
		s.metrics.ObserveIntent(string(kind), err)
		if err != nil {
			// переход уже принят, намерение потеряно только для внешнего получателя
			s.logger.Error("Failed to publish intent %s for session_id=%s: %v", kind, entry.ID, err)
		}
	}
}

func (s *Service) mapRepoError(op, sessionID string, err error) error {
	if errors.Is(err, sessionRepo.ErrSessionNotFound) {
		s.logger.Warn("%s: session_id=%s not found", op, sessionID)
		return ErrSessionNotFound
	}
	s.logger.Error("%s: repository error for session_id=%s: %v", op, sessionID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func pendingWindow(listing domain.Listing) domain.AvailabilityWindow {
	w := domain.PendingWindow(listing.ID)
	w.MinRentalDays = listing.MinRentalDays
	w.MaxRentalDays = listing.MaxRentalDays
	return w
}

func loadedWindow(listing domain.Listing, w domain.AvailabilityWindow) domain.AvailabilityWindow {
	w.ListingID = listing.ID
	w.MinRentalDays = listing.MinRentalDays
	w.MaxRentalDays = listing.MaxRentalDays
	w.Pending = false
	return w
}

func toView(e sessionRepo.Entry) *models.SessionView {
	return models.BuildView(e.ID, e.ClientSessionID, e.Session, e.Listing, e.Window)
}
