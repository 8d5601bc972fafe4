package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GearBookingService/internal/availability"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	listingClient "github.com/m04kA/SMC-GearBookingService/internal/integrations/listingservice"
)

// UseCase проверка доступности даты или диапазона для календаря
type UseCase struct {
	listings     ListingServiceClient
	availability AvailabilityRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listings ListingServiceClient, availability AvailabilityRepository, logger Logger) *UseCase {
	return &UseCase{
		listings:     listings,
		availability: availability,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Объявление задает ограничения по длительности
	listing, err := uc.listings.GetListing(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingClient.ErrListingNotFound) {
			uc.logger.Warn("CheckAvailability: listing id=%d not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: get listing: %v", ErrInternal, err)
	}

	// 3. Снимок доступности
	window, err := uc.availability.GetWindow(ctx, req.ListingID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to load availability for listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: get availability: %v", ErrInternal, err)
	}
	window.MinRentalDays = listing.MinRentalDays
	window.MaxRentalDays = listing.MaxRentalDays

	resp := &Response{ListingID: req.ListingID}

	// 4. Одна дата
	if req.Date != nil {
		resp.Date = req.Date
		resp.Available = availability.IsDateAvailable(*req.Date, *window)
		resp.Selectable = availability.IsDateSelectable(*req.Date, uc.timeProvider.Now(), *window)
		return resp, nil
	}

	// 5. Диапазон
	resp.Start = req.Start
	resp.End = req.End
	resp.RangeValid = availability.IsRangeValid(req.Start, req.End, *window)
	resp.Days = domain.RentalDays(*req.Start, *req.End)
	if !req.End.Before(*req.Start) {
		resp.UnavailableDays = availability.UnavailableDays(*req.Start, *req.End, *window)
	}

	return resp, nil
}
