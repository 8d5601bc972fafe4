package get_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	listingClient "github.com/m04kA/SMC-GearBookingService/internal/integrations/listingservice"
	"github.com/m04kA/SMC-GearBookingService/internal/quote"
)

// UseCase расчет стоимости без открытой сессии (предпросмотр цены на странице объявления)
type UseCase struct {
	listings ListingServiceClient
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(listings ListingServiceClient, logger Logger) *UseCase {
	return &UseCase{
		listings: listings,
		logger:   logger,
	}
}

// Execute выполняет use case расчета стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetQuote: validation failed: %v", err)
		return nil, err
	}

	choice := req.Protection
	if choice == "" {
		choice = domain.ProtectionNone
	}

	// 2. Получаем цену и политику защиты
	listing, err := uc.listings.GetListing(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, listingClient.ErrListingNotFound) {
			uc.logger.Warn("GetQuote: listing id=%d not found", req.ListingID)
			return nil, ErrListingNotFound
		}
		uc.logger.Error("GetQuote: failed to get listing id=%d: %v", req.ListingID, err)
		return nil, fmt.Errorf("%w: get listing: %v", ErrInternal, err)
	}

	// 3. Выбранная защита должна предлагаться объявлением
	if err := validateProtection(choice, listing.Protection); err != nil {
		uc.logger.Warn("GetQuote: listing id=%d: %v", req.ListingID, err)
		return nil, err
	}

	// 4. Расчет
	q := quote.Compute(
		req.Start,
		req.End,
		listing.PricePerDay,
		choice,
		listing.Protection.InsuranceDailyPrice,
		listing.Protection.DepositAmount,
	)

	return &Response{
		ListingID:  listing.ID,
		Protection: choice,
		Quote:      q,
	}, nil
}
