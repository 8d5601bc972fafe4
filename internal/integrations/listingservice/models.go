package listingservice

import "github.com/m04kA/SMC-GearBookingService/internal/domain"

// Listing модель объявления из ListingService
type Listing struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	PricePerDay      float64          `json:"pricePerDay"`
	ProtectionPolicy ProtectionPolicy `json:"protectionPolicy"`
	PickupNotes      string           `json:"pickupNotes"`
	MinRentalDays    int              `json:"minRentalDays"`
	MaxRentalDays    *int             `json:"maxRentalDays,omitempty"`
}

// ProtectionPolicy политика защиты объявления
type ProtectionPolicy struct {
	RequiresProtection  bool     `json:"requiresProtection"`
	DepositAmount       *float64 `json:"depositAmount,omitempty"`
	InsuranceDailyPrice *float64 `json:"insuranceDailyPrice,omitempty"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (l *Listing) ToDomain() *domain.Listing {
	minDays := l.MinRentalDays
	if minDays < 1 {
		minDays = domain.DefaultMinRentalDays
	}

	return &domain.Listing{
		ID:          l.ID,
		Title:       l.Title,
		PricePerDay: l.PricePerDay,
		Protection: domain.ProtectionPolicy{
			RequiresProtection:  l.ProtectionPolicy.RequiresProtection,
			DepositAmount:       l.ProtectionPolicy.DepositAmount,
			InsuranceDailyPrice: l.ProtectionPolicy.InsuranceDailyPrice,
		},
		PickupNotes:   l.PickupNotes,
		MinRentalDays: minDays,
		MaxRentalDays: l.MaxRentalDays,
	}
}
