package quote

import (
	"math"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// Compute prices a rental. Returns nil when either date is absent or the span is empty.
// The deposit is disclosed separately and never added to Total.
func Compute(
	start, end *time.Time,
	dailyPrice float64,
	choice domain.ProtectionChoice,
	insuranceDailyPrice *float64,
	depositAmount *float64,
) *domain.Quote {
	if start == nil || end == nil {
		return nil
	}

	days := domain.RentalDays(*start, *end)
	if days <= 0 {
		return nil
	}

	subtotal := float64(days) * dailyPrice
	serviceFee := math.Round(subtotal * domain.ServiceFeeRate)
	taxes := math.Round(subtotal * domain.TaxRate)

	var insurance float64
	if choice == domain.ProtectionInsurance && insuranceDailyPrice != nil {
		insurance = float64(days) * *insuranceDailyPrice
	}

	var deposit float64
	if depositAmount != nil {
		deposit = *depositAmount
	}

	return &domain.Quote{
		Days:       days,
		Subtotal:   subtotal,
		ServiceFee: serviceFee,
		Taxes:      taxes,
		Insurance:  insurance,
		Total:      subtotal + serviceFee + taxes + insurance,
		Deposit:    deposit,
	}
}

// ForSession prices the session's current selection against a listing
func ForSession(session domain.BookingSession, listing domain.Listing) *domain.Quote {
	return Compute(
		session.StartDate,
		session.EndDate,
		listing.PricePerDay,
		session.ProtectionChoice,
		listing.Protection.InsuranceDailyPrice,
		listing.Protection.DepositAmount,
	)
}
