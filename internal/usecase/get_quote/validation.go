package get_quote

import (
	"fmt"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}
	if req.Protection != "" && !req.Protection.IsValid() {
		return fmt.Errorf("%w: unknown protection %q", ErrInvalidInput, req.Protection)
	}
	return nil
}

// validateProtection проверяет, что объявление предлагает выбранную защиту
func validateProtection(choice domain.ProtectionChoice, policy domain.ProtectionPolicy) error {
	switch choice {
	case domain.ProtectionDeposit:
		if policy.DepositAmount == nil {
			return fmt.Errorf("%w: deposit", ErrProtectionNotOffered)
		}
	case domain.ProtectionInsurance:
		if policy.InsuranceDailyPrice == nil {
			return fmt.Errorf("%w: insurance", ErrProtectionNotOffered)
		}
	}
	return nil
}
