package check_availability

import (
	"fmt"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ListingID <= 0 {
		return fmt.Errorf("%w: listingID must be positive", ErrInvalidInput)
	}

	hasRange := req.Start != nil || req.End != nil
	if req.Date == nil && !hasRange {
		return fmt.Errorf("%w: date or start/end is required", ErrInvalidInput)
	}
	if req.Date != nil && hasRange {
		return fmt.Errorf("%w: date and start/end are mutually exclusive", ErrInvalidInput)
	}
	if hasRange && (req.Start == nil || req.End == nil) {
		return fmt.Errorf("%w: both start and end are required", ErrInvalidInput)
	}
	if hasRange && !domain.SpanWithinLimit(*req.Start, *req.End) {
		return fmt.Errorf("%w: range longer than %d days", ErrInvalidInput, domain.MaxRentalSpanDays)
	}

	return nil
}
