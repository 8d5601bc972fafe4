package change_listing

import "github.com/m04kA/SMC-GearBookingService/internal/api/handlers"

// ChangeListingRequest HTTP request model
type ChangeListingRequest struct {
	ListingID int64 `json:"listingId" validate:"required,gt=0"`
}

// ChangeListingResponse HTTP response model
type ChangeListingResponse struct {
	Changed bool                          `json:"changed"`
	Session *handlers.SessionViewResponse `json:"session"`
}
