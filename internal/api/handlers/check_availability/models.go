package check_availability

import (
	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-GearBookingService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ListingID int64 `json:"listingId"`

	Date       *string `json:"date,omitempty"`
	Available  *bool   `json:"available,omitempty"`
	Selectable *bool   `json:"selectable,omitempty"`

	Start           *string  `json:"start,omitempty"`
	End             *string  `json:"end,omitempty"`
	RangeValid      *bool    `json:"rangeValid,omitempty"`
	Days            *int     `json:"days,omitempty"`
	UnavailableDays []string `json:"unavailableDays,omitempty"`
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(listingID int64, date, start, end string) (*checkAvailability.Request, error) {
	d, err := handlers.ParseDateParam(date)
	if err != nil {
		return nil, err
	}
	s, err := handlers.ParseDateParam(start)
	if err != nil {
		return nil, err
	}
	e, err := handlers.ParseDateParam(end)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		ListingID: listingID,
		Date:      d,
		Start:     s,
		End:       e,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{ListingID: resp.ListingID}

	if resp.Date != nil {
		out.Date = handlers.FormatDate(resp.Date)
		out.Available = &resp.Available
		out.Selectable = &resp.Selectable
		return out
	}

	out.Start = handlers.FormatDate(resp.Start)
	out.End = handlers.FormatDate(resp.End)
	out.RangeValid = &resp.RangeValid
	out.Days = &resp.Days
	out.UnavailableDays = resp.UnavailableDays
	return out
}
