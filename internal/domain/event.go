package domain

import (
	"time"

	"github.com/m04kA/SMC-GearBookingService/pkg/types"
)

// EventType тип события машины бронирования
type EventType string

const (
	EventStartBooking      EventType = "START_BOOKING"
	EventPayDeposit        EventType = "PAY_DEPOSIT"
	EventBuyInsurance      EventType = "BUY_INSURANCE"
	EventDeclineProtection EventType = "DECLINE_PROTECTION"
	EventCancelBooking     EventType = "CANCEL_BOOKING"
	EventArrangePickup     EventType = "ARRANGE_PICKUP"
	EventArrangeDropoff    EventType = "ARRANGE_DROPOFF"
	EventUploadEvidence    EventType = "UPLOAD_EVIDENCE"
	EventReturnDeposit     EventType = "RETURN_DEPOSIT"
	EventOpenClaim         EventType = "OPEN_CLAIM"
	EventResolveClaim      EventType = "RESOLVE_CLAIM"
	EventWriteReview       EventType = "WRITE_REVIEW"
	EventReset             EventType = "RESET"
	EventSetDates          EventType = "SET_DATES"
	EventSetTimes          EventType = "SET_TIMES"
	EventRequireAuth       EventType = "REQUIRE_AUTH"
)

// Event событие, поданное в машину. Заполняются только поля, нужные данному типу.
type Event struct {
	Type EventType

	// START_BOOKING
	RequiresProtection bool

	// RESOLVE_CLAIM
	Outcome ClaimStatus

	// RESET
	ListingID int64
	Title     string

	// SET_DATES
	StartDate *time.Time
	EndDate   *time.Time

	// SET_TIMES
	StartTime *types.TimeString
	EndTime   *types.TimeString
}

func StartBooking(requiresProtection bool) Event {
	return Event{Type: EventStartBooking, RequiresProtection: requiresProtection}
}

func ResolveClaim(outcome ClaimStatus) Event {
	return Event{Type: EventResolveClaim, Outcome: outcome}
}

func Reset(listingID int64, title string) Event {
	return Event{Type: EventReset, ListingID: listingID, Title: title}
}

func SetDates(start, end *time.Time) Event {
	return Event{Type: EventSetDates, StartDate: start, EndDate: end}
}

func SetTimes(start, end *types.TimeString) Event {
	return Event{Type: EventSetTimes, StartTime: start, EndTime: end}
}

// Simple события без параметров
func Simple(t EventType) Event {
	return Event{Type: t}
}
