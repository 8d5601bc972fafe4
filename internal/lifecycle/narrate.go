package lifecycle

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

const historyDateFormat = "Jan 2, 2006"

func narrateConst(sentence string) func(domain.BookingSession, domain.Event) string {
	return func(domain.BookingSession, domain.Event) string {
		return sentence
	}
}

func narrateReset(title string) string {
	if title == "" {
		return "Started a new booking."
	}
	return fmt.Sprintf("Started a new booking for %s.", title)
}

func narrateStart(s domain.BookingSession, _ domain.Event) string {
	if s.Stage == domain.StagePayment {
		return "Booking started, protection is required before confirmation."
	}
	return "Booking confirmed, no protection required."
}

func narratePickup(s domain.BookingSession, _ domain.Event) string {
	if s.StartDate != nil {
		return fmt.Sprintf("Pickup arranged for %s at %s.", s.StartDate.Format(historyDateFormat), s.StartTime)
	}
	return "Pickup arranged."
}

func narrateReturnDeposit(s domain.BookingSession, _ domain.Event) string {
	if s.DepositReturned {
		return "Gear return accepted and the deposit was returned."
	}
	return "Gear return accepted."
}

func narrateResolveClaim(s domain.BookingSession, _ domain.Event) string {
	if s.ClaimStatus == domain.ClaimApproved {
		return "Claim approved and the deposit was returned."
	}
	return "Claim rejected."
}

func narrateDates(s domain.BookingSession, _ domain.Event) string {
	switch {
	case s.StartDate == nil && s.EndDate == nil:
		return "Rental dates cleared."
	case s.StartDate != nil && s.EndDate != nil:
		return fmt.Sprintf("Rental dates set from %s to %s.",
			s.StartDate.Format(historyDateFormat), s.EndDate.Format(historyDateFormat))
	case s.StartDate != nil:
		return fmt.Sprintf("Rental start set to %s.", s.StartDate.Format(historyDateFormat))
	default:
		return fmt.Sprintf("Rental end set to %s.", s.EndDate.Format(historyDateFormat))
	}
}

func narrateTimes(s domain.BookingSession, _ domain.Event) string {
	return fmt.Sprintf("Pickup time set to %s, return time set to %s.", s.StartTime, s.EndTime)
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
