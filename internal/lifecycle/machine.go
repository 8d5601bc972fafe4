// Package lifecycle holds the booking state machine. Reduce is the single authority over
// stage changes: a guard failure returns the session unchanged, an accepted event appends
// exactly one history sentence in the same call.
package lifecycle

import (
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/types"
)

type transition struct {
	// from допустимые этапы, nil = любой
	from    []domain.Stage
	guard   func(s domain.BookingSession, e domain.Event) bool
	apply   func(s *domain.BookingSession, e domain.Event)
	narrate func(s domain.BookingSession, e domain.Event) string
}

var table = map[domain.EventType]transition{
	domain.EventStartBooking: {
		from: []domain.Stage{domain.StageDetails},
		apply: func(s *domain.BookingSession, e domain.Event) {
			if e.RequiresProtection {
				s.Stage = domain.StagePayment
				return
			}
			s.Stage = domain.StageConfirmed
		},
		narrate: narrateStart,
	},
	domain.EventPayDeposit: {
		from: []domain.Stage{domain.StagePayment},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.ProtectionChoice = domain.ProtectionDeposit
			s.Stage = domain.StageConfirmed
		},
		narrate: narrateConst("Deposit paid, booking confirmed."),
	},
	domain.EventBuyInsurance: {
		from: []domain.Stage{domain.StagePayment},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.ProtectionChoice = domain.ProtectionInsurance
			s.Stage = domain.StageConfirmed
		},
		narrate: narrateConst("Insurance purchased, booking confirmed."),
	},
	domain.EventDeclineProtection: {
		from: []domain.Stage{domain.StagePayment},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.ProtectionChoice = domain.ProtectionNone
			s.Stage = domain.StageDetails
		},
		narrate: narrateConst("Protection declined, back to trip details."),
	},
	domain.EventCancelBooking: {
		from: []domain.Stage{domain.StageConfirmed, domain.StagePickup},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.RefundIssued = true
			s.CancelledFrom = s.Stage
			s.Stage = domain.StageCancelled
		},
		narrate: narrateConst("Booking cancelled and a refund was issued."),
	},
	domain.EventArrangePickup: {
		from:    []domain.Stage{domain.StageConfirmed},
		apply:   moveTo(domain.StagePickup),
		narrate: narratePickup,
	},
	domain.EventArrangeDropoff: {
		from:    []domain.Stage{domain.StagePickup},
		apply:   moveTo(domain.StageDropoff),
		narrate: narrateConst("Dropoff arranged."),
	},
	domain.EventUploadEvidence: {
		from:    []domain.Stage{domain.StageDropoff},
		apply:   moveTo(domain.StageEvidence),
		narrate: narrateConst("Return photos uploaded as evidence."),
	},
	domain.EventReturnDeposit: {
		from:    []domain.Stage{domain.StageEvidence, domain.StageResolution},
		apply:   applyReturnDeposit,
		narrate: narrateReturnDeposit,
	},
	domain.EventOpenClaim: {
		from: []domain.Stage{domain.StageEvidence},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.ClaimStatus = domain.ClaimPending
			s.Stage = domain.StageResolution
		},
		narrate: narrateConst("Damage claim opened."),
	},
	domain.EventResolveClaim: {
		from: []domain.Stage{domain.StageResolution},
		guard: func(s domain.BookingSession, e domain.Event) bool {
			if s.ClaimStatus != domain.ClaimPending {
				return false
			}
			return e.Outcome == domain.ClaimApproved || e.Outcome == domain.ClaimRejected
		},
		apply: func(s *domain.BookingSession, e domain.Event) {
			s.ClaimStatus = e.Outcome
			if e.Outcome == domain.ClaimApproved {
				s.DepositReturned = true
			}
			s.Stage = domain.StageReview
		},
		narrate: narrateResolveClaim,
	},
	domain.EventWriteReview: {
		from: []domain.Stage{domain.StageReview},
		apply: func(s *domain.BookingSession, _ domain.Event) {
			s.ReviewSubmitted = true
			s.Stage = domain.StageCompleted
		},
		narrate: narrateConst("Review submitted, rental completed."),
	},
	domain.EventSetDates: {
		guard: func(_ domain.BookingSession, e domain.Event) bool {
			if e.StartDate == nil || e.EndDate == nil {
				return true
			}
			return domain.SpanWithinLimit(*e.StartDate, *e.EndDate)
		},
		apply: func(s *domain.BookingSession, e domain.Event) {
			s.StartDate = copyTime(e.StartDate)
			s.EndDate = copyTime(e.EndDate)
		},
		narrate: narrateDates,
	},
	domain.EventSetTimes: {
		guard: func(_ domain.BookingSession, e domain.Event) bool {
			if e.StartTime == nil && e.EndTime == nil {
				return false
			}
			return validTime(e.StartTime) && validTime(e.EndTime)
		},
		apply: func(s *domain.BookingSession, e domain.Event) {
			if e.StartTime != nil {
				s.StartTime = *e.StartTime
			}
			if e.EndTime != nil {
				s.EndTime = *e.EndTime
			}
		},
		narrate: narrateTimes,
	},
	domain.EventRequireAuth: {
		apply:   func(*domain.BookingSession, domain.Event) {},
		narrate: narrateConst("Sign-in required to continue the booking."),
	},
}

// New creates a fresh session for a listing, as RESET does
func New(listingID int64, title string) domain.BookingSession {
	s := domain.BookingSession{
		ListingID:        listingID,
		ListingTitle:     title,
		Stage:            domain.StageDetails,
		ProtectionChoice: domain.ProtectionNone,
		ClaimStatus:      domain.ClaimNone,
		StartTime:        types.MustTimeString(domain.DefaultStartTime),
		EndTime:          types.MustTimeString(domain.DefaultEndTime),
	}
	s.History = []string{narrateReset(title)}
	return s
}

// Reduce applies one event. The returned flag reports whether the event was accepted;
// when it is false the returned session is the input itself.
func Reduce(s domain.BookingSession, e domain.Event) (domain.BookingSession, bool) {
	if e.Type == domain.EventReset {
		return New(e.ListingID, e.Title), true
	}

	t, ok := table[e.Type]
	if !ok {
		return s, false
	}
	if !Accepts(s, e) {
		return s, false
	}

	next := s.Clone()
	t.apply(&next, e)
	next.History = append(next.History, t.narrate(next, e))

	return next, true
}

// Apply reduces a sequence of events in order
func Apply(s domain.BookingSession, events ...domain.Event) domain.BookingSession {
	for _, e := range events {
		s, _ = Reduce(s, e)
	}
	return s
}

// Accepts reports whether the event would pass its guard in the given session
func Accepts(s domain.BookingSession, e domain.Event) bool {
	if e.Type == domain.EventReset {
		return true
	}

	t, ok := table[e.Type]
	if !ok {
		return false
	}
	if t.from != nil && !stageIn(s.Stage, t.from) {
		return false
	}
	if t.guard != nil && !t.guard(s, e) {
		return false
	}
	return true
}

func applyReturnDeposit(s *domain.BookingSession, _ domain.Event) {
	if s.ClaimStatus == domain.ClaimPending {
		s.ClaimStatus = domain.ClaimApproved
	}
	if s.ProtectionChoice == domain.ProtectionDeposit {
		s.DepositReturned = true
	}
	s.Stage = domain.StageReview
}

func moveTo(stage domain.Stage) func(*domain.BookingSession, domain.Event) {
	return func(s *domain.BookingSession, _ domain.Event) {
		s.Stage = stage
	}
}

func stageIn(stage domain.Stage, stages []domain.Stage) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

func validTime(t *types.TimeString) bool {
	return t == nil || t.Validate() == nil
}
