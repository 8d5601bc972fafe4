package journey

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

const displayDateFormat = "Jan 2, 2006"

var steps = []struct {
	id    domain.StepID
	title string
}{
	{domain.StepDates, "Choose dates"},
	{domain.StepProtection, "Protection"},
	{domain.StepConfirmed, "Booking confirmed"},
	{domain.StepPickup, "Pickup"},
	{domain.StepDropoff, "Dropoff"},
	{domain.StepEvidence, "Return evidence"},
	{domain.StepResolution, "Claim resolution"},
	{domain.StepReview, "Review"},
	{domain.StepCompleted, "Completed"},
}

// stageStep индекс текущего шага для каждого незавершенного этапа
var stageStep = map[domain.Stage]int{
	domain.StageDetails:    0,
	domain.StagePayment:    1,
	domain.StageConfirmed:  2,
	domain.StagePickup:     3,
	domain.StageDropoff:    4,
	domain.StageEvidence:   5,
	domain.StageResolution: 6,
	domain.StageReview:     7,
}

// Project builds the ordered display steps for a session. It never mutates the session.
func Project(session domain.BookingSession, listing domain.Listing) []domain.JourneyStep {
	out := make([]domain.JourneyStep, 0, len(steps))
	for i, st := range steps {
		out = append(out, domain.JourneyStep{
			ID:          st.id,
			Title:       st.title,
			Description: describe(st.id, session, listing),
			Status:      status(i, session),
		})
	}
	return out
}

func status(i int, s domain.BookingSession) domain.StepStatus {
	switch s.Stage {
	case domain.StageCompleted:
		return domain.StepComplete
	case domain.StageCancelled:
		from, ok := stageStep[s.CancelledFrom]
		if !ok {
			from = stageStep[domain.StageConfirmed]
		}
		if i < from {
			return domain.StepComplete
		}
		return domain.StepCancelled
	}

	current := stageStep[s.Stage]
	switch {
	case i < current:
		return domain.StepComplete
	case i == current:
		return domain.StepCurrent
	default:
		return domain.StepUpcoming
	}
}

func describe(id domain.StepID, s domain.BookingSession, l domain.Listing) string {
	switch id {
	case domain.StepDates:
		return describeDates(s, l)
	case domain.StepProtection:
		return describeProtection(s, l)
	case domain.StepConfirmed:
		if s.Stage.IsConfirmed() || s.Stage == domain.StageCancelled {
			return fmt.Sprintf("%s is reserved for you.", titleOf(s, l))
		}
		return "Your booking is confirmed once the dates and protection are settled."
	case domain.StepPickup:
		return describePickup(s, l)
	case domain.StepDropoff:
		if s.EndDate != nil {
			return fmt.Sprintf("Return the gear on %s by %s.", s.EndDate.Format(displayDateFormat), s.EndTime)
		}
		return "Return the gear at the end of the rental."
	case domain.StepEvidence:
		return "Upload photos of the gear condition at return."
	case domain.StepResolution:
		return describeClaim(s)
	case domain.StepReview:
		return describeReview(s)
	case domain.StepCompleted:
		return describeOutcome(s)
	}
	return ""
}

func describeDates(s domain.BookingSession, l domain.Listing) string {
	if s.StartDate != nil && s.EndDate != nil {
		days := domain.RentalDays(*s.StartDate, *s.EndDate)
		return fmt.Sprintf("%s to %s, %d %s.",
			s.StartDate.Format(displayDateFormat), s.EndDate.Format(displayDateFormat), days, plural(days, "day", "days"))
	}

	min := l.MinRentalDays
	if min < 1 {
		min = domain.DefaultMinRentalDays
	}
	limits := fmt.Sprintf("minimum %d %s", min, plural(min, "day", "days"))
	if l.MaxRentalDays != nil {
		limits += fmt.Sprintf(", maximum %d %s", *l.MaxRentalDays, plural(*l.MaxRentalDays, "day", "days"))
	}
	return fmt.Sprintf("Pick your rental dates (%s).", limits)
}

func describeProtection(s domain.BookingSession, l domain.Listing) string {
	if !l.Protection.RequiresProtection {
		return "No protection required for this listing."
	}

	switch s.ProtectionChoice {
	case domain.ProtectionDeposit:
		if l.Protection.DepositAmount != nil {
			return fmt.Sprintf("Refundable deposit of %s paid.", money(*l.Protection.DepositAmount))
		}
		return "Refundable deposit paid."
	case domain.ProtectionInsurance:
		if l.Protection.InsuranceDailyPrice != nil {
			return fmt.Sprintf("Insurance purchased at %s per day.", money(*l.Protection.InsuranceDailyPrice))
		}
		return "Insurance purchased."
	}

	var options []string
	if l.Protection.DepositAmount != nil {
		options = append(options, fmt.Sprintf("pay a refundable %s deposit", money(*l.Protection.DepositAmount)))
	}
	if l.Protection.InsuranceDailyPrice != nil {
		options = append(options, fmt.Sprintf("buy insurance at %s per day", money(*l.Protection.InsuranceDailyPrice)))
	}
	if len(options) == 0 {
		return "Protection is required before confirmation."
	}
	return "Protection is required: " + strings.Join(options, " or ") + "."
}

func describePickup(s domain.BookingSession, l domain.Listing) string {
	var b strings.Builder
	if s.StartDate != nil {
		fmt.Fprintf(&b, "Pick up on %s at %s.", s.StartDate.Format(displayDateFormat), s.StartTime)
	} else {
		b.WriteString("Pick up the gear from the owner.")
	}
	if notes := strings.TrimSpace(l.PickupNotes); notes != "" {
		b.WriteString(" ")
		b.WriteString(notes)
	}
	return b.String()
}

func describeClaim(s domain.BookingSession) string {
	switch s.ClaimStatus {
	case domain.ClaimPending:
		return "A damage claim is under review."
	case domain.ClaimApproved:
		return "Claim approved, the deposit was returned."
	case domain.ClaimRejected:
		return "Claim rejected."
	}
	if stageStep[s.Stage] > stageStep[domain.StageResolution] || s.Stage == domain.StageCompleted {
		return "No damage claim was opened."
	}
	return "If something was damaged, the owner can open a claim."
}

func describeReview(s domain.BookingSession) string {
	if s.ReviewSubmitted {
		return "Thanks for your review."
	}
	if s.DepositReturned {
		return "Your deposit was returned. Share how the rental went."
	}
	return "Share how the rental went."
}

func describeOutcome(s domain.BookingSession) string {
	switch s.Stage {
	case domain.StageCancelled:
		if s.RefundIssued {
			return "Booking cancelled, a refund was issued."
		}
		return "Booking cancelled."
	case domain.StageCompleted:
		return "Rental completed."
	}
	return "The rental wraps up after your review."
}

func titleOf(s domain.BookingSession, l domain.Listing) string {
	if l.Title != "" {
		return l.Title
	}
	if s.ListingTitle != "" {
		return s.ListingTitle
	}
	return "The gear"
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
