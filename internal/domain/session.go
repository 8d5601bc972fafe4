package domain

import (
	"time"

	"github.com/m04kA/SMC-GearBookingService/pkg/types"
)

// Stage этап жизненного цикла аренды
type Stage string

const (
	StageDetails    Stage = "details"
	StagePayment    Stage = "payment"
	StageConfirmed  Stage = "confirmed"
	StagePickup     Stage = "pickup"
	StageDropoff    Stage = "dropoff"
	StageEvidence   Stage = "evidence"
	StageResolution Stage = "resolution"
	StageReview     Stage = "review"
	StageCompleted  Stage = "completed"
	StageCancelled  Stage = "cancelled"
)

// ConfirmedStages этапы после подтверждения бронирования.
// Выбор защиты отличен от none только на них и на cancelled: отмена сохраняет сделанный выбор.
var ConfirmedStages = []Stage{
	StageConfirmed,
	StagePickup,
	StageDropoff,
	StageEvidence,
	StageResolution,
	StageReview,
	StageCompleted,
}

// IsTerminal returns true for stages that only RESET can leave
func (s Stage) IsTerminal() bool {
	return s == StageCompleted || s == StageCancelled
}

// IsConfirmed returns true if the booking has been confirmed at this stage
func (s Stage) IsConfirmed() bool {
	for _, c := range ConfirmedStages {
		if s == c {
			return true
		}
	}
	return false
}

// ClaimStatus статус претензии по повреждению
type ClaimStatus string

const (
	ClaimNone     ClaimStatus = "none"
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// BookingSession состояние машины бронирования, живет только в памяти
type BookingSession struct {
	ListingID    int64
	ListingTitle string

	Stage            Stage
	ProtectionChoice ProtectionChoice
	RefundIssued     bool
	DepositReturned  bool
	ClaimStatus      ClaimStatus
	ReviewSubmitted  bool

	// CancelledFrom этап, с которого была отменена аренда
	CancelledFrom Stage

	History []string

	StartDate *time.Time
	EndDate   *time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Clone глубокая копия сессии: история и даты не разделяются с исходником
func (s BookingSession) Clone() BookingSession {
	out := s
	out.History = append([]string(nil), s.History...)
	if s.StartDate != nil {
		d := *s.StartDate
		out.StartDate = &d
	}
	if s.EndDate != nil {
		d := *s.EndDate
		out.EndDate = &d
	}
	return out
}
