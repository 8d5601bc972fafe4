package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/ptr"
	"github.com/m04kA/SMC-GearBookingService/pkg/types"
)

var allStages = []domain.Stage{
	domain.StageDetails,
	domain.StagePayment,
	domain.StageConfirmed,
	domain.StagePickup,
	domain.StageDropoff,
	domain.StageEvidence,
	domain.StageResolution,
	domain.StageReview,
	domain.StageCompleted,
	domain.StageCancelled,
}

// validFrom этапы, из которых событие должно приниматься
var validFrom = map[domain.EventType][]domain.Stage{
	domain.EventStartBooking:      {domain.StageDetails},
	domain.EventPayDeposit:        {domain.StagePayment},
	domain.EventBuyInsurance:      {domain.StagePayment},
	domain.EventDeclineProtection: {domain.StagePayment},
	domain.EventCancelBooking:     {domain.StageConfirmed, domain.StagePickup},
	domain.EventArrangePickup:     {domain.StageConfirmed},
	domain.EventArrangeDropoff:    {domain.StagePickup},
	domain.EventUploadEvidence:    {domain.StageDropoff},
	domain.EventReturnDeposit:     {domain.StageEvidence, domain.StageResolution},
	domain.EventOpenClaim:         {domain.StageEvidence},
	domain.EventResolveClaim:      {domain.StageResolution},
	domain.EventWriteReview:       {domain.StageReview},
}

func eventOf(t domain.EventType) domain.Event {
	switch t {
	case domain.EventStartBooking:
		return domain.StartBooking(true)
	case domain.EventResolveClaim:
		return domain.ResolveClaim(domain.ClaimApproved)
	}
	return domain.Simple(t)
}

// sessionAt доводит сессию до нужного этапа по реальным переходам
func sessionAt(t *testing.T, stage domain.Stage) domain.BookingSession {
	t.Helper()

	s := New(1, "Trail tent")
	path := map[domain.Stage][]domain.Event{
		domain.StageDetails:    nil,
		domain.StagePayment:    {domain.StartBooking(true)},
		domain.StageConfirmed:  {domain.StartBooking(true), domain.Simple(domain.EventPayDeposit)},
		domain.StagePickup:     {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup)},
		domain.StageDropoff:    {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup), domain.Simple(domain.EventArrangeDropoff)},
		domain.StageEvidence:   {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup), domain.Simple(domain.EventArrangeDropoff), domain.Simple(domain.EventUploadEvidence)},
		domain.StageResolution: {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup), domain.Simple(domain.EventArrangeDropoff), domain.Simple(domain.EventUploadEvidence), domain.Simple(domain.EventOpenClaim)},
		domain.StageReview:     {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup), domain.Simple(domain.EventArrangeDropoff), domain.Simple(domain.EventUploadEvidence), domain.Simple(domain.EventReturnDeposit)},
		domain.StageCompleted:  {domain.StartBooking(false), domain.Simple(domain.EventArrangePickup), domain.Simple(domain.EventArrangeDropoff), domain.Simple(domain.EventUploadEvidence), domain.Simple(domain.EventReturnDeposit), domain.Simple(domain.EventWriteReview)},
		domain.StageCancelled:  {domain.StartBooking(false), domain.Simple(domain.EventCancelBooking)},
	}

	s = Apply(s, path[stage]...)
	require.Equal(t, stage, s.Stage)
	return s
}

func contains(stages []domain.Stage, stage domain.Stage) bool {
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

func TestNew(t *testing.T) {
	s := New(7, "Kayak")

	assert.Equal(t, int64(7), s.ListingID)
	assert.Equal(t, domain.StageDetails, s.Stage)
	assert.Equal(t, domain.ProtectionNone, s.ProtectionChoice)
	assert.Equal(t, domain.ClaimNone, s.ClaimStatus)
	assert.Equal(t, "10:00", s.StartTime.String())
	assert.Equal(t, []string{"Started a new booking for Kayak."}, s.History)
}

func TestReduce_InvalidEventsAreNoOps(t *testing.T) {
	for eventType, stages := range validFrom {
		for _, stage := range allStages {
			if contains(stages, stage) {
				continue
			}
			t.Run(string(eventType)+"_from_"+string(stage), func(t *testing.T) {
				s := sessionAt(t, stage)

				got, accepted := Reduce(s, eventOf(eventType))

				assert.False(t, accepted)
				assert.Equal(t, s.Stage, got.Stage)
				assert.Len(t, got.History, len(s.History))
				assert.Equal(t, s, got)
			})
		}
	}
}

func TestReduce_ValidEventsAppendOneSentence(t *testing.T) {
	for eventType, stages := range validFrom {
		for _, stage := range stages {
			t.Run(string(eventType)+"_from_"+string(stage), func(t *testing.T) {
				s := sessionAt(t, stage)

				got, accepted := Reduce(s, eventOf(eventType))

				assert.True(t, accepted)
				assert.Len(t, got.History, len(s.History)+1)
				assert.Equal(t, s.History, got.History[:len(s.History)])
			})
		}
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := sessionAt(t, domain.StagePayment)
	historyBefore := append([]string(nil), s.History...)

	next, accepted := Reduce(s, domain.Simple(domain.EventPayDeposit))
	require.True(t, accepted)

	assert.Equal(t, domain.StagePayment, s.Stage)
	assert.Equal(t, domain.ProtectionNone, s.ProtectionChoice)
	assert.Equal(t, historyBefore, s.History)
	assert.Equal(t, domain.StageConfirmed, next.Stage)
}

func TestReduce_HappyPathWithDeposit(t *testing.T) {
	s := Apply(New(1, "Camera"),
		domain.StartBooking(true),
		domain.Simple(domain.EventPayDeposit),
		domain.Simple(domain.EventArrangePickup),
		domain.Simple(domain.EventArrangeDropoff),
		domain.Simple(domain.EventUploadEvidence),
		domain.Simple(domain.EventReturnDeposit),
		domain.Simple(domain.EventWriteReview),
	)

	assert.Equal(t, domain.StageCompleted, s.Stage)
	assert.Equal(t, domain.ProtectionDeposit, s.ProtectionChoice)
	assert.True(t, s.DepositReturned)
	assert.True(t, s.ReviewSubmitted)
	assert.False(t, s.RefundIssued)
	assert.Len(t, s.History, 8)
}

func TestReduce_StartWithoutProtection(t *testing.T) {
	s, accepted := Reduce(New(1, "Bike"), domain.StartBooking(false))

	require.True(t, accepted)
	assert.Equal(t, domain.StageConfirmed, s.Stage)
	assert.Equal(t, domain.ProtectionNone, s.ProtectionChoice)
}

func TestReduce_DeclineProtection(t *testing.T) {
	s := Apply(New(1, "Bike"), domain.StartBooking(true), domain.Simple(domain.EventDeclineProtection))

	assert.Equal(t, domain.StageDetails, s.Stage)
	assert.Equal(t, domain.ProtectionNone, s.ProtectionChoice)

	// повторная попытка с другим выбором
	s = Apply(s, domain.StartBooking(true), domain.Simple(domain.EventBuyInsurance))
	assert.Equal(t, domain.StageConfirmed, s.Stage)
	assert.Equal(t, domain.ProtectionInsurance, s.ProtectionChoice)
}

func TestReduce_ClaimPath(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		s := sessionAt(t, domain.StageEvidence)
		s = Apply(s, domain.Simple(domain.EventOpenClaim))
		assert.Equal(t, domain.ClaimPending, s.ClaimStatus)

		s, accepted := Reduce(s, domain.ResolveClaim(domain.ClaimApproved))
		require.True(t, accepted)
		assert.Equal(t, domain.ClaimApproved, s.ClaimStatus)
		assert.True(t, s.DepositReturned)
		assert.Equal(t, domain.StageReview, s.Stage)
	})

	t.Run("rejected", func(t *testing.T) {
		s := sessionAt(t, domain.StageResolution)
		before := s.DepositReturned

		s, accepted := Reduce(s, domain.ResolveClaim(domain.ClaimRejected))
		require.True(t, accepted)
		assert.Equal(t, domain.ClaimRejected, s.ClaimStatus)
		assert.Equal(t, before, s.DepositReturned)
		assert.Equal(t, domain.StageReview, s.Stage)
	})

	t.Run("unknown outcome is ignored", func(t *testing.T) {
		s := sessionAt(t, domain.StageResolution)

		for _, outcome := range []domain.ClaimStatus{domain.ClaimNone, domain.ClaimPending, "maybe"} {
			got, accepted := Reduce(s, domain.ResolveClaim(outcome))
			assert.False(t, accepted)
			assert.Equal(t, s, got)
		}
	})

	t.Run("claim cannot be resolved twice", func(t *testing.T) {
		s := Apply(sessionAt(t, domain.StageResolution), domain.ResolveClaim(domain.ClaimRejected))

		got, accepted := Reduce(s, domain.ResolveClaim(domain.ClaimApproved))
		assert.False(t, accepted)
		assert.Equal(t, domain.ClaimRejected, got.ClaimStatus)
	})
}

func TestReduce_ReturnDeposit(t *testing.T) {
	t.Run("forces pending claim to approved", func(t *testing.T) {
		s := sessionAt(t, domain.StageResolution)

		s, accepted := Reduce(s, domain.Simple(domain.EventReturnDeposit))
		require.True(t, accepted)
		assert.Equal(t, domain.ClaimApproved, s.ClaimStatus)
		assert.Equal(t, domain.StageReview, s.Stage)
		// защита не была депозитом
		assert.False(t, s.DepositReturned)
	})

	t.Run("insurance does not return a deposit", func(t *testing.T) {
		s := Apply(New(1, "Drone"),
			domain.StartBooking(true),
			domain.Simple(domain.EventBuyInsurance),
			domain.Simple(domain.EventArrangePickup),
			domain.Simple(domain.EventArrangeDropoff),
			domain.Simple(domain.EventUploadEvidence),
			domain.Simple(domain.EventReturnDeposit),
		)
		assert.Equal(t, domain.StageReview, s.Stage)
		assert.False(t, s.DepositReturned)
	})
}

func TestReduce_CancelBooking(t *testing.T) {
	for _, stage := range allStages {
		t.Run(string(stage), func(t *testing.T) {
			s := sessionAt(t, stage)
			got, accepted := Reduce(s, domain.Simple(domain.EventCancelBooking))

			if stage == domain.StageConfirmed || stage == domain.StagePickup {
				require.True(t, accepted)
				assert.True(t, got.RefundIssued)
				assert.Equal(t, domain.StageCancelled, got.Stage)
				assert.Equal(t, stage, got.CancelledFrom)
				return
			}

			assert.False(t, accepted)
			assert.Equal(t, s, got)
		})
	}
}

func TestReduce_DoubleSubmitTakesEffectOnce(t *testing.T) {
	s := sessionAt(t, domain.StageDetails)

	s = Apply(s, domain.StartBooking(true), domain.StartBooking(true))
	assert.Equal(t, domain.StagePayment, s.Stage)
	assert.Len(t, s.History, 2)
}

func TestReduce_Reset(t *testing.T) {
	for _, stage := range allStages {
		t.Run(string(stage), func(t *testing.T) {
			s := sessionAt(t, stage)

			got, accepted := Reduce(s, domain.Reset(2, "Snowboard"))

			require.True(t, accepted)
			assert.Equal(t, New(2, "Snowboard"), got)
		})
	}
}

func TestReduce_SetDates(t *testing.T) {
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	for _, stage := range allStages {
		t.Run(string(stage), func(t *testing.T) {
			s := sessionAt(t, stage)

			got, accepted := Reduce(s, domain.SetDates(&start, &end))

			require.True(t, accepted)
			assert.Equal(t, stage, got.Stage)
			require.NotNil(t, got.StartDate)
			assert.True(t, start.Equal(*got.StartDate))
			assert.True(t, end.Equal(*got.EndDate))
			assert.Equal(t, "Rental dates set from Jul 1, 2024 to Jul 4, 2024.", got.History[len(got.History)-1])
		})
	}

	t.Run("caller cannot mutate stored dates", func(t *testing.T) {
		local := start
		got, _ := Reduce(New(1, "x"), domain.SetDates(&local, &end))
		local = local.AddDate(1, 0, 0)
		assert.True(t, start.Equal(*got.StartDate))
	})

	t.Run("span above limit is rejected", func(t *testing.T) {
		s := New(1, "x")
		far := start.AddDate(0, 0, domain.MaxRentalSpanDays+1)

		got, accepted := Reduce(s, domain.SetDates(&start, &far))

		assert.False(t, accepted)
		assert.Equal(t, s, got)
	})

	t.Run("span at limit is accepted", func(t *testing.T) {
		limit := start.AddDate(0, 0, domain.MaxRentalSpanDays)
		_, accepted := Reduce(New(1, "x"), domain.SetDates(&start, &limit))
		assert.True(t, accepted)
	})

	t.Run("clear", func(t *testing.T) {
		s := Apply(New(1, "x"), domain.SetDates(&start, &end), domain.SetDates(nil, nil))
		assert.Nil(t, s.StartDate)
		assert.Nil(t, s.EndDate)
		assert.Equal(t, "Rental dates cleared.", s.History[len(s.History)-1])
	})
}

func TestReduce_SetTimes(t *testing.T) {
	s, accepted := Reduce(New(1, "x"), domain.SetTimes(ptr.Ptr(types.MustTimeString("09:30")), nil))
	require.True(t, accepted)
	assert.Equal(t, "09:30", s.StartTime.String())
	assert.Equal(t, "10:00", s.EndTime.String())

	_, accepted = Reduce(s, domain.SetTimes(nil, nil))
	assert.False(t, accepted)
}

func TestReduce_RequireAuth(t *testing.T) {
	s := sessionAt(t, domain.StageDetails)

	got, accepted := Reduce(s, domain.Simple(domain.EventRequireAuth))

	require.True(t, accepted)
	assert.Equal(t, domain.StageDetails, got.Stage)
	assert.Len(t, got.History, len(s.History)+1)
}

func TestReduce_UnknownEvent(t *testing.T) {
	s := New(1, "x")
	got, accepted := Reduce(s, domain.Simple("TELEPORT"))

	assert.False(t, accepted)
	assert.Equal(t, s, got)
}

func TestInvariants_ProtectionOnlyWhenConfirmed(t *testing.T) {
	for _, stage := range allStages {
		s := sessionAt(t, stage)
		if !stage.IsConfirmed() {
			assert.Equal(t, domain.ProtectionNone, s.ProtectionChoice, "stage %s", stage)
		}
	}
}

func TestReduce_CancelKeepsProtectionChoice(t *testing.T) {
	tests := []struct {
		name       string
		protection domain.EventType
		want       domain.ProtectionChoice
	}{
		{"after deposit", domain.EventPayDeposit, domain.ProtectionDeposit},
		{"after insurance", domain.EventBuyInsurance, domain.ProtectionInsurance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Apply(New(1, "Kayak"), domain.StartBooking(true), domain.Simple(tt.protection))
			require.Equal(t, domain.StageConfirmed, s.Stage)

			got, accepted := Reduce(s, domain.Simple(domain.EventCancelBooking))
			require.True(t, accepted)
			assert.Equal(t, domain.StageCancelled, got.Stage)
			assert.Equal(t, domain.StageConfirmed, got.CancelledFrom)
			assert.True(t, got.RefundIssued)
			assert.Equal(t, tt.want, got.ProtectionChoice)
			assert.False(t, got.Stage.IsConfirmed())

			reset, accepted := Reduce(got, domain.Reset(1, "Kayak"))
			require.True(t, accepted)
			assert.Equal(t, domain.ProtectionNone, reset.ProtectionChoice)
		})
	}
}
