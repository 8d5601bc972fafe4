package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/ptr"
)

func dayPtr(s string) *time.Time {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestCompute_Insurance(t *testing.T) {
	q := Compute(dayPtr("2024-07-01"), dayPtr("2024-07-04"), 40, domain.ProtectionInsurance, ptr.Ptr(10.0), nil)
	require.NotNil(t, q)

	assert.Equal(t, 3, q.Days)
	assert.Equal(t, 120.0, q.Subtotal)
	assert.Equal(t, 12.0, q.ServiceFee)
	assert.Equal(t, 10.0, q.Taxes)
	assert.Equal(t, 30.0, q.Insurance)
	assert.Equal(t, 172.0, q.Total)
	assert.Equal(t, 0.0, q.Deposit)
}

func TestCompute_DepositNotInTotal(t *testing.T) {
	q := Compute(dayPtr("2024-07-01"), dayPtr("2024-07-03"), 25, domain.ProtectionDeposit, ptr.Ptr(10.0), ptr.Ptr(200.0))
	require.NotNil(t, q)

	assert.Equal(t, 50.0, q.Subtotal)
	assert.Equal(t, 5.0, q.ServiceFee)
	assert.Equal(t, 4.0, q.Taxes)
	assert.Equal(t, 0.0, q.Insurance)
	assert.Equal(t, 59.0, q.Total)
	assert.Equal(t, 200.0, q.Deposit)
}

func TestCompute_Rounding(t *testing.T) {
	// 33 * 0.10 = 3.3 -> 3; 33 * 0.08 = 2.64 -> 3
	q := Compute(dayPtr("2024-07-01"), dayPtr("2024-07-02"), 33, domain.ProtectionNone, nil, nil)
	require.NotNil(t, q)

	assert.Equal(t, 3.0, q.ServiceFee)
	assert.Equal(t, 3.0, q.Taxes)
	assert.Equal(t, 39.0, q.Total)
}

func TestCompute_NoQuote(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
	}{
		{"no start", nil, dayPtr("2024-07-02")},
		{"no end", dayPtr("2024-07-02"), nil},
		{"same day", dayPtr("2024-07-02"), dayPtr("2024-07-02")},
		{"reversed", dayPtr("2024-07-05"), dayPtr("2024-07-02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Compute(tt.start, tt.end, 40, domain.ProtectionNone, nil, nil))
		})
	}
}

func TestForSession(t *testing.T) {
	listing := domain.Listing{
		PricePerDay: 40,
		Protection: domain.ProtectionPolicy{
			RequiresProtection:  true,
			InsuranceDailyPrice: ptr.Ptr(10.0),
			DepositAmount:       ptr.Ptr(150.0),
		},
	}
	session := domain.BookingSession{
		StartDate:        dayPtr("2024-07-01"),
		EndDate:          dayPtr("2024-07-04"),
		ProtectionChoice: domain.ProtectionInsurance,
	}

	q := ForSession(session, listing)
	require.NotNil(t, q)
	assert.Equal(t, 172.0, q.Total)
	assert.Equal(t, 150.0, q.Deposit)
}
