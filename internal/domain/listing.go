package domain

// ProtectionChoice выбранный способ защиты аренды
type ProtectionChoice string

const (
	ProtectionNone      ProtectionChoice = "none"
	ProtectionDeposit   ProtectionChoice = "deposit"
	ProtectionInsurance ProtectionChoice = "insurance"
)

// IsValid проверяет, что значение входит в допустимый набор
func (p ProtectionChoice) IsValid() bool {
	switch p {
	case ProtectionNone, ProtectionDeposit, ProtectionInsurance:
		return true
	}
	return false
}

// ProtectionPolicy политика защиты объявления, неизменна для объявления
type ProtectionPolicy struct {
	RequiresProtection  bool
	DepositAmount       *float64
	InsuranceDailyPrice *float64
}

// Listing объявление об аренде снаряжения (только чтение, владелец - сервис объявлений)
type Listing struct {
	ID            int64
	Title         string
	PricePerDay   float64
	Protection    ProtectionPolicy
	PickupNotes   string
	MinRentalDays int
	MaxRentalDays *int // nil = без ограничения
}
