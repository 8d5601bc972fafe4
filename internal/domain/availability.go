package domain

import "time"

// ReservationStatus статус существующего бронирования объявления
type ReservationStatus string

const (
	ReservationPending           ReservationStatus = "pending"
	ReservationConfirmed         ReservationStatus = "confirmed"
	ReservationActive            ReservationStatus = "active"
	ReservationCompleted         ReservationStatus = "completed"
	ReservationCancelled         ReservationStatus = "cancelled"
	ReservationCancelledByRenter ReservationStatus = "cancelled_by_renter"
	ReservationCancelledByOwner  ReservationStatus = "cancelled_by_owner"
	ReservationDeclined          ReservationStatus = "declined"
)

// CancelledReservationStatuses статусы, которые не занимают даты
var CancelledReservationStatuses = []ReservationStatus{
	ReservationCancelled,
	ReservationCancelledByRenter,
	ReservationCancelledByOwner,
	ReservationDeclined,
}

// IsCancelled returns true if the status does not hold dates
func (s ReservationStatus) IsCancelled() bool {
	for _, c := range CancelledReservationStatuses {
		if s == c {
			return true
		}
	}
	return false
}

// Reservation существующее бронирование объявления
type Reservation struct {
	Start  time.Time
	End    time.Time
	Status ReservationStatus
}

// BlockOut интервал, закрытый владельцем. Нулевая граница означает некорректную запись.
type BlockOut struct {
	Start time.Time
	End   time.Time
}

// IsMalformed returns true if either bound is missing
func (b BlockOut) IsMalformed() bool {
	return b.Start.IsZero() || b.End.IsZero()
}

// AvailabilityWindow снимок доступности объявления на время сессии
type AvailabilityWindow struct {
	ListingID        int64
	UnavailableDates []string // YYYY-MM-DD
	BlockOuts        []BlockOut
	Reservations     []Reservation
	MinRentalDays    int
	MaxRentalDays    *int

	// Pending снимок еще загружается, все даты считаются условно доступными
	Pending bool
}

// PendingWindow окно, которое используется до прихода снимка
func PendingWindow(listingID int64) AvailabilityWindow {
	return AvailabilityWindow{
		ListingID:     listingID,
		MinRentalDays: DefaultMinRentalDays,
		Pending:       true,
	}
}
