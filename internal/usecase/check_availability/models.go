package check_availability

import "time"

// Request проверка одной даты (Date) или диапазона (Start, End)
type Request struct {
	ListingID int64
	Date      *time.Time
	Start     *time.Time
	End       *time.Time
}

// Response модель ответа
type Response struct {
	ListingID int64

	// для одной даты
	Date       *time.Time
	Available  bool
	Selectable bool // доступна и не в прошлом

	// для диапазона
	Start           *time.Time
	End             *time.Time
	RangeValid      bool
	Days            int
	UnavailableDays []string
}
