package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pricing constants
const (
	ServiceFeeRate = 0.10
	TaxRate        = 0.08
)

// Defaults for a fresh booking session
const (
	DefaultStartTime     = "10:00"
	DefaultEndTime       = "10:00"
	DefaultMinRentalDays = 1
)

// MaxRentalSpanDays наибольшая длина выбранного диапазона дат в днях
const MaxRentalSpanDays = 366

const secondsPerDay = 24 * 60 * 60

// CalendarDay приводит момент времени к началу календарного дня в UTC
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey строковый ключ календарного дня (YYYY-MM-DD)
func DayKey(t time.Time) string {
	return CalendarDay(t).Format(DateFormat)
}

// RentalDays количество дней аренды: ceil((end-start)/24h).
// Единственное правило подсчета для цены и для проверки диапазона.
// Результат <= 0 означает пустой или перевернутый диапазон.
// Считается по Unix-секундам: time.Duration насыщается на ~292 годах.
func RentalDays(start, end time.Time) int {
	secs := end.Unix() - start.Unix()
	nanos := end.Nanosecond() - start.Nanosecond()
	if nanos < 0 {
		secs--
		nanos += int(time.Second)
	}
	if secs < 0 || (secs == 0 && nanos == 0) {
		return 0
	}

	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 || nanos != 0 {
		days++
	}
	return int(days)
}

// SpanWithinLimit проверяет, что диапазон не длиннее MaxRentalSpanDays
func SpanWithinLimit(start, end time.Time) bool {
	return RentalDays(start, end) <= MaxRentalSpanDays
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}
