// Package availability decides whether a date or a date range of a listing can be rented.
// All functions are pure and operate on an already fetched snapshot.
package availability

import (
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// IsDateAvailable returns false if the calendar day of date is listed as unavailable,
// falls within a non-cancelled reservation or within a block-out (bounds inclusive).
// While the snapshot is pending every date is provisionally available.
func IsDateAvailable(date time.Time, window domain.AvailabilityWindow) bool {
	if window.Pending {
		return true
	}

	d := domain.CalendarDay(date)
	key := d.Format(domain.DateFormat)

	for _, u := range window.UnavailableDates {
		if u == key {
			return false
		}
	}

	for _, r := range window.Reservations {
		if r.Status.IsCancelled() || r.Start.IsZero() || r.End.IsZero() {
			continue
		}
		if within(d, r.Start, r.End) {
			return false
		}
	}

	for _, b := range window.BlockOuts {
		if b.IsMalformed() {
			continue
		}
		if within(d, b.Start, b.End) {
			return false
		}
	}

	return true
}

// IsRangeValid checks presence, ordering, rental span limits and that every calendar day
// from start to end inclusive is available. Spans above domain.MaxRentalSpanDays are
// rejected before any day is walked.
func IsRangeValid(start, end *time.Time, window domain.AvailabilityWindow) bool {
	if start == nil || end == nil {
		return false
	}
	if !end.After(*start) {
		return false
	}

	totalDays := domain.RentalDays(*start, *end)
	if totalDays > domain.MaxRentalSpanDays {
		return false
	}
	if totalDays < window.MinRentalDays {
		return false
	}
	if window.MaxRentalDays != nil && totalDays > *window.MaxRentalDays {
		return false
	}

	last := domain.CalendarDay(*end)
	for d := domain.CalendarDay(*start); !d.After(last); d = d.AddDate(0, 0, 1) {
		if !IsDateAvailable(d, window) {
			return false
		}
	}

	return true
}

// IsDateSelectable is what the calendar uses to enable a day: days before today are never
// selectable, the rest follow IsDateAvailable.
func IsDateSelectable(date, today time.Time, window domain.AvailabilityWindow) bool {
	if domain.CalendarDay(date).Before(domain.CalendarDay(today)) {
		return false
	}
	return IsDateAvailable(date, window)
}

// UnavailableDays lists the blocked calendar days between from and to inclusive.
func UnavailableDays(from, to time.Time, window domain.AvailabilityWindow) []string {
	var out []string
	last := domain.CalendarDay(to)
	for d := domain.CalendarDay(from); !d.After(last); d = d.AddDate(0, 0, 1) {
		if !IsDateAvailable(d, window) {
			out = append(out, d.Format(domain.DateFormat))
		}
	}
	return out
}

func within(d, start, end time.Time) bool {
	return !d.Before(domain.CalendarDay(start)) && !d.After(domain.CalendarDay(end))
}
