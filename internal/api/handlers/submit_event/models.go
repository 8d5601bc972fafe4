package submit_event

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/types"
)

// errStartBookingGesture START_BOOKING идет через /start: там проверка диапазона и входа
var errStartBookingGesture = errors.New("START_BOOKING must be submitted via /start")

// SubmitEventRequest HTTP request model
type SubmitEventRequest struct {
	Type      string  `json:"type" validate:"required,oneof=PAY_DEPOSIT BUY_INSURANCE DECLINE_PROTECTION CANCEL_BOOKING ARRANGE_PICKUP ARRANGE_DROPOFF UPLOAD_EVIDENCE RETURN_DEPOSIT OPEN_CLAIM RESOLVE_CLAIM WRITE_REVIEW RESET SET_DATES SET_TIMES REQUIRE_AUTH START_BOOKING"`
	Outcome   string  `json:"outcome,omitempty" validate:"omitempty,oneof=approved rejected"`
	StartDate *string `json:"startDate,omitempty"` // "2024-06-01"
	EndDate   *string `json:"endDate,omitempty"`
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`
}

// SubmitEventResponse HTTP response model
type SubmitEventResponse struct {
	Accepted bool                          `json:"accepted"`
	Session  *handlers.SessionViewResponse `json:"session"`
}

// ToEvent конвертирует HTTP запрос в событие машины
func (r *SubmitEventRequest) ToEvent() (domain.Event, error) {
	eventType := domain.EventType(r.Type)

	switch eventType {
	case domain.EventStartBooking:
		return domain.Event{}, errStartBookingGesture

	case domain.EventResolveClaim:
		return domain.ResolveClaim(domain.ClaimStatus(r.Outcome)), nil

	case domain.EventReset:
		// объявление и заголовок подставляет сервис сессий
		return domain.Simple(domain.EventReset), nil

	case domain.EventSetDates:
		start, err := parseOptionalDate(r.StartDate)
		if err != nil {
			return domain.Event{}, fmt.Errorf("startDate: %w", err)
		}
		end, err := parseOptionalDate(r.EndDate)
		if err != nil {
			return domain.Event{}, fmt.Errorf("endDate: %w", err)
		}
		if start != nil && end != nil && !domain.SpanWithinLimit(*start, *end) {
			return domain.Event{}, fmt.Errorf("date range longer than %d days", domain.MaxRentalSpanDays)
		}
		return domain.SetDates(start, end), nil

	case domain.EventSetTimes:
		start, err := parseOptionalTime(r.StartTime)
		if err != nil {
			return domain.Event{}, fmt.Errorf("startTime: %w", err)
		}
		end, err := parseOptionalTime(r.EndTime)
		if err != nil {
			return domain.Event{}, fmt.Errorf("endTime: %w", err)
		}
		return domain.SetTimes(start, end), nil
	}

	return domain.Simple(eventType), nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	return handlers.ParseDateParam(*s)
}

func parseOptionalTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
