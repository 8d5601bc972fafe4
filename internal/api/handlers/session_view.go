package handlers

import (
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
)

// SessionViewResponse представление сессии, общее для всех ручек сессий
type SessionViewResponse struct {
	SessionID           string            `json:"sessionId"`
	Listing             ListingResponse   `json:"listing"`
	Session             SessionResponse   `json:"session"`
	Journey             []JourneyStepItem `json:"journey"`
	Quote               *QuoteResponse    `json:"quote,omitempty"`
	AvailabilityPending bool              `json:"availabilityPending"`
	UnavailableDates    []string          `json:"unavailableDates"`
	RangeValid          bool              `json:"rangeValid"`
	SelectionWarning    string            `json:"selectionWarning,omitempty"`
}

type ListingResponse struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	PricePerDay         float64  `json:"pricePerDay"`
	RequiresProtection  bool     `json:"requiresProtection"`
	DepositAmount       *float64 `json:"depositAmount,omitempty"`
	InsuranceDailyPrice *float64 `json:"insuranceDailyPrice,omitempty"`
	PickupNotes         string   `json:"pickupNotes,omitempty"`
	MinRentalDays       int      `json:"minRentalDays"`
	MaxRentalDays       *int     `json:"maxRentalDays,omitempty"`
}

type SessionResponse struct {
	ListingID        int64    `json:"listingId"`
	ListingTitle     string   `json:"listingTitle"`
	Stage            string   `json:"stage"`
	ProtectionChoice string   `json:"protectionChoice"`
	RefundIssued     bool     `json:"refundIssued"`
	DepositReturned  bool     `json:"depositReturned"`
	ClaimStatus      string   `json:"claimStatus"`
	ReviewSubmitted  bool     `json:"reviewSubmitted"`
	CancelledFrom    string   `json:"cancelledFrom,omitempty"`
	History          []string `json:"history"`
	StartDate        *string  `json:"startDate"`
	EndDate          *string  `json:"endDate"`
	StartTime        string   `json:"startTime"`
	EndTime          string   `json:"endTime"`
}

type JourneyStepItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type QuoteResponse struct {
	Days       int     `json:"days"`
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"serviceFee"`
	Taxes      float64 `json:"taxes"`
	Insurance  float64 `json:"insurance"`
	Total      float64 `json:"total"`
	Deposit    float64 `json:"deposit"`
}

// NewSessionViewResponse конвертирует представление сервиса сессий в HTTP ответ
func NewSessionViewResponse(v *models.SessionView) *SessionViewResponse {
	journey := make([]JourneyStepItem, len(v.Journey))
	for i, step := range v.Journey {
		journey[i] = JourneyStepItem{
			ID:          string(step.ID),
			Title:       step.Title,
			Description: step.Description,
			Status:      string(step.Status),
		}
	}

	unavailable := v.Window.UnavailableDates
	if unavailable == nil {
		unavailable = []string{}
	}

	return &SessionViewResponse{
		SessionID:           v.ID,
		Listing:             NewListingResponse(v.Listing),
		Session:             newSessionResponse(v.Session),
		Journey:             journey,
		Quote:               NewQuoteResponse(v.Quote),
		AvailabilityPending: v.AvailabilityPending,
		UnavailableDates:    unavailable,
		RangeValid:          v.RangeValid,
		SelectionWarning:    v.SelectionWarning,
	}
}

func NewListingResponse(l domain.Listing) ListingResponse {
	return ListingResponse{
		ID:                  l.ID,
		Title:               l.Title,
		PricePerDay:         l.PricePerDay,
		RequiresProtection:  l.Protection.RequiresProtection,
		DepositAmount:       l.Protection.DepositAmount,
		InsuranceDailyPrice: l.Protection.InsuranceDailyPrice,
		PickupNotes:         l.PickupNotes,
		MinRentalDays:       l.MinRentalDays,
		MaxRentalDays:       l.MaxRentalDays,
	}
}

// NewQuoteResponse возвращает nil, если расчета нет
func NewQuoteResponse(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}
	return &QuoteResponse{
		Days:       q.Days,
		Subtotal:   q.Subtotal,
		ServiceFee: q.ServiceFee,
		Taxes:      q.Taxes,
		Insurance:  q.Insurance,
		Total:      q.Total,
		Deposit:    q.Deposit,
	}
}

func newSessionResponse(s domain.BookingSession) SessionResponse {
	history := s.History
	if history == nil {
		history = []string{}
	}
	return SessionResponse{
		ListingID:        s.ListingID,
		ListingTitle:     s.ListingTitle,
		Stage:            string(s.Stage),
		ProtectionChoice: string(s.ProtectionChoice),
		RefundIssued:     s.RefundIssued,
		DepositReturned:  s.DepositReturned,
		ClaimStatus:      string(s.ClaimStatus),
		ReviewSubmitted:  s.ReviewSubmitted,
		CancelledFrom:    string(s.CancelledFrom),
		History:          history,
		StartDate:        FormatDate(s.StartDate),
		EndDate:          FormatDate(s.EndDate),
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
	}
}

// FormatDate форматирует дату как YYYY-MM-DD, nil остается nil
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}

// ParseDateParam разбирает необязательную дату YYYY-MM-DD, пустая строка дает nil
func ParseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
