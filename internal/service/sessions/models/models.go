package models

import (
	"github.com/m04kA/SMC-GearBookingService/internal/availability"
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/journey"
	"github.com/m04kA/SMC-GearBookingService/internal/quote"
)

// SelectionWarning текст предупреждения, когда выбранные даты не проходят проверку загруженного снимка
const SelectionWarning = "The selected dates are not available or do not meet the rental limits. Please choose other dates."

// OpenRequest запрос на открытие сессии
type OpenRequest struct {
	ListingID       int64
	ClientSessionID string
}

// SessionView то, что видит слой отображения после каждого события
type SessionView struct {
	ID                  string
	ClientSessionID     string
	Session             domain.BookingSession
	Listing             domain.Listing
	Window              domain.AvailabilityWindow
	Journey             []domain.JourneyStep
	Quote               *domain.Quote
	AvailabilityPending bool
	RangeValid          bool
	SelectionWarning    string
}

// SubmitResult результат подачи события
type SubmitResult struct {
	View     *SessionView
	Accepted bool
}

// BuildView собирает представление сессии: путь, расчет и проверку выбранных дат
func BuildView(
	id, clientSessionID string,
	session domain.BookingSession,
	listing domain.Listing,
	window domain.AvailabilityWindow,
) *SessionView {
	rangeValid := availability.IsRangeValid(session.StartDate, session.EndDate, window)

	view := &SessionView{
		ID:                  id,
		ClientSessionID:     clientSessionID,
		Session:             session,
		Listing:             listing,
		Window:              window,
		Journey:             journey.Project(session, listing),
		Quote:               quote.ForSession(session, listing),
		AvailabilityPending: window.Pending,
		RangeValid:          rangeValid,
	}

	// даты выбраны до прихода снимка и не прошли проверку: не сбрасываем, а предупреждаем
	if session.StartDate != nil && session.EndDate != nil && !window.Pending && !rangeValid &&
		session.Stage == domain.StageDetails {
		view.SelectionWarning = SelectionWarning
	}

	return view
}
