package domain

// StepID идентификатор шага пути аренды
type StepID string

const (
	StepDates      StepID = "dates"
	StepProtection StepID = "protection"
	StepConfirmed  StepID = "confirmed"
	StepPickup     StepID = "pickup"
	StepDropoff    StepID = "dropoff"
	StepEvidence   StepID = "evidence"
	StepResolution StepID = "resolution"
	StepReview     StepID = "review"
	StepCompleted  StepID = "completed"
)

// StepStatus статус шага для отображения
type StepStatus string

const (
	StepComplete  StepStatus = "complete"
	StepCurrent   StepStatus = "current"
	StepUpcoming  StepStatus = "upcoming"
	StepCancelled StepStatus = "cancelled"
)

// JourneyStep шаг пути аренды для отображения
type JourneyStep struct {
	ID          StepID
	Title       string
	Description string
	Status      StepStatus
}
