package domain

// Draft незавершенная попытка бронирования, переживающая редирект на аутентификацию
type Draft struct {
	ListingID        int64            `json:"listingId"`
	StartDate        string           `json:"startDate"` // YYYY-MM-DD
	EndDate          string           `json:"endDate"`   // YYYY-MM-DD
	ProtectionChoice ProtectionChoice `json:"protectionChoice"`
}

// AuthStatus статус аутентификации вызывающего
type AuthStatus struct {
	IsAuthenticated bool
	IsLoading       bool
	UserID          *int64
}
