package get_quote

import (
	"time"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// Request модель запроса
type Request struct {
	ListingID  int64
	Start      *time.Time
	End        *time.Time
	Protection domain.ProtectionChoice // пусто = none
}

// Response модель ответа
type Response struct {
	ListingID  int64
	Protection domain.ProtectionChoice
	// Quote nil, если даты не заданы или диапазон пуст
	Quote *domain.Quote
}
