package resume_draft

import (
	"github.com/m04kA/SMC-GearBookingService/internal/api/handlers"
	resumeDraft "github.com/m04kA/SMC-GearBookingService/internal/usecase/resume_draft"
)

// ResumeDraftResponse HTTP response model
type ResumeDraftResponse struct {
	Restored bool                          `json:"restored"`
	Session  *handlers.SessionViewResponse `json:"session"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resumeDraft.Response) *ResumeDraftResponse {
	return &ResumeDraftResponse{
		Restored: resp.Restored,
		Session:  handlers.NewSessionViewResponse(resp.View),
	}
}
