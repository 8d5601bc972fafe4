package resume_draft

import (
	"context"

	resumeDraft "github.com/m04kA/SMC-GearBookingService/internal/usecase/resume_draft"
)

type ResumeDraftUseCase interface {
	Execute(ctx context.Context, req *resumeDraft.Request) (*resumeDraft.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
