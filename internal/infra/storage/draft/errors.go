package draft

import "errors"

var (
	// ErrDraftNotFound возвращается, когда черновика нет (не сохранялся, уже использован или истек)
	ErrDraftNotFound = errors.New("draft.repository: draft not found")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("draft.repository: store error")
)
