package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

type contextKey string

const (
	authStatusKey      contextKey = "auth_status"
	clientSessionIDKey contextKey = "client_session_id"
)

const (
	// HeaderUserID выставляется шлюзом после проверки токена
	HeaderUserID = "X-User-ID"
	// HeaderAuthState "loading", пока клиент еще восстанавливает вход
	HeaderAuthState = "X-Auth-State"
	// HeaderClientSession ключ браузерной сессии (для черновиков)
	HeaderClientSession = "X-Client-Session"

	authStateLoading = "loading"
)

// AuthStatus определяет статус аутентификации по заголовкам и кладет его в контекст.
// Запрос без X-User-ID не отклоняется: решение о входе принимают use case.
func AuthStatus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := domain.AuthStatus{
			IsLoading: strings.EqualFold(r.Header.Get(HeaderAuthState), authStateLoading),
		}

		if raw := r.Header.Get(HeaderUserID); raw != "" && !status.IsLoading {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				http.Error(w, "invalid X-User-ID header", http.StatusBadRequest)
				return
			}
			status.IsAuthenticated = true
			status.UserID = &userID
		}

		ctx := context.WithValue(r.Context(), authStatusKey, status)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientSession кладет ключ браузерной сессии в контекст
func ClientSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(HeaderClientSession))
		ctx := context.WithValue(r.Context(), clientSessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAuthStatus извлекает статус аутентификации. Без middleware - не аутентифицирован.
func GetAuthStatus(ctx context.Context) domain.AuthStatus {
	status, _ := ctx.Value(authStatusKey).(domain.AuthStatus)
	return status
}

// GetClientSessionID извлекает ключ браузерной сессии, пустая строка если не передан
func GetClientSessionID(ctx context.Context) string {
	id, _ := ctx.Value(clientSessionIDKey).(string)
	return id
}
