package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/pkg/logger"
)

func TestAuthStatus(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		wantCode   int
		wantStatus domain.AuthStatus
	}{
		{
			name:       "anonymous",
			wantCode:   http.StatusOK,
			wantStatus: domain.AuthStatus{},
		},
		{
			name:       "loading",
			headers:    map[string]string{HeaderAuthState: "loading"},
			wantCode:   http.StatusOK,
			wantStatus: domain.AuthStatus{IsLoading: true},
		},
		{
			name:     "authenticated",
			headers:  map[string]string{HeaderUserID: "42"},
			wantCode: http.StatusOK,
		},
		{
			name:     "bad user id",
			headers:  map[string]string{HeaderUserID: "abc"},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.AuthStatus
			h := AuthStatus(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetAuthStatus(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code)
			if tt.name == "authenticated" {
				assert.True(t, got.IsAuthenticated)
				require.NotNil(t, got.UserID)
				assert.Equal(t, int64(42), *got.UserID)
				return
			}
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantStatus, got)
			}
		})
	}
}

func TestClientSession(t *testing.T) {
	var got string
	h := ClientSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClientSessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderClientSession, " tab-1 ")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "tab-1", got)
}

func TestGestureGuard(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	guard := NewGestureGuard(500*time.Millisecond, logger.NewNop())
	guard.now = func() time.Time { return now }

	calls := 0
	r := mux.NewRouter()
	r.Handle("/sessions/{sessionId}/start", guard.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))).Methods(http.MethodPost)

	do := func(session string) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/sessions/"+session+"/start", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"), "double click is suppressed")
	assert.Equal(t, http.StatusOK, do("b"), "other session is independent")

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("a"), "allowed again after the window")
	assert.Equal(t, 3, calls)
}
