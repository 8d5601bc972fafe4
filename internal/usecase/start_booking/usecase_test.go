package start_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GearBookingService/internal/domain"
	"github.com/m04kA/SMC-GearBookingService/internal/lifecycle"
	"github.com/m04kA/SMC-GearBookingService/internal/service/drafts"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions"
	"github.com/m04kA/SMC-GearBookingService/internal/service/sessions/models"
	"github.com/m04kA/SMC-GearBookingService/pkg/logger"
)

type fakeSessions struct {
	session   domain.BookingSession
	listing   domain.Listing
	window    domain.AvailabilityWindow
	submitted []domain.Event
	err       error
	// afterGet меняет сессию между чтением и переходом
	afterGet func(f *fakeSessions)
}

func (f *fakeSessions) view() *models.SessionView {
	return models.BuildView("s-1", "browser-1", f.session, f.listing, f.window)
}

func (f *fakeSessions) Get(context.Context, string) (*models.SessionView, error) {
	if f.err != nil {
		return nil, f.err
	}
	v := f.view()
	if f.afterGet != nil {
		f.afterGet(f)
	}
	return v, nil
}

func (f *fakeSessions) StartBooking(_ context.Context, _ string, _ domain.AuthStatus) (*models.SubmitResult, error) {
	if f.session.Stage == domain.StageDetails && !f.view().RangeValid {
		return nil, sessions.ErrInvalidRange
	}
	e := domain.StartBooking(f.listing.Protection.RequiresProtection)
	f.submitted = append(f.submitted, e)
	var accepted bool
	f.session, accepted = lifecycle.Reduce(f.session, e)
	return &models.SubmitResult{View: f.view(), Accepted: accepted}, nil
}

func (f *fakeSessions) Submit(_ context.Context, _ string, e domain.Event, _ domain.AuthStatus) (*models.SubmitResult, error) {
	f.submitted = append(f.submitted, e)
	var accepted bool
	f.session, accepted = lifecycle.Reduce(f.session, e)
	return &models.SubmitResult{View: f.view(), Accepted: accepted}, nil
}

type fakeDrafts struct {
	saved []domain.BookingSession
	err   error
}

func (f *fakeDrafts) Save(_ context.Context, clientSessionID string, s domain.BookingSession) error {
	if f.err != nil {
		return f.err
	}
	if clientSessionID == "" {
		return drafts.ErrNoClientSession
	}
	f.saved = append(f.saved, s)
	return nil
}

func newSessions(withDates bool) *fakeSessions {
	s := lifecycle.New(5, "Paddle board")
	if withDates {
		start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)
		s = lifecycle.Apply(s, domain.SetDates(&start, &end))
	}
	return &fakeSessions{
		session: s,
		listing: domain.Listing{ID: 5, Title: "Paddle board", PricePerDay: 20, Protection: domain.ProtectionPolicy{RequiresProtection: true}, MinRentalDays: 1},
		window:  domain.AvailabilityWindow{ListingID: 5, MinRentalDays: 1},
	}
}

func newUseCase(s *fakeSessions, d *fakeDrafts) *UseCase {
	return NewUseCase(s, d, "/auth/login", logger.NewNop())
}

func TestUseCase_Authenticated(t *testing.T) {
	s := newSessions(true)
	uc := newUseCase(s, &fakeDrafts{})

	res, err := uc.Execute(context.Background(), &Request{
		SessionID: "s-1",
		Auth:      domain.AuthStatus{IsAuthenticated: true},
	})
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.False(t, res.RequireAuth)
	assert.Equal(t, domain.StagePayment, res.View.Session.Stage)
}

func TestUseCase_UnauthenticatedSavesDraft(t *testing.T) {
	s := newSessions(true)
	d := &fakeDrafts{}
	uc := newUseCase(s, d)

	res, err := uc.Execute(context.Background(), &Request{SessionID: "s-1", ClientSessionID: "browser-1"})
	require.NoError(t, err)

	assert.True(t, res.RequireAuth)
	assert.False(t, res.Accepted)
	assert.Equal(t, "/auth/login?returnTo=%2Flistings%2F5", res.RedirectURL)
	require.Len(t, d.saved, 1)
	assert.Equal(t, []domain.Event{domain.Simple(domain.EventRequireAuth)}, s.submitted)
	assert.Equal(t, domain.StageDetails, res.View.Session.Stage)
	assert.Equal(t, "Sign-in required to continue the booking.", res.View.Session.History[len(res.View.Session.History)-1])
}

func TestUseCase_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sessions *fakeSessions
		drafts   *fakeDrafts
		req      *Request
		wantErr  error
	}{
		{
			name:     "empty session id",
			sessions: newSessions(true),
			drafts:   &fakeDrafts{},
			req:      &Request{},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "session not found",
			sessions: &fakeSessions{err: sessions.ErrSessionNotFound},
			drafts:   &fakeDrafts{},
			req:      &Request{SessionID: "s-1"},
			wantErr:  ErrSessionNotFound,
		},
		{
			name:     "no dates selected",
			sessions: newSessions(false),
			drafts:   &fakeDrafts{},
			req:      &Request{SessionID: "s-1", Auth: domain.AuthStatus{IsAuthenticated: true}},
			wantErr:  ErrInvalidRange,
		},
		{
			name:     "auth loading",
			sessions: newSessions(true),
			drafts:   &fakeDrafts{},
			req:      &Request{SessionID: "s-1", Auth: domain.AuthStatus{IsLoading: true}},
			wantErr:  ErrAuthPending,
		},
		{
			name:     "no client session",
			sessions: newSessions(true),
			drafts:   &fakeDrafts{},
			req:      &Request{SessionID: "s-1"},
			wantErr:  ErrNoClientSession,
		},
		{
			name:     "draft store down",
			sessions: newSessions(true),
			drafts:   &fakeDrafts{err: errors.New("redis down")},
			req:      &Request{SessionID: "s-1", ClientSessionID: "browser-1"},
			wantErr:  ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase(tt.sessions, tt.drafts).Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_AlreadyStarted(t *testing.T) {
	s := newSessions(true)
	s.session = lifecycle.Apply(s.session, domain.StartBooking(true))
	uc := newUseCase(s, &fakeDrafts{})

	res, err := uc.Execute(context.Background(), &Request{SessionID: "s-1", Auth: domain.AuthStatus{IsAuthenticated: true}})
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Empty(t, s.submitted)
}

func TestUseCase_DatesClearedBeforeTransition(t *testing.T) {
	s := newSessions(true)
	s.afterGet = func(f *fakeSessions) {
		f.session = lifecycle.Apply(f.session, domain.SetDates(nil, nil))
	}
	uc := newUseCase(s, &fakeDrafts{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "s-1", Auth: domain.AuthStatus{IsAuthenticated: true}})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, s.submitted)
	assert.Equal(t, domain.StageDetails, s.session.Stage)
}
