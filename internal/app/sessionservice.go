package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/taskdeck/internal/core/auth"
	"github.com/colonyops/taskdeck/internal/core/kv"
)

// KeyAuthToken is the blob-store key holding the persisted session token.
const KeyAuthToken = "authToken"

// SessionState is the lifecycle state of the local session.
type SessionState string

const (
	StateInitializing    SessionState = "initializing"
	StateAuthenticated   SessionState = "authenticated"
	StateUnauthenticated SessionState = "unauthenticated"
)

// LoginMode selects between credential check and account creation.
type LoginMode string

const (
	ModeLogin  LoginMode = "login"
	ModeSignup LoginMode = "signup"
)

// Outcome is the user-facing result of a login or signup attempt.
type Outcome struct {
	Success bool
	Message string
	User    auth.User
}

// SessionService owns authentication state and the persisted token. State,
// user, and the live token are always set together under the lock, after the
// remote call has returned, so observers never see
// authenticated-without-a-user.
type SessionService struct {
	mu    sync.Mutex
	svc   auth.Service
	token *kv.TypedKV[string]
	log   zerolog.Logger

	state SessionState
	user  auth.User
	// live is the session token for this process. It outlives a failed
	// token persist, so logout can still invalidate server-side.
	live string
}

// NewSessionService creates a SessionService in the initializing state.
func NewSessionService(svc auth.Service, store kv.KV, log zerolog.Logger) *SessionService {
	return &SessionService{
		svc:   svc,
		token: kv.Keyed[string](store, KeyAuthToken),
		log:   log.With().Str("component", "session-service").Logger(),
		state: StateInitializing,
	}
}

// Init validates any persisted token and settles the state machine. This is
// the only suspend point during startup; callers show a loading state until
// it returns. Invalid, expired, or unreachable all land on unauthenticated
// with the stored token cleared.
func (s *SessionService) Init(ctx context.Context) SessionState {
	stored, err := s.token.Get(ctx)
	if err != nil || stored == "" {
		if err != nil && !errors.Is(err, kv.ErrNoKey) {
			s.log.Warn().Err(err).Msg("stored token unreadable")
		}
		return s.transition(StateUnauthenticated, auth.User{}, "")
	}

	user, err := s.svc.Validate(ctx, stored)
	if err != nil {
		s.log.Info().Err(err).Msg("stored token rejected, clearing")
		s.clearToken(ctx)
		return s.transition(StateUnauthenticated, auth.User{}, "")
	}

	return s.transition(StateAuthenticated, user, stored)
}

// Login authenticates (or signs up, then logs in) and persists the token on
// success. Failures leave the state unchanged and carry a human-readable
// message distinguishing bad credentials, duplicate username, duplicate
// email, and transport trouble.
func (s *SessionService) Login(ctx context.Context, req auth.SignupRequest, mode LoginMode) Outcome {
	var (
		result auth.Login
		err    error
	)
	if mode == ModeSignup {
		result, err = s.svc.Signup(ctx, req)
	} else {
		result, err = s.svc.Login(ctx, req.Username, req.Password)
	}
	if err != nil {
		return Outcome{Success: false, Message: loginMessage(err)}
	}

	if err := s.token.Set(ctx, result.Token); err != nil {
		// The session is live server-side; it just won't survive a restart.
		s.log.Error().Err(err).Msg("persist auth token failed")
	}

	s.transition(StateAuthenticated, result.User, result.Token)
	return Outcome{Success: true, User: result.User}
}

// Logout invalidates the server-side session best-effort, then always clears
// the local token and transitions to unauthenticated.
func (s *SessionService) Logout(ctx context.Context) {
	s.mu.Lock()
	token := ""
	if s.state == StateAuthenticated {
		// Prefer the live token; the stored copy is absent when persisting
		// it failed at login.
		token = s.live
		if token == "" {
			if stored, err := s.token.Get(ctx); err == nil {
				token = stored
			}
		}
	}
	s.mu.Unlock()

	if token != "" {
		if err := s.svc.Logout(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("server-side logout failed, clearing locally anyway")
		}
	}

	s.clearToken(ctx)
	s.transition(StateUnauthenticated, auth.User{}, "")
}

// State returns the current lifecycle state.
func (s *SessionService) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a user is logged in.
func (s *SessionService) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// CurrentUser returns the authenticated user profile, if any.
func (s *SessionService) CurrentUser() (auth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAuthenticated {
		return auth.User{}, false
	}
	return s.user, true
}

func (s *SessionService) transition(state SessionState, user auth.User, token string) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.user = user
	s.live = token
	return state
}

func (s *SessionService) clearToken(ctx context.Context) {
	if err := s.token.Delete(ctx); err != nil {
		s.log.Warn().Err(err).Msg("clear stored token failed")
	}
}

func loginMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrBadCredentials):
		return "Invalid username or password."
	case errors.Is(err, auth.ErrUsernameTaken):
		return "That username is already taken."
	case errors.Is(err, auth.ErrEmailTaken):
		return "That email is already registered."
	default:
		return "Network error, please try again."
	}
}
