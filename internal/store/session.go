package store

import (
	"context"
	"encoding/json"
	"sync"

	"dealspot/client/internal/client"
	"dealspot/client/internal/domain"
	"dealspot/client/internal/storage"

	log "github.com/sirupsen/logrus"
)

// SessionState is the authentication slice. Loading is orthogonal to the
// anonymous/authenticated distinction.
type SessionState struct {
	User                   *domain.User
	Token                  string
	IsAuthenticated        bool
	HasCompletedOnboarding bool
	Loading                bool
	Err                    string
}

type sessionEvent interface{ isSessionEvent() }

type sessionPending struct{}

// sessionAuthed follows a confirmed login or signup.
type sessionAuthed struct {
	user  domain.User
	token string
}

// sessionRestored carries whatever launch-time restore found. A nil user
// means no persisted session, which lands in the anonymous state.
type sessionRestored struct {
	user      *domain.User
	token     string
	onboarded bool
}

type sessionFailed struct{ message string }
type sessionCleared struct{}
type sessionOnboarded struct{}
type sessionErrCleared struct{}

func (sessionPending) isSessionEvent()    {}
func (sessionAuthed) isSessionEvent()     {}
func (sessionRestored) isSessionEvent()   {}
func (sessionFailed) isSessionEvent()     {}
func (sessionCleared) isSessionEvent()    {}
func (sessionOnboarded) isSessionEvent()  {}
func (sessionErrCleared) isSessionEvent() {}

func reduceSession(s SessionState, ev sessionEvent) SessionState {
	switch ev := ev.(type) {
	case sessionPending:
		s.Loading = true
		s.Err = ""
	case sessionAuthed:
		user := ev.user
		s.Loading = false
		s.IsAuthenticated = true
		s.User = &user
		s.Token = ev.token
	case sessionRestored:
		s.Loading = false
		s.HasCompletedOnboarding = ev.onboarded
		if ev.user != nil && ev.token != "" {
			s.IsAuthenticated = true
			s.User = ev.user
			s.Token = ev.token
		} else {
			s.IsAuthenticated = false
			s.User = nil
			s.Token = ""
		}
	case sessionFailed:
		s.Loading = false
		s.Err = ev.message
	case sessionCleared:
		// Onboarding survives logout on purpose
		s.Loading = false
		s.IsAuthenticated = false
		s.User = nil
		s.Token = ""
	case sessionOnboarded:
		s.HasCompletedOnboarding = true
	case sessionErrCleared:
		s.Err = ""
	}
	return s
}

// SessionStore drives the session lifecycle: restore-on-launch, login,
// signup, logout, onboarding.
type SessionStore struct {
	notifier
	mu      sync.Mutex
	state   SessionState
	users   client.UserService
	storage storage.Store
}

func NewSessionStore(users client.UserService, st storage.Store) *SessionStore {
	return &SessionStore{
		users:   users,
		storage: st,
	}
}

// Snapshot returns a copy of the current state.
func (s *SessionStore) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

func (s *SessionStore) dispatch(ev sessionEvent) {
	s.mu.Lock()
	s.state = reduceSession(s.state, ev)
	s.mu.Unlock()
	s.broadcast()
}

// Restore reads the persisted session once at launch. A storage failure
// or an incomplete session both land in the anonymous state; the
// onboarding flag is applied from storage regardless.
func (s *SessionStore) Restore(ctx context.Context) error {
	s.dispatch(sessionPending{})

	onboardedRaw, err := s.storage.Get(ctx, storage.KeyOnboarding)
	if err != nil {
		log.Warnf("Failed to read onboarding flag: %v", err)
	}
	onboarded := onboardedRaw == "true"

	token, tokenErr := s.storage.Get(ctx, storage.KeyToken)
	userRaw, userErr := s.storage.Get(ctx, storage.KeyUser)
	if tokenErr != nil || userErr != nil {
		log.Warnf("Failed to read persisted session, treating as signed out (token: %v, user: %v)", tokenErr, userErr)
		s.dispatch(sessionRestored{onboarded: onboarded})
		return nil
	}

	var user *domain.User
	if token != "" && userRaw != "" {
		var u domain.User
		if err := json.Unmarshal([]byte(userRaw), &u); err != nil {
			log.Warnf("Persisted user is unreadable, treating as signed out: %v", err)
		} else {
			user = &u
		}
	}

	s.dispatch(sessionRestored{user: user, token: token, onboarded: onboarded})
	if user != nil {
		log.Infof("Restored session for user %s", user.ID)
	}
	return nil
}

// Login authenticates against the backend and persists the session.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.dispatch(sessionPending{})

	auth, err := s.users.Login(ctx, email, password)
	if err != nil {
		s.dispatch(sessionFailed{message: client.ErrorMessage(err, "Login failed")})
		return err
	}

	s.persistSession(ctx, auth)
	s.dispatch(sessionAuthed{user: auth.User, token: auth.Token})
	log.Infof("User %s logged in", auth.User.ID)
	return nil
}

// Signup registers a new account; on success the session becomes
// authenticated exactly as with Login.
func (s *SessionStore) Signup(ctx context.Context, req domain.SignupRequest) error {
	s.dispatch(sessionPending{})

	auth, err := s.users.Signup(ctx, req)
	if err != nil {
		s.dispatch(sessionFailed{message: client.ErrorMessage(err, "Signup failed")})
		return err
	}

	s.persistSession(ctx, auth)
	s.dispatch(sessionAuthed{user: auth.User, token: auth.Token})
	log.Infof("User %s signed up", auth.User.ID)
	return nil
}

// Logout notifies the backend best-effort and always clears the local
// session. The onboarding flag stays set.
func (s *SessionStore) Logout(ctx context.Context) error {
	if s.Snapshot().Token != "" {
		if err := s.users.Logout(ctx); err != nil {
			log.Debugf("Backend logout failed, clearing local session anyway: %v", err)
		}
	}

	if err := s.storage.Delete(ctx, storage.KeyUser, storage.KeyToken); err != nil {
		log.Warnf("Failed to clear persisted session: %v", err)
	}

	s.dispatch(sessionCleared{})
	return nil
}

// CompleteOnboarding flips and persists the onboarding flag. Independent
// of authentication state.
func (s *SessionStore) CompleteOnboarding(ctx context.Context) {
	s.dispatch(sessionOnboarded{})
	if err := s.storage.Set(ctx, storage.KeyOnboarding, "true"); err != nil {
		log.Warnf("Failed to persist onboarding flag: %v", err)
	}
}

// ClearError drops the surfaced error message.
func (s *SessionStore) ClearError() {
	s.dispatch(sessionErrCleared{})
}

func (s *SessionStore) persistSession(ctx context.Context, auth *domain.AuthData) {
	userRaw, err := json.Marshal(auth.User)
	if err != nil {
		log.Warnf("Failed to encode user for storage: %v", err)
		return
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(userRaw)); err != nil {
		log.Warnf("Failed to persist user: %v", err)
	}
	if err := s.storage.Set(ctx, storage.KeyToken, auth.Token); err != nil {
		log.Warnf("Failed to persist token: %v", err)
	}
}
