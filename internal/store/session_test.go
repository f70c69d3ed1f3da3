package store

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"dealspot/client/internal/client"
	"dealspot/client/internal/domain"
	"dealspot/client/internal/storage"

	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	loginAuth  *domain.AuthData
	loginErr   error
	signupAuth *domain.AuthData
	signupErr  error
	logoutErr  error

	logoutCalls int
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (*domain.AuthData, error) {
	return f.loginAuth, f.loginErr
}

func (f *fakeUserService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthData, error) {
	return f.signupAuth, f.signupErr
}

func (f *fakeUserService) Profile(ctx context.Context) (*domain.AuthData, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserService) UpdateLocation(ctx context.Context, latitude, longitude float64) error {
	return nil
}

func (f *fakeUserService) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func newSessionFixture(t *testing.T, users client.UserService) (*SessionStore, storage.Store) {
	t.Helper()
	st := storage.NewFileStore(filepath.Join(t.TempDir(), "storage.json"), "test")
	return NewSessionStore(users, st), st
}

func TestLoginSuccessAuthenticatesAndPersists(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserService{
		loginAuth: &domain.AuthData{
			User:  domain.User{ID: "u1", Name: "A", Email: "a@b.com"},
			Token: "tok1",
		},
	}
	s, st := newSessionFixture(t, users)

	require.NoError(t, s.Login(ctx, "a@b.com", "x"))

	state := s.Snapshot()
	require.True(t, state.IsAuthenticated)
	require.False(t, state.Loading)
	require.Equal(t, "u1", state.User.ID)
	require.Equal(t, "tok1", state.Token)

	token, err := st.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.Equal(t, "tok1", token)

	userRaw, err := st.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	var user domain.User
	require.NoError(t, json.Unmarshal([]byte(userRaw), &user))
	require.Equal(t, "u1", user.ID)
}

func TestLoginFailureStaysAnonymousWithError(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserService{
		loginErr: &client.APIError{Kind: client.KindServer, StatusCode: 400, Message: "bad credentials"},
	}
	s, st := newSessionFixture(t, users)

	require.Error(t, s.Login(ctx, "a@b.com", "wrong"))

	state := s.Snapshot()
	require.False(t, state.IsAuthenticated)
	require.False(t, state.Loading)
	require.Equal(t, "bad credentials", state.Err)

	token, err := st.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.Empty(t, token)

	s.ClearError()
	require.Empty(t, s.Snapshot().Err)
}

func TestSignupSuccessAuthenticates(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserService{
		signupAuth: &domain.AuthData{
			User:  domain.User{ID: "u2", Name: "B", Email: "b@c.com"},
			Token: "tok2",
		},
	}
	s, _ := newSessionFixture(t, users)

	require.NoError(t, s.Signup(ctx, domain.SignupRequest{
		FirstName: "B", LastName: "C", Email: "b@c.com", Password: "x",
	}))

	state := s.Snapshot()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "u2", state.User.ID)
}

func TestRestoreWithPersistedSession(t *testing.T) {
	ctx := context.Background()
	s, st := newSessionFixture(t, &fakeUserService{})

	require.NoError(t, st.Set(ctx, storage.KeyToken, "t1"))
	require.NoError(t, st.Set(ctx, storage.KeyUser, `{"id":"u1","name":"A","email":"a@b.com"}`))
	require.NoError(t, st.Set(ctx, storage.KeyOnboarding, "true"))

	require.NoError(t, s.Restore(ctx))

	state := s.Snapshot()
	require.True(t, state.IsAuthenticated)
	require.Equal(t, "u1", state.User.ID)
	require.Equal(t, "t1", state.Token)
	require.True(t, state.HasCompletedOnboarding)
	require.False(t, state.Loading)
}

func TestRestoreWithoutTokenStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	s, st := newSessionFixture(t, &fakeUserService{})

	// Onboarding flag alone does not make a session
	require.NoError(t, st.Set(ctx, storage.KeyOnboarding, "true"))

	require.NoError(t, s.Restore(ctx))

	state := s.Snapshot()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.True(t, state.HasCompletedOnboarding)
}

func TestRestoreWithCorruptUserStaysAnonymous(t *testing.T) {
	ctx := context.Background()
	s, st := newSessionFixture(t, &fakeUserService{})

	require.NoError(t, st.Set(ctx, storage.KeyToken, "t1"))
	require.NoError(t, st.Set(ctx, storage.KeyUser, "not json{"))

	require.NoError(t, s.Restore(ctx))
	require.False(t, s.Snapshot().IsAuthenticated)
}

func TestLogoutClearsSessionKeepsOnboarding(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserService{
		loginAuth: &domain.AuthData{User: domain.User{ID: "u1"}, Token: "tok1"},
		logoutErr: errors.New("backend unreachable"),
	}
	s, st := newSessionFixture(t, users)

	s.CompleteOnboarding(ctx)
	require.NoError(t, s.Login(ctx, "a@b.com", "x"))

	// Backend logout failure is swallowed, logout always succeeds locally
	require.NoError(t, s.Logout(ctx))
	require.Equal(t, 1, users.logoutCalls)

	state := s.Snapshot()
	require.False(t, state.IsAuthenticated)
	require.Nil(t, state.User)
	require.Empty(t, state.Token)
	require.True(t, state.HasCompletedOnboarding)

	token, err := st.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	require.Empty(t, token)

	onboarded, err := st.Get(ctx, storage.KeyOnboarding)
	require.NoError(t, err)
	require.Equal(t, "true", onboarded)
}

func TestLogoutWithoutTokenSkipsBackendCall(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserService{}
	s, _ := newSessionFixture(t, users)

	require.NoError(t, s.Logout(ctx))
	require.Equal(t, 0, users.logoutCalls)
}

func TestCompleteOnboardingPersistsImmediately(t *testing.T) {
	ctx := context.Background()
	s, st := newSessionFixture(t, &fakeUserService{})

	s.CompleteOnboarding(ctx)

	require.True(t, s.Snapshot().HasCompletedOnboarding)
	val, err := st.Get(ctx, storage.KeyOnboarding)
	require.NoError(t, err)
	require.Equal(t, "true", val)
}

func TestSubscribeNotifiesOnChange(t *testing.T) {
	ctx := context.Background()
	s, _ := newSessionFixture(t, &fakeUserService{})

	ch := s.Subscribe()
	s.CompleteOnboarding(ctx)

	select {
	case <-ch:
	default:
		t.Fatal("expected a change notification")
	}
}
