package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dealspot/client/internal/config"
	"dealspot/client/internal/storage"

	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, baseURL string) (*Gateway, storage.Store) {
	t.Helper()
	st := storage.NewFileStore(filepath.Join(t.TempDir(), "storage.json"), "test")
	gw := NewGateway(config.APIConfig{
		BaseURL:              baseURL,
		VersionPrefix:        "/api/v1",
		Timeout:              2,
		MaxRequestsPerSecond: 100,
	}, st)
	return gw, st
}

func envelope(data any) []byte {
	raw, _ := json.Marshal(map[string]any{
		"isSuccess": true,
		"message":   "ok",
		"data":      data,
	})
	return raw
}

func TestGatewayPrependsVersionPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(envelope([]string{}))
	}))
	defer srv.Close()

	gw, _ := newTestGateway(t, srv.URL)

	_, err := gw.Get(context.Background(), "/offers/getalloffers")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/offers/getalloffers", gotPath)

	// An already-prefixed path is left alone
	_, err = gw.Get(context.Background(), "/api/v1/offers/getalloffers")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/offers/getalloffers", gotPath)

	// A missing leading slash is normalized
	_, err = gw.Get(context.Background(), "offers/getalloffers")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/offers/getalloffers", gotPath)
}

func TestGatewayAttachesBearerTokenWhenPresent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write(envelope(nil))
	}))
	defer srv.Close()

	gw, st := newTestGateway(t, srv.URL)
	ctx := context.Background()

	_, err := gw.Get(ctx, "/offers/getalloffers")
	require.NoError(t, err)
	require.Empty(t, gotAuth, "no token stored, request must go out unauthenticated")

	require.NoError(t, st.Set(ctx, storage.KeyToken, "tok1"))
	_, err = gw.Get(ctx, "/offers/getalloffers")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok1", gotAuth)
}

func TestGatewayClearsSessionOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"isSuccess":false,"message":"token expired","data":null}`))
	}))
	defer srv.Close()

	gw, st := newTestGateway(t, srv.URL)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, storage.KeyToken, "tok1"))
	require.NoError(t, st.Set(ctx, storage.KeyUser, `{"id":"u1"}`))

	// Any endpoint triggers the wipe, not just auth calls
	_, err := gw.Get(ctx, "/offers/getalloffers")
	require.Error(t, err)
	require.True(t, IsUnauthorized(err))
	require.True(t, IsServer(err))

	token, getErr := st.Get(ctx, storage.KeyToken)
	require.NoError(t, getErr)
	require.Empty(t, token)
	user, getErr := st.Get(ctx, storage.KeyUser)
	require.NoError(t, getErr)
	require.Empty(t, user)
}

func TestGatewayServerErrorCarriesEnvelopeMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"isSuccess":false,"message":"invalid category id","data":null}`))
	}))
	defer srv.Close()

	gw, _ := newTestGateway(t, srv.URL)

	_, err := gw.Get(context.Background(), "/offers/getoffersbycategoryid/nope")
	require.Error(t, err)
	require.True(t, IsServer(err))
	require.Equal(t, "invalid category id", ErrorMessage(err, ""))
}

func TestGatewayRejectsUnsuccessfulEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"isSuccess":false,"message":"bad credentials","data":null}`))
	}))
	defer srv.Close()

	gw, _ := newTestGateway(t, srv.URL)

	_, err := gw.Post(context.Background(), "/users/login", map[string]string{"email": "a@b.com", "password": "x"})
	require.Error(t, err)
	require.True(t, IsServer(err))
	require.Equal(t, "bad credentials", ErrorMessage(err, ""))
}

func TestGatewayTimeoutKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write(envelope(nil))
	}))
	defer srv.Close()

	gw, _ := newTestGateway(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := gw.Get(ctx, "/offers/getalloffers")
	require.Error(t, err)
	require.True(t, IsTimeout(err), "expected timeout kind, got: %v", err)
	require.False(t, IsNetwork(err))
}

func TestGatewayNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	gw, _ := newTestGateway(t, srv.URL)

	_, err := gw.Get(context.Background(), "/offers/getalloffers")
	require.Error(t, err)
	require.True(t, IsNetwork(err), "expected network kind, got: %v", err)
	require.False(t, IsTimeout(err))
}
