package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"dealspot/client/internal/config"
	"dealspot/client/internal/domain"
	"dealspot/client/internal/storage"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Gateway wraps every outbound backend call: it normalizes the path under
// the API version prefix, attaches the persisted bearer token, paces
// requests, and maps failures onto the timeout/network/server taxonomy.
// A 401 from any endpoint erases the persisted session as a side effect.
// The gateway never retries; retry policy belongs to callers.
type Gateway struct {
	rl         ratelimit.Limiter
	baseURL    string
	prefix     string
	httpClient *resty.Client
	store      storage.Store
}

func NewGateway(cfg config.APIConfig, store storage.Store) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20
	}
	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	prefix := cfg.VersionPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}

	httpClient := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Gateway{
		rl:         ratelimit.New(rps),
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		prefix:     prefix,
		httpClient: httpClient,
		store:      store,
	}
}

// Get issues a GET request against a backend path.
func (g *Gateway) Get(ctx context.Context, path string) (*domain.Envelope, error) {
	return g.Send(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON body against a backend path.
func (g *Gateway) Post(ctx context.Context, path string, body any) (*domain.Envelope, error) {
	return g.Send(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON body against a backend path.
func (g *Gateway) Put(ctx context.Context, path string, body any) (*domain.Envelope, error) {
	return g.Send(ctx, http.MethodPut, path, body)
}

// Send performs one backend call and returns the decoded envelope. Any
// error it returns is either an *APIError or a decode failure.
func (g *Gateway) Send(ctx context.Context, method, path string, body any) (*domain.Envelope, error) {
	g.rl.Take()

	url := g.baseURL + g.versioned(path)

	req := g.httpClient.R().SetContext(ctx)

	token, err := g.store.Get(ctx, storage.KeyToken)
	if err != nil {
		// Unreadable storage means we proceed unauthenticated
		log.Warnf("Failed to read token from storage: %v", err)
		token = ""
	}
	if token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.SetBody(body)
	}

	log.Debugf("[API] %s %s", method, url)

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, g.classify(ctx, err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		// The token is invalid or expired, revoke the local session so the
		// next restore lands in the anonymous state.
		if delErr := g.store.Delete(ctx, storage.KeyUser, storage.KeyToken); delErr != nil {
			log.Errorf("Failed to clear stored session after 401: %v", delErr)
		} else {
			log.Warnf("Unauthorized response from %s, cleared stored session", path)
		}
	}

	var env domain.Envelope
	decodeErr := json.Unmarshal(resp.Bytes(), &env)

	if resp.IsError() {
		message := resp.Status()
		if decodeErr == nil && env.Message != "" {
			message = env.Message
		}
		return nil, &APIError{Kind: KindServer, StatusCode: resp.StatusCode(), Message: message}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode response envelope from %s: %w", path, decodeErr)
	}

	if !env.IsSuccess {
		return nil, &APIError{Kind: KindServer, StatusCode: resp.StatusCode(), Message: env.Message}
	}

	return &env, nil
}

// versioned prepends the API version prefix to paths that do not already
// carry it.
func (g *Gateway) versioned(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasPrefix(path, g.prefix) {
		return path
	}
	return g.prefix + path
}

func (g *Gateway) classify(ctx context.Context, err error) error {
	if isTimeoutErr(ctx, err) {
		log.Debugf("[API] request timed out: %v", err)
		return &APIError{Kind: KindTimeout, Message: err.Error()}
	}
	log.Debugf("[API] transport failure: %v", err)
	return &APIError{Kind: KindNetwork, Message: err.Error()}
}

func isTimeoutErr(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return os.IsTimeout(err)
}
