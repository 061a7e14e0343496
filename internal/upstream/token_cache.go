package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"aad/internal/providers"
	"aad/internal/structures"

	"github.com/coder/quartz"
	json "github.com/goccy/go-json"
)

// expiryMargin is subtracted from the declared token lifetime so a token
// is never presented to the upstream moments before it lapses.
const expiryMargin = 60 * time.Second

type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenCache holds the single current access token and refreshes it via the
// OAuth refresh-token grant when absent or near expiry. The mutex spans the
// whole exchange, so concurrent segment fetches discovering an expired token
// trigger exactly one refresh.
type TokenCache struct {
	conf    *structures.Config
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	clock   quartz.Clock
	client  *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewTokenCache(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, clock quartz.Clock) TokenSource {
	return &TokenCache{
		conf:    conf,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
		client:  &http.Client{Timeout: conf.Upstream.Timeout},
	}
}

func (tc *TokenCache) Token(ctx context.Context) (string, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.accessToken != "" && tc.clock.Now().Before(tc.expiresAt) {
		return tc.accessToken, nil
	}

	token, err := tc.refresh(ctx)
	if err != nil {
		// Clear so the next caller starts a fresh exchange.
		tc.accessToken = ""
		tc.expiresAt = time.Time{}
		tc.metrics.IncTokenRefresh(false)
		return "", err
	}
	tc.metrics.IncTokenRefresh(true)
	return token, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

func (tc *TokenCache) refresh(ctx context.Context) (string, error) {
	up := tc.conf.Upstream
	if up.ClientID == "" || up.ClientSecret == "" || up.RefreshToken == "" {
		return "", &AuthError{Err: errors.New("refresh credentials not configured")}
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", up.ClientID)
	form.Set("client_secret", up.ClientSecret)
	form.Set("refresh_token", up.RefreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, up.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := tc.client.Do(req)
	if err != nil {
		return "", &AuthError{Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", &AuthError{Err: &HTTPStatusError{StatusCode: res.StatusCode}}
	}

	var payload tokenResponse
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", &AuthError{Err: err}
	}
	if payload.AccessToken == "" {
		return "", &AuthError{Err: errors.New("token endpoint returned no access_token")}
	}

	if payload.ExpiresIn <= 0 {
		payload.ExpiresIn = 3600
	}
	if payload.RefreshToken != "" && payload.RefreshToken != up.RefreshToken {
		// Persisting rotated refresh tokens belongs to the credential store.
		tc.logger.Warnf(providers.TypeAuth, "Upstream rotated the refresh token; credential store must be updated")
	}

	tc.accessToken = payload.AccessToken
	tc.expiresAt = tc.clock.Now().Add(time.Duration(payload.ExpiresIn) * time.Second).Add(-expiryMargin)
	tc.logger.Infof(providers.TypeAuth, "Access token refreshed, valid until %s", tc.expiresAt.UTC().Format(time.RFC3339))

	return tc.accessToken, nil
}
