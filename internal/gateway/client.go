// Package gateway provides the client for the hosted identity gateway.
// All credential handling (password hashing, token issuance, token
// verification) is owned by the gateway; this package only calls it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tastebase/tastebase/internal/model"
)

const (
	// DialTimeout is the connection timeout.
	DialTimeout = 3 * time.Second
	// TLSHandshakeTimeout is the TLS negotiation timeout.
	TLSHandshakeTimeout = 3 * time.Second
	// ResponseHeaderTimeout is time to wait for response headers.
	ResponseHeaderTimeout = 5 * time.Second
)

// Config holds configuration for the gateway client.
type Config struct {
	BaseURL        string
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// Client talks to the identity gateway REST API.
// Safe for concurrent use.
type Client struct {
	baseURL        string
	anonKey        string
	serviceRoleKey string
	http           *http.Client
}

// Session is the result of a successful password sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
}

// New creates a gateway Client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL:        strings.TrimSuffix(cfg.BaseURL, "/"),
		anonKey:        cfg.AnonKey,
		serviceRoleKey: cfg.ServiceRoleKey,
		http:           newHTTPClient(timeout),
	}
}

// newHTTPClient creates an HTTP client configured for gateway calls.
// It has tight timeouts and does not follow redirects.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// gatewayUser is the user object returned by the gateway.
type gatewayUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// VerifyToken verifies a bearer token and resolves it to an identity.
// Invalid, expired, or revoked tokens return ErrInvalidToken with the
// gateway's detail attached for diagnostics.
func (c *Client) VerifyToken(ctx context.Context, token string) (*model.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway verify call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, readErrorDetail(resp.Body))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway verify returned status %d: %s", resp.StatusCode, readErrorDetail(resp.Body))
	}

	var user gatewayUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode gateway user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: gateway returned no subject id", ErrInvalidToken)
	}

	return &model.Identity{UserID: user.ID, Email: user.Email}, nil
}

// SignUp registers a new credential with the gateway.
// Returns the subject id assigned by the gateway.
func (c *Client) SignUp(ctx context.Context, email, password string) (*model.Identity, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.post(ctx, "/auth/v1/signup", c.anonKey, "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrSignUpRejected, readErrorDetail(resp.Body))
	}

	var user gatewayUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode sign-up response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: gateway returned no subject id", ErrSignUpRejected)
	}

	return &model.Identity{UserID: user.ID, Email: user.Email}, nil
}

// SignInWithPassword exchanges email+password for an access token.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}

	resp, err := c.post(ctx, "/auth/v1/token?grant_type=password", c.anonKey, "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, readErrorDetail(resp.Body))
	}

	var session struct {
		AccessToken string      `json:"access_token"`
		User        gatewayUser `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return nil, fmt.Errorf("%w: gateway returned incomplete session", ErrInvalidCredentials)
	}

	return &Session{AccessToken: session.AccessToken, UserID: session.User.ID}, nil
}

// SendPasswordReset asks the gateway to email a password reset link.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	resp, err := c.post(ctx, "/auth/v1/recover", c.anonKey, "", map[string]string{"email": email})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway recover returned status %d: %s", resp.StatusCode, readErrorDetail(resp.Body))
	}
	return nil
}

// post issues a JSON POST against the gateway.
// bearer overrides the apikey as Authorization when set.
func (c *Client) post(ctx context.Context, path, apikey, bearer string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", apikey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+apikey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway call failed: %w", err)
	}
	return resp, nil
}

// readErrorDetail extracts a human-readable error message from a gateway
// error body. The gateway uses several field names across endpoints.
func readErrorDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}

	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return string(raw)
	}

	for _, s := range []string{payload.Msg, payload.Message, payload.ErrorDescription, payload.Error} {
		if s != "" {
			return s
		}
	}
	return string(raw)
}
