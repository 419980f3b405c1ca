package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/TAIRProgramador03/gesneu-web-sub001/pkg/sessionstate"
)

// GenericAuthMessage is shown when the backend rejects credentials
// without a message of its own.
const GenericAuthMessage = "Usuario o contraseña incorrectos"

// Client performs the auth session operations against the proxy.
type Client struct {
	baseURL string
	http    *http.Client
	store   *sessionstate.Store
	logger  *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient supplies the outbound client. Pass the client the
// watchdog is installed on; a jar is added if it has none.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithSessionStore lets a successful authentication clear the
// session-error slot.
func WithSessionStore(s *sessionstate.Store) Option {
	return func(cl *Client) {
		cl.store = s
	}
}

// WithLogger supplies a logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New returns a client rooted at baseURL, the proxy's local prefix
// (e.g. "http://localhost:8080/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("authclient: base URL is required")
	}

	cl := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(cl)
	}

	if cl.http == nil {
		cl.http = &http.Client{}
	}
	if cl.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("authclient: cookie jar: %w", err)
		}
		cl.http.Jar = jar
	}

	return cl, nil
}

// Authenticate exchanges credentials for a session. On rejection it
// returns *AuthError with the backend's message when available. On
// success the session-error slot is cleared so every open view stops
// reporting the previous invalidation.
func (c *Client) Authenticate(ctx context.Context, usuario, password string) (*User, error) {
	payload, err := json.Marshal(map[string]string{
		"usuario":  usuario,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	resp, body, err := c.do(ctx, http.MethodPost, "/login", payload)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var user User
		if err := json.Unmarshal(body, &user); err != nil {
			return nil, fmt.Errorf("%w: decoding user: %v", ErrUnexpectedStatus, err)
		}
		if c.store != nil {
			c.store.Clear()
		}
		return &user, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{
			Message:    backendMessage(body),
			StatusCode: resp.StatusCode,
		}

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

// CheckSession resolves the current identity. Idempotent; used at
// application start and again right after sign-in. A 401 maps to
// ErrNoSession with a nil user.
func (c *Client) CheckSession(ctx context.Context) (*User, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/session", nil)
	if err != nil {
		return nil, err
	}
	return decodeSessionUser(resp.StatusCode, body)
}

// CheckSessionWithCookies resolves the identity carried by the given
// Cookie header values, relayed untouched. The client's own jar is
// bypassed in both directions: the lookup runs on behalf of an inbound
// request, and that visitor's session must not mix with the process's
// own. A 401 maps to ErrNoSession with a nil user.
func (c *Client) CheckSessionWithCookies(ctx context.Context, cookies []string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for _, v := range cookies {
		req.Header.Add("Cookie", v)
	}

	// Same transport, no jar.
	jarless := http.Client{
		Transport:     c.http.Transport,
		CheckRedirect: c.http.CheckRedirect,
		Timeout:       c.http.Timeout,
	}
	resp, err := jarless.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeSessionUser(resp.StatusCode, body)
}

// Terminate invalidates the backend session. The caller clears its
// local user state afterward.
func (c *Client) Terminate(ctx context.Context) error {
	resp, _, err := c.do(ctx, http.MethodPost, "/logout", nil)
	if err != nil {
		return err
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, nil, err
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, respBody, nil
}

func decodeSessionUser(status int, body []byte) (*User, error) {
	switch status {
	case http.StatusOK:
		var user User
		if err := json.Unmarshal(body, &user); err != nil {
			return nil, fmt.Errorf("%w: decoding user: %v", ErrUnexpectedStatus, err)
		}
		return &user, nil
	case http.StatusUnauthorized:
		return nil, ErrNoSession
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, status)
	}
}

// backendMessage extracts the backend's error text, falling back to a
// generic message.
func backendMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return GenericAuthMessage
}
