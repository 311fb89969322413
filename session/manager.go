// Package session owns the token lifecycle and the identity derived from it.
// A Manager is the single source of truth for "who is logged in and with what
// privileges" within one browser session.
package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/pkg/errors"

	"github.com/campushub/admission-portal/backend"
	apperrors "github.com/campushub/admission-portal/internal/errors"
	"github.com/campushub/admission-portal/session/tokenstore"
)

// Messages surfaced near forms for expected failures
const (
	msgInvalidCredentials = "Invalid username or password"
	msgConnectionFailed   = "Unable to reach the server, please try again"
	msgProfileUnavailable = "Could not load your profile"
	msgRegistrationFailed = "Registration failed"
)

// Result is the outcome of an operation whose failure is expected and
// user-visible (login, registration). Expected failures never surface as
// errors - the message is shown near the form.
type Result struct {
	Success bool
	Message string
}

func success() Result {
	return Result{Success: true}
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

// RegisterData carries the self-registration form. Role must be
// RoleCandidate or RoleStudent.
type RegisterData struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Password2 string
	Role      Role
}

// Manager owns one browser session's token pair and derived identity.
// It is created per request; the token store is the only durable state.
type Manager struct {
	api   *backend.Client
	store tokenstore.Store
	sid   string

	refreshMu sync.Mutex // serializes overlapping refresh attempts

	identity *Identity
	ready    bool
}

var _ backend.Doer = (*Manager)(nil)

// NewManager binds a manager to a browser-session ID
func NewManager(api *backend.Client, store tokenstore.Store, sessionID string) *Manager {
	return &Manager{
		api:   api,
		store: store,
		sid:   sessionID,
	}
}

func (m *Manager) SessionID() string { return m.sid }

// Ready reports whether Initialize has finished. The route guard renders a
// waiting state until it has.
func (m *Manager) Ready() bool { return m.ready }

// Identity returns the authenticated identity, nil when unauthenticated
func (m *Manager) Identity() *Identity { return m.identity }

// Role returns the current role, RoleNone when unauthenticated
func (m *Manager) Role() Role {
	if m.identity == nil {
		return RoleNone
	}
	return m.identity.Role
}

func (m *Manager) Authenticated() bool { return m.identity != nil }

// Initialize resolves the persisted token pair into an identity. Every
// failure path (expired tokens, rejected profile fetch, network) resolves to
// "unauthenticated" with the pair cleared; only a broken token store is an
// error.
func (m *Manager) Initialize(ctx context.Context) error {
	pair, err := m.store.Pair(ctx, m.sid)
	if err != nil {
		return errors.Wrap(err, "[Initialize] reading token pair")
	}

	switch {
	case pair.Access == "":
		m.identity = nil

	case !IsExpired(pair.Access):
		m.identity = m.identityForToken(ctx, pair.Access)

	case pair.Refresh != "":
		// Access token expired, try the refresh flow before giving up
		if err := m.Refresh(ctx); err != nil {
			m.identity = nil
			break
		}
		refreshed, err := m.store.Pair(ctx, m.sid)
		if err != nil {
			return errors.Wrap(err, "[Initialize] re-reading token pair")
		}
		m.identity = m.identityForToken(ctx, refreshed.Access)

	default:
		// Expired access token with no refresh token is dead weight
		_ = m.store.Clear(ctx, m.sid)
		m.identity = nil
	}

	m.ready = true
	return nil
}

// identityForToken fetches the profile for an access token. Any failure
// clears the persisted pair and yields no identity.
func (m *Manager) identityForToken(ctx context.Context, access string) *Identity {
	profile, err := m.api.FetchProfile(ctx, access)
	if err != nil {
		_ = m.store.Clear(ctx, m.sid)
		return nil
	}
	return identityFromProfile(profile)
}

// Login authenticates against the backend. On success the token pair is
// persisted and the identity populated. Expected failures (bad credentials,
// unreachable backend) come back as a failure Result, never an error.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	pair, err := m.api.Login(ctx, username, password)
	if err != nil {
		return failure(userMessage(err, msgInvalidCredentials))
	}

	if err := m.store.SetPair(ctx, m.sid, tokenstore.Pair{Access: pair.Access, Refresh: pair.Refresh}); err != nil {
		return failure(msgConnectionFailed)
	}

	profile, err := m.api.FetchProfile(ctx, pair.Access)
	if err != nil {
		return failure(msgProfileUnavailable)
	}
	m.identity = identityFromProfile(profile)
	return success()
}

// Register creates a new account. It does not log the user in. Field-level
// validation errors from the backend arrive concatenated in the message.
func (m *Manager) Register(ctx context.Context, data RegisterData) Result {
	role, ok := registrationRole(data.Role)
	if !ok {
		return failure(msgRegistrationFailed)
	}

	err := m.api.Register(ctx, backend.RegisterRequest{
		Username:  data.Username,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Password:  data.Password,
		Password2: data.Password2,
		Role:      role,
	})
	if err != nil {
		return failure(userMessage(err, msgRegistrationFailed))
	}
	return success()
}

// Logout clears the persisted pair and resets the identity. It always
// succeeds locally and is safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	_ = m.store.Clear(ctx, m.sid)
	m.identity = nil
}

// Refresh exchanges the stored refresh token for a new access token. On any
// failure the whole pair is cleared - the session is unrecoverable.
func (m *Manager) Refresh(ctx context.Context) error {
	m.refreshMu.Lock()
	defer m.refreshMu.Unlock()

	pair, err := m.store.Pair(ctx, m.sid)
	if err != nil {
		return errors.Wrap(err, "[Refresh] reading token pair")
	}
	if pair.Refresh == "" {
		_ = m.store.Clear(ctx, m.sid)
		return apperrors.ErrInvalidRefreshToken
	}

	access, err := m.api.Refresh(ctx, pair.Refresh)
	if err != nil {
		_ = m.store.Clear(ctx, m.sid)
		m.identity = nil
		return errors.Wrap(err, "[Refresh] backend refresh")
	}

	if err := m.store.SetAccess(ctx, m.sid, access); err != nil {
		return errors.Wrap(err, "[Refresh] storing access token")
	}
	return nil
}

// Do issues an authenticated request against a relative backend path. On an
// unauthorized response it runs exactly one refresh-and-retry cycle; if the
// refresh fails the original unauthorized response is returned unmodified for
// the caller to handle.
func (m *Manager) Do(ctx context.Context, method, path string, header http.Header, body []byte) (*http.Response, error) {
	pair, err := m.store.Pair(ctx, m.sid)
	if err != nil {
		return nil, errors.Wrap(err, "[Do] reading token pair")
	}

	resp, err := m.send(ctx, method, path, header, body, pair.Access)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || pair.Refresh == "" {
		return resp, nil
	}

	if err := m.Refresh(ctx); err != nil {
		return resp, nil
	}

	refreshed, err := m.store.Pair(ctx, m.sid)
	if err != nil {
		return resp, nil
	}
	resp.Body.Close()
	return m.send(ctx, method, path, header, body, refreshed.Access)
}

func (m *Manager) send(ctx context.Context, method, path string, header http.Header, body []byte, access string) (*http.Response, error) {
	withAuth := http.Header{}
	for key, values := range header {
		withAuth[key] = values
	}
	if access != "" {
		withAuth.Set("Authorization", "Bearer "+access)
	}

	req, err := m.api.NewRequest(ctx, method, path, withAuth, body)
	if err != nil {
		return nil, err
	}
	return m.api.Do(req)
}

// userMessage maps an expected error onto the message shown near the form
func userMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallback
	}
	if apperrors.Is(err, apperrors.ErrConnection) || apperrors.Is(err, apperrors.ErrMalformedResponse) {
		return msgConnectionFailed
	}
	return fallback
}

func registrationRole(role Role) (string, bool) {
	switch role {
	case RoleCandidate:
		return "CANDIDAT", true
	case RoleStudent:
		return "ETUDIANT", true
	default:
		return "", false
	}
}
