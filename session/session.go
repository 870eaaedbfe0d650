// Package session implements the client-side authentication lifecycle: token
// acquisition, start-time verification, expiry-triggered demotion, and
// profile updates, with the credential persisted across restarts through a
// TokenStore.
package session

import (
	"context"
	"sync"

	"github.com/inkwellhq/inkwell"
	"github.com/inkwellhq/inkwell/api"
)

// State identifies where the session is in its lifecycle.
type State int

const (
	// StateIdle is the state before Start has been invoked.
	StateIdle State = iota
	// StateVerifying is the state while a stored credential is being
	// verified.
	StateVerifying
	// StateAuthenticated is the state while a verified credential and
	// identity are held.
	StateAuthenticated
	// StateAnonymous is the state when no valid credential is held.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateVerifying:
		return "VERIFYING"
	case StateAuthenticated:
		return "AUTHENTICATED"
	case StateAnonymous:
		return "ANONYMOUS"
	}
	return "UNKNOWN"
}

// Snapshot is a point-in-time copy of session state.
type Snapshot struct {
	State         State
	User          *inkwell.User
	Token         string
	Authenticated bool
	Loading       bool
	Err           string
}

// Outcome reports whether a trigger's exchange succeeded and carries a
// human-readable message either way. Triggers never panic and never return
// raw transport errors; failures land here and in the retained error string.
type Outcome struct {
	OK      bool
	Message string
}

const busyMessage = "another exchange is already in flight"

// Manager is the single source of truth for "is the caller logged in, as
// whom, with what credential." Exactly one verification, login,
// registration, or logout exchange may be in flight at a time; triggers
// issued while one is outstanding fail fast rather than interleave.
type Manager struct {
	client api.Client
	tokens TokenStore

	mu      sync.Mutex
	state   State
	user    *inkwell.User
	token   string
	loading bool
	errMsg  string
}

// NewManager returns a Manager in the Idle state. It registers itself for
// the client's authentication-failure signal so a rejected or expired
// credential observed by ANY exchange demotes the session, no matter which
// operation triggered it.
func NewManager(client api.Client, tokens TokenStore) *Manager {
	m := &Manager{
		client: client,
		tokens: tokens,
		state:  StateIdle,
	}
	client.OnUnauthenticated(m.handleUnauthenticated)
	return m
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	var user *inkwell.User
	if m.user != nil {
		userCopy := *m.user
		user = &userCopy
	}
	return Snapshot{
		State:         m.state,
		User:          user,
		Token:         m.token,
		Authenticated: m.state == StateAuthenticated,
		Loading:       m.loading,
		Err:           m.errMsg,
	}
}

// Start restores the session from the durable credential slot. A stored
// credential is verified against the API; a vacant slot demotes directly to
// Anonymous without any exchange.
func (m *Manager) Start(ctx context.Context) Outcome {
	token, err := m.tokens.Load()
	if err != nil {
		m.mu.Lock()
		m.apply(exchangeFailed{message: err.Error()})
		m.mu.Unlock()
		return Outcome{Message: err.Error()}
	}
	if token == "" {
		m.mu.Lock()
		m.apply(loggedOut{})
		m.mu.Unlock()
		return Outcome{OK: true}
	}
	if !m.begin(verifyStarted{}) {
		return Outcome{Message: busyMessage}
	}
	m.client.SetToken(token)
	user, err := m.client.Auth().Verify(ctx)
	if err != nil {
		message := messageFromErr(err)
		m.demote(message)
		return Outcome{Message: message}
	}
	m.mu.Lock()
	m.apply(verifySucceeded{user: user, token: token})
	m.mu.Unlock()
	return Outcome{OK: true}
}

// Login exchanges credentials for a fresh token and identity. On failure the
// session is Anonymous and any stored credential has been cleared; a stale
// credential from a prior session must not survive a failed login.
func (m *Manager) Login(ctx context.Context, email, password string) Outcome {
	if !m.begin(exchangeStarted{}) {
		return Outcome{Message: busyMessage}
	}
	authResp, err := m.client.Auth().Login(
		ctx,
		inkwell.Credentials{
			Email:    email,
			Password: password,
		},
	)
	if err != nil {
		message := messageFromErr(err)
		m.demote(message)
		return Outcome{Message: message}
	}
	return m.completeExchange(authResp)
}

// Register creates a new account and authenticates as it. Outcomes mirror
// Login.
func (m *Manager) Register(
	ctx context.Context,
	registration inkwell.Registration,
) Outcome {
	if !m.begin(exchangeStarted{}) {
		return Outcome{Message: busyMessage}
	}
	authResp, err := m.client.Auth().Register(ctx, registration)
	if err != nil {
		message := messageFromErr(err)
		m.demote(message)
		return Outcome{Message: message}
	}
	return m.completeExchange(authResp)
}

// Logout notifies the server best-effort and then unconditionally clears
// credential and identity. The clear step runs deferred so that a failed
// notification cannot leave the client stuck authenticated.
func (m *Manager) Logout(ctx context.Context) (outcome Outcome) {
	if !m.begin(exchangeStarted{}) {
		return Outcome{Message: busyMessage}
	}
	defer func() {
		if err := m.tokens.Clear(); err != nil {
			outcome = Outcome{Message: err.Error()}
		}
		m.client.SetToken("")
		m.mu.Lock()
		m.apply(loggedOut{})
		m.mu.Unlock()
	}()
	if err := m.client.Auth().Logout(ctx); err != nil {
		// Not a barrier to client-side logout
		return Outcome{OK: true, Message: messageFromErr(err)}
	}
	return Outcome{OK: true}
}

// UpdateUser shallow-merges the given fields into the authenticated
// identity. It never changes authentication state and is only legal while
// Authenticated.
func (m *Manager) UpdateUser(
	ctx context.Context,
	update inkwell.UserUpdate,
) Outcome {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.user == nil {
		m.mu.Unlock()
		return Outcome{Message: "not authenticated"}
	}
	if m.loading {
		m.mu.Unlock()
		return Outcome{Message: busyMessage}
	}
	userID := m.user.ID
	m.apply(exchangeStarted{})
	m.mu.Unlock()
	user, err := m.client.Users().Update(ctx, userID, update)
	if err != nil {
		message := messageFromErr(err)
		m.mu.Lock()
		m.apply(exchangeEnded{message: message})
		m.mu.Unlock()
		return Outcome{Message: message}
	}
	m.mu.Lock()
	m.apply(userUpdated{user: user})
	m.mu.Unlock()
	return Outcome{OK: true}
}

// ChangePassword replaces the authenticated user's password. Success does
// not alter session state; the current token remains valid.
func (m *Manager) ChangePassword(
	ctx context.Context,
	currentPassword string,
	newPassword string,
) Outcome {
	if !m.begin(exchangeStarted{}) {
		return Outcome{Message: busyMessage}
	}
	err := m.client.Auth().ChangePassword(
		ctx,
		inkwell.PasswordChange{
			CurrentPassword: currentPassword,
			NewPassword:     newPassword,
		},
	)
	message := ""
	if err != nil {
		message = messageFromErr(err)
	}
	m.mu.Lock()
	m.apply(exchangeEnded{message: message})
	m.mu.Unlock()
	if err != nil {
		return Outcome{Message: message}
	}
	return Outcome{OK: true, Message: "Password changed successfully"}
}

// ClearError discards any retained error message.
func (m *Manager) ClearError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(errorCleared{})
}

// begin applies the given event unless an exchange is already in flight.
func (m *Manager) begin(ev event) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loading {
		return false
	}
	m.apply(ev)
	return true
}

// completeExchange persists and attaches the returned credential and settles
// the session as Authenticated.
func (m *Manager) completeExchange(authResp inkwell.AuthResponse) Outcome {
	if err := m.tokens.Store(authResp.Token); err != nil {
		m.demote(err.Error())
		return Outcome{Message: err.Error()}
	}
	m.client.SetToken(authResp.Token)
	m.mu.Lock()
	m.apply(exchangeSucceeded{user: authResp.User, token: authResp.Token})
	m.mu.Unlock()
	return Outcome{OK: true, Message: authResp.Message}
}

// demote lands the session in Anonymous with the given error retained,
// clearing both the durable slot and the client's attached credential.
func (m *Manager) demote(message string) {
	m.tokens.Clear() // nolint: errcheck
	m.client.SetToken("")
	m.mu.Lock()
	m.apply(exchangeFailed{message: message})
	m.mu.Unlock()
}

// handleUnauthenticated receives the client's authentication-failure signal.
func (m *Manager) handleUnauthenticated(err *inkwell.ErrAuthentication) {
	m.demote(err.Message)
}

// messageFromErr prefers the server's own message over transport wrapping.
func messageFromErr(err error) string {
	switch e := err.(type) {
	case *inkwell.ErrAuthentication:
		return e.Message
	case *inkwell.ErrAuthorization:
		return e.Error()
	case *inkwell.ErrBadRequest:
		return e.Error()
	case *inkwell.ErrNotFound:
		return e.Error()
	case *inkwell.ErrConflict:
		return e.Error()
	case *inkwell.ErrInternalServer:
		return e.Error()
	}
	return err.Error()
}
