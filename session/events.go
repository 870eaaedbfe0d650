package session

import (
	"fmt"

	"github.com/inkwellhq/inkwell"
)

// event is the sealed set of occurrences that can alter session state. Every
// transition flows through apply so the state invariants live in exactly one
// place.
type event interface {
	sessionEvent()
}

// exchangeStarted marks the beginning of a login, registration, or
// verification exchange.
type exchangeStarted struct{}

// verifyStarted marks the beginning of a start-time verification of a stored
// credential.
type verifyStarted struct{}

// exchangeSucceeded carries the identity and credential returned by a
// successful login or registration exchange.
type exchangeSucceeded struct {
	user  inkwell.User
	token string
}

// verifySucceeded carries the identity confirmed for an already-held
// credential.
type verifySucceeded struct {
	user  inkwell.User
	token string
}

// exchangeFailed carries the human-readable reason an exchange was rejected.
// It always lands the session in Anonymous.
type exchangeFailed struct {
	message string
}

// exchangeEnded concludes an exchange that does not change authentication
// state, carrying an error message when the exchange was rejected.
type exchangeEnded struct {
	message string
}

// loggedOut unconditionally demotes the session to Anonymous.
type loggedOut struct{}

// userUpdated replaces the authenticated identity without touching the
// credential or the authentication state.
type userUpdated struct {
	user inkwell.User
}

// errorCleared discards any retained error message.
type errorCleared struct{}

func (exchangeStarted) sessionEvent()   {}
func (verifyStarted) sessionEvent()     {}
func (exchangeSucceeded) sessionEvent() {}
func (verifySucceeded) sessionEvent()   {}
func (exchangeFailed) sessionEvent()    {}
func (exchangeEnded) sessionEvent()     {}
func (loggedOut) sessionEvent()         {}
func (userUpdated) sessionEvent()       {}
func (errorCleared) sessionEvent()      {}

// apply is the single mutation point for session state. Callers must hold
// m.mu.
func (m *Manager) apply(ev event) {
	switch ev := ev.(type) {
	case exchangeStarted:
		m.loading = true
		m.errMsg = ""
	case verifyStarted:
		m.state = StateVerifying
		m.loading = true
		m.errMsg = ""
	case exchangeSucceeded:
		m.state = StateAuthenticated
		m.user = &ev.user
		m.token = ev.token
		m.loading = false
		m.errMsg = ""
	case verifySucceeded:
		m.state = StateAuthenticated
		m.user = &ev.user
		m.token = ev.token
		m.loading = false
		m.errMsg = ""
	case exchangeFailed:
		m.state = StateAnonymous
		m.user = nil
		m.token = ""
		m.loading = false
		m.errMsg = ev.message
	case exchangeEnded:
		m.loading = false
		m.errMsg = ev.message
	case loggedOut:
		m.state = StateAnonymous
		m.user = nil
		m.token = ""
		m.loading = false
	case userUpdated:
		m.user = &ev.user
		m.loading = false
	case errorCleared:
		m.errMsg = ""
	default:
		panic(fmt.Sprintf("unknown session event %T", ev))
	}
}
