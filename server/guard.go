package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/campushub/admission-portal/session"
)

// GuardState is the session manager's resolved state as the route guard
// sees it for one navigation attempt.
type GuardState struct {
	Loading       bool
	Authenticated bool
	Role          session.Role
}

// Decision is the route guard's verdict for one navigation attempt
type Decision int

const (
	// DecisionWait renders a neutral waiting state, no redirect yet
	DecisionWait Decision = iota
	// DecisionRender renders the requested content
	DecisionRender
	// DecisionRedirect sends the user to the returned target route
	DecisionRedirect
)

// Decide is the route guard's decision function. It is pure: the verdict
// depends only on the state and the target's allowed-role set, and it is
// evaluated fresh on every navigation attempt.
func Decide(state GuardState, allowed []session.Role) (Decision, string) {
	if state.Loading {
		return DecisionWait, ""
	}
	if !state.Authenticated {
		return DecisionRedirect, RouteLogin
	}
	if state.Role.In(allowed...) {
		return DecisionRender, ""
	}
	// Authenticated but not permitted here: send them to their own home,
	// never a blank or error page.
	return DecisionRedirect, state.Role.HomeRoute()
}

type contextKey string

const managerContextKey contextKey = "session_manager"

// managerFrom returns the session manager placed in the context by the guard
func managerFrom(r *http.Request) *session.Manager {
	m, _ := r.Context().Value(managerContextKey).(*session.Manager)
	return m
}

// RequireRoles is the route guard middleware. It initializes the session
// manager for the request, applies Decide against the route's allowed-role
// set, and either renders, waits, or redirects. It never calls the backend
// itself beyond what initialization resolves.
func (s *Server) RequireRoles(allowed ...session.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			m := s.manager(w, r)
			if err := m.Initialize(r.Context()); err != nil {
				// Only a broken token store lands here
				log.Err(err).Msg("Session initialization failed")
				http.Error(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
				return
			}

			state := GuardState{
				Loading:       !m.Ready(),
				Authenticated: m.Authenticated(),
				Role:          m.Role(),
			}
			decision, target := Decide(state, allowed)
			switch decision {
			case DecisionRedirect:
				http.Redirect(w, r, target, http.StatusSeeOther)
			case DecisionWait:
				w.Header().Set("Content-Type", contentTypeHTML)
				w.Header().Set("Refresh", "1")
				_, _ = w.Write([]byte("<!DOCTYPE html><title>Loading</title><p>Loading…</p>"))
			default:
				ctx := context.WithValue(r.Context(), managerContextKey, m)
				next(w, r.WithContext(ctx))
			}
		}
	}
}
