package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/internal/config"
	"github.com/campushub/admission-portal/session"
	"github.com/campushub/admission-portal/session/tokenstore"
)

const sessionCookieName = "portal_session"

// Server is the portal's HTTP surface: it renders the pages, owns the
// browser-session cookie, and gates every page through the route guard.
type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	api    *backend.Client
	store  tokenstore.Store
}

func New(config config.Config, api *backend.Client, store tokenstore.Store) *Server {
	s := &Server{
		mux:    http.NewServeMux(),
		config: config,
		api:    api,
		store:  store,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// sessionID returns the browser-session ID, minting the cookie when absent.
// The ID only scopes the token store - it carries no identity by itself.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

// manager creates the session manager for the request's browser session
func (s *Server) manager(w http.ResponseWriter, r *http.Request) *session.Manager {
	return session.NewManager(s.api, s.store, s.sessionID(w, r))
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
