package server_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/internal/config"
	"github.com/campushub/admission-portal/server"
	"github.com/campushub/admission-portal/session"
	"github.com/campushub/admission-portal/session/tokenstore"
)

func TestDecide(t *testing.T) {
	studentPages := []session.Role{session.RoleCandidate, session.RoleStudent}
	adminPages := []session.Role{session.RoleAdmin, session.RoleSuperAdmin}

	cases := []struct {
		name       string
		state      server.GuardState
		allowed    []session.Role
		want       server.Decision
		wantTarget string
	}{
		{
			name:    "loading waits without redirecting",
			state:   server.GuardState{Loading: true},
			allowed: studentPages,
			want:    server.DecisionWait,
		},
		{
			name:       "unauthenticated goes to login",
			state:      server.GuardState{Authenticated: false},
			allowed:    studentPages,
			want:       server.DecisionRedirect,
			wantTarget: server.RouteLogin,
		},
		{
			name:    "allowed role renders",
			state:   server.GuardState{Authenticated: true, Role: session.RoleStudent},
			allowed: studentPages,
			want:    server.DecisionRender,
		},
		{
			name:       "candidate on an admin page goes to the student home",
			state:      server.GuardState{Authenticated: true, Role: session.RoleCandidate},
			allowed:    adminPages,
			want:       server.DecisionRedirect,
			wantTarget: server.RouteStudentHome,
		},
		{
			name:       "admin on a student page goes to the admin home",
			state:      server.GuardState{Authenticated: true, Role: session.RoleAdmin},
			allowed:    studentPages,
			want:       server.DecisionRedirect,
			wantTarget: server.RouteAdminHome,
		},
		{
			name:       "superadmin on a student page goes to the admin home",
			state:      server.GuardState{Authenticated: true, Role: session.RoleSuperAdmin},
			allowed:    studentPages,
			want:       server.DecisionRedirect,
			wantTarget: server.RouteAdminHome,
		},
		{
			name:       "authenticated with no usable role goes to the public home",
			state:      server.GuardState{Authenticated: true, Role: session.RoleNone},
			allowed:    studentPages,
			want:       server.DecisionRedirect,
			wantTarget: server.RouteHome,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, target := server.Decide(tc.state, tc.allowed)
			require.Equal(t, tc.want, decision)
			require.Equal(t, tc.wantTarget, target)
		})
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

// fakeAPI serves the profile endpoint with a fixed role
func fakeAPI(t *testing.T, role string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id": 1, "username": "u", "role": %q, "is_active": true}`, role)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRequireRoles(t *testing.T) {
	const sid = "11111111-2222-3333-4444-555555555555"

	t.Run("unauthenticated request is sent to login", func(t *testing.T) {
		api := fakeAPI(t, "ETUDIANT")
		s := server.New(config.New(), backend.New(api.URL), tokenstore.NewInMemoryStore())

		req := httptest.NewRequest(http.MethodGet, server.RouteStudentHome, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, server.RouteLogin, rec.Header().Get("Location"))
	})

	t.Run("student on an admin page is sent to the student home", func(t *testing.T) {
		api := fakeAPI(t, "ETUDIANT")
		store := tokenstore.NewInMemoryStore()
		access := signedToken(t, time.Now().Add(time.Hour))
		require.NoError(t, store.SetPair(t.Context(), sid, tokenstore.Pair{Access: access, Refresh: "r"}))

		s := server.New(config.New(), backend.New(api.URL), store)

		req := httptest.NewRequest(http.MethodGet, server.RouteAdminHome, nil)
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: sid})
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, server.RouteStudentHome, rec.Header().Get("Location"))
	})

	t.Run("student on a student page renders", func(t *testing.T) {
		api := fakeAPI(t, "ETUDIANT")
		store := tokenstore.NewInMemoryStore()
		access := signedToken(t, time.Now().Add(time.Hour))
		require.NoError(t, store.SetPair(t.Context(), sid, tokenstore.Pair{Access: access, Refresh: "r"}))

		s := server.New(config.New(), backend.New(api.URL), store)

		req := httptest.NewRequest(http.MethodGet, server.RouteStudentHome, nil)
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: sid})
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("re-enrollment is closed to candidates", func(t *testing.T) {
		api := fakeAPI(t, "CANDIDAT")
		store := tokenstore.NewInMemoryStore()
		access := signedToken(t, time.Now().Add(time.Hour))
		require.NoError(t, store.SetPair(t.Context(), sid, tokenstore.Pair{Access: access, Refresh: "r"}))

		s := server.New(config.New(), backend.New(api.URL), store)

		req := httptest.NewRequest(http.MethodGet, server.RouteStudentReenrollment, nil)
		req.AddCookie(&http.Cookie{Name: "portal_session", Value: sid})
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, server.RouteStudentHome, rec.Header().Get("Location"))
	})
}
