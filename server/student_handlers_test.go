package server_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/internal/config"
	"github.com/campushub/admission-portal/server"
	"github.com/campushub/admission-portal/session/tokenstore"
)

const testSID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

// authedPortal builds a portal wired to a fake backend with a signed-in
// session. register adds the endpoints a test needs beyond the profile.
func authedPortal(t *testing.T, role string, register func(mux *http.ServeMux)) (*server.Server, *http.Cookie) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id": 1, "username": "amina", "first_name": "Amina", "last_name": "Diallo", "role": %q, "is_active": true}`, role)
	})
	if register != nil {
		register(mux)
	}
	api := httptest.NewServer(mux)
	t.Cleanup(api.Close)

	store := tokenstore.NewInMemoryStore()
	access := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, store.SetPair(t.Context(), testSID, tokenstore.Pair{Access: access, Refresh: "r"}))

	s := server.New(config.New(), backend.New(api.URL), store)
	return s, &http.Cookie{Name: "portal_session", Value: testSID}
}

func TestStudentConvocationHandler(t *testing.T) {
	mine := `[{"id": 9, "user": 1, "exam": 5, "exam_name": "Entrance Exam 2026",
		"applied_at": "2026-01-15", "status": %q, "registration_number": "REG-2026-009"}]`

	t.Run("validated candidacy renders the convocation", func(t *testing.T) {
		s, cookie := authedPortal(t, "CANDIDAT", func(mux *http.ServeMux) {
			mux.HandleFunc("GET /admission/applications/mine/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, mine, backend.ApplicationValidated)
			})
			mux.HandleFunc("GET /admission/exams/5/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"id": 5, "name": "Entrance Exam 2026", "start_date": "2026-06-01", "end_date": "2026-06-03"}`)
			})
		})

		req := httptest.NewRequest(http.MethodGet, "/student/applications/9/convocation", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		require.Contains(t, body, "Entrance Exam 2026")
		require.Contains(t, body, "REG-2026-009")
		require.Contains(t, body, "Amina Diallo")
		require.Contains(t, body, "2026-06-01")
	})

	t.Run("pending candidacy is refused", func(t *testing.T) {
		s, cookie := authedPortal(t, "CANDIDAT", func(mux *http.ServeMux) {
			mux.HandleFunc("GET /admission/applications/mine/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, mine, backend.ApplicationPending)
			})
		})

		req := httptest.NewRequest(http.MethodGet, "/student/applications/9/convocation", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), server.RouteStudentApplications+"?error=")
	})

	t.Run("candidacy outside the user's own list is refused", func(t *testing.T) {
		s, cookie := authedPortal(t, "CANDIDAT", func(mux *http.ServeMux) {
			mux.HandleFunc("GET /admission/applications/mine/", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `[]`)
			})
		})

		req := httptest.NewRequest(http.MethodGet, "/student/applications/9/convocation", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), server.RouteStudentApplications+"?error=")
	})
}
