package server_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/server"
)

func postForm(t *testing.T, s *server.Server, cookie *http.Cookie, route string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, route, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestAdminExamUpdateHandler(t *testing.T) {
	var got backend.ExamInput
	s, cookie := authedPortal(t, "ADMIN", func(mux *http.ServeMux) {
		mux.HandleFunc("PUT /admission/exams/5/", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprint(w, `{"id": 5, "name": "Entrance Exam 2026"}`)
		})
	})

	rec := postForm(t, s, cookie, server.RouteAdminExamUpdate, url.Values{
		"exam_id":     {"5"},
		"name":        {"Entrance Exam 2026"},
		"description": {"Autumn session"},
		"start_date":  {"2026-06-01"},
		"end_date":    {"2026-06-03"},
		"price":       {"25000"},
		"pass_mark":   {"10.5"},
		"status":      {backend.ExamUnavailable},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), server.RouteAdminExams+"?message=")
	require.Equal(t, "Entrance Exam 2026", got.Name)
	require.Equal(t, "2026-06-01", got.StartDate)
	require.Equal(t, float64(25000), got.Price)
	require.Equal(t, 10.5, got.PassMark)
	require.Equal(t, backend.ExamUnavailable, got.Status)
}

func TestAdminExamDeleteHandler(t *testing.T) {
	deleted := false
	s, cookie := authedPortal(t, "ADMIN", func(mux *http.ServeMux) {
		mux.HandleFunc("DELETE /admission/exams/5/", func(w http.ResponseWriter, r *http.Request) {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rec := postForm(t, s, cookie, server.RouteAdminExamDelete, url.Values{"exam_id": {"5"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), server.RouteAdminExams+"?message=")
	require.True(t, deleted)

	t.Run("bad id never reaches the backend", func(t *testing.T) {
		deleted = false
		rec := postForm(t, s, cookie, server.RouteAdminExamDelete, url.Values{"exam_id": {"abc"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Contains(t, rec.Header().Get("Location"), server.RouteAdminExams+"?error=")
		require.False(t, deleted)
	})
}

func TestAdminInstitutionUpdateHandler(t *testing.T) {
	var got backend.InstitutionInput
	s, cookie := authedPortal(t, "SUPERADMIN", func(mux *http.ServeMux) {
		mux.HandleFunc("GET /auth/institutions/3/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": 3, "code": "UY1", "name": "University One",
				"city": "Yaounde", "contact_email": "contact@uy1.example", "active": true}`)
		})
		mux.HandleFunc("PUT /auth/institutions/3/", func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			fmt.Fprint(w, `{"id": 3}`)
		})
	})

	// Only the name is submitted; the other fields keep their stored values.
	rec := postForm(t, s, cookie, server.RouteAdminInstitutionUpdate, url.Values{
		"institution_id": {"3"},
		"name":           {"University One, Yaounde"},
	})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), server.RouteAdminInstitutions+"?message=")
	require.Equal(t, "University One, Yaounde", got.Name)
	require.Equal(t, "UY1", got.Code)
	require.Equal(t, "Yaounde", got.City)
	require.Equal(t, "contact@uy1.example", got.ContactEmail)
	require.True(t, got.Active)
}

func TestAdminInstitutionDeleteHandler(t *testing.T) {
	deleted := false
	s, cookie := authedPortal(t, "SUPERADMIN", func(mux *http.ServeMux) {
		mux.HandleFunc("DELETE /auth/institutions/3/", func(w http.ResponseWriter, r *http.Request) {
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		})
	})

	rec := postForm(t, s, cookie, server.RouteAdminInstitutionDelete, url.Values{"institution_id": {"3"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), server.RouteAdminInstitutions+"?message=")
	require.True(t, deleted)
}
