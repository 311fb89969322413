package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/campushub/admission-portal/session"
)

// PageData is the model every authenticated page template shares
type PageData struct {
	AppName string
	User    *session.Identity
	Error   string
	Message string
}

func (s *Server) pageData(r *http.Request) PageData {
	data := PageData{
		AppName: s.config.GetAppName(),
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
	}
	if m := managerFrom(r); m != nil {
		data.User = m.Identity()
	}
	return data
}

func redirectWithError(w http.ResponseWriter, r *http.Request, route, message string) {
	http.Redirect(w, r, route+"?error="+url.QueryEscape(message), http.StatusSeeOther)
}

func redirectWithMessage(w http.ResponseWriter, r *http.Request, route, message string) {
	http.Redirect(w, r, route+"?message="+url.QueryEscape(message), http.StatusSeeOther)
}

// formID parses a numeric form field (entity IDs in POST bodies)
func formID(r *http.Request, field string) (int64, error) {
	return strconv.ParseInt(r.FormValue(field), 10, 64)
}

// formValueOr returns the form value, falling back when the field is blank
func formValueOr(r *http.Request, field, fallback string) string {
	if v := r.FormValue(field); v != "" {
		return v
	}
	return fallback
}
