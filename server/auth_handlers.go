package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/campushub/admission-portal/session"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName  string
	Error    string
	Message  string
	Username string // Preserve username on error
}

// LoginPageHandler displays the login page (GET /login)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("login.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse login template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			AppName:  s.config.GetAppName(),
			Error:    r.URL.Query().Get("error"),
			Message:  r.URL.Query().Get("message"),
			Username: r.URL.Query().Get("username"),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render login template")
			http.Error(w, "Failed to render login page", http.StatusInternalServerError)
		}
	}
}

// LoginSubmissionHandler processes the login form submission
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		m := s.manager(w, r)
		result := m.Login(r.Context(), username, password)
		if !result.Success {
			target := RouteLogin + "?error=" + url.QueryEscape(result.Message) +
				"&username=" + url.QueryEscape(username)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, m.Role().HomeRoute(), http.StatusSeeOther)
	}
}

// RegisterPageData contains data for rendering the registration page
type RegisterPageData struct {
	AppName string
	Error   string
	Form    url.Values // Preserve submitted fields on error
}

// RegisterPageHandler displays the registration page (GET /register)
func (s *Server) RegisterPageHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("register.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse register template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		data := RegisterPageData{
			AppName: s.config.GetAppName(),
			Error:   r.URL.Query().Get("error"),
			Form:    r.URL.Query(),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := tmpl.Execute(w, data); err != nil {
			log.Err(err).Msg("Failed to render register template")
			http.Error(w, "Failed to render registration page", http.StatusInternalServerError)
		}
	}
}

// RegisterSubmissionHandler processes the registration form submission.
// Registration does not log the user in - they land on the login page.
func (s *Server) RegisterSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		role := session.RoleCandidate
		if r.FormValue("role") == string(session.RoleStudent) {
			role = session.RoleStudent
		}

		m := s.manager(w, r)
		result := m.Register(r.Context(), session.RegisterData{
			Username:  r.FormValue("username"),
			Email:     r.FormValue("email"),
			FirstName: r.FormValue("first_name"),
			LastName:  r.FormValue("last_name"),
			Password:  r.FormValue("password"),
			Password2: r.FormValue("password2"),
			Role:      role,
		})
		if !result.Success {
			target := RouteRegister + "?error=" + url.QueryEscape(result.Message) +
				"&username=" + url.QueryEscape(r.FormValue("username")) +
				"&email=" + url.QueryEscape(r.FormValue("email"))
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		http.Redirect(w, r, RouteLogin+"?message="+url.QueryEscape("Account created, you can sign in"), http.StatusSeeOther)
	}
}

// LogoutHandler ends the browser session. Logging out twice is harmless.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := s.manager(w, r)
		m.Logout(r.Context())
		http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
	}
}
