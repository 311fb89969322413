package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/campushub/admission-portal/backend"
)

// AdminDashboardData backs the admin dashboard
type AdminDashboardData struct {
	PageData
	Exams        []backend.Exam
	Applications []backend.Application
	Pending      int
	Validated    int
}

// AdminDashboardHandler renders the admin dashboard with candidacy totals
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_dashboard.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin dashboard template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminDashboardData{PageData: s.pageData(r)}

		exams, err := backend.NewExams(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the exam sessions"
		}
		data.Exams = exams

		apps, err := backend.NewApplications(m).List(r.Context())
		if err != nil && data.Error == "" {
			data.Error = "Could not load the candidacies"
		}
		data.Applications = apps
		for _, app := range apps {
			switch app.Status {
			case backend.ApplicationPending:
				data.Pending++
			case backend.ApplicationValidated:
				data.Validated++
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminExamsData backs the exam session management page
type AdminExamsData struct {
	PageData
	Exams []backend.Exam
}

// AdminExamsHandler lists all exam sessions with the creation form
func (s *Server) AdminExamsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_exams.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin exams template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminExamsData{PageData: s.pageData(r)}

		exams, err := backend.NewExams(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the exam sessions"
		}
		data.Exams = exams

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminExamCreateHandler creates a new exam session from the form
func (s *Server) AdminExamCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminExams, "Invalid form data")
			return
		}

		price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
		passMark, _ := strconv.ParseFloat(r.FormValue("pass_mark"), 64)
		status := r.FormValue("status")
		if status == "" {
			status = backend.ExamAvailable
		}

		input := backend.ExamInput{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			StartDate:   r.FormValue("start_date"),
			EndDate:     r.FormValue("end_date"),
			Price:       price,
			PassMark:    passMark,
			Status:      status,
		}

		if _, err := backend.NewExams(m).Create(r.Context(), input); err != nil {
			redirectWithError(w, r, RouteAdminExams, "Could not create the exam session")
			return
		}
		redirectWithMessage(w, r, RouteAdminExams, "Exam session created")
	}
}

// AdminExamUpdateHandler applies the inline edit form to an exam session
func (s *Server) AdminExamUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminExams, "Invalid form data")
			return
		}
		id, err := formID(r, "exam_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminExams, "Invalid exam session")
			return
		}

		price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
		passMark, _ := strconv.ParseFloat(r.FormValue("pass_mark"), 64)
		input := backend.ExamInput{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			StartDate:   r.FormValue("start_date"),
			EndDate:     r.FormValue("end_date"),
			Price:       price,
			PassMark:    passMark,
			Status:      r.FormValue("status"),
		}

		if _, err := backend.NewExams(m).Update(r.Context(), id, input); err != nil {
			redirectWithError(w, r, RouteAdminExams, "Could not update the exam session")
			return
		}
		redirectWithMessage(w, r, RouteAdminExams, "Exam session updated")
	}
}

// AdminExamDeleteHandler removes an exam session
func (s *Server) AdminExamDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := formID(r, "exam_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminExams, "Invalid exam session")
			return
		}

		if err := backend.NewExams(m).Delete(r.Context(), id); err != nil {
			redirectWithError(w, r, RouteAdminExams, "Could not delete the exam session")
			return
		}
		redirectWithMessage(w, r, RouteAdminExams, "Exam session deleted")
	}
}

// AdminApplicationsData backs the candidacy review page
type AdminApplicationsData struct {
	PageData
	Applications []backend.Application
}

// AdminApplicationsHandler lists every candidacy for review
func (s *Server) AdminApplicationsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_applications.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin applications template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminApplicationsData{PageData: s.pageData(r)}

		apps, err := backend.NewApplications(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the candidacies"
		}
		data.Applications = apps

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminApplicationDecisionHandler validates or cancels a candidacy
func (s *Server) AdminApplicationDecisionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := formID(r, "application_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminApplications, "Invalid candidacy")
			return
		}

		apps := backend.NewApplications(m)
		switch r.FormValue("decision") {
		case "validate":
			err = apps.Validate(r.Context(), id)
		case "cancel":
			err = apps.Cancel(r.Context(), id)
		default:
			redirectWithError(w, r, RouteAdminApplications, "Unknown decision")
			return
		}
		if err != nil {
			redirectWithError(w, r, RouteAdminApplications, "Could not apply the decision")
			return
		}
		redirectWithMessage(w, r, RouteAdminApplications, "Decision applied")
	}
}

// AdminPaymentsData backs the payment verification page
type AdminPaymentsData struct {
	PageData
	Applications []backend.Application
}

// AdminPaymentsHandler lists candidacies that have a payment proof attached
func (s *Server) AdminPaymentsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_payments.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin payments template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminPaymentsData{PageData: s.pageData(r)}

		apps, err := backend.NewApplications(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the candidacies"
		}
		for _, app := range apps {
			if app.PaymentProofURL != "" {
				data.Applications = append(data.Applications, app)
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminExamResultsData backs the exam results page
type AdminExamResultsData struct {
	PageData
	Exams   []backend.Exam
	Results []backend.ExamResult
	Report  *backend.ImportReport
}

// AdminExamResultsHandler lists published exam results, optionally filtered by
// exam session via the ?exam query parameter.
func (s *Server) AdminExamResultsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_results.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin results template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminExamResultsData{PageData: s.pageData(r)}
		results := backend.NewResults(m)

		if exams, err := backend.NewExams(m).List(r.Context()); err == nil {
			data.Exams = exams
		}

		var rows []backend.ExamResult
		var err error
		if examID, perr := strconv.ParseInt(r.URL.Query().Get("exam"), 10, 64); perr == nil {
			rows, err = results.ByExam(r.Context(), examID)
		} else {
			rows, err = results.List(r.Context())
		}
		if err != nil {
			data.Error = "Could not load the results"
		}
		data.Results = rows

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminExamResultsImportHandler uploads a results file and reports row errors
func (s *Server) AdminExamResultsImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			redirectWithError(w, r, RouteAdminExamResults, "Invalid upload")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			redirectWithError(w, r, RouteAdminExamResults, "A results file is required")
			return
		}
		defer file.Close()

		report, err := backend.NewResults(m).Import(r.Context(), header.Filename, file)
		if err != nil {
			redirectWithError(w, r, RouteAdminExamResults, "Could not import the results")
			return
		}
		msg := fmt.Sprintf("Imported %d results", report.Imported)
		if len(report.Errors) > 0 {
			msg = fmt.Sprintf("Imported %d results, %d rows rejected", report.Imported, len(report.Errors))
		}
		redirectWithMessage(w, r, RouteAdminExamResults, msg)
	}
}

// AdminLevelResultsData backs the level results page
type AdminLevelResultsData struct {
	PageData
	Results []backend.LevelResult
}

// AdminLevelResultsHandler lists end-of-year results for enrolled students
func (s *Server) AdminLevelResultsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_level_results.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin level results template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminLevelResultsData{PageData: s.pageData(r)}

		rows, err := backend.NewResults(m).LevelResults(r.Context())
		if err != nil {
			data.Error = "Could not load the level results"
		}
		data.Results = rows

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminReenrollmentsData backs the re-enrollment review page
type AdminReenrollmentsData struct {
	PageData
	Reenrollments []backend.Reenrollment
	Years         []backend.SchoolYear
	Filters       backend.ReenrollmentFilters
}

// AdminReenrollmentsHandler lists re-enrollment requests with query filters
func (s *Server) AdminReenrollmentsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_reenrollments.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin reenrollments template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminReenrollmentsData{PageData: s.pageData(r)}
		reenrollments := backend.NewReenrollments(m)

		query := r.URL.Query()
		data.Filters = backend.ReenrollmentFilters{
			Status:      query.Get("status"),
			TargetLevel: query.Get("target_level"),
			YearID:      query.Get("school_year"),
			Search:      query.Get("search"),
		}

		rows, err := reenrollments.List(r.Context(), data.Filters)
		if err != nil {
			data.Error = "Could not load the re-enrollments"
		}
		data.Reenrollments = rows

		if years, err := reenrollments.Years(r.Context()); err == nil {
			data.Years = years
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminReenrollmentDecisionHandler validates or refuses a re-enrollment
func (s *Server) AdminReenrollmentDecisionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := formID(r, "reenrollment_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminReenrollments, "Invalid re-enrollment")
			return
		}

		reenrollments := backend.NewReenrollments(m)
		switch r.FormValue("decision") {
		case "validate":
			err = reenrollments.Validate(r.Context(), id)
		case "refuse":
			err = reenrollments.Refuse(r.Context(), id)
		default:
			redirectWithError(w, r, RouteAdminReenrollments, "Unknown decision")
			return
		}
		if err != nil {
			redirectWithError(w, r, RouteAdminReenrollments, "Could not apply the decision")
			return
		}
		redirectWithMessage(w, r, RouteAdminReenrollments, "Decision applied")
	}
}

// AdminGraduatesData backs the graduate registry page
type AdminGraduatesData struct {
	PageData
	Graduates []backend.Graduate
}

// AdminGraduatesHandler lists the baccalaureate registry
func (s *Server) AdminGraduatesHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_graduates.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin graduates template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminGraduatesData{PageData: s.pageData(r)}

		rows, err := backend.NewGraduates(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the graduate registry"
		}
		data.Graduates = rows

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminGraduatesImportHandler uploads a graduate registry file
func (s *Server) AdminGraduatesImportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			redirectWithError(w, r, RouteAdminGraduates, "Invalid upload")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			redirectWithError(w, r, RouteAdminGraduates, "A registry file is required")
			return
		}
		defer file.Close()

		report, err := backend.NewGraduates(m).Import(r.Context(), header.Filename, file)
		if err != nil {
			redirectWithError(w, r, RouteAdminGraduates, "Could not import the registry")
			return
		}
		msg := fmt.Sprintf("Imported %d graduates", report.Imported)
		if len(report.Errors) > 0 {
			msg = fmt.Sprintf("Imported %d graduates, %d rows rejected", report.Imported, len(report.Errors))
		}
		redirectWithMessage(w, r, RouteAdminGraduates, msg)
	}
}

// AdminInstitutionsData backs the institution management page
type AdminInstitutionsData struct {
	PageData
	Institutions []backend.Institution
}

// AdminInstitutionsHandler lists institutions with the creation form
func (s *Server) AdminInstitutionsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_institutions.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin institutions template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminInstitutionsData{PageData: s.pageData(r)}

		rows, err := backend.NewInstitutions(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the institutions"
		}
		data.Institutions = rows

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminInstitutionCreateHandler creates an institution from the form
func (s *Server) AdminInstitutionCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Invalid form data")
			return
		}

		input := backend.InstitutionInput{
			Code:         r.FormValue("code"),
			Name:         r.FormValue("name"),
			City:         r.FormValue("city"),
			Address:      r.FormValue("address"),
			ContactEmail: r.FormValue("contact_email"),
			Phone:        r.FormValue("phone"),
			Active:       true,
		}

		if _, err := backend.NewInstitutions(m).Create(r.Context(), input); err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Could not create the institution")
			return
		}
		redirectWithMessage(w, r, RouteAdminInstitutions, "Institution created")
	}
}

// AdminInstitutionUpdateHandler applies the inline edit form to an
// institution. Blank fields keep the stored value, so the form can submit a
// partial edit.
func (s *Server) AdminInstitutionUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseForm(); err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Invalid form data")
			return
		}
		id, err := formID(r, "institution_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Invalid institution")
			return
		}

		institutions := backend.NewInstitutions(m)
		current, err := institutions.Get(r.Context(), id)
		if err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Could not load the institution")
			return
		}

		active := current.Active
		if v := r.FormValue("active"); v != "" {
			active = v == "true"
		}
		input := backend.InstitutionInput{
			Code:         formValueOr(r, "code", current.Code),
			Name:         formValueOr(r, "name", current.Name),
			City:         formValueOr(r, "city", current.City),
			Address:      formValueOr(r, "address", current.Address),
			ContactEmail: formValueOr(r, "contact_email", current.ContactEmail),
			Phone:        formValueOr(r, "phone", current.Phone),
			Active:       active,
		}

		if _, err := institutions.Update(r.Context(), id, input); err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Could not update the institution")
			return
		}
		redirectWithMessage(w, r, RouteAdminInstitutions, "Institution updated")
	}
}

// AdminInstitutionDeleteHandler removes an institution
func (s *Server) AdminInstitutionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := formID(r, "institution_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Invalid institution")
			return
		}

		if err := backend.NewInstitutions(m).Delete(r.Context(), id); err != nil {
			redirectWithError(w, r, RouteAdminInstitutions, "Could not delete the institution")
			return
		}
		redirectWithMessage(w, r, RouteAdminInstitutions, "Institution deleted")
	}
}

// AdminUsersData backs the admin assignment page
type AdminUsersData struct {
	PageData
	Admins       []backend.User
	Institutions []backend.Institution
	SearchQuery  string
	SearchHits   []backend.User
}

// AdminUsersHandler lists institution admins and searches accounts to promote
func (s *Server) AdminUsersHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("admin_users.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse admin users template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := AdminUsersData{PageData: s.pageData(r)}
		users := backend.NewUsers(m)

		admins, err := users.ListAdmins(r.Context())
		if err != nil {
			data.Error = "Could not load the admin accounts"
		}
		data.Admins = admins

		if institutions, err := backend.NewInstitutions(m).List(r.Context()); err == nil {
			data.Institutions = institutions
		}

		if q := r.URL.Query().Get("q"); q != "" {
			data.SearchQuery = q
			if hits, err := users.Search(r.Context(), q); err == nil {
				data.SearchHits = hits
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// AdminUserRoleHandler assigns or revokes the admin role for an account
func (s *Server) AdminUserRoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		userID, err := formID(r, "user_id")
		if err != nil {
			redirectWithError(w, r, RouteAdminUsers, "Invalid account")
			return
		}

		users := backend.NewUsers(m)
		switch r.FormValue("action") {
		case "assign":
			institutionID, err := formID(r, "institution_id")
			if err != nil {
				redirectWithError(w, r, RouteAdminUsers, "An institution is required")
				return
			}
			if _, err := users.AssignAdmin(r.Context(), userID, institutionID); err != nil {
				redirectWithError(w, r, RouteAdminUsers, "Could not assign the admin role")
				return
			}
			redirectWithMessage(w, r, RouteAdminUsers, "Admin role assigned")
		case "revoke":
			if _, err := users.RevokeAdmin(r.Context(), userID); err != nil {
				redirectWithError(w, r, RouteAdminUsers, "Could not revoke the admin role")
				return
			}
			redirectWithMessage(w, r, RouteAdminUsers, "Admin role revoked")
		default:
			redirectWithError(w, r, RouteAdminUsers, "Unknown action")
		}
	}
}
