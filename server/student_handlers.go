package server

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/campushub/admission-portal/backend"
	"github.com/campushub/admission-portal/session"
)

// StudentDashboardData backs the student/candidate dashboard
type StudentDashboardData struct {
	PageData
	Applications []backend.Application
	Pending      int
	Validated    int
	Results      *backend.MyResults
}

// StudentDashboardHandler renders the student/candidate dashboard
func (s *Server) StudentDashboardHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_dashboard.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student dashboard template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentDashboardData{PageData: s.pageData(r)}

		apps, err := backend.NewApplications(m).Mine(r.Context())
		if err != nil {
			data.Error = "Could not load your candidacies"
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

		if results, err := backend.NewResults(m).Mine(r.Context()); err == nil {
			data.Results = results
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentExamsData backs the available exams page
type StudentExamsData struct {
	PageData
	Exams []backend.Exam
}

// StudentExamsHandler lists the exam sessions open for registration
func (s *Server) StudentExamsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_exams.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student exams template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentExamsData{PageData: s.pageData(r)}

		exams, err := backend.NewExams(m).List(r.Context())
		if err != nil {
			data.Error = "Could not load the exam sessions"
		}
		// Only sessions currently open are offered
		for _, exam := range exams {
			if exam.Status == backend.ExamAvailable {
				data.Exams = append(data.Exams, exam)
			}
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentApplyHandler registers the user for an exam session
func (s *Server) StudentApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		examID, err := formID(r, "exam_id")
		if err != nil {
			redirectWithError(w, r, RouteStudentExams, "Invalid exam session")
			return
		}

		if _, err := backend.NewApplications(m).Apply(r.Context(), examID); err != nil {
			redirectWithError(w, r, RouteStudentExams, "Could not submit your candidacy")
			return
		}
		redirectWithMessage(w, r, RouteStudentApplications, "Candidacy submitted")
	}
}

// StudentApplicationsData backs the "my candidacies" page
type StudentApplicationsData struct {
	PageData
	Applications []backend.Application
}

// StudentApplicationsHandler lists the user's candidacies
func (s *Server) StudentApplicationsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_applications.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student applications template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentApplicationsData{PageData: s.pageData(r)}

		apps, err := backend.NewApplications(m).Mine(r.Context())
		if err != nil {
			data.Error = "Could not load your candidacies"
		}
		data.Applications = apps

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentCancelHandler cancels one of the user's candidacies
func (s *Server) StudentCancelHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := formID(r, "application_id")
		if err != nil {
			redirectWithError(w, r, RouteStudentApplications, "Invalid candidacy")
			return
		}

		if err := backend.NewApplications(m).Cancel(r.Context(), id); err != nil {
			redirectWithError(w, r, RouteStudentApplications, "Could not cancel the candidacy")
			return
		}
		redirectWithMessage(w, r, RouteStudentApplications, "Candidacy cancelled")
	}
}

// ConvocationData backs the printable convocation page
type ConvocationData struct {
	AppName     string
	User        *session.Identity
	Application backend.Application
	Exam        *backend.Exam
}

// StudentConvocationHandler renders the convocation for one of the user's
// candidacies. Only a validated candidacy has a convocation; everything else
// is sent back to the candidacies page.
func (s *Server) StudentConvocationHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("convocation.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse convocation template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			redirectWithError(w, r, RouteStudentApplications, "Invalid candidacy")
			return
		}

		// Looked up through the user's own list so one candidate can never
		// print another's convocation.
		apps, err := backend.NewApplications(m).Mine(r.Context())
		if err != nil {
			redirectWithError(w, r, RouteStudentApplications, "Could not load your candidacies")
			return
		}
		var app *backend.Application
		for i := range apps {
			if apps[i].ID == id {
				app = &apps[i]
				break
			}
		}
		if app == nil {
			redirectWithError(w, r, RouteStudentApplications, "Unknown candidacy")
			return
		}
		if app.Status != backend.ApplicationValidated {
			redirectWithError(w, r, RouteStudentApplications, "The convocation is available once the candidacy is validated")
			return
		}

		data := ConvocationData{
			AppName:     s.config.GetAppName(),
			User:        m.Identity(),
			Application: *app,
		}
		if exam, err := backend.NewExams(m).Get(r.Context(), app.ExamID); err == nil {
			data.Exam = exam
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentPaymentsData backs the payments page
type StudentPaymentsData struct {
	PageData
	Applications []backend.Application
}

// StudentPaymentsHandler shows payment status per candidacy and the proof
// upload form.
func (s *Server) StudentPaymentsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_payments.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student payments template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentPaymentsData{PageData: s.pageData(r)}

		apps, err := backend.NewApplications(m).Mine(r.Context())
		if err != nil {
			data.Error = "Could not load your candidacies"
		}
		data.Applications = apps

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentPaymentUploadHandler attaches a payment proof to a candidacy
func (s *Server) StudentPaymentUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			redirectWithError(w, r, RouteStudentPayments, "Invalid upload")
			return
		}
		id, err := formID(r, "application_id")
		if err != nil {
			redirectWithError(w, r, RouteStudentPayments, "Invalid candidacy")
			return
		}
		file, header, err := r.FormFile("payment_proof")
		if err != nil {
			redirectWithError(w, r, RouteStudentPayments, "A payment proof file is required")
			return
		}
		defer file.Close()

		if _, err := backend.NewApplications(m).UploadPaymentProof(r.Context(), id, header.Filename, file); err != nil {
			redirectWithError(w, r, RouteStudentPayments, "Could not upload the payment proof")
			return
		}
		redirectWithMessage(w, r, RouteStudentPayments, "Payment proof uploaded")
	}
}

// StudentResultsData backs the "my results" page
type StudentResultsData struct {
	PageData
	Results *backend.MyResults
}

// StudentResultsHandler shows the user's exam and level results
func (s *Server) StudentResultsHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_results.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student results template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentResultsData{PageData: s.pageData(r)}

		results, err := backend.NewResults(m).Mine(r.Context())
		if err != nil {
			data.Error = "Could not load your results"
		}
		data.Results = results

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentReenrollmentData backs the re-enrollment page
type StudentReenrollmentData struct {
	PageData
	Current *backend.Reenrollment
	Years   []backend.SchoolYear
	Exams   []backend.Exam
	// CanSubmit is true when there is no live request to show: a refused
	// request may be resubmitted.
	CanSubmit bool
}

// StudentReenrollmentHandler shows the current re-enrollment request and the
// submission form.
func (s *Server) StudentReenrollmentHandler() http.HandlerFunc {
	tmpl, err := ParseTemplate("student_reenrollment.html")
	if err != nil {
		log.Err(err).Msg("Failed to parse student reenrollment template")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		data := StudentReenrollmentData{PageData: s.pageData(r)}
		reenrollments := backend.NewReenrollments(m)

		current, err := reenrollments.Mine(r.Context())
		if err != nil {
			data.Error = "Could not load your re-enrollment"
		}
		data.Current = current
		data.CanSubmit = current == nil || current.Status == backend.ReenrollmentRefused

		if years, err := reenrollments.Years(r.Context()); err == nil {
			data.Years = years
		}
		if exams, err := backend.NewExams(m).List(r.Context()); err == nil {
			data.Exams = exams
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		_ = tmpl.Execute(w, data)
	}
}

// StudentReenrollmentSubmitHandler submits a re-enrollment request with its
// dossier (and optional payment slip).
func (s *Server) StudentReenrollmentSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := managerFrom(r)
		if err := r.ParseMultipartForm(20 << 20); err != nil {
			redirectWithError(w, r, RouteStudentReenrollment, "Invalid upload")
			return
		}

		yearID, err := formID(r, "school_year")
		if err != nil {
			redirectWithError(w, r, RouteStudentReenrollment, "A school year is required")
			return
		}
		examID, err := formID(r, "exam")
		if err != nil {
			redirectWithError(w, r, RouteStudentReenrollment, "An exam session is required")
			return
		}

		dossier, dossierHeader, err := r.FormFile("dossier")
		if err != nil {
			redirectWithError(w, r, RouteStudentReenrollment, "The dossier file is required")
			return
		}
		defer dossier.Close()

		input := backend.ReenrollmentInput{
			YearID:       yearID,
			ExamID:       examID,
			CurrentLevel: r.FormValue("current_level"),
			TargetLevel:  r.FormValue("target_level"),
			Dossier:      backend.FilePart{Field: "dossier", Filename: dossierHeader.Filename, Content: dossier},
		}

		if receipt, receiptHeader, err := r.FormFile("receipt"); err == nil {
			defer receipt.Close()
			input.Receipt = &backend.FilePart{Field: "receipt", Filename: receiptHeader.Filename, Content: receipt}
		}

		if _, err := backend.NewReenrollments(m).Create(r.Context(), input); err != nil {
			redirectWithError(w, r, RouteStudentReenrollment, "Could not submit the re-enrollment")
			return
		}
		redirectWithMessage(w, r, RouteStudentReenrollment, "Re-enrollment submitted")
	}
}
