package server

import (
	"net/http"

	"github.com/campushub/admission-portal/session"
)

func (s *Server) initRoutes() {
	studentRoles := []session.Role{session.RoleCandidate, session.RoleStudent}
	adminRoles := []session.Role{session.RoleAdmin, session.RoleSuperAdmin}
	superadminRoles := []session.Role{session.RoleSuperAdmin}

	s.RegisterRouteFunc("GET /{$}", s.IndexHandler())

	// LOGIN & REGISTRATION
	s.RegisterRouteFunc("GET "+RouteLogin, s.LoginPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthLogin, s.LoginSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteRegister, s.RegisterPageHandler())
	s.RegisterRouteFunc("POST "+RouteAuthRegister, s.RegisterSubmissionHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// Student / candidate routes
	s.guardedRoute("GET "+RouteStudentHome, s.StudentDashboardHandler(), studentRoles)
	s.guardedRoute("GET "+RouteStudentExams, s.StudentExamsHandler(), studentRoles)
	s.guardedRoute("POST "+RouteStudentApply, s.StudentApplyHandler(), studentRoles)
	s.guardedRoute("GET "+RouteStudentApplications, s.StudentApplicationsHandler(), studentRoles)
	s.guardedRoute("POST "+RouteStudentCancel, s.StudentCancelHandler(), studentRoles)
	s.guardedRoute("GET "+RouteStudentConvocation, s.StudentConvocationHandler(), studentRoles)
	s.guardedRoute("GET "+RouteStudentPayments, s.StudentPaymentsHandler(), studentRoles)
	s.guardedRoute("POST "+RouteStudentPaymentUpload, s.StudentPaymentUploadHandler(), studentRoles)
	s.guardedRoute("GET "+RouteStudentResults, s.StudentResultsHandler(), studentRoles)

	// Re-enrollment is for enrolled students only, not candidates
	s.guardedRoute("GET "+RouteStudentReenrollment, s.StudentReenrollmentHandler(), []session.Role{session.RoleStudent})
	s.guardedRoute("POST "+RouteStudentReenrollment, s.StudentReenrollmentSubmitHandler(), []session.Role{session.RoleStudent})

	// Admin routes
	s.guardedRoute("GET "+RouteAdminHome, s.AdminDashboardHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminExams, s.AdminExamsHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminExams, s.AdminExamCreateHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminExamUpdate, s.AdminExamUpdateHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminExamDelete, s.AdminExamDeleteHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminApplications, s.AdminApplicationsHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminApplicationDecision, s.AdminApplicationDecisionHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminPayments, s.AdminPaymentsHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminExamResults, s.AdminExamResultsHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminExamResults, s.AdminExamResultsImportHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminLevelResults, s.AdminLevelResultsHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminReenrollments, s.AdminReenrollmentsHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminReenrollmentDecision, s.AdminReenrollmentDecisionHandler(), adminRoles)
	s.guardedRoute("GET "+RouteAdminGraduates, s.AdminGraduatesHandler(), adminRoles)
	s.guardedRoute("POST "+RouteAdminGraduates, s.AdminGraduatesImportHandler(), adminRoles)

	// Superadmin routes
	s.guardedRoute("GET "+RouteAdminInstitutions, s.AdminInstitutionsHandler(), superadminRoles)
	s.guardedRoute("POST "+RouteAdminInstitutions, s.AdminInstitutionCreateHandler(), superadminRoles)
	s.guardedRoute("POST "+RouteAdminInstitutionUpdate, s.AdminInstitutionUpdateHandler(), superadminRoles)
	s.guardedRoute("POST "+RouteAdminInstitutionDelete, s.AdminInstitutionDeleteHandler(), superadminRoles)
	s.guardedRoute("GET "+RouteAdminUsers, s.AdminUsersHandler(), superadminRoles)
	s.guardedRoute("POST "+RouteAdminUsers, s.AdminUserRoleHandler(), superadminRoles)
}

// guardedRoute registers a role-gated HTML route with the standard middleware
func (s *Server) guardedRoute(pattern string, handler http.HandlerFunc, allowed []session.Role) {
	s.RegisterRouteHandler(pattern, ChainMiddleware(handler, s.HTMLMiddleware(s.RequireRoles(allowed...))...))
}
