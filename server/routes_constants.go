package server

// Route path constants
// All portal routes are defined here to ensure consistency and prevent typos
const (
	// Public routes
	RouteHome     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"

	// Auth form submissions
	RouteAuthLogin    = "/auth/login"
	RouteAuthRegister = "/auth/register"
	RouteAuthLogout   = "/auth/logout"

	// Student / candidate routes
	RouteStudentHome          = "/student"
	RouteStudentExams         = "/student/exams"
	RouteStudentApply         = "/student/exams/apply"
	RouteStudentApplications  = "/student/applications"
	RouteStudentCancel        = "/student/applications/cancel"
	RouteStudentConvocation   = "/student/applications/{id}/convocation"
	RouteStudentPayments      = "/student/payments"
	RouteStudentPaymentUpload = "/student/payments/upload"
	RouteStudentResults       = "/student/results"
	RouteStudentReenrollment  = "/student/reenrollment"

	// Admin routes
	RouteAdminHome                 = "/admin"
	RouteAdminExams                = "/admin/exams"
	RouteAdminExamUpdate           = "/admin/exams/update"
	RouteAdminExamDelete           = "/admin/exams/delete"
	RouteAdminApplications         = "/admin/applications"
	RouteAdminApplicationDecision  = "/admin/applications/decision"
	RouteAdminPayments             = "/admin/payments"
	RouteAdminExamResults          = "/admin/exam-results"
	RouteAdminLevelResults         = "/admin/level-results"
	RouteAdminReenrollments        = "/admin/reenrollments"
	RouteAdminReenrollmentDecision = "/admin/reenrollments/decision"
	RouteAdminGraduates            = "/admin/graduates"

	// Superadmin routes
	RouteAdminInstitutions      = "/admin/institutions"
	RouteAdminInstitutionUpdate = "/admin/institutions/update"
	RouteAdminInstitutionDelete = "/admin/institutions/delete"
	RouteAdminUsers             = "/admin/users"
)
