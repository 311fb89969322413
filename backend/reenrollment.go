package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apperrors "github.com/campushub/admission-portal/internal/errors"
)

// Re-enrollment status
const (
	ReenrollmentPending   = "PENDING"
	ReenrollmentValidated = "VALIDATED"
	ReenrollmentRefused   = "REFUSED"
)

// SchoolYear is an academic year students re-enroll into
type SchoolYear struct {
	ID     int64  `json:"id"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// Reenrollment is a student's re-enrollment request for a school year
type Reenrollment struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user"`
	UserName     string `json:"user_name,omitempty"`
	UserEmail    string `json:"user_email,omitempty"`
	YearID       int64  `json:"school_year"`
	YearLabel    string `json:"year_label,omitempty"`
	ExamID       *int64 `json:"exam,omitempty"`
	ExamName     string `json:"exam_name,omitempty"`
	CurrentLevel string `json:"current_level"`
	TargetLevel  string `json:"target_level"`
	DossierURL   string `json:"dossier_url,omitempty"`
	ReceiptURL   string `json:"receipt_url,omitempty"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submitted_at"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// ReenrollmentInput carries a new re-enrollment request. Dossier is required;
// Receipt is the optional payment slip.
type ReenrollmentInput struct {
	YearID       int64
	ExamID       int64
	CurrentLevel string
	TargetLevel  string
	Dossier      FilePart
	Receipt      *FilePart
}

// ReenrollmentFilters narrows the admin listing
type ReenrollmentFilters struct {
	Status      string
	TargetLevel string
	YearID      string
	Search      string
}

// Reenrollments is the re-enrollment API
type Reenrollments struct {
	d Doer
}

func NewReenrollments(d Doer) Reenrollments {
	return Reenrollments{d: d}
}

// Create submits (or resubmits) the current user's re-enrollment request
func (r Reenrollments) Create(ctx context.Context, input ReenrollmentInput) (*Reenrollment, error) {
	fields := map[string]string{
		"school_year":   strconv.FormatInt(input.YearID, 10),
		"exam":          strconv.FormatInt(input.ExamID, 10),
		"current_level": input.CurrentLevel,
		"target_level":  input.TargetLevel,
	}
	files := []FilePart{input.Dossier}
	if input.Receipt != nil {
		files = append(files, *input.Receipt)
	}

	var out Reenrollment
	if err := doMultipart(ctx, r.d, http.MethodPost, "/reenrollment/create/", fields, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine fetches the current user's re-enrollment request, nil when none exists
func (r Reenrollments) Mine(ctx context.Context) (*Reenrollment, error) {
	var out Reenrollment
	err := doJSON(ctx, r.d, http.MethodGet, "/reenrollment/mine/", nil, &out)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List lists re-enrollment requests, optionally filtered (admin surface)
func (r Reenrollments) List(ctx context.Context, filters ReenrollmentFilters) ([]Reenrollment, error) {
	query := url.Values{}
	if filters.Status != "" {
		query.Set("status", filters.Status)
	}
	if filters.TargetLevel != "" {
		query.Set("target_level", filters.TargetLevel)
	}
	if filters.YearID != "" {
		query.Set("school_year", filters.YearID)
	}
	if filters.Search != "" {
		query.Set("search", filters.Search)
	}
	path := "/reenrollment/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var out []Reenrollment
	if err := doJSON(ctx, r.d, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate approves a re-enrollment request (admin surface)
func (r Reenrollments) Validate(ctx context.Context, id int64) error {
	return doJSON(ctx, r.d, http.MethodPost, fmt.Sprintf("/reenrollment/%d/validate/", id), nil, nil)
}

// Refuse rejects a re-enrollment request (admin surface)
func (r Reenrollments) Refuse(ctx context.Context, id int64) error {
	return doJSON(ctx, r.d, http.MethodPost, fmt.Sprintf("/reenrollment/%d/refuse/", id), nil, nil)
}

// Years lists the school years open for re-enrollment
func (r Reenrollments) Years(ctx context.Context) ([]SchoolYear, error) {
	var out []SchoolYear
	if err := doJSON(ctx, r.d, http.MethodGet, "/reenrollment/years/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
