package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Application (candidacy) status
const (
	ApplicationPending   = "PENDING"
	ApplicationValidated = "VALIDATED"
	ApplicationCancelled = "CANCELLED"
)

// Application is a candidacy for an exam session
type Application struct {
	ID                 int64  `json:"id"`
	UserID             int64  `json:"user"`
	Username           string `json:"username,omitempty"`
	FirstName          string `json:"first_name,omitempty"`
	LastName           string `json:"last_name,omitempty"`
	Email              string `json:"email,omitempty"`
	ExamID             int64  `json:"exam"`
	ExamName           string `json:"exam_name,omitempty"`
	AppliedAt          string `json:"applied_at"`
	Status             string `json:"status"`
	PaymentProofURL    string `json:"payment_proof_url,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
}

// Applications is the candidacy API
type Applications struct {
	d Doer
}

func NewApplications(d Doer) Applications {
	return Applications{d: d}
}

// Mine lists the current user's candidacies
func (a Applications) Mine(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := doJSON(ctx, a.d, http.MethodGet, "/admission/applications/mine/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List lists all candidacies (admin surface)
func (a Applications) List(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := doJSON(ctx, a.d, http.MethodGet, "/admission/applications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply registers the current user for an exam session
func (a Applications) Apply(ctx context.Context, examID int64) (*Application, error) {
	body := map[string]int64{"exam": examID}
	var out Application
	if err := doJSON(ctx, a.d, http.MethodPost, "/admission/applications/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Validate marks a candidacy as validated (admin surface)
func (a Applications) Validate(ctx context.Context, id int64) error {
	return doJSON(ctx, a.d, http.MethodPost, fmt.Sprintf("/admission/applications/%d/validate/", id), nil, nil)
}

// Cancel cancels a candidacy
func (a Applications) Cancel(ctx context.Context, id int64) error {
	return doJSON(ctx, a.d, http.MethodPost, fmt.Sprintf("/admission/applications/%d/cancel/", id), nil, nil)
}

// UploadPaymentProof attaches a payment proof document to a candidacy
func (a Applications) UploadPaymentProof(ctx context.Context, id int64, filename string, content io.Reader) (*Application, error) {
	files := []FilePart{{Field: "payment_proof", Filename: filename, Content: content}}
	var out Application
	path := fmt.Sprintf("/admission/applications/%d/payment-proof/", id)
	if err := doMultipart(ctx, a.d, http.MethodPost, path, nil, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
