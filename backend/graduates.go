package backend

import (
	"context"
	"io"
	"net/http"
)

// Graduate is one row of the baccalaureate results registry, imported in bulk
// and matched against candidate registrations.
type Graduate struct {
	ID                 int64  `json:"id"`
	RegistrationNumber string `json:"registration_number"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	Admitted           bool   `json:"admitted"`
	SchoolYear         string `json:"school_year"`
}

// Graduates is the graduate registry API (admin surface)
type Graduates struct {
	d Doer
}

func NewGraduates(d Doer) Graduates {
	return Graduates{d: d}
}

func (g Graduates) List(ctx context.Context) ([]Graduate, error) {
	var out []Graduate
	if err := doJSON(ctx, g.d, http.MethodGet, "/admission/graduates/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Import uploads a registry file and returns the per-row import report
func (g Graduates) Import(ctx context.Context, filename string, content io.Reader) (*ImportReport, error) {
	files := []FilePart{{Field: "file", Filename: filename, Content: content}}
	var out ImportReport
	if err := doMultipart(ctx, g.d, http.MethodPost, "/admission/graduates/import/", nil, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
