package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// ExamResult is a published entrance examination result
type ExamResult struct {
	ID          int64   `json:"id"`
	ExamID      int64   `json:"exam"`
	ExamName    string  `json:"exam_name,omitempty"`
	UserID      int64   `json:"user"`
	FirstName   string  `json:"first_name,omitempty"`
	LastName    string  `json:"last_name,omitempty"`
	Email       string  `json:"email,omitempty"`
	Score       float64 `json:"score"`
	Rank        *int    `json:"rank,omitempty"`
	Admitted    bool    `json:"admitted"`
	PublishedAt string  `json:"published_at"`
}

// LevelResult is an end-of-year result for an enrolled student
type LevelResult struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user"`
	UserName  string  `json:"user_name,omitempty"`
	Level     int64   `json:"level"`
	LevelName string  `json:"level_name,omitempty"`
	YearID    int64   `json:"school_year"`
	YearLabel string  `json:"year_label,omitempty"`
	Average   float64 `json:"average"`
	Admitted  bool    `json:"admitted"`
	Remark    string  `json:"remark,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// MyResults bundles everything the current user can see on the results page
type MyResults struct {
	Exam   *ExamResult   `json:"exam,omitempty"`
	Levels []LevelResult `json:"levels,omitempty"`
}

// ImportReport summarizes a bulk results/graduates import
type ImportReport struct {
	Status   string   `json:"status"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// Results is the examination results API
type Results struct {
	d Doer
}

func NewResults(d Doer) Results {
	return Results{d: d}
}

// Mine fetches the current user's results (exam and/or level results)
func (r Results) Mine(ctx context.Context) (*MyResults, error) {
	var out MyResults
	if err := doJSON(ctx, r.d, http.MethodGet, "/admission/results/mine/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByExam lists published results for one exam session (admin surface)
func (r Results) ByExam(ctx context.Context, examID int64) ([]ExamResult, error) {
	var out []ExamResult
	path := fmt.Sprintf("/admission/results/exam/%d/", examID)
	if err := doJSON(ctx, r.d, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// List lists all published exam results (admin surface)
func (r Results) List(ctx context.Context) ([]ExamResult, error) {
	var out []ExamResult
	if err := doJSON(ctx, r.d, http.MethodGet, "/admission/results/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LevelResults lists all level results (admin surface)
func (r Results) LevelResults(ctx context.Context) ([]LevelResult, error) {
	var out []LevelResult
	if err := doJSON(ctx, r.d, http.MethodGet, "/admission/results/levels/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Import uploads a results file; the backend reports per-row errors without
// aborting the whole import.
func (r Results) Import(ctx context.Context, filename string, content io.Reader) (*ImportReport, error) {
	files := []FilePart{{Field: "file", Filename: filename, Content: content}}
	var out ImportReport
	if err := doMultipart(ctx, r.d, http.MethodPost, "/admission/results/import/", nil, files, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
