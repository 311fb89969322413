package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Exam session availability
const (
	ExamAvailable   = "AVAILABLE"
	ExamUnavailable = "UNAVAILABLE"
)

// Exam is an entrance examination session candidates can register for
type Exam struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Price       float64 `json:"price"`
	PassMark    float64 `json:"pass_mark"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

// ExamInput carries the writable exam fields
type ExamInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Price       float64 `json:"price"`
	PassMark    float64 `json:"pass_mark"`
	Status      string  `json:"status"`
}

// Exams is the exam session API. Listing is public to authenticated users;
// mutation is the admin surface.
type Exams struct {
	d Doer
}

func NewExams(d Doer) Exams {
	return Exams{d: d}
}

func (e Exams) List(ctx context.Context) ([]Exam, error) {
	var out []Exam
	if err := doJSON(ctx, e.d, http.MethodGet, "/admission/exams/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e Exams) Get(ctx context.Context, id int64) (*Exam, error) {
	var out Exam
	if err := doJSON(ctx, e.d, http.MethodGet, fmt.Sprintf("/admission/exams/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e Exams) Create(ctx context.Context, input ExamInput) (*Exam, error) {
	var out Exam
	if err := doJSON(ctx, e.d, http.MethodPost, "/admission/exams/", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e Exams) Update(ctx context.Context, id int64, input ExamInput) (*Exam, error) {
	var out Exam
	if err := doJSON(ctx, e.d, http.MethodPut, fmt.Sprintf("/admission/exams/%d/", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (e Exams) Delete(ctx context.Context, id int64) error {
	return doJSON(ctx, e.d, http.MethodDelete, fmt.Sprintf("/admission/exams/%d/", id), nil, nil)
}
