package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Institution is a school or university managed through the portal
type Institution struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"created_at"`
	UserCount    *int   `json:"user_count,omitempty"`
	AdminCount   *int   `json:"admin_count,omitempty"`
}

// InstitutionInput carries the writable institution fields
type InstitutionInput struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	City         string `json:"city,omitempty"`
	Address      string `json:"address,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Active       bool   `json:"active"`
}

// Institutions is the institution management API (superadmin surface)
type Institutions struct {
	d Doer
}

func NewInstitutions(d Doer) Institutions {
	return Institutions{d: d}
}

func (i Institutions) List(ctx context.Context) ([]Institution, error) {
	var out []Institution
	if err := doJSON(ctx, i.d, http.MethodGet, "/auth/institutions/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (i Institutions) Get(ctx context.Context, id int64) (*Institution, error) {
	var out Institution
	if err := doJSON(ctx, i.d, http.MethodGet, fmt.Sprintf("/auth/institutions/%d/", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (i Institutions) Create(ctx context.Context, input InstitutionInput) (*Institution, error) {
	var out Institution
	if err := doJSON(ctx, i.d, http.MethodPost, "/auth/institutions/", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (i Institutions) Update(ctx context.Context, id int64, input InstitutionInput) (*Institution, error) {
	var out Institution
	if err := doJSON(ctx, i.d, http.MethodPut, fmt.Sprintf("/auth/institutions/%d/", id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (i Institutions) Delete(ctx context.Context, id int64) error {
	return doJSON(ctx, i.d, http.MethodDelete, fmt.Sprintf("/auth/institutions/%d/", id), nil, nil)
}
