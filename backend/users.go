package backend

import (
	"context"
	"net/http"
	"net/url"
)

// User is a portal account as listed on the admin surfaces
type User struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Role        string       `json:"role"`
	Active      bool         `json:"is_active"`
	Institution *Institution `json:"institution,omitempty"`
}

// Users is the user administration API (superadmin surface)
type Users struct {
	d Doer
}

func NewUsers(d Doer) Users {
	return Users{d: d}
}

// ListAdmins lists all accounts holding the admin role
func (u Users) ListAdmins(ctx context.Context) ([]User, error) {
	var out []User
	if err := doJSON(ctx, u.d, http.MethodGet, "/auth/admins/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignAdmin makes a user the admin of an institution
func (u Users) AssignAdmin(ctx context.Context, userID, institutionID int64) (*User, error) {
	body := map[string]int64{"user_id": userID, "institution_id": institutionID}
	var out struct {
		User User `json:"user"`
	}
	if err := doJSON(ctx, u.d, http.MethodPost, "/auth/assign-admin/", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// RevokeAdmin removes a user's admin role
func (u Users) RevokeAdmin(ctx context.Context, userID int64) (*User, error) {
	body := map[string]int64{"user_id": userID}
	var out struct {
		User User `json:"user"`
	}
	if err := doJSON(ctx, u.d, http.MethodPost, "/auth/revoke-admin/", body, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Search finds users by username or email fragment, for admin assignment
func (u Users) Search(ctx context.Context, query string) ([]User, error) {
	var out []User
	path := "/auth/users/search/?q=" + url.QueryEscape(query)
	if err := doJSON(ctx, u.d, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
