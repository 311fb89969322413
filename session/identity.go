package session

import "github.com/campushub/admission-portal/backend"

// Identity is the authenticated user as the rest of the portal sees it:
// the backend profile with the role mapped into the portal's closed Role set.
type Identity struct {
	ID          int64
	Username    string
	Email       string
	FirstName   string
	LastName    string
	Role        Role
	Institution *backend.Institution
}

func identityFromProfile(profile *backend.Profile) *Identity {
	return &Identity{
		ID:          profile.ID,
		Username:    profile.Username,
		Email:       profile.Email,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Role:        RoleFromBackend(profile.Role),
		Institution: profile.Institution,
	}
}

// FullName returns "First Last" for page headers
func (i *Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}
