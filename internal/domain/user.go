package domain

import "time"

// User roles
const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
)

// User represents a registered account. Organizer accounts carry the
// additional organization profile fields; the upgrade is one-way.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`

	// Organizer profile, set on upgrade
	OrganizationName        string     `json:"organization_name,omitempty"`
	OrganizationType        string     `json:"organization_type,omitempty"`
	OrganizationDescription string     `json:"organization_description,omitempty"`
	OrganizationWebsite     string     `json:"organization_website,omitempty"`
	EventTypes              []string   `json:"event_types,omitempty"`
	OrganizerSince          *time.Time `json:"organizer_since,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOrganizer reports whether the user holds the organizer role
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}

// Admin represents an administrator account. Admins live in a separate
// identity space from regular users.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the resolved identity behind a request: either an admin or a
// regular user, never both. Login resolves an email through a single lookup
// in which the admin table wins, and user registration rejects emails held
// by an admin, so the two spaces stay disjoint.
type Principal struct {
	Admin *Admin
	User  *User
}

// IsAdmin reports whether the principal is an administrator
func (p *Principal) IsAdmin() bool {
	return p.Admin != nil
}

// ID returns the identifier of whichever identity is set
func (p *Principal) ID() string {
	if p.Admin != nil {
		return p.Admin.ID
	}
	if p.User != nil {
		return p.User.ID
	}
	return ""
}

// Email returns the email of whichever identity is set
func (p *Principal) Email() string {
	if p.Admin != nil {
		return p.Admin.Email
	}
	if p.User != nil {
		return p.User.Email
	}
	return ""
}

// Name returns the display name of whichever identity is set
func (p *Principal) Name() string {
	if p.Admin != nil {
		return p.Admin.Name
	}
	if p.User != nil {
		return p.User.Name
	}
	return ""
}

// Role returns the role claim value for token issuance
func (p *Principal) Role() string {
	if p.Admin != nil {
		return "admin"
	}
	if p.User != nil {
		return p.User.Role
	}
	return ""
}
