package domain

import "time"

// Role is the privilege level of a profile.
type Role string

const (
	RoleUser       Role = "user"
	RolePatrol     Role = "patrol"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superAdmin"
)

// roleLevels is the fixed privilege hierarchy: user < patrol < admin < superAdmin.
var roleLevels = map[Role]int{
	RoleUser:       1,
	RolePatrol:     2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// Valid reports whether r is one of the four recognised roles.
func (r Role) Valid() bool {
	_, ok := roleLevels[r]
	return ok
}

// Level returns the hierarchy level of r, or 0 for an unknown role.
func (r Role) Level() int {
	return roleLevels[r]
}

// AtLeast reports whether r sits at or above required in the hierarchy.
// An unknown required role is never satisfied.
func (r Role) AtLeast(required Role) bool {
	need := required.Level()
	return need > 0 && r.Level() >= need
}

// IsAdmin reports membership in {admin, superAdmin}.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the stored profile of an authenticated subject. ID is the subject id
// issued by the identity provider.
type User struct {
	ID          string    `json:"id" bson:"_id"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	Email       string    `json:"email" bson:"email"`
	PhotoURL    string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role        Role      `json:"role" bson:"role"`
	Points      int       `json:"points" bson:"points"`
	IsBanned    bool      `json:"isBanned" bson:"isBanned"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
	LastActive  time.Time `json:"lastActive" bson:"lastActive"`
}

// NewUser builds the profile created on a subject's first sign-in.
func NewUser(id, displayName, email, photoURL string, now time.Time) *User {
	return &User{
		ID:          id,
		DisplayName: displayName,
		Email:       email,
		PhotoURL:    photoURL,
		Role:        RoleUser,
		Points:      0,
		CreatedAt:   now,
		UpdatedAt:   now,
		LastActive:  now,
	}
}

// Caller is the authenticated principal of a request: the verified identity
// joined with its stored profile.
type Caller struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role
	Banned      bool
}

// CallerFromUser derives a Caller from a loaded profile.
func CallerFromUser(u *User) Caller {
	return Caller{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Banned:      u.IsBanned,
	}
}

// Identity is what the identity verifier yields for a valid credential.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Credential is a locally stored sign-in secret for the built-in identity provider.
type Credential struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	DisplayName  string    `bson:"displayName"`
	CreatedAt    time.Time `bson:"createdAt"`
}
