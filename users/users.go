package users

import (
	"strings"
	"time"
)

// RoleType is the role claim carried in access tokens and on user records
type RoleType string

const (
	RoleAdmin           RoleType = "admin"            // Head office, sees everything
	RoleDistrictManager RoleType = "district_manager" // Manages the centers of one district
	RoleTrainingOfficer RoleType = "training_officer" // Oversees courses and instructors
	RoleDataEntry       RoleType = "data_entry"       // Registers students for a center
	RoleInstructor      RoleType = "instructor"       // Teaches assigned courses
)

var roles = []RoleType{RoleAdmin, RoleDistrictManager, RoleTrainingOfficer, RoleDataEntry, RoleInstructor}

// Roles returns every role the backend issues.
func Roles() []RoleType {
	out := make([]RoleType, len(roles))
	copy(out, roles)
	return out
}

// ParseRole matches s against the known roles.
func ParseRole(s string) (RoleType, bool) {
	for _, r := range roles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// CenterRef is the short form of a center embedded in a user record
type CenterRef struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	District *string `json:"district"`
}

type User struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Role        RoleType   `json:"role"`
	Center      *CenterRef `json:"center"`
	District    *string    `json:"district"`
	EPFNo       *string    `json:"epf_no"`
	PhoneNumber *string    `json:"phone_number"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	LastLogin   *time.Time `json:"last_login"`
}

// FullName joins first and last name, trimmed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// CreateRequest is the body of POST /api/users/
type CreateRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Role        RoleType `json:"role"`
	Center      *int     `json:"center,omitempty"`
	District    *string  `json:"district,omitempty"`
	EPFNo       *string  `json:"epf_no,omitempty"`
	PhoneNumber *string  `json:"phone_number,omitempty"`
}

// UpdateRequest is a partial update. Nil fields are left unchanged.
type UpdateRequest struct {
	Email       *string   `json:"email,omitempty"`
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	Role        *RoleType `json:"role,omitempty"`
	Center      *int      `json:"center,omitempty"`
	District    *string   `json:"district,omitempty"`
	EPFNo       *string   `json:"epf_no,omitempty"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	IsActive    *bool     `json:"is_active,omitempty"`
}

// ToggleStatusResult is returned when an instructor is activated or deactivated
type ToggleStatusResult struct {
	Detail     string `json:"detail"`
	IsActive   bool   `json:"is_active"`
	Instructor User   `json:"instructor"`
}

// AccountStatus reports whether the logged in account is still active
type AccountStatus struct {
	IsActive bool     `json:"is_active"`
	Email    string   `json:"email"`
	Role     RoleType `json:"role"`
	Message  string   `json:"message"`
}
