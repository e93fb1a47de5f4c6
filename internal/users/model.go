package users

import "time"

// Clinician roles.
const (
	RoleDoctor = "doctor"
	RoleStaff  = "staff"
	RoleAdmin  = "admin"
)

// User is a clinician account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRole reports whether role is a known clinician role.
func ValidRole(role string) bool {
	switch role {
	case RoleDoctor, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}
