package models

import "time"

// UserRole drives which dashboard and routes a session may use.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleTeacher      UserRole = "teacher"
	RoleReceptionist UserRole = "receptionist"
	RoleStudent      UserRole = "student"
)

// Valid reports whether the role is one the dashboard knows about.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleReceptionist, RoleStudent:
		return true
	}
	return false
}

// HomeRoute is the landing page each role is sent to after login.
func (r UserRole) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleTeacher:
		return "/teacher"
	case RoleReceptionist:
		return "/reception"
	case RoleStudent:
		return "/student"
	}
	return "/login"
}

// User is the authenticated account as returned by the backend.
type User struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	StudentID string   `json:"student_id,omitempty"`
	TeacherID string   `json:"teacher_id,omitempty"`
}

// Session binds a dashboard session id to the upstream bearer token.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
