package models

import (
	"strings"
	"time"
)

// UserRole describes the authorization role attached to an identity.
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleFaculty UserRole = "faculty"
	UserRoleAdmin   UserRole = "admin"
)

// User represents an authenticated identity. Authentication itself happens upstream;
// the core only consumes role and department for authorization decisions.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role       UserRole  `gorm:"size:16;not null;default:student" json:"role"`
	Department string    `gorm:"size:64;index" json:"department"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CanReview reports whether the user may review activities of students
// in the given department. Faculty are scoped to their own department,
// admins act globally.
func (u User) CanReview(studentDepartment string) bool {
	switch u.Role {
	case UserRoleAdmin:
		return true
	case UserRoleFaculty:
		return strings.EqualFold(u.Department, studentDepartment)
	}
	return false
}
