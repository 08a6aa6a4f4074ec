package domain

import "context"

// User roles (account management itself is outside this core).
const (
	RoleJobseeker = "jobseeker"
	RoleHRUser    = "hr"
	RoleAdmin     = "admin"
)

// User is the minimal account surface this core consumes: identity plus the
// fields needed for notification mail.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
}

// ProfileRepository exposes the one profile fact the apply flow needs: the
// candidate's on-file resume URL, or nil when none is stored.
type ProfileRepository interface {
	ResumeURLByUserID(ctx context.Context, userID int64) (*string, error)
}
