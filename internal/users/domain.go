package users

import "time"

// UserState tracks account lifecycle.
type UserState string

const (
	StateActive    UserState = "ACTIVE"
	StateInactive  UserState = "INACTIVE"
	StateWithdrawn UserState = "WITHDRAWN"
)

// User represents a platform account.
type User struct {
	ID            int64
	UserName      string
	Nickname      string
	Email         string
	Phone         string
	BirthDate     string
	ImageURL      string
	PasswordHash  string
	InfoAgreement bool
	Role          Role
	State         UserState
	JoinedAt      time.Time
	WithdrawnAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
