package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential policy limits.
const (
	UsernameMinLength = 4
	UsernameMaxLength = 20
	PasswordMinLength = 8
	PasswordMaxLength = 20
)

// User represents a registered user of the task tracker.
// It contains essential user information and authentication details.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUser creates a new User with the given username and an already hashed password.
// The plaintext password must have been checked with ValidateCredentials before hashing.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.Must(uuid.NewV7()),
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if err := validateUsername(u.Username); err != nil {
		return err
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", ErrInvalidPassword)
	}
	return nil
}

// ValidateCredentials enforces the signup credential policy:
//   - username: 4-20 letters or digits
//   - password: 8-20 letters or digits, with at least one letter and one digit
func ValidateCredentials(username, password string) error {
	if err := validateUsername(username); err != nil {
		return err
	}
	return validatePassword(password)
}

func validateUsername(username string) error {
	if username == "" {
		return NewValidationError("username", "cannot be empty", ErrInvalidUsername)
	}
	if len(username) < UsernameMinLength || len(username) > UsernameMaxLength {
		return NewValidationError("username", "must be between 4 and 20 characters", ErrInvalidUsername)
	}
	if letters, digits, ok := classify(username); !ok || letters+digits != len(username) {
		return NewValidationError("username", "must contain only letters and digits", ErrInvalidUsername)
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "cannot be empty", ErrInvalidPassword)
	}
	if len(password) < PasswordMinLength || len(password) > PasswordMaxLength {
		return NewValidationError("password", "must be between 8 and 20 characters", ErrInvalidPassword)
	}
	letters, digits, ok := classify(password)
	if !ok {
		return NewValidationError("password", "must contain only letters and digits", ErrInvalidPassword)
	}
	if letters == 0 || digits == 0 {
		return NewValidationError("password", "must contain at least one letter and one number", ErrInvalidPassword)
	}
	return nil
}

// classify counts ASCII letters and digits in s.
// ok is false as soon as any other byte is found.
func classify(s string) (letters, digits int, ok bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			letters++
		case c >= '0' && c <= '9':
			digits++
		default:
			return letters, digits, false
		}
	}
	return letters, digits, true
}
