package user

import (
	"errors"
	"regexp"
	"time"
)

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrTaxIDTaken   = errors.New("tax id already registered")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrWeakPassword = errors.New("password does not meet complexity requirements")
	ErrInvalidTaxID = errors.New("invalid tax id")
)

var (
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	taxIDPattern = regexp.MustCompile(`^\d{11}$`)
)

// User is a local application user. Users own consents; mirrored provider
// data cascades from the consents linked to them.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TaxID        string    `json:"taxId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateParams contains parameters for registering a new user
type CreateParams struct {
	Name         string
	Email        string
	TaxID        string
	PasswordHash string
}

func (p CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !emailPattern.MatchString(p.Email) {
		return ErrInvalidEmail
	}
	if !taxIDPattern.MatchString(p.TaxID) {
		return ErrInvalidTaxID
	}
	if p.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}

// ValidatePassword enforces the registration password policy:
// at least 8 characters with lower, upper, digit and symbol.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
