package identity

import (
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/backend/internal/domain/shared"
)

// Role determines what a user is allowed to do
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

const bcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User is a registered account, customer or admin
type User struct {
	shared.BaseEntity
	Username     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new customer account with a hashed password
func NewUser(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		IsActive:     true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword validates and rehashes the password
func (u *User) ChangePassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// UpdateProfile changes username and/or email; empty values keep the current ones
func (u *User) UpdateProfile(username, email string) error {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if username != "" {
		if err := validateUsername(username); err != nil {
			return err
		}
		u.Username = username
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		u.Email = email
	}
	u.Touch()
	return nil
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PromoteToAdmin grants the admin role
func (u *User) PromoteToAdmin() {
	u.Role = RoleAdmin
	u.Touch()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.IsActive = true
	u.Touch()
}

// Deactivate disables the account; a soft delete
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Username is required")
	}
	if len(username) < 3 || len(username) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("VALIDATION_ERROR", "Username can only contain letters, numbers and underscores")
	}
	if strings.HasPrefix(username, "_") {
		return shared.NewDomainError("VALIDATION_ERROR", "Username cannot start with an underscore")
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Email is required")
	}
	if len(email) > 255 {
		return shared.NewDomainError("VALIDATION_ERROR", "Email must be at most 255 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Email format is invalid")
	}
	return nil
}

// ValidatePassword enforces the password policy: 8-128 characters with at
// least one uppercase letter, one lowercase letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 || len(password) > 128 {
		return shared.NewDomainError("VALIDATION_ERROR", "Password must be between 8 and 128 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return shared.NewDomainError("VALIDATION_ERROR", "Password must contain at least one uppercase letter, one lowercase letter and one digit")
	}
	return nil
}
