package users

import (
	"fmt"
	"slices"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// RoleType is the role a user holds within the business
type RoleType string

const (
	RoleOwner   RoleType = "owner"   // Owns the business, sees every store and report
	RoleManager RoleType = "manager" // Runs one or more stores, manages staff and tasks
	RoleStaff   RoleType = "staff"   // Front-of-house staff, sells and works assigned tasks
)

// Profile is the identity the client keeps in its session. It is the public
// projection of a User.
type Profile struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Role  RoleType `json:"role"`
	Name  string   `json:"name"`
}

type User struct {
	ID           string    `json:"id,omitempty"`          // Unique identifier for the user
	Email        string    `json:"email,omitempty"`       // User's email address
	PasswordHash string    `json:"-"`                     // Hashed version of the user's password - never serialize
	FirstName    string    `json:"first_name,omitempty"`  // First name of the user
	LastName     string    `json:"last_name,omitempty"`   // Last name of the user
	Role         RoleType  `json:"role,omitempty"`        // Business role
	StoreIDs     []string  `json:"store_ids,omitempty"`   // Stores the user may operate in
	DateJoined   time.Time `json:"date_joined,omitempty"` // Date and time when the user registered
	LastLogin    time.Time `json:"last_login,omitempty"`  // Last time the user logged in
	Blocked      bool      `json:"blocked,omitempty"`     // Blocked, has the user been blocked from logging in
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// DisplayName is the full name, falling back to the email address.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

func (u *User) Profile() Profile {
	return Profile{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Name:  u.DisplayName(),
	}
}

// HasStore reports whether the user may operate in storeID. Owners may operate in every store.
func (u *User) HasStore(storeID string) bool {
	if u.Role == RoleOwner {
		return true
	}
	return slices.Contains(u.StoreIDs, storeID)
}

// HasRole reports whether role is one of roles.
func HasRole(role RoleType, roles ...RoleType) bool {
	return slices.Contains(roles, role)
}
