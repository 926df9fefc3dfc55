package models

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// UserRole represents the role of a user in the system
type UserRole int

// User role constants
const (
	// UserRoleStudent represents a standard student user
	UserRoleStudent UserRole = iota
	// UserRoleAdmin represents an administrator user
	UserRoleAdmin
)

// User represents a user in the system
type User struct {
	gorm.Model
	Username string   `json:"username" gorm:"not null;unique"`
	Email    string   `json:"email" gorm:""`
	FullName string   `json:"full_name" gorm:""`
	Role     UserRole `json:"role" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for User
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(u))
}

func (s UserRole) String() string {
	return []string{
		"student",
		"admin",
	}[s]
}

// ParseUserRole converts a string representation of a user role to UserRole type
func ParseUserRole(str string) (UserRole, error) {
	for i, role := range []string{
		"student",
		"admin",
	} {
		if role == str {
			return UserRole(i), nil
		}
	}
	return UserRoleStudent, fmt.Errorf("invalid user role: %s", str)
}

// ValidateOwnerID ensures the ownerID is valid
func ValidateOwnerID(ownerID uint) error {
	if ownerID == 0 {
		return fmt.Errorf("owner_id cannot be 0")
	}
	return nil
}
