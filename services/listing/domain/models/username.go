package models

import "fmt"

// Username is a value object for the account name being sold.
// Minecraft names are at most 16 characters; legacy accounts can be shorter
// than the current 3-character floor, so only 1..16 is enforced here.
type Username string

const (
	minUsernameLength = 1
	maxUsernameLength = 16
)

// NewUsername constructs a valid Username or returns an error if constraints are violated.
func NewUsername(s string) (Username, error) {
	if len(s) < minUsernameLength {
		return "", fmt.Errorf("username must be at least %d character", minUsernameLength)
	}
	if len(s) > maxUsernameLength {
		return "", fmt.Errorf("username must not exceed %d characters", maxUsernameLength)
	}
	return Username(s), nil
}

// String returns the underlying string value.
func (u Username) String() string {
	return string(u)
}
