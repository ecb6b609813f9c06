package model

import "time"

// User is the user record owned by the remote API.
// The password is write-only and never comes back.
type User struct {
	ID      string     `json:"_id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	Created *time.Time `json:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty"`
}

// Patch is the body of an update call. Nil fields are left untouched.
type Patch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}
