package model

// Account is how the local user API stores a user: the public record plus
// the credentials that never leave the server.
type Account struct {
	User
	HashedPassword string `json:"hashed_password"`
	Token          string `json:"token"`
}
