package models

// AdminUsername is the reserved administrator account. It cannot be deleted
// and is excluded from bill participation.
const AdminUsername = "admin"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to clients.
	PasswordHash string `json:"-"`

	// IsAdmin marks the administrator account.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}
