package models

// Session is the client-held record of the authenticated identity.
// A nil *Session means anonymous. Sessions are created on successful login,
// destroyed on logout, and persisted client-side in a single named slot.
type Session struct {
	// Username is the authenticated identity.
	Username string `json:"username"`

	// IsAdmin is the role hint returned by the service at login. It gates
	// UI affordances only; the service re-validates every privileged
	// request.
	IsAdmin bool `json:"is_admin"`

	// Token is the opaque bearer token issued at login and sent on
	// mutating requests.
	Token string `json:"token"`
}
