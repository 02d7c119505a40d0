package models

import "time"

// Credentials is the login form.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Remember   bool   `json:"remember"`
}

// SignupFields is the signup form.
type SignupFields struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
	Agree    bool   `json:"agree"`
	Remember bool   `json:"remember"`
}

// PasswordChange is the change-password form.
type PasswordChange struct {
	Current string `json:"current"`
	New     string `json:"new"`
	Confirm string `json:"confirm"`
}

// EmailChange is the change-email form; Password confirms the change.
type EmailChange struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountDeletion confirms account removal. Confirm must read "DELETE".
type AccountDeletion struct {
	Confirm  string `json:"confirm"`
	Password string `json:"password,omitempty"`
}

// PasswordResetRequest asks the server to issue a reset token.
type PasswordResetRequest struct {
	Identifier string `json:"identifier"`
}

// ResetTicket is the server answer to a reset request. ResetToken is empty
// when no account matched the identifier.
type ResetTicket struct {
	ResetToken string     `json:"reset_token"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Detail     string     `json:"detail"`
}

// PasswordReset completes a reset with the issued token.
type PasswordReset struct {
	Token    string `json:"token"`
	Password string `json:"password"`
	Confirm  string `json:"confirm"`
}
