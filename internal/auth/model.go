// File: internal/auth/model.go
package auth

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FirebaseLoginRequest is the payload for the firebase-login endpoint. The
// token carries the Firebase ID token; the remaining fields are the
// client-asserted profile used as a fallback in non-production environments.
type FirebaseLoginRequest struct {
	Token    string `json:"token" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Name     string `json:"name"`
	GoogleID string `json:"googleId"`
}
