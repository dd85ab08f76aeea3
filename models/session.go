// File: firstresponse/models/session.go
package models

// Keys persisted in a client's local storage.
const (
	KeyPreliminaryToken = "preliminary_token"
	KeyAuthToken        = "auth_token"
	KeyUsername         = "username"
	KeyLanguage         = "app_language"
)

// AuthState is the position of a client in the login flow.
type AuthState string

const (
	StateAnonymous     AuthState = "anonymous"
	StateAwaitingOTP   AuthState = "awaiting_otp"
	StateAuthenticated AuthState = "authenticated"
)

// Session is a snapshot of one client's stored credentials and preferences.
type Session struct {
	PreliminaryToken string `json:"-"`
	AuthToken        string `json:"-"`
	Username         string `json:"username,omitempty"`
	Language         string `json:"language"`
}

// State derives the flow position from which token is present.
func (s Session) State() AuthState {
	switch {
	case s.AuthToken != "":
		return StateAuthenticated
	case s.PreliminaryToken != "":
		return StateAwaitingOTP
	default:
		return StateAnonymous
	}
}
