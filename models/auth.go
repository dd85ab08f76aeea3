package models

// LoginCredentials is submitted to /api/token. It is never stored.
type LoginCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful /api/token call.
type LoginResponse struct {
	Token string `json:"token"`
}

// VerifyOTPRequest is submitted to /api/verify_otp.
type VerifyOTPRequest struct {
	OTP              string `json:"otp"`
	PreliminaryToken string `json:"preliminary_token"`
}

// VerifyOTPResponse is the body of a successful /api/verify_otp call.
type VerifyOTPResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// AuthOutcome reports where a login step left the client.
type AuthOutcome struct {
	State    AuthState `json:"state"`
	Username string    `json:"username,omitempty"`
	Demo     bool      `json:"demo"`
	Message  string    `json:"message"`
	Next     string    `json:"next,omitempty"`
}
