// Package auth drives the two-step sign-in: password, then device code.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firstresponse/models"
	"firstresponse/services/session"
	"firstresponse/services/upstream"
	"firstresponse/utils"

	"go.uber.org/zap"
)

// Sentinel values stored when the backend cannot be reached in demo mode.
const (
	DemoPreliminaryToken = "demo-preliminary-token"
	DemoAuthToken        = "demo-auth-token"
	DemoUsername         = "Demo User"
	DefaultUsername      = "User"
)

var (
	ErrMissingCredentials = errors.New("Please enter your username and password.")
	ErrInvalidCredentials = errors.New("Invalid username or password.")
	ErrIncompleteOTP      = errors.New("Please enter a 6-digit code.")
	ErrInvalidOTP         = errors.New("Invalid OTP.")
	ErrNoPendingLogin     = errors.New("No sign-in in progress. Please sign in again.")
	ErrBackendUnavailable = errors.New("Authentication service is unavailable. Please try again later.")
)

// API is the part of the upstream client the auth flow uses.
type API interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*upstream.Response, error)
	VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (*upstream.Response, error)
}

// Session is the writable session of the client signing in.
type Session interface {
	session.Writer
	PreliminaryToken(ctx context.Context) (string, error)
	State(ctx context.Context) (models.AuthState, error)
}

// Controller runs Anonymous -> AwaitingOTP -> Authenticated for any client.
type Controller struct {
	API API
	// DemoFallback lets the flow continue with sentinel tokens when the
	// backend is unreachable or answers unexpectedly.
	DemoFallback bool
}

func NewController(api API, demoFallback bool) *Controller {
	return &Controller{API: api, DemoFallback: demoFallback}
}

// Login submits credentials. On success the client awaits its device code.
func (c *Controller) Login(ctx context.Context, sess Session, creds models.LoginCredentials) (*models.AuthOutcome, error) {
	logger := utils.GetLogger()
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := c.API.Login(ctx, creds)
	switch {
	case err == nil && resp.IsSuccess():
		var body models.LoginResponse
		if derr := resp.Decode(&body); derr == nil && body.Token != "" {
			if err := sess.BeginOTP(ctx, body.Token); err != nil {
				return nil, err
			}
			logger.Info("Login accepted; awaiting OTP", zap.String("username", creds.Username))
			return &models.AuthOutcome{
				State:   models.StateAwaitingOTP,
				Message: "Login successful. Please verify your device code.",
			}, nil
		}
		logger.Warn("Login response missing token", zap.Int("status", resp.Status))
	case err == nil && resp.Status == http.StatusUnauthorized:
		logger.Info("Login rejected", zap.String("username", creds.Username))
		return nil, ErrInvalidCredentials
	case err != nil && !upstream.IsTransport(err):
		return nil, err
	default:
		logger.Warn("Login endpoint unavailable", zap.Error(err), zap.Int("status", statusOf(resp)))
	}

	if !c.DemoFallback {
		return nil, ErrBackendUnavailable
	}
	if err := sess.BeginOTP(ctx, DemoPreliminaryToken); err != nil {
		return nil, err
	}
	return &models.AuthOutcome{
		State:   models.StateAwaitingOTP,
		Demo:    true,
		Message: "Backend unavailable; proceeding to OTP in demo mode.",
	}, nil
}

// ValidateOTP requires exactly six ASCII digits.
func ValidateOTP(code string) error {
	if len(code) != OTPLength {
		return ErrIncompleteOTP
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return ErrIncompleteOTP
		}
	}
	return nil
}

// VerifyOTP submits the device code for the pending sign-in.
func (c *Controller) VerifyOTP(ctx context.Context, sess Session, code string) (*models.AuthOutcome, error) {
	logger := utils.GetLogger()
	if err := ValidateOTP(code); err != nil {
		return nil, err
	}

	state, err := sess.State(ctx)
	if err != nil {
		return nil, err
	}
	if state != models.StateAwaitingOTP {
		return nil, ErrNoPendingLogin
	}
	prelim, err := sess.PreliminaryToken(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := c.API.VerifyOTP(ctx, models.VerifyOTPRequest{OTP: code, PreliminaryToken: prelim})
	switch {
	case err == nil && resp.IsSuccess():
		var body models.VerifyOTPResponse
		if derr := resp.Decode(&body); derr == nil && body.Token != "" {
			username := strings.TrimSpace(body.Username)
			if username == "" {
				username = DefaultUsername
			}
			if err := sess.Establish(ctx, body.Token, username); err != nil {
				return nil, err
			}
			logger.Info("OTP verified; session established", zap.String("username", username))
			return &models.AuthOutcome{
				State:    models.StateAuthenticated,
				Username: username,
				Message:  "Verification successful. Welcome to FirstResponse.",
			}, nil
		}
		logger.Warn("OTP response missing token", zap.Int("status", resp.Status))
	case err == nil && (resp.Status == http.StatusBadRequest || resp.Status == http.StatusUnauthorized):
		logger.Info("OTP rejected", zap.Int("status", resp.Status))
		return nil, ErrInvalidOTP
	case err != nil && !upstream.IsTransport(err):
		return nil, err
	default:
		logger.Warn("OTP endpoint unavailable", zap.Error(err), zap.Int("status", statusOf(resp)))
	}

	if !c.DemoFallback {
		return nil, ErrBackendUnavailable
	}
	if err := sess.Establish(ctx, DemoAuthToken, DemoUsername); err != nil {
		return nil, err
	}
	return &models.AuthOutcome{
		State:    models.StateAuthenticated,
		Username: DemoUsername,
		Demo:     true,
		Message:  "Backend unavailable; continuing to dashboard in demo mode.",
	}, nil
}

// SignOut ends the authenticated session.
func (c *Controller) SignOut(ctx context.Context, sess session.Writer) error {
	if err := sess.SignOut(ctx); err != nil {
		return err
	}
	utils.GetLogger().Info("Signed out")
	return nil
}

func statusOf(resp *upstream.Response) int {
	if resp == nil {
		return 0
	}
	return resp.Status
}
