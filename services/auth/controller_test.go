package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"firstresponse/models"
	"firstresponse/services/session"
	"firstresponse/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *session.Context {
	t.Helper()
	store, err := session.NewMemoryBackend().Scope("test-client")
	require.NoError(t, err)
	return session.New(store)
}

func stubAPI(t *testing.T, h http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, time.Second)
}

func unreachableAPI(t *testing.T) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return upstream.NewClient(url, time.Second)
}

var creds = models.LoginCredentials{Username: "aid-worker", Password: "secret"}

func TestLogin_SuccessStoresPreliminaryToken(t *testing.T) {
	ctx := context.Background()
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"X"}`))
	})
	sess := newSession(t)

	out, err := NewController(api, true).Login(ctx, sess, creds)
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingOTP, out.State)
	assert.False(t, out.Demo)

	prelim, err := sess.PreliminaryToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "X", prelim)
}

func TestLogin_UnauthorizedLeavesSessionUntouched(t *testing.T) {
	ctx := context.Background()
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	sess := newSession(t)
	before, err := sess.Load(ctx)
	require.NoError(t, err)

	out, err := NewController(api, true).Login(ctx, sess, creds)
	assert.Nil(t, out)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Invalid username or password.", err.Error())

	after, err := sess.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestLogin_UnreachableFallsOpenToOTP(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)

	out, err := NewController(unreachableAPI(t), true).Login(ctx, sess, creds)
	require.NoError(t, err)
	assert.Equal(t, models.StateAwaitingOTP, out.State)
	assert.True(t, out.Demo)

	prelim, _ := sess.PreliminaryToken(ctx)
	assert.Equal(t, DemoPreliminaryToken, prelim)
}

func TestLogin_UnexpectedStatusFallsOpen(t *testing.T) {
	ctx := context.Background()
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	sess := newSession(t)

	out, err := NewController(api, true).Login(ctx, sess, creds)
	require.NoError(t, err)
	assert.True(t, out.Demo)
	state, _ := sess.State(ctx)
	assert.Equal(t, models.StateAwaitingOTP, state)
}

func TestLogin_NoFallbackSurfacesUnavailable(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)

	_, err := NewController(unreachableAPI(t), false).Login(ctx, sess, creds)
	require.ErrorIs(t, err, ErrBackendUnavailable)
	state, _ := sess.State(ctx)
	assert.Equal(t, models.StateAnonymous, state)
}

func TestLogin_MissingCredentialsSkipsNetwork(t *testing.T) {
	var calls int32
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	_, err := NewController(api, true).Login(context.Background(), newSession(t), models.LoginCredentials{Username: "x"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestVerifyOTP_Success(t *testing.T) {
	ctx := context.Background()
	var got models.VerifyOTPRequest
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"token":"final","username":"Asha"}`))
	})
	sess := newSession(t)
	require.NoError(t, sess.BeginOTP(ctx, "prelim"))

	out, err := NewController(api, true).VerifyOTP(ctx, sess, "123456")
	require.NoError(t, err)
	assert.Equal(t, models.StateAuthenticated, out.State)
	assert.Equal(t, "Asha", out.Username)
	assert.Equal(t, models.VerifyOTPRequest{OTP: "123456", PreliminaryToken: "prelim"}, got)

	s, _ := sess.Load(ctx)
	assert.Equal(t, "final", s.AuthToken)
	assert.Equal(t, "Asha", s.Username)
	assert.Empty(t, s.PreliminaryToken)
}

func TestVerifyOTP_BlankUsernameDefaults(t *testing.T) {
	ctx := context.Background()
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"final"}`))
	})
	sess := newSession(t)
	require.NoError(t, sess.BeginOTP(ctx, "prelim"))

	out, err := NewController(api, true).VerifyOTP(ctx, sess, "123456")
	require.NoError(t, err)
	assert.Equal(t, DefaultUsername, out.Username)
}

func TestVerifyOTP_RejectedStaysAwaiting(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized} {
		ctx := context.Background()
		api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})
		sess := newSession(t)
		require.NoError(t, sess.BeginOTP(ctx, "prelim"))

		_, err := NewController(api, true).VerifyOTP(ctx, sess, "000000")
		require.ErrorIs(t, err, ErrInvalidOTP, "status %d", status)
		state, _ := sess.State(ctx)
		assert.Equal(t, models.StateAwaitingOTP, state)
		prelim, _ := sess.PreliminaryToken(ctx)
		assert.Equal(t, "prelim", prelim)
	}
}

func TestVerifyOTP_InvalidCodeSkipsNetwork(t *testing.T) {
	var calls int32
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})
	ctx := context.Background()
	sess := newSession(t)
	require.NoError(t, sess.BeginOTP(ctx, "prelim"))
	c := NewController(api, true)

	for _, code := range []string{"", "12345", "1234567", "12a456", "１２３４５６"} {
		_, err := c.VerifyOTP(ctx, sess, code)
		assert.ErrorIs(t, err, ErrIncompleteOTP, code)
	}
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestVerifyOTP_RequiresPendingLogin(t *testing.T) {
	_, err := NewController(unreachableAPI(t), true).VerifyOTP(context.Background(), newSession(t), "123456")
	assert.ErrorIs(t, err, ErrNoPendingLogin)
}

func TestVerifyOTP_UnreachableFallsOpen(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	require.NoError(t, sess.BeginOTP(ctx, DemoPreliminaryToken))

	out, err := NewController(unreachableAPI(t), true).VerifyOTP(ctx, sess, "123456")
	require.NoError(t, err)
	assert.True(t, out.Demo)
	assert.Equal(t, models.StateAuthenticated, out.State)

	s, _ := sess.Load(ctx)
	assert.Equal(t, DemoAuthToken, s.AuthToken)
	assert.Equal(t, DemoUsername, s.Username)
	assert.Empty(t, s.PreliminaryToken)
}

func TestSignOut_ClearsTokenAndUsername(t *testing.T) {
	ctx := context.Background()
	sess := newSession(t)
	require.NoError(t, sess.Establish(ctx, "tok", "name"))

	require.NoError(t, NewController(nil, true).SignOut(ctx, sess))
	s, _ := sess.Load(ctx)
	assert.Empty(t, s.AuthToken)
	assert.Empty(t, s.Username)
	assert.Equal(t, models.StateAnonymous, s.State())
}
