package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientToken_RoundTrip(t *testing.T) {
	tok, err := GenerateClientToken("client-42", time.Hour)
	require.NoError(t, err)

	id, err := ExtractClientID(tok)
	require.NoError(t, err)
	assert.Equal(t, "client-42", id)
}

func TestClientToken_Rejected(t *testing.T) {
	expired, err := GenerateClientToken("client-42", -time.Minute)
	require.NoError(t, err)
	_, err = ExtractClientID(expired)
	assert.Error(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{Subject: "client-42"})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	_, err = ExtractClientID(signed)
	assert.Error(t, err)

	_, err = ExtractClientID("garbage")
	assert.Error(t, err)
}
