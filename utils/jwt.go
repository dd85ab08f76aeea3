package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"firstresponse/config"

	"github.com/golang-jwt/jwt"
)

// The client cookie only identifies a browser; it carries no upstream credentials.
var (
	secretOnce sync.Once
	secretKey  []byte
)

func clientSecret() []byte {
	secretOnce.Do(func() {
		if s := config.AppConfig.ClientCookieSecret; s != "" {
			secretKey = []byte(s)
			return
		}
		// No configured secret: cookies only survive this process.
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			panic("utils: cannot generate client cookie secret: " + err.Error())
		}
		secretKey = []byte(hex.EncodeToString(buf))
	})
	return secretKey
}

// GenerateClientToken signs a browser identifier.
func GenerateClientToken(clientID string, duration time.Duration) (string, error) {
	claims := jwt.StandardClaims{
		Subject:   clientID,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(clientSecret())
}

// ExtractClientID validates a client cookie and returns its subject.
func ExtractClientID(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return clientSecret(), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid client token")
	}
	return claims.Subject, nil
}
