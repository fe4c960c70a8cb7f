// Package auth issues and parses the signed, time-limited tokens carried in
// email-verification and password-reset links. Only the token payload is
// handled here; delivering the link is the mailer's concern.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saeon/odp-identity/internal/common"
)

// Purpose scopes a link token to a single flow so a verification token can
// never be replayed as a reset token or vice versa.
type Purpose string

const (
	PurposeVerifyEmail   Purpose = "verify_email"
	PurposeResetPassword Purpose = "reset_password"
)

// LinkClaims are the claims embedded in a link token.
type LinkClaims struct {
	jwt.RegisteredClaims
	Email   string  `json:"email"`
	Purpose Purpose `json:"purpose"`
}

// GenerateLinkToken signs an HS256 token binding email to the given purpose
// for the validity window.
func GenerateLinkToken(email string, purpose Purpose, secretKey []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Email:   email,
		Purpose: purpose,
	})

	return token.SignedString(secretKey)
}

// GetEmailFromLinkToken verifies the signature, expiry and purpose of a link
// token and returns the email it was issued for. Expired tokens yield
// common.ErrTokenExpired; any other defect yields common.ErrInvalidToken.
func GetEmailFromLinkToken(tokenString string, purpose Purpose, secretKey []byte) (string, error) {
	claims := &LinkClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Purpose != purpose || claims.Email == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Email, nil
}
