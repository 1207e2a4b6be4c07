package auth

import (
	"errors"
	"fmt"
	"strings"

	"friendchat/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// The verifier only validates credentials; issuing them is the identity
// provider's job. The caller identity travels in the registered Subject
// claim as a UUID string.

var (
	// ErrMissingCredential means no credential was supplied at all.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredential means the credential is malformed, tampered with
	// or expired.
	ErrInvalidCredential = errors.New("invalid credential")
)

// Verifier validates HS256 bearer tokens.
type Verifier struct {
	secretKey []byte
	issuer    string
}

// NewVerifier creates a Verifier from the JWT config.
func NewVerifier(cfg config.JWTConfig) *Verifier {
	return &Verifier{
		secretKey: []byte(cfg.Secret),
		issuer:    cfg.Issuer,
	}
}

// Verify validates the credential and returns the caller identity.
func (v *Verifier) Verify(credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", ErrMissingCredential
	}

	claims := &jwtv5.RegisteredClaims{}
	parsedToken, err := jwtv5.ParseWithClaims(
		credential,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return v.secretKey, nil
		},
		jwtv5.WithIssuer(v.issuer),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	if !parsedToken.Valid || claims.Subject == "" {
		return "", ErrInvalidCredential
	}

	return claims.Subject, nil
}
