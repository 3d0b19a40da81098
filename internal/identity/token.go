package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user in the "user_id" claim.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Verifier issues and validates HS256 bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewVerifier(secret, issuer string, ttl time.Duration) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for userID; used by the CLI and tests.
func (v *Verifier) Issue(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidToken)
	}
	now := v.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns the user id it was issued for.
func (v *Verifier) Parse(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithTimeFunc(v.now), jwt.WithIssuer(v.issuer))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: user_id claim is missing", ErrInvalidToken)
	}
	return claims.UserID, nil
}
