package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"eventlistings/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for malformed, expired or badly signed tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

type jwtClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// JWT issues and verifies HS256-signed bearer tokens.
type JWT struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewJWT returns a token issuer/verifier signing with secret. Issued tokens expire after expiry.
func NewJWT(secret string, expiry time.Duration) *JWT {
	return &JWT{secret: []byte(secret), expiry: expiry, now: time.Now}
}

var (
	_ domain.TokenIssuer   = (*JWT)(nil)
	_ domain.TokenVerifier = (*JWT)(nil)
)

func (j *JWT) Issue(auth domain.AuthContext, email string) (string, error) {
	if auth.IsAnonymous() {
		return "", errors.New("cannot issue a token for an anonymous caller")
	}
	now := j.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(auth.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		},
		Email: email,
		Role:  string(auth.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (j *JWT) Verify(tokenString string) (domain.AuthContext, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return domain.AuthContext{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwtClaims)
	if !ok {
		return domain.AuthContext{}, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID < 1 {
		return domain.AuthContext{}, ErrInvalidToken
	}
	return domain.AuthContext{UserID: userID, Role: domain.ParseRole(claims.Role)}, nil
}
