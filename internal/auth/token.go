package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/fadildr/tasktrack-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is the duration for which session tokens are valid.
const TokenExpiry = time.Hour

var (
	ErrMissingToken   = errors.New("no token provided")
	ErrMalformedToken = errors.New("malformed authorization header")
	ErrInvalidToken   = errors.New("invalid token")
)

// Claims carries the authenticated user inside the session token.
// The password hash is never embedded.
type Claims struct {
	User models.User `json:"user"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new TokenService with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{
		secret: []byte(secret),
	}
}

// Issue signs a token embedding the user record minus the password hash.
func (s *TokenService) Issue(user models.User) (string, error) {
	user.PasswordHash = ""
	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token string and returns its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseBearer extracts the raw token from an Authorization header value
// of the form "Bearer <token>".
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrMalformedToken
	}

	return parts[1], nil
}
