// Package auth issues and verifies the signed, time-limited session tokens
// handed out at login. The server keeps no session state: everything needed
// to authenticate a request travels inside the token.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard registered claims plus the owning user's id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates the signature, algorithm and expiry of
// tokenString. Expired tokens yield common.ErrTokenExpired, anything else
// that fails validation yields common.ErrInvalidToken.
func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}

// TokenService binds a signing secret and a token lifetime.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secretKey string, validity time.Duration) *TokenService {
	return &TokenService{secret: []byte(secretKey), validity: validity}
}

// Issue returns a signed token carrying {id: userID}.
func (s *TokenService) Issue(userID string) (string, error) {
	return GenerateToken(userID, s.secret, s.validity)
}

// Verify returns the user id embedded in a valid, unexpired token.
func (s *TokenService) Verify(token string) (string, error) {
	return GetUserIDFromToken(token, s.secret)
}
