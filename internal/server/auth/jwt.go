// Package auth issues and verifies the bearer tokens that guard the write
// endpoints of the API.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/stashboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the profile owner the token was
// issued to.
type Claims struct {
	jwt.RegisteredClaims
	Owner string `json:"owner"`
}

// issuer is stamped into every token and checked on parse.
const issuer = "stashboard"

func GenerateToken(owner string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Owner: owner,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetOwnerFromToken validates tokenString and returns its owner. Expired
// tokens yield common.ErrTokenExpired, anything else unusable yields
// common.ErrInvalidToken.
func GetOwnerFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Owner == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Owner, nil
}
