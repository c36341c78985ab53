// Package auth signs and verifies the two kinds of HS256 tokens the server
// deals with: access tokens that identify a user, and upload tokens that
// bind one issued destination to its owner until confirmation.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/mediaup/internal/common"
)

// Claims are the access token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string
}

// UploadClaims describe one issued destination.
type UploadClaims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	StoragePath string `json:"path"`
	FileSize    int64  `json:"size"`
	MimeType    string `json:"mime"`
}

func GenerateToken(userID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetUserIDFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return "", err
	}
	if claims.UserID == "" {
		return "", common.ErrInvalidToken
	}
	return claims.UserID, nil
}

// GenerateUploadToken signs c with an expiry of validityDuration from now.
func GenerateUploadToken(c UploadClaims, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))
	c.Subject = c.StoragePath

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign upload token: %w", err)
	}
	return token, nil
}

func ParseUploadToken(tokenString string, secretKey []byte) (*UploadClaims, error) {
	claims := &UploadClaims{}
	if err := parse(tokenString, claims, secretKey); err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.StoragePath == "" {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func parse(tokenString string, claims jwt.Claims, secretKey []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	return nil
}
