package crypto

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/myanycart/anycart-go/internal/model"
)

var ErrMalformedToken = errors.New("malformed token")

// TokenClaims holds the payload fields the client cares about. Tokens are
// issued and verified by the backend; the client only decodes the payload
// to derive a user identity, so no signature check happens here.
type TokenClaims struct {
	UserID int64
	Email  string
}

// DecodeClaims decodes a JWT payload without verifying its signature.
func DecodeClaims(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformedToken
	}

	out := &TokenClaims{}

	if v, ok := claims["user_id"]; ok {
		out.UserID = toInt64(v)
	}
	if out.UserID == 0 {
		if sub, err := claims.GetSubject(); err == nil && sub != "" {
			if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
				out.UserID = id
			}
		}
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}

	return out, nil
}

// UserFromToken derives a user identity from an access token payload.
// Returns nil when the payload carries neither a usable numeric identifier
// nor an email address.
func UserFromToken(token string) *model.User {
	claims, err := DecodeClaims(token)
	if err != nil {
		return nil
	}
	if claims.UserID == 0 && claims.Email == "" {
		return nil
	}
	return &model.User{ID: claims.UserID, Email: claims.Email}
}

// toInt64 converts the numeric types encoding/json may produce for a claim.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}
