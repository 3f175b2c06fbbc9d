package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/phnormalguy/tungwong-video-uploader/internal/models"
)

// ErrInvalidToken wraps every verification failure: missing credential,
// malformed token, wrong signature, expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

// Verifier validates HS256 bearer tokens issued by the user service.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks the Authorization header value and extracts the caller's
// identity. A "Bearer " prefix is stripped if present. Only signature and
// expiry are validated; there are no audience or issuer checks.
func (v *Verifier) Verify(tokenHeader string) (models.UserInfo, error) {
	token := strings.TrimPrefix(tokenHeader, "Bearer ")
	if token == "" {
		return models.UserInfo{}, fmt.Errorf("%w: empty credential", ErrInvalidToken)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return models.UserInfo{}, fmt.Errorf("%w: unreadable claims", ErrInvalidToken)
	}

	username, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)

	return models.UserInfo{Username: username, Email: email}, nil
}
