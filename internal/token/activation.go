// Package token issues and verifies account activation tokens.
package token

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"

	"netlife/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Activation tokens are signed JWTs bound to a user and to a fingerprint of
// the user's mutable state. Activating the account changes the fingerprint,
// so a consumed token can never be replayed. Tokens carry no expiry; state
// change is the only thing that invalidates them.
type ActivationMaker struct {
	secret []byte
}

// NewActivationMaker returns a maker signing with the application secret.
func NewActivationMaker(secret string) *ActivationMaker {
	return &ActivationMaker{secret: []byte(secret)}
}

type activationClaims struct {
	Fingerprint string `json:"fpr"`
	jwt.RegisteredClaims
}

// stateFingerprint derives a short digest of the fields that change when the
// account activates.
func stateFingerprint(user *models.User) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%t", user.ID, user.Password, user.IsActive)))
	return hex.EncodeToString(sum[:])[:16]
}

// Make issues an activation token for the given user.
func (m *ActivationMaker) Make(user *models.User) (string, error) {
	claims := activationClaims{
		Fingerprint: stateFingerprint(user),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatUint(uint64(user.ID), 10),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Check verifies that tokenString was issued for user and still matches the
// user's current state. Returns false for any malformed, forged, or consumed
// token.
func (m *ActivationMaker) Check(user *models.User, tokenString string) bool {
	if user == nil || tokenString == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &activationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}

	claims, ok := parsed.Claims.(*activationClaims)
	if !ok {
		return false
	}
	if claims.Subject != strconv.FormatUint(uint64(user.ID), 10) {
		return false
	}
	return claims.Fingerprint == stateFingerprint(user)
}

// EncodeUID encodes a user id for embedding in an activation link path.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(encoded string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(string(raw), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
