// Package auth resolves bearer credentials to identities. Tokens are
// self-contained: "<user_id>.<expiry_unix>.<hmac-sha256 signature>".
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the resolved caller of a request. It is immutable once
// attached to a request context.
type Identity struct {
	UserID string
}

// Resolver turns a bearer token into an Identity, or reports that it
// cannot be resolved.
type Resolver interface {
	Resolve(token string) (*Identity, error)
}

// TokenResolver validates HMAC-signed tokens issued by Issue.
type TokenResolver struct {
	secret []byte
}

func NewTokenResolver(secret string) *TokenResolver {
	return &TokenResolver{secret: []byte(secret)}
}

// Issue mints a signed token for userID valid for ttl.
func (r *TokenResolver) Issue(userID string, ttl time.Duration) string {
	expiry := strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	return userID + "." + expiry + "." + r.sign(userID, expiry)
}

func (r *TokenResolver) Resolve(token string) (*Identity, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrInvalidToken
	}
	userID, expiry, sig := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(sig), []byte(r.sign(userID, expiry))) {
		return nil, ErrInvalidToken
	}

	exp, err := strconv.ParseInt(expiry, 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: userID}, nil
}

func (r *TokenResolver) sign(userID, expiry string) string {
	mac := hmac.New(sha256.New, r.secret)
	fmt.Fprintf(mac, "%s.%s", userID, expiry)
	return hex.EncodeToString(mac.Sum(nil))
}
