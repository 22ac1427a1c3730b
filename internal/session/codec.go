// Package session implements the tamper-evident codec for the admin session
// cookie. A token is `base64(JSON claim) + "." + hex(HMAC-SHA256(secret,
// payload))`; verification never trusts a byte of the payload until the
// signature checks out.
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domainauth "github.com/dayanisma-dernegi/portal/internal/domain/auth"
)

// ErrInvalidToken is returned for any token that fails structural checks,
// signature verification, or claim shape validation. Callers must treat all
// of these identically to a missing session.
var ErrInvalidToken = errors.New("invalid session token")

// Codec signs and verifies admin session claims with a process-wide secret.
type Codec struct {
	secret []byte
}

// NewCodec constructs a Codec. The secret must be non-empty; production
// configuration is expected to have rejected a missing secret at startup.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

// Encode serializes the claim to JSON, base64-encodes it, and appends the
// lowercase-hex HMAC-SHA256 signature of the encoded payload.
func (c *Codec) Encode(claim domainauth.Claim) (string, error) {
	raw, err := json.Marshal(claim)
	if err != nil {
		return "", fmt.Errorf("marshal claim: %w", err)
	}
	payload := base64.StdEncoding.EncodeToString(raw)
	return payload + "." + c.sign(payload), nil
}

// Decode verifies and parses a token produced by Encode.
//
// The signature is recomputed over the supplied payload and compared in
// constant time; a length mismatch is an immediate reject. Only after the
// signature verifies is the payload decoded, parsed, and shape-checked
// (all four identity fields must be present as non-empty strings).
func (c *Codec) Decode(token string) (domainauth.Claim, error) {
	var zero domainauth.Claim

	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return zero, ErrInvalidToken
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(payload))) {
		return zero, ErrInvalidToken
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return zero, ErrInvalidToken
	}

	var claim domainauth.Claim
	if err := json.Unmarshal(raw, &claim); err != nil {
		return zero, ErrInvalidToken
	}
	if claim.AdminUserID == "" || claim.Role == "" || claim.Email == "" || claim.Name == "" {
		return zero, ErrInvalidToken
	}
	return claim, nil
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
