package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrHashing = errors.New("hashing failed")

// Hasher hashes passwords and product keys with bcrypt at a fixed cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A cost outside bcrypt's accepted range falls
// back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of secret. Two calls with the same secret
// produce different strings.
func (h *Hasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(hash), nil
}

// Verify reports whether secret matches hash. Malformed hashes never match.
// The comparison is constant time inside bcrypt.
func (h *Hasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// ProductKey derives the key a realtor must present at signup.
func (h *Hasher) ProductKey(email, role, serverSecret string) (string, error) {
	return h.Hash(productKeyInput(email, role, serverSecret))
}

// VerifyProductKey checks a presented product key against email and role.
func (h *Hasher) VerifyProductKey(key, email, role, serverSecret string) bool {
	return h.Verify(productKeyInput(email, role, serverSecret), key)
}

// productKeyInput digests the key material so long emails or secrets stay
// under bcrypt's 72 byte input limit.
func productKeyInput(email, role, serverSecret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%s-%s", email, role, serverSecret)))
	return hex.EncodeToString(sum[:])
}
