package crypto

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestHash(t *testing.T) {
	hash, err := newTestHasher().Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Errorf("Hash() = %q, want bcrypt prefix $2a$04$", hash)
	}
}

func TestVerifyCorrect(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("my-secure-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if !h.Verify("my-secure-password", hash) {
		t.Error("Verify() returned false for correct password")
	}
}

func TestVerifyWrong(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if h.Verify("wrong-password", hash) {
		t.Error("Verify() returned true for wrong password")
	}
}

func TestHashProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
	if !h.Verify("same-password", hash1) || !h.Verify("same-password", hash2) {
		t.Error("Verify() should accept both salted hashes")
	}
}

func TestVerifyInvalidHash(t *testing.T) {
	if newTestHasher().Verify("password", "invalid-hash-format") {
		t.Error("Verify() returned true for malformed hash")
	}
}

func TestHashTooLong(t *testing.T) {
	_, err := newTestHasher().Hash(strings.Repeat("x", 100))
	if !errors.Is(err, ErrHashing) {
		t.Fatalf("Hash() error = %v, want ErrHashing", err)
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	if got := NewHasher(1).cost; got != bcrypt.DefaultCost {
		t.Errorf("NewHasher(1).cost = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewHasher(12).cost; got != 12 {
		t.Errorf("NewHasher(12).cost = %d, want 12", got)
	}
}

func TestProductKey(t *testing.T) {
	h := newTestHasher()

	key, err := h.ProductKey("agent@example.com", "REALTOR", "server-secret")
	if err != nil {
		t.Fatalf("ProductKey() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		email  string
		role   string
		secret string
		want   bool
	}{
		{name: "matching", email: "agent@example.com", role: "REALTOR", secret: "server-secret", want: true},
		{name: "other email", email: "other@example.com", role: "REALTOR", secret: "server-secret", want: false},
		{name: "other role", email: "agent@example.com", role: "BUYER", secret: "server-secret", want: false},
		{name: "other secret", email: "agent@example.com", role: "REALTOR", secret: "rotated", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.VerifyProductKey(key, tt.email, tt.role, tt.secret); got != tt.want {
				t.Errorf("VerifyProductKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
