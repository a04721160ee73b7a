package helpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals plaintext")
	}
	if !h.Verify(hash, "secret1") {
		t.Fatal("expected password to verify")
	}
	if h.Verify(hash, "secret2") {
		t.Fatal("wrong password verified")
	}
}

func TestPasswordHasher_SaltDiffers(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	h1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	h2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical")
	}
	if !h.Verify(h1, "same-password") || !h.Verify(h2, "same-password") {
		t.Fatal("both hashes should verify the password")
	}
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	if h.Verify("not-a-bcrypt-hash", "anything") {
		t.Fatal("malformed hash verified")
	}
	if h.Verify("", "anything") {
		t.Fatal("empty hash verified")
	}
}

func TestNewPasswordHasher_CostClamped(t *testing.T) {
	t.Parallel()

	if got := NewPasswordHasher(0).Cost; got != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
	if got := NewPasswordHasher(99).Cost; got != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want default %d", got, bcrypt.DefaultCost)
	}
}
