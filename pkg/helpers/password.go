package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordHasher wraps bcrypt with a configurable work factor. The cost is
// encoded into each produced hash, so raising it later only affects new
// hashes; existing credentials keep verifying.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{Cost: cost}
}

// Hash hashes the plain text password using bcrypt. Each call salts anew,
// so two hashes of the same password differ but both verify.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compares a stored bcrypt hash with a candidate password.
// A malformed hash verifies as false rather than erroring.
func (h *PasswordHasher) Verify(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
