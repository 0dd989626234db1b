package utils

import "golang.org/x/crypto/bcrypt"

// BcryptHasher satisfies service.PasswordHasher.
type BcryptHasher struct {
	Cost int // 0 means bcrypt.DefaultCost
}

func (h BcryptHasher) Hash(pw string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

func (h BcryptHasher) Verify(pw, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(pw)) == nil
}
