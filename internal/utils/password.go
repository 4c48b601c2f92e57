package utils

import "golang.org/x/crypto/bcrypt"

// defaultBcryptCost is used when the configured cost falls outside
// bcrypt's accepted range, so a bad BCRYPT_COST can never silently
// produce weak hashes.
const defaultBcryptCost = 12

// HashPassword hashes the plaintext with bcrypt at the given cost.
// Out-of-range costs are replaced with defaultBcryptCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether the plaintext matches the stored bcrypt
// hash.  Constant-time comparison is handled by bcrypt itself.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
