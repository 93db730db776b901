package utils

import "golang.org/x/crypto/bcrypt"

// VerifyPassword compares a stored bcrypt hash against a login attempt.
// This is the only password operation the service performs in request
// handling: accounts are provisioned by the camp office tooling, which
// is where hashes are minted.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashPassword returns the bcrypt hash of a plain password at the given
// cost.  Kept for provisioning scripts and test fixtures; no HTTP
// endpoint creates accounts.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
