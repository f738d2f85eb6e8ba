package security

import "golang.org/x/crypto/bcrypt"

// HashPin hashes a login PIN for storage.
func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPin reports whether pin matches the stored hash.
func VerifyPin(pin, pinHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(pinHash), []byte(pin)) == nil
}
