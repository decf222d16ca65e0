package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
)

// saltLength matches the HMAC-SHA512 block-sized key so the salt never gets
// padded or re-hashed by the HMAC construction.
const saltLength = 64

// HashPassword derives a keyed digest of the password using a fresh random
// salt as the HMAC key. Both digest and salt must be stored; the salt is
// per-account and never reused. Empty passwords are hashed like any other
// input, minimum-length policy belongs to the request layer.
func HashPassword(password string) (digest, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generate salt: %w", err)
	}

	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return mac.Sum(nil), salt, nil
}

// VerifyPassword recomputes the keyed digest of the candidate password with
// the stored salt and compares it against the stored digest in constant time.
// Nothing beyond the boolean outcome is revealed.
func VerifyPassword(password string, digest, salt []byte) bool {
	mac := hmac.New(sha512.New, salt)
	mac.Write([]byte(password))
	return hmac.Equal(mac.Sum(nil), digest)
}
