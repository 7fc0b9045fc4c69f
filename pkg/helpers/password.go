package helpers

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, per the current OWASP baseline.
const (
	saltLen      = 16
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// ErrMalformedCredential marks stored hash/salt values that cannot be
// decoded. This is a data-integrity failure, not a wrong password.
var ErrMalformedCredential = errors.New("stored credential is malformed")

// GenerateSalt returns a fresh random salt, base64-encoded for storage.
func GenerateSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// HashPassword derives an argon2id hash from the plaintext and the stored
// salt encoding. The same (plaintext, salt) pair always yields the same hash.
func HashPassword(plain, salt string) (string, error) {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	key := argon2.IDKey([]byte(plain), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.StdEncoding.EncodeToString(key), nil
}

// VerifyPassword recomputes the hash for plain with the stored salt and
// compares it to the stored hash in constant time. A mismatch returns
// (false, nil); only undecodable stored values produce an error.
func VerifyPassword(plain, storedHash, storedSalt string) (bool, error) {
	expected, err := base64.StdEncoding.DecodeString(storedHash)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	saltBytes, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	key := argon2.IDKey([]byte(plain), saltBytes, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
