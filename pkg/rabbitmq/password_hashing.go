package rabbitmq

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
)

// SaltLength is the length of the salts produced by GenerateSalt, in
// bytes.
const SaltLength = 4

const saltAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateSalt returns a 32-bit alphanumeric salt for use with the salted
// password hashing functions. See the Credentials and Passwords guide at
// https://www.rabbitmq.com/docs/passwords.
func GenerateSalt() ([]byte, error) {
	buf := make([]byte, SaltLength)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate a salt: %w", err)
	}

	for i, b := range buf {
		buf[i] = saltAlphabet[int(b)%len(saltAlphabet)]
	}

	return buf, nil
}

// SaltedPasswordHashSHA256 produces a salted SHA-256 password hash: the
// salt followed by the SHA-256 digest of the salt and the password.
func SaltedPasswordHashSHA256(salt []byte, password string) []byte {
	digest := sha256.New()
	digest.Write(salt)
	digest.Write([]byte(password))

	return digest.Sum(append([]byte{}, salt...))
}

// Base64EncodedSaltedPasswordHashSHA256 produces a Base64-encoded salted
// SHA-256 password hash suitable for the password_hash field of user
// creation requests.
func Base64EncodedSaltedPasswordHashSHA256(salt []byte, password string) string {
	return base64.StdEncoding.EncodeToString(SaltedPasswordHashSHA256(salt, password))
}

// SaltedPasswordHashSHA512 produces a salted SHA-512 password hash for
// clusters configured with the SHA-512 password hashing module.
func SaltedPasswordHashSHA512(salt []byte, password string) []byte {
	digest := sha512.New()
	digest.Write(salt)
	digest.Write([]byte(password))

	return digest.Sum(append([]byte{}, salt...))
}

// Base64EncodedSaltedPasswordHashSHA512 produces a Base64-encoded salted
// SHA-512 password hash.
func Base64EncodedSaltedPasswordHashSHA512(salt []byte, password string) string {
	return base64.StdEncoding.EncodeToString(SaltedPasswordHashSHA512(salt, password))
}
