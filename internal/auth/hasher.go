// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CredGate Contributors

package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	// Verify returns (true, nil) on match, (false, nil) on mismatch, or an
	// error when the stored hash cannot be parsed. Comparison is
	// constant-time; that property is inherited from the hash primitives,
	// not reimplemented here.
	Verify(password, encodedHash string) (bool, error)
}

// Verifier verifies passwords against the hash formats the directory
// service stores: argon2id PHC strings and werkzeug-style pbkdf2 hashes.
// It only verifies; the gateway never creates hashes.
type Verifier struct{}

// NewVerifier creates a Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// Verify dispatches on the hash format.
func (v *Verifier) Verify(password, encodedHash string) (bool, error) {
	switch {
	case strings.HasPrefix(encodedHash, "$argon2id$"):
		return verifyArgon2id(password, encodedHash)
	case strings.HasPrefix(encodedHash, "pbkdf2:"):
		return verifyPBKDF2(password, encodedHash)
	default:
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("unrecognized hash format")
	}
}

// verifyArgon2id checks password against a PHC-format argon2id hash:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func verifyArgon2id(password, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid argon2id hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, oops.Code("AUTH_INVALID_HASH").Wrap(err)
	}

	// IDKey panics on zero rounds rather than returning an error.
	if time == 0 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("iteration count must be positive")
	}

	// Threads must fit in uint8 to prevent silent truncation.
	if threads == 0 || threads > 255 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("threads value %d out of range", threads)
	}

	keyLen := len(expected)
	if keyLen <= 0 || keyLen > 1<<10 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("hash length %d out of range", keyLen)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(keyLen))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// verifyPBKDF2 checks password against a werkzeug-format hash:
// pbkdf2:sha256:600000$<salt>$<hex hash>
func verifyPBKDF2(password, encodedHash string) (bool, error) {
	parts := strings.SplitN(encodedHash, "$", 3)
	if len(parts) != 3 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid pbkdf2 hash format")
	}

	method := strings.Split(parts[0], ":")
	if len(method) != 3 || method[0] != "pbkdf2" {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid pbkdf2 method")
	}

	var digest func() hash.Hash
	switch method[1] {
	case "sha256":
		digest = sha256.New
	case "sha512":
		digest = sha512.New
	default:
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("unsupported pbkdf2 digest: %s", method[1])
	}

	iterations, err := strconv.Atoi(method[2])
	if err != nil || iterations <= 0 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid pbkdf2 iteration count")
	}

	salt := parts[1]
	expected, err := hex.DecodeString(parts[2])
	if err != nil || len(expected) == 0 {
		return false, oops.Code("AUTH_INVALID_HASH").Errorf("invalid pbkdf2 hash encoding")
	}

	computed := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), digest)
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
