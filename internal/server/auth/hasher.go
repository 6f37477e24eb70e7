// Package auth provides the one-way password digest used by the account
// layer. The digest function is a capability: services depend on the
// interface and never on the concrete scheme.
package auth

import (
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/Muliro1/alx-files-manager/internal/common"
)

// PasswordHasher turns a password into an opaque digest and verifies
// candidates against a stored digest.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(digest, password string) bool
}

// Argon2Hasher derives digests with argon2id. The stored form is
// "<salt>$<hex key>", with a fresh random salt per digest.
type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	salt, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return salt + "$" + hex.EncodeToString(key), nil
}

func (h *Argon2Hasher) Compare(digest, password string) bool {
	salt, stored, ok := strings.Cut(digest, "$")
	if !ok {
		return false
	}
	storedKey, err := hex.DecodeString(stored)
	if err != nil {
		return false
	}
	key := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(storedKey, key) == 1
}
