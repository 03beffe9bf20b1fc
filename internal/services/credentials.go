package services

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemePlaintext = "plaintext"
	SchemeBcrypt    = "bcrypt"
)

// CredentialVerifier owns how passwords are stored and compared. AuthService
// never looks at a stored password directly.
type CredentialVerifier interface {
	Hash(plain string) (string, error)
	Verify(stored, plain string) bool
}

func NewCredentialVerifier(scheme string) (CredentialVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemePlaintext:
		return PlaintextVerifier{}, nil
	case SchemeBcrypt:
		return BcryptVerifier{Cost: bcrypt.DefaultCost, AcceptLegacyPlaintext: true}, nil
	default:
		return nil, fmt.Errorf("unsupported password scheme: %q", scheme)
	}
}

// PlaintextVerifier stores passwords as given. Kept for compatibility with
// existing user documents.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(plain string) (string, error) {
	return plain, nil
}

func (PlaintextVerifier) Verify(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}

// BcryptVerifier hashes new passwords with bcrypt. With AcceptLegacyPlaintext
// set, records written by the plaintext scheme still verify until the user
// changes their password.
type BcryptVerifier struct {
	Cost                  int
	AcceptLegacyPlaintext bool
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, plain string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	if v.AcceptLegacyPlaintext {
		return PlaintextVerifier{}.Verify(stored, plain)
	}
	return false
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
