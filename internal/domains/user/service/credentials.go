package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier so sánh password được nhập với secret đã lưu
type CredentialVerifier interface {
	// Prepare chuyển password dạng plain thành dạng lưu trữ
	Prepare(password string) (string, error)
	Verify(stored, presented string) bool
}

// PlaintextVerifier lưu password nguyên văn, so sánh constant-time
type PlaintextVerifier struct{}

func (PlaintextVerifier) Prepare(password string) (string, error) { return password, nil }

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Prepare(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptVerifier) Verify(stored, presented string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented))
	return err == nil
}

var ErrUnknownScheme = errors.New("unknown password scheme")

// NewCredentialVerifier: scheme = plaintext | bcrypt
func NewCredentialVerifier(scheme string) (CredentialVerifier, error) {
	switch scheme {
	case "plaintext":
		return PlaintextVerifier{}, nil
	case "bcrypt":
		return BcryptVerifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
}
