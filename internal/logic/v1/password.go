package v1

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/duynhne/marketplace-service/config"
)

// PasswordStorage decides what is persisted for the client-supplied password
// hash and how a login attempt is checked against it.
type PasswordStorage interface {
	// Seal returns the value to store for the given client hash.
	Seal(clientHash string) (string, error)

	// Matches reports whether clientHash corresponds to the stored value.
	Matches(stored, clientHash string) (bool, error)
}

// NewPasswordStorage returns the strategy named by kind (config.PasswordVerbatim
// or config.PasswordBcrypt).
func NewPasswordStorage(kind string) (PasswordStorage, error) {
	switch kind {
	case config.PasswordVerbatim, "":
		return VerbatimPasswords{}, nil
	case config.PasswordBcrypt:
		return BcryptPasswords{Cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password storage %q", kind)
	}
}

// VerbatimPasswords stores the client hash unchanged.
type VerbatimPasswords struct{}

func (VerbatimPasswords) Seal(clientHash string) (string, error) { return clientHash, nil }

func (VerbatimPasswords) Matches(stored, clientHash string) (bool, error) {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(clientHash)) == 1, nil
}

// BcryptPasswords stores bcrypt(client hash).
type BcryptPasswords struct {
	Cost int
}

func (b BcryptPasswords) Seal(clientHash string) (string, error) {
	sealed, err := bcrypt.GenerateFromPassword([]byte(clientHash), b.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(sealed), nil
}

func (BcryptPasswords) Matches(stored, clientHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(clientHash))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
