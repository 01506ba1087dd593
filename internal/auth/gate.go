package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminPassword is the shared admin password. It ships with the site
// and guards presentation only.
const DefaultAdminPassword = "2141"

var ErrIncorrectPassword = errors.New("Incorrect password")

// Gate checks the admin password. There is no lockout and no attempt limit.
type Gate struct {
	hash []byte
}

func NewGate(password string) (*Gate, error) {
	if password == "" {
		password = DefaultAdminPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Gate{hash: []byte(hash)}, nil
}

func (g *Gate) Check(password string) error {
	if err := ComparePassword(string(g.hash), password); err != nil {
		return ErrIncorrectPassword
	}
	return nil
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("empty password")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func ComparePassword(hash, password string) error {
	if hash == "" || password == "" {
		return errors.New("missing hash or password")
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
