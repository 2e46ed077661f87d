package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the fixed work factor for password hashing
const BcryptCost = bcrypt.DefaultCost

// ResetCodeTTL is how long a password reset code stays valid
const ResetCodeTTL = 10 * time.Minute

// HashPassword hashes a password with a salted, computationally expensive
// one-way function
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateResetCode returns a uniformly random 6-digit code in
// [100000, 999999]
func GenerateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
