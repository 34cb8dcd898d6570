package authority

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	dErrors "rxintake/pkg/domain-errors"
)

// CodeLength is the number of digits in a one-time code.
const CodeLength = 6

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

var codeSpace = big.NewInt(1_000_000)

// GenerateCode returns a uniformly random zero-padded 6 digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("could not generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// ValidCodeFormat reports whether code is exactly six digits.
func ValidCodeFormat(code string) bool {
	return codePattern.MatchString(code)
}

// HashCode creates a bcrypt hash of code at cost.
func HashCode(code string, cost int) (string, error) {
	if code == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "code cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(code), cost)
	if err != nil {
		return "", fmt.Errorf("could not hash code: %w", err)
	}
	return string(hashed), nil
}

// VerifyCode checks a plaintext code against its hash.
func VerifyCode(code, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeInvalidCode, "invalid code")
		}
		return fmt.Errorf("could not verify code: %w", err)
	}
	return nil
}
