package utils

import (
	"crypto/rand"
	"encoding/base64"
	"math/big"
	"regexp"
	"strconv"
)

const (
	// CodeLength is the number of decimal digits in a share code.
	CodeLength = 6
	codeMin    = 100000
	codeMax    = 999999
)

var codePattern = regexp.MustCompile(`^[0-9]{6}$`)

// CodeGenerator produces short human-typeable codes. Implementations make no
// uniqueness promise; callers check the store before committing a code.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodes draws codes uniformly from [100000, 999999] using crypto/rand.
type RandomCodes struct{}

func (RandomCodes) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// IsValidCode reports whether s has the shape of a share code.
func IsValidCode(s string) bool {
	return codePattern.MatchString(s)
}

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
