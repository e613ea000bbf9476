package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const digitChars = "0123456789"

// GenerateDigitCode returns a random numeric verification code of the given length.
func GenerateDigitCode(length int) (string, error) {
	var sb strings.Builder

	for range length {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(digitChars))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(digitChars[num.Int64()])
	}

	return sb.String(), nil
}
