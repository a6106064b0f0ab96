package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// OTPLength is the number of digits in a one-time code.
const OTPLength = 6

// GenerateNumericCode draws a uniformly random left-zero-padded numeric
// code in the range 000000-999999.
func GenerateNumericCode() (string, error) {
	max := big.NewInt(1)
	for range OTPLength {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("cryptox: generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n), nil
}

// EqualCodes compares two codes in constant time. Comparison is exact: no
// trimming or case folding.
func EqualCodes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
