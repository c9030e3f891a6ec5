package auth

import (
	"errors"
	"fmt"
	"strings"
)

// MinSecretLength is the minimum HS256 signing secret length in bytes.
const MinSecretLength = 32

// weakSecretList contains common placeholder values that must be rejected.
var weakSecretList = []string{
	"secret",
	"changeme",
	"password",
	"jwt_secret",
	"jwtsecret",
	"your-secret",
	"your_secret",
	"default",
	"example",
	"test",
}

// keyboardPatterns are rows of a QWERTY keyboard.
var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
}

// ValidateSecret checks a JWT signing secret at startup. An empty secret is
// allowed and disables authentication.
//
// Security requirements:
//   - At least MinSecretLength bytes
//   - Not a single repeated character
//   - Not built from common placeholders or keyboard rows
//
// The returned error never contains the secret.
func ValidateSecret(secret string) error {
	if secret == "" {
		return nil
	}

	if len(secret) < MinSecretLength {
		return fmt.Errorf("jwt secret must be at least %d bytes (current length: %d)", MinSecretLength, len(secret))
	}

	if isRepeatedChar(secret) {
		return errors.New("jwt secret must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) || strings.Contains(lower, reverse(pattern)) {
			return errors.New("jwt secret must not contain keyboard patterns")
		}
	}

	// Strip every placeholder; whatever remains must still carry entropy
	rest := lower
	for _, weak := range weakSecretList {
		rest = strings.ReplaceAll(rest, weak, "")
	}
	if len(strings.Trim(rest, "-_.0123456789")) < MinSecretLength/2 {
		return errors.New("jwt secret must not be based on common placeholder values")
	}

	return nil
}

// isRepeatedChar checks if s consists of a single repeated character.
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}

	first := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] != first {
			return false
		}
	}
	return true
}

// reverse returns the reversed string
func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
