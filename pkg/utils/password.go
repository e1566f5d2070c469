package utils

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at registration
const MinPasswordLength = 8

// HashPassword hashes a plain text password with bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether password matches the bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// PasswordPolicyViolations lists the rules a password breaks. An empty result
// means the password is acceptable.
func PasswordPolicyViolations(password string) []string {
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsNumber(r):
			hasSymbol = true
		}
	}

	var violations []string
	if len([]rune(password)) < MinPasswordLength {
		violations = append(violations, "must be at least 8 characters")
	}
	if !hasDigit {
		violations = append(violations, "must contain a digit")
	}
	if !hasLower {
		violations = append(violations, "must contain a lowercase letter")
	}
	if !hasUpper {
		violations = append(violations, "must contain an uppercase letter")
	}
	if !hasSymbol {
		violations = append(violations, "must contain a non-alphanumeric character")
	}
	return violations
}
