package rules

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password ValidatePassword accepts.
const MinPasswordLength = 8

// PasswordSpecials lists the characters that satisfy the special-character
// requirement.
const PasswordSpecials = "!@#$%&"

// ValidatePassword reports whether password is at least MinPasswordLength
// characters and contains an uppercase letter, a lowercase letter, a digit,
// and one of PasswordSpecials.
func ValidatePassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSpecials, r):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// Login length bounds, inclusive.
const (
	LoginUsernameMin = 5
	LoginUsernameMax = 20
	LoginPasswordMin = 8
	LoginPasswordMax = 15
)

// Login results.
const (
	LoginSuccessful = "Login Successful"
	LoginFailed     = "Login Failed"
)

// ValidateLogin checks only the lengths of the supplied credentials.
func ValidateLogin(username, password string) string {
	u := utf8.RuneCountInString(username)
	p := utf8.RuneCountInString(password)
	if u >= LoginUsernameMin && u <= LoginUsernameMax &&
		p >= LoginPasswordMin && p <= LoginPasswordMax {
		return LoginSuccessful
	}
	return LoginFailed
}

// Minimum credential lengths for AuthenticateUser.
const (
	AuthUsernameMin = 5
	AuthPasswordMin = 8
)

// Authentication roles.
const (
	RoleAdmin   = "Admin"
	RoleUser    = "User"
	RoleInvalid = "Invalid"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

// adminHash keeps the built-in admin password as a bcrypt hash so the
// check never compares plaintext. MinCost keeps the one-time hash cheap.
var adminHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	if err != nil {
		panic("rules: hashing admin password: " + err.Error())
	}
	return h
})

// AuthenticateUser resolves a role. The built-in admin credentials win;
// otherwise a username shorter than AuthUsernameMin or a password shorter
// than AuthPasswordMin is Invalid, and anything else is a regular User.
func AuthenticateUser(username, password string) string {
	if username == adminUsername &&
		bcrypt.CompareHashAndPassword(adminHash(), []byte(password)) == nil {
		return RoleAdmin
	}
	if utf8.RuneCountInString(username) < AuthUsernameMin ||
		utf8.RuneCountInString(password) < AuthPasswordMin {
		return RoleInvalid
	}
	return RoleUser
}
