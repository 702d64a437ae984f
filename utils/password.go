package utils

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 4

var commonPasswords = map[string]struct{}{
	"password": {}, "password1": {}, "123456": {}, "12345678": {}, "qwerty": {},
	"abc123": {}, "letmein": {}, "welcome": {}, "admin": {}, "iloveyou": {},
	"monkey": {}, "dragon": {}, "football": {}, "baseball": {}, "sunshine": {},
	"princess": {}, "qwerty123": {}, "passw0rd": {}, "master": {}, "hello": {},
	"test": {}, "pass": {}, "1234": {}, "0000": {}, "1111": {},
}

func IsBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashPassword returns a bcrypt hash of plain using the default cost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func VerifyPassword(hash, plain string) bool {
	if !IsBcryptHash(hash) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// PasswordProblems runs the signup password rules and returns every failure.
func PasswordProblems(password, username, email string) []string {
	var problems []string

	lower := strings.ToLower(password)
	if tooSimilar(lower, strings.ToLower(username)) {
		problems = append(problems, "The password is too similar to the username.")
	} else if local, _, _ := strings.Cut(strings.ToLower(email), "@"); tooSimilar(lower, local) || tooSimilar(lower, strings.ToLower(email)) {
		problems = append(problems, "The password is too similar to the email address.")
	}

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", MinPasswordLength))
	}
	if _, ok := commonPasswords[lower]; ok {
		problems = append(problems, "This password is too common.")
	}
	if password != "" && strings.IndexFunc(password, func(r rune) bool { return !unicode.IsDigit(r) }) < 0 {
		problems = append(problems, "This password is entirely numeric.")
	}
	return problems
}

// tooSimilar flags passwords equal to, or mostly made of, the attribute.
func tooSimilar(password, attr string) bool {
	if password == "" || len(attr) < 3 {
		return false
	}
	if password == attr {
		return true
	}
	if strings.Contains(password, attr) && len(attr)*10 >= len(password)*7 {
		return true
	}
	return strings.Contains(attr, password) && len(password)*10 >= len(attr)*7
}
