package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("kilimanjaro-7")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.True(t, VerifyPassword(hash, "kilimanjaro-7"))
	assert.False(t, VerifyPassword(hash, "kilimanjaro-8"))
	assert.False(t, VerifyPassword("kilimanjaro-7", "kilimanjaro-7"), "plain text is never accepted")
}

func TestPasswordProblems(t *testing.T) {
	assert.Empty(t, PasswordProblems("kilimanjaro-7", "asha", "asha@example.com"))

	assert.Contains(t, PasswordProblems("abc", "asha", "asha@example.com"),
		"This password is too short. It must contain at least 4 characters.")
	assert.Contains(t, PasswordProblems("98765432", "asha", "asha@example.com"),
		"This password is entirely numeric.")
	assert.Contains(t, PasswordProblems("Password", "asha", "asha@example.com"),
		"This password is too common.")
	assert.Contains(t, PasswordProblems("Traveller", "traveller", "t@example.com"),
		"The password is too similar to the username.")
	assert.Contains(t, PasswordProblems("mwanaisha", "asha", "mwanaisha@example.com"),
		"The password is too similar to the email address.")
}
