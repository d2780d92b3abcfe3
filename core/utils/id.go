package utils

import (
	"club-api/core/constants"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const alphanumeric = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short random identifier, used as an object key suffix.
func GenerateID() string {
	id, err := gonanoid.Generate(alphanumeric, 10)
	if err != nil {
		return ""
	}
	return id
}

// GenerateTeamCode returns the join code shared with players and parents.
// The alphabet omits characters that are easy to misread (0/O, 1/I).
func GenerateTeamCode() (string, error) {
	return gonanoid.Generate(constants.TeamCodeAlphabet, constants.TeamCodeLength)
}

// NormalizeTeamCode upper-cases and trims a user-typed code.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
