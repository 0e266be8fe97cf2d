package tools

import (
	"strings"

	"github.com/google/uuid"
)

// Generates a random name using UUID
func GenerateRandomName() (string, error) {
	// Generate a UUID
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	// Return the UUID as a string
	return id.String(), nil
}

// Generates a 32 char hex name for temp files, also used as the public id of uploads
func GenerateTempFilename() (string, error) {
	name, err := GenerateRandomName()
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(name, "-", ""), nil
}
