package utils

import "github.com/google/uuid"

// GenerateID returns a random identifier used to namespace stored files.
func GenerateID() string {
	return uuid.New().String()
}
