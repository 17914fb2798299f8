package utils

import "github.com/google/uuid"

// GenerateID returns a new random identifier for documents and drafts.
func GenerateID() string {
	return uuid.NewString()
}
