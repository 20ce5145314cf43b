package utils

import "github.com/google/uuid"

// NewID generates a unique identifier for tasks and routines.
func NewID() string {
	return uuid.NewString()
}
