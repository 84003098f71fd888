package pkg

import "github.com/google/uuid"

// GenerateGameID returns a new random game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateNewSessionID returns the identifier for one run of the program.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
