package core

import "github.com/google/uuid"

// NewID generates a unique identifier used for events, bus subscriptions
// and run correlation.
func NewID() string { return uuid.NewString() }
