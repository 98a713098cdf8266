package domain

import (
	"strings"
	"time"
)

// Subscriber is one opt-in email address. There is exactly one row per
// normalized email; re-subscribing reactivates the same row.
type Subscriber struct {
	Email          string
	IsActive       bool
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}

// NormalizeEmail canonicalizes an address for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
