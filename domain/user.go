package domain

import (
	"strings"
	"time"
)

// User represents a registered account. The plaintext password is never
// stored; PassHash holds the digest produced by the configured scheme.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PassHash  string    `json:"passHash"`
	CreatedAt time.Time `json:"createdAt"`
}

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// NormalizeEmail canonicalizes an address for equality checks: trimmed and
// lowercased. Account uniqueness is defined over the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) HasEmail(email string) bool {
	return u != nil && NormalizeEmail(u.Email) == NormalizeEmail(email)
}
