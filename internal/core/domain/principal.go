package domain

import "time"

// Token scopes. A challenge-scoped principal has passed the password check but
// not the second factor yet.
const (
	ScopeSession    = "session"
	ScopeMFAPending = "mfa_pending"
)

// Principal is the authenticated caller as carried by a bearer token.
type Principal struct {
	IdentityID string
	Email      string
	Role       string
	Scope      string
	TokenID    string
	ExpiresAt  time.Time
}

// PendingMFA reports whether the principal still owes a second factor.
func (p *Principal) PendingMFA() bool {
	return p != nil && p.Scope == ScopeMFAPending
}
