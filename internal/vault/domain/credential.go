package domain

import "time"

// Credential is one stocked login for a Service. It moves from unclaimed to
// claimed exactly once and ClaimedBy/ClaimedAt never change afterwards.
type Credential struct {
	ID        string
	ServiceID string
	Login     string
	Secret    string // plaintext only in memory; sealed at rest
	Claimed   bool
	ClaimedBy string     // empty until claimed
	ClaimedAt *time.Time // nil until claimed
	CreatedAt time.Time
}

// CredentialPair is a login/secret pair as submitted by an admin.
type CredentialPair struct {
	Login  string
	Secret string
}

// ClaimRecord is the append-only audit entry written for every claim. It has
// no foreign keys so it outlives service deletion.
type ClaimRecord struct {
	ID           string
	UserID       string
	CredentialID string
	ServiceID    string
	ClaimedAt    time.Time
}
