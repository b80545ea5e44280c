package model

import "time"

// Mongo collection names.
const (
	CollectionTemporaryPasswords = "temporary_passwords"
	CollectionTermsReceipts      = "terms_receipts"
)

// TemporaryPassword is the document-store record of a first-login
// credential. The hash is bcrypt; the plaintext is never stored.
type TemporaryPassword struct {
	ID               string    `bson:"_id"`
	BusinessDocument string    `bson:"business_document"`
	PersonDocument   string    `bson:"person_document"`
	PasswordHash     string    `bson:"password_hash"`
	CreatedAt        time.Time `bson:"created_at"`
	ExpiresAt        time.Time `bson:"expires_at"`
}

// TermsReceipt is the document-store record of a terms acceptance.
type TermsReceipt struct {
	ID               string    `bson:"_id"`
	BusinessDocument string    `bson:"business_document"`
	PersonDocument   string    `bson:"person_document"`
	Version          string    `bson:"version"`
	AcceptedAt       time.Time `bson:"accepted_at"`
}
