// Package models defines server-side data models persisted in the database.
package models

import "time"

// Principal is a registered identity. Identifier is unique and never changes;
// SecretHash holds the encoded output of the configured password hasher.
type Principal struct {
	ID         string    `db:"id"`
	Identifier string    `db:"identifier"`
	SecretHash string    `db:"secret_hash"`
	CreatedAt  time.Time `db:"created_at"`
}
