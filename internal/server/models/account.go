package models

import "time"

// Account is a bank-account record served by the resource API.
// Balance is expressed in minor units (cents).
type Account struct {
	ID        string    `db:"id" json:"id"`
	Number    string    `db:"number" json:"number"`
	Holder    string    `db:"holder" json:"holder"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
