package model

import "time"

// ReservationLock is an advisory lock document keyed by (service, date).
// Inserting it with a fixed _id makes the conflict-scan-then-insert sequence
// mutually exclusive per slot coordinate; ExpiresAt backs a TTL index so a
// crashed holder cannot wedge the slot forever.
type ReservationLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
