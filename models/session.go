package models

import "time"

// Session represents a persisted conversation container.
// Collection: sessions
//
// The id is an application-assigned integer (see db.NextSequence) so clients
// can hold it across requests; it never changes once assigned.
type Session struct {
	ID        int64     `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
