package models

import "time"

// Message sender values. Everything persisted is one or the other.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message is a single turn within a session, immutable once written.
// Collection: messages
//
// Ordering within a session is (timestamp, _id): timestamps are the primary
// key, and the sequence-allocated id breaks ties when two turns land on the
// same instant.
type Message struct {
	ID        int64     `bson:"_id" json:"id"`
	SessionID int64     `bson:"session_id" json:"session_id"`
	Sender    string    `bson:"sender" json:"sender"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
