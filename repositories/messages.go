package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innova-chat/db"
	"innova-chat/models"
)

type MessageRepository struct {
	db       *mongo.Database
	col      *mongo.Collection
	sessions *mongo.Collection
}

func NewMessageRepository(d *mongo.Database) *MessageRepository {
	return &MessageRepository{
		db:       d,
		col:      d.Collection("messages"),
		sessions: d.Collection("sessions"),
	}
}

// messageOrder is the total order of turns within a session: timestamp
// ascending, sequence id breaking ties.
var messageOrder = bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}

// Append persists one turn for the session. Mongo enforces no foreign keys,
// so the session existence check lives here: appending to a missing session
// returns ErrConstraintViolation.
func (r *MessageRepository) Append(ctx context.Context, sessionID int64, sender, content string) (*models.Message, error) {
	n, err := r.sessions.CountDocuments(ctx, bson.M{"_id": sessionID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrConstraintViolation
	}

	id, err := db.NextSequence(ctx, r.db, "messages")
	if err != nil {
		return nil, err
	}
	m := &models.Message{
		ID:        id,
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// History returns every turn of the session in ascending order. Each call
// is a fresh snapshot, not a live cursor.
func (r *MessageRepository) History(ctx context.Context, sessionID int64) ([]models.Message, error) {
	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID}, options.Find().SetSort(messageOrder))
	if err != nil {
		return nil, err
	}
	out := make([]models.Message, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentTail returns the most recent limit turns in ascending order. The
// query runs descending with a limit, then the slice is reversed, so the
// cost stays bounded for long sessions.
func (r *MessageRepository) RecentTail(ctx context.Context, sessionID int64, limit int) ([]models.Message, error) {
	desc := bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}
	cur, err := r.col.Find(ctx, bson.M{"session_id": sessionID},
		options.Find().SetSort(desc).SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	tail := make([]models.Message, 0, limit)
	if err := cur.All(ctx, &tail); err != nil {
		return nil, err
	}
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}
	return tail, nil
}

// Count returns the number of turns in the session.
func (r *MessageRepository) Count(ctx context.Context, sessionID int64) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"session_id": sessionID})
}

// DeleteBySession removes every turn of the session. Idempotent.
func (r *MessageRepository) DeleteBySession(ctx context.Context, sessionID int64) error {
	_, err := r.col.DeleteMany(ctx, bson.M{"session_id": sessionID})
	return err
}
