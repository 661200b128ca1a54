package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"innova-chat/db"
	"innova-chat/models"
)

type SessionRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewSessionRepository(d *mongo.Database) *SessionRepository {
	return &SessionRepository{db: d, col: d.Collection("sessions")}
}

// Create inserts a new session with the given title and a freshly allocated
// integer id. created_at and updated_at start equal.
func (r *SessionRepository) Create(ctx context.Context, title string) (*models.Session, error) {
	id, err := db.NextSequence(ctx, r.db, "sessions")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &models.Session{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Exists reports whether a session with the given id is present.
func (r *SessionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID returns a session by id, or ErrNotFound.
func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	var s models.Session
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Touch bumps updated_at to the current time. Called once per completed
// turn pair.
func (r *SessionRepository) Touch(ctx context.Context, id int64) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetTitle overwrites the session title unconditionally. Last writer wins;
// both the optimistic placeholder and the background summarizer go through
// here.
func (r *SessionRepository) SetTitle(ctx context.Context, id int64, title string) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"title": title},
	})
	return err
}

// List returns all sessions ordered by updated_at descending.
func (r *SessionRepository) List(ctx context.Context) ([]models.Session, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	out := make([]models.Session, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the session row. The caller must have deleted the session's
// messages first to preserve the foreign-key invariant.
func (r *SessionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
