package services

import (
	"context"

	"innova-chat/llm"
	"innova-chat/models"
)

// SessionStore is the session registry as the services consume it.
// Implemented by repositories.SessionRepository.
type SessionStore interface {
	Create(ctx context.Context, title string) (*models.Session, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindByID(ctx context.Context, id int64) (*models.Session, error)
	Touch(ctx context.Context, id int64) error
	SetTitle(ctx context.Context, id int64, title string) error
	List(ctx context.Context) ([]models.Session, error)
	Delete(ctx context.Context, id int64) error
}

// MessageStore is the per-session turn store as the services consume it.
// Implemented by repositories.MessageRepository.
type MessageStore interface {
	Append(ctx context.Context, sessionID int64, sender, content string) (*models.Message, error)
	History(ctx context.Context, sessionID int64) ([]models.Message, error)
	RecentTail(ctx context.Context, sessionID int64, limit int) ([]models.Message, error)
	Count(ctx context.Context, sessionID int64) (int64, error)
	DeleteBySession(ctx context.Context, sessionID int64) error
}

// Generator is the text-generation capability. Implemented by llm.Client.
type Generator interface {
	Chat(ctx context.Context, history []llm.Turn, message string) (string, error)
	Complete(ctx context.Context, prompt string) (string, error)
}

// TitleScheduler detaches title-generation work from the request path.
type TitleScheduler interface {
	Schedule(sessionID int64)
}

// TaskCanceller lets session deletion turn pending background work for the
// session into no-ops.
type TaskCanceller interface {
	CancelSession(sessionID int64)
}
