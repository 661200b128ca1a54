package dto

import (
	"time"

	"innova-chat/models"
)

type SessionDTO struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MessageDTO struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type SessionMessagesDTO struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Messages []MessageDTO `json:"messages"`
}

func NewSessionDTO(s models.Session) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewMessageDTO(m models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}
