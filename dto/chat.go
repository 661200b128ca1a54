package dto

import (
	"time"

	"innova-chat/models"
)

type ChatRequestDTO struct {
	Message   string `json:"message" example:"Hello"`
	SessionID *int64 `json:"sessionId,omitempty" example:"12"`
}

type BotMessageDTO struct {
	Sender    string    `json:"sender" example:"bot"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatResponseDTO struct {
	BotMessage BotMessageDTO `json:"botMessage"`

	// SessionID and SessionTitle are present only when this request created
	// a new session.
	SessionID    *int64 `json:"sessionId,omitempty"`
	SessionTitle string `json:"sessionTitle,omitempty"`
}

type GenerateTitleRequestDTO struct {
	SessionID *int64 `json:"sessionId" example:"12"`
}

type StatusResponseDTO struct {
	Status string `json:"status" example:"started"`
}

type ErrorResponseDTO struct {
	Error string `json:"error" example:"generation_failed"`
}

func NewBotMessageDTO(m models.Message) BotMessageDTO {
	return BotMessageDTO{
		Sender:    m.Sender,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
}
