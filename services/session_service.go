package services

import (
	"context"
	"errors"

	"innova-chat/dto"
	"innova-chat/logger"
	"innova-chat/repositories"
)

// SessionService covers the session-level reads and the explicit deletion
// path.
type SessionService struct {
	sessions SessionStore
	messages MessageStore
	tasks    TaskCanceller
}

func NewSessionService(sessions SessionStore, messages MessageStore, tasks TaskCanceller) *SessionService {
	return &SessionService{sessions: sessions, messages: messages, tasks: tasks}
}

// List returns all sessions, most recently active first.
func (s *SessionService) List(ctx context.Context) ([]dto.SessionDTO, *ChatError) {
	items, err := s.sessions.List(ctx)
	if err != nil {
		return nil, internal("store_failed", err)
	}
	out := make([]dto.SessionDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewSessionDTO(it))
	}
	return out, nil
}

// Messages returns the session and its full ordered history.
func (s *SessionService) Messages(ctx context.Context, id int64) (*dto.SessionMessagesDTO, *ChatError) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound("session_not_found", err)
		}
		return nil, internal("store_failed", err)
	}

	history, err := s.messages.History(ctx, id)
	if err != nil {
		return nil, internal("store_failed", err)
	}

	out := &dto.SessionMessagesDTO{
		ID:       session.ID,
		Title:    session.Title,
		Messages: make([]dto.MessageDTO, 0, len(history)),
	}
	for _, m := range history {
		out.Messages = append(out.Messages, dto.NewMessageDTO(m))
	}
	return out, nil
}

// Delete removes a session and everything it owns. Pending background work
// for the session is cancelled first, then messages go before the session
// row so no turn ever references a missing session.
func (s *SessionService) Delete(ctx context.Context, id int64) *ChatError {
	s.tasks.CancelSession(id)

	if err := s.messages.DeleteBySession(ctx, id); err != nil {
		return internal("store_failed", err)
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return internal("store_failed", err)
	}
	logger.InfoWithFields("session deleted", logger.Fields{"session_id": id})
	return nil
}
