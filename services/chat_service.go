package services

import (
	"context"
	"strings"
	"time"

	"innova-chat/logger"
	"innova-chat/models"
)

// ChatService drives one chat exchange end to end: resolve the session,
// persist the user turn, generate the reply, persist the bot turn, and
// schedule title generation when the session has grown enough.
type ChatService struct {
	sessions SessionStore
	messages MessageStore
	gen      Generator
	titles   TitleScheduler

	genTimeout    time.Duration
	turnThreshold int64
}

func NewChatService(
	sessions SessionStore,
	messages MessageStore,
	gen Generator,
	titles TitleScheduler,
	genTimeout time.Duration,
	turnThreshold int,
) *ChatService {
	return &ChatService{
		sessions:      sessions,
		messages:      messages,
		gen:           gen,
		titles:        titles,
		genTimeout:    genTimeout,
		turnThreshold: int64(turnThreshold),
	}
}

type SendInput struct {
	Message   string
	SessionID *int64
}

type SendResult struct {
	BotMessage models.Message

	// SessionID and SessionTitle are set only when this request created the
	// session, so the client can adopt the new id.
	SessionID    *int64
	SessionTitle string
}

// Send handles one inbound chat turn. Validation happens before any write;
// once the user turn is persisted it stays persisted, even when generation
// fails — the caller gets a retryable error and a retry appends a fresh
// user turn rather than duplicating this one silently.
func (s *ChatService) Send(ctx context.Context, in SendInput) (*SendResult, *ChatError) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, badRequest("empty_message")
	}

	sessionID, isNew, title, err := s.resolveSession(ctx, in.SessionID)
	if err != nil {
		return nil, internal("store_failed", err)
	}

	userMsg, err := s.messages.Append(ctx, sessionID, models.SenderUser, in.Message)
	if err != nil {
		return nil, internal("store_failed", err)
	}

	history, err := s.messages.History(ctx, sessionID)
	if err != nil {
		return nil, internal("store_failed", err)
	}
	// The snapshot includes the turn just appended (and possibly turns from
	// concurrent requests); the model receives it once, as the new input.
	prior := make([]models.Message, 0, len(history))
	for _, m := range history {
		if m.ID != userMsg.ID {
			prior = append(prior, m)
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	reply, err := s.gen.Chat(genCtx, BuildHistory(prior), in.Message)
	if err != nil {
		logger.ErrorWithFields("generation failed, user turn kept", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, internal("generation_failed", err)
	}

	botMsg, err := s.messages.Append(ctx, sessionID, models.SenderBot, reply)
	if err != nil {
		return nil, internal("store_failed", err)
	}
	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		logger.ErrorWithFields("failed to touch session", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.maybeScheduleTitle(ctx, sessionID)

	result := &SendResult{BotMessage: *botMsg}
	if isNew {
		result.SessionID = &sessionID
		result.SessionTitle = title
	}
	return result, nil
}

// resolveSession returns the session to append to, creating one when no id
// was sent or when the sent id no longer exists (a stale id from a reset
// store is discarded, not an error).
func (s *ChatService) resolveSession(ctx context.Context, candidate *int64) (int64, bool, string, error) {
	if candidate != nil {
		ok, err := s.sessions.Exists(ctx, *candidate)
		if err != nil {
			return 0, false, "", err
		}
		if ok {
			return *candidate, false, "", nil
		}
		logger.WarnWithFields("session id not found, creating new session", logger.Fields{
			"session_id": *candidate,
		})
	}

	title := placeholderTitle(time.Now())
	created, err := s.sessions.Create(ctx, title)
	if err != nil {
		return 0, false, "", err
	}
	return created.ID, true, title, nil
}

// maybeScheduleTitle fires a detached title task once the session has more
// turns than the threshold. The response never waits on it, and a count
// failure only costs this round's scheduling.
func (s *ChatService) maybeScheduleTitle(ctx context.Context, sessionID int64) {
	count, err := s.messages.Count(ctx, sessionID)
	if err != nil {
		logger.ErrorWithFields("failed to count turns for title scheduling", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}
	if count > s.turnThreshold {
		s.titles.Schedule(sessionID)
	}
}

func placeholderTitle(now time.Time) string {
	return "New Chat " + now.Format("2006-01-02 15:04")
}
