package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innova-chat/logger"
	"innova-chat/models"
)

const titleInstruction = `Write a short descriptive title for the conversation below. Reply with the title only: at most six words, no quotes, no trailing punctuation.`

// maxTitleRunes bounds stored titles regardless of what the model returns.
const maxTitleRunes = 60

// TitleService derives a human-readable session title from the most recent
// turns. It is strictly best-effort: every failure is logged and swallowed,
// because nothing awaits the result and no client-visible path may break on
// it.
type TitleService struct {
	sessions   SessionStore
	messages   MessageStore
	gen        Generator
	tailLimit  int
	genTimeout time.Duration
}

func NewTitleService(sessions SessionStore, messages MessageStore, gen Generator, tailLimit int, genTimeout time.Duration) *TitleService {
	return &TitleService{
		sessions:   sessions,
		messages:   messages,
		gen:        gen,
		tailLimit:  tailLimit,
		genTimeout: genTimeout,
	}
}

// Summarize reads the session tail, asks the model for a title, and
// overwrites the stored one. An empty tail means the session was emptied or
// deleted after scheduling; that is a silent no-op, not an error.
func (s *TitleService) Summarize(ctx context.Context, sessionID int64) {
	tail, err := s.messages.RecentTail(ctx, sessionID, s.tailLimit)
	if err != nil {
		logger.ErrorWithFields("title: failed to read session tail", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}
	if len(tail) == 0 {
		return
	}

	// The worker context lives as long as the queue; the model call must not.
	// A call past the budget is a failure like any other.
	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()
	raw, err := s.gen.Complete(genCtx, buildTitlePrompt(tail))
	if err != nil {
		logger.ErrorWithFields("title: generation failed", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}

	title := sanitizeTitle(raw)
	if title == "" {
		logger.WarnWithFields("title: model returned nothing usable", logger.Fields{
			"session_id": sessionID,
		})
		return
	}

	if err := s.sessions.SetTitle(ctx, sessionID, title); err != nil {
		logger.ErrorWithFields("title: failed to store title", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return
	}
	logger.InfoWithFields("title: session title updated", logger.Fields{
		"session_id": sessionID,
		"title":      title,
	})
}

// buildTitlePrompt embeds the tail turns oldest first under the fixed
// instruction, as a single-shot prompt.
func buildTitlePrompt(tail []models.Message) string {
	var b strings.Builder
	b.WriteString(titleInstruction)
	b.WriteString("\n\n")
	for _, m := range tail {
		fmt.Fprintf(&b, "%s: %s\n", m.Sender, m.Content)
	}
	return b.String()
}

// sanitizeTitle collapses the completion to a single trimmed line without
// surrounding quotes, truncated to maxTitleRunes.
func sanitizeTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if i := strings.IndexAny(title, "\r\n"); i >= 0 {
		title = strings.TrimSpace(title[:i])
	}
	title = strings.Trim(title, `"'`)
	title = strings.TrimSpace(title)

	rs := []rune(title)
	if len(rs) > maxTitleRunes {
		title = string(rs[:maxTitleRunes])
	}
	return title
}
