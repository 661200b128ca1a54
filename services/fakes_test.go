package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"innova-chat/llm"
	"innova-chat/models"
	"innova-chat/repositories"
)

// memStore is an in-memory stand-in for both repositories, mirroring their
// contracts: constraint check on append, (timestamp, id) turn ordering,
// updated_at-descending session listing.
type memStore struct {
	mu            sync.Mutex
	nextSessionID int64
	nextMessageID int64
	sessions      map[int64]models.Session
	messages      []models.Message
	titleWrites   []string
}

func newMemStore() *memStore {
	return &memStore{sessions: map[int64]models.Session{}}
}

func (s *memStore) Create(ctx context.Context, title string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSessionID++
	now := time.Now().UTC()
	sess := models.Session{ID: s.nextSessionID, Title: title, CreatedAt: now, UpdatedAt: now}
	s.sessions[sess.ID] = sess
	return &sess, nil
}

func (s *memStore) Exists(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok, nil
}

func (s *memStore) FindByID(ctx context.Context, id int64) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &sess, nil
}

func (s *memStore) Touch(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.UpdatedAt = time.Now().UTC()
		s.sessions[id] = sess
	}
	return nil
}

func (s *memStore) SetTitle(ctx context.Context, id int64, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess.Title = title
		s.sessions[id] = sess
	}
	s.titleWrites = append(s.titleWrites, title)
	return nil
}

func (s *memStore) List(ctx context.Context) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *memStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memStore) Append(ctx context.Context, sessionID int64, sender, content string) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return nil, repositories.ErrConstraintViolation
	}
	s.nextMessageID++
	m := models.Message{
		ID:        s.nextMessageID,
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	return &m, nil
}

// appendAt stores a message with a caller-chosen timestamp, for pinning
// ordering behaviour around timestamp collisions. It prepends to the backing
// slice so insertion order cannot mask a missing id tie-break in History.
func (s *memStore) appendAt(sessionID int64, sender, content string, ts time.Time) models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMessageID++
	m := models.Message{
		ID:        s.nextMessageID,
		SessionID: sessionID,
		Sender:    sender,
		Content:   content,
		Timestamp: ts,
	}
	s.messages = append([]models.Message{m}, s.messages...)
	return m
}

func (s *memStore) History(ctx context.Context, sessionID int64) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) RecentTail(ctx context.Context, sessionID int64, limit int) ([]models.Message, error) {
	all, err := s.History(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *memStore) Count(ctx context.Context, sessionID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) DeleteBySession(ctx context.Context, sessionID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.SessionID != sessionID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

func (s *memStore) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *memStore) messageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type chatCall struct {
	history []llm.Turn
	message string
}

type fakeGenerator struct {
	mu sync.Mutex

	reply    string
	chatErr  error
	chatted  []chatCall
	complete string
	compErr  error
	prompts  []string
}

func (g *fakeGenerator) Chat(ctx context.Context, history []llm.Turn, message string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chatted = append(g.chatted, chatCall{history: history, message: message})
	if g.chatErr != nil {
		return "", g.chatErr
	}
	return g.reply, nil
}

func (g *fakeGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	if g.compErr != nil {
		return "", g.compErr
	}
	return g.complete, nil
}

// hangingGenerator blocks every call until its context is cancelled,
// modelling a model endpoint that never answers.
type hangingGenerator struct{}

func (hangingGenerator) Chat(ctx context.Context, history []llm.Turn, message string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (hangingGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []int64
	cancelled []int64
}

func (f *fakeScheduler) Schedule(sessionID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, sessionID)
}

func (f *fakeScheduler) CancelSession(sessionID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, sessionID)
}
