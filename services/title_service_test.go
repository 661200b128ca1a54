package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innova-chat/models"
	"innova-chat/services"
)

func seedSession(t *testing.T, store *memStore, turns ...string) int64 {
	t.Helper()
	sess, err := store.Create(context.Background(), "New Chat")
	require.NoError(t, err)
	for i, content := range turns {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderBot
		}
		_, err := store.Append(context.Background(), sess.ID, sender, content)
		require.NoError(t, err)
	}
	return sess.ID
}

func TestSummarizeSetsTitleFromTail(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: "Trip planning for Rome"}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	id := seedSession(t, store, "plan a trip", "sure, where to?", "Rome", "great choice")
	svc.Summarize(context.Background(), id)

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Trip planning for Rome", sess.Title)
}

func TestSummarizeEmptySessionIsNoop(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: "anything"}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	// A session may be emptied (or deleted) between scheduling and running.
	id := seedSession(t, store)
	svc.Summarize(context.Background(), id)
	svc.Summarize(context.Background(), 12345)

	assert.Empty(t, gen.prompts)
	assert.Empty(t, store.titleWrites)
}

func TestSummarizeSwallowsGenerationFailure(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{compErr: errors.New("quota exceeded")}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	id := seedSession(t, store, "hello", "hi")
	svc.Summarize(context.Background(), id)

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", sess.Title)
	assert.Empty(t, store.titleWrites)
}

func TestSummarizeBoundsGenerationTime(t *testing.T) {
	store := newMemStore()
	svc := services.NewTitleService(store, store, hangingGenerator{}, 5, 20*time.Millisecond)

	id := seedSession(t, store, "hello", "hi")

	done := make(chan struct{})
	go func() {
		svc.Summarize(context.Background(), id)
		close(done)
	}()

	// The deadline fires and the timeout is swallowed like any other
	// generation failure; the worker is never left hanging.
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("summarize did not return, generation call carries no deadline")
	}

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", sess.Title)
	assert.Empty(t, store.titleWrites)
}

func TestSummarizeSanitizesCompletion(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: "  \"Weather Small Talk\"\nAnd here is why...  "}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	id := seedSession(t, store, "nice weather", "indeed")
	svc.Summarize(context.Background(), id)

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Weather Small Talk", sess.Title)
}

func TestSummarizeTruncatesLongTitles(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: strings.Repeat("x", 200)}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	id := seedSession(t, store, "hello", "hi")
	svc.Summarize(context.Background(), id)

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, []rune(sess.Title), 60)
}

func TestSummarizePromptEmbedsTailOldestFirst(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: "A Title"}
	svc := services.NewTitleService(store, store, gen, 3, time.Second)

	id := seedSession(t, store, "one", "two", "three", "four", "five")
	svc.Summarize(context.Background(), id)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]

	// Only the last three turns, in conversation order.
	assert.NotContains(t, prompt, "one")
	assert.NotContains(t, prompt, "two")
	iThree := strings.Index(prompt, "three")
	iFour := strings.Index(prompt, "four")
	iFive := strings.Index(prompt, "five")
	require.True(t, iThree >= 0 && iFour >= 0 && iFive >= 0)
	assert.Less(t, iThree, iFour)
	assert.Less(t, iFour, iFive)
}

func TestSummarizeLastWriteWins(t *testing.T) {
	store := newMemStore()
	gen := &fakeGenerator{complete: "First Title"}
	svc := services.NewTitleService(store, store, gen, 5, time.Second)

	id := seedSession(t, store, "hello", "hi")
	svc.Summarize(context.Background(), id)
	gen.complete = "Second Title"
	svc.Summarize(context.Background(), id)

	sess, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Second Title", sess.Title)
	assert.Equal(t, []string{"First Title", "Second Title"}, store.titleWrites)
}
