package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innova-chat/llm"
	"innova-chat/models"
	"innova-chat/services"
)

func TestBuildHistoryRemapsRoles(t *testing.T) {
	msgs := []models.Message{
		{Sender: models.SenderUser, Content: "hello"},
		{Sender: models.SenderBot, Content: "hi"},
		{Sender: models.SenderUser, Content: "how are you?"},
	}

	history := services.BuildHistory(msgs)
	require.Len(t, history, 3)
	assert.Equal(t, llm.Turn{Role: "user", Text: "hello"}, history[0])
	assert.Equal(t, llm.Turn{Role: "model", Text: "hi"}, history[1])
	assert.Equal(t, llm.Turn{Role: "user", Text: "how are you?"}, history[2])
}

func TestBuildHistoryPreservesOrderAndLength(t *testing.T) {
	msgs := make([]models.Message, 0, 10)
	for i := 0; i < 10; i++ {
		sender := models.SenderUser
		if i%2 == 1 {
			sender = models.SenderBot
		}
		msgs = append(msgs, models.Message{Sender: sender, Content: string(rune('a' + i))})
	}

	history := services.BuildHistory(msgs)
	require.Len(t, history, len(msgs))
	for i, turn := range history {
		assert.Equal(t, msgs[i].Content, turn.Text)
	}
}

func TestBuildHistoryEmpty(t *testing.T) {
	assert.Empty(t, services.BuildHistory(nil))
}
