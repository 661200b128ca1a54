package llm

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"
)

// Turn roles in the model's vocabulary.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one prior exchange element passed to the model.
type Turn struct {
	Role string
	Text string
}

// ErrEmptyCompletion is returned when the model call succeeds at the
// transport level but produces no text. Callers treat it like any other
// generation failure.
var ErrEmptyCompletion = errors.New("model returned empty completion")

const systemPreamble = `You are a helpful, friendly assistant. Answer the user's questions clearly and concisely, and stay consistent with the earlier turns of the conversation.`

// Client wraps the Gemini API behind the two calls the engine needs:
// a multi-turn chat completion and a stateless single-shot completion.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client, model: model}, nil
}

// Chat produces a completion for message given the ordered prior history.
// The fixed conversation preamble rides on the model's native system
// channel rather than as a fabricated first user turn.
func (c *Client) Chat(ctx context.Context, history []Turn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		contents = append(contents, &genai.Content{
			Role:  t.Role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  RoleUser,
		Parts: []*genai.Part{{Text: message}},
	})

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.model,
		contents,
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPreamble}}},
		},
	)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Complete runs a stateless single-shot completion, used by the title
// summarizer. No preamble, no history.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
