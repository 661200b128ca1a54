package services

import (
	"innova-chat/llm"
	"innova-chat/models"
)

// BuildHistory maps persisted turns onto the model's vocabulary: "user"
// stays "user", "bot" becomes "model". Order is preserved as given, and no
// length cap is applied here — history grows with the session, which is a
// known limitation of the current design.
func BuildHistory(msgs []models.Message) []llm.Turn {
	history := make([]llm.Turn, 0, len(msgs))
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Sender == models.SenderBot {
			role = llm.RoleModel
		}
		history = append(history, llm.Turn{Role: role, Text: m.Content})
	}
	return history
}
