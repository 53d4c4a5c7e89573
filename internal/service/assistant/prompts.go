package assistant

import (
	"strings"

	"github.com/sandevgo/recapbot/internal/core"
)

const (
	summarySystem = "You are an assistant that creates concise and informative summaries of chat conversations."
	proofSystem   = "You are a factual assistant that verifies statements. Analyze the statement, determine its factuality, and provide evidence."
	commentSystem = "You are a witty and insightful assistant that provides comments on ongoing discussions."
	answerSystem  = "You are a helpful, knowledgeable, accurate, and friendly assistant."
	roastSystem   = "You are a witty assistant that creates clever, slightly sarcastic, but ultimately good-natured roasts of posts. Keep it light and funny, not mean-spirited."
	visionSystem  = "You are an expert assistant that analyzes images and charts according to user strategies. Never provide financial advice."

	conciseSuffix = " Always provide extremely brief and concise responses, focusing only on the most essential information."
)

// transcriptTokenBudget bounds how much chat history a single prompt may
// carry. Oldest lines are dropped first.
const transcriptTokenBudget = 6000

func (a *Assistant) system(base string) core.Message {
	if a.concise {
		base += conciseSuffix
	}
	return core.TextMessage(core.RoleSystem, base)
}

// transcript renders history records as "Author: text" lines, trimming from
// the front until the result fits the token budget.
func (a *Assistant) transcript(msgs []core.ChatMessage) string {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.Author+": "+m.Text)
	}

	for len(lines) > 1 {
		joined := strings.Join(lines, "\n")
		if a.tokens.Count(joined) <= transcriptTokenBudget {
			break
		}
		lines = lines[1:]
	}
	return strings.Join(lines, "\n")
}
