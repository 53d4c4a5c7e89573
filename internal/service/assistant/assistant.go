// Package assistant builds prompts for the bot's tasks and relays them to
// the model providers. Errors are returned as-is; the transport decides how
// they surface to users.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sandevgo/recapbot/internal/core"
	"github.com/sandevgo/recapbot/internal/service/convo"
	"github.com/sandevgo/recapbot/pkg/log"
)

// ErrNoContext signals that there was nothing to work with; no remote call
// was made.
var ErrNoContext = errors.New("no messages to work with")

// recordedPromptLimit caps how much of the user's instructions are kept in
// the multi-turn image conversation record.
const recordedPromptLimit = 2000

type Providers struct {
	Chat    core.AIProvider
	Summary core.AIProvider
	Proof   core.AIProvider
	Comment core.AIProvider
	Vision  core.AIProvider
}

type Assistant struct {
	providers Providers
	buffers   *convo.Buffers
	tokens    TokenCounter
	concise   bool
}

func New(providers Providers, buffers *convo.Buffers, tokens TokenCounter, concise bool) *Assistant {
	return &Assistant{
		providers: providers,
		buffers:   buffers,
		tokens:    tokens,
		concise:   concise,
	}
}

// Summarize produces a recap of the given chat transcript.
func (a *Assistant) Summarize(ctx context.Context, msgs []core.ChatMessage) (string, error) {
	if len(msgs) == 0 {
		return "", ErrNoContext
	}

	prompt := "Summarize the following chat messages, highlighting key points and important information:\n\n" +
		a.transcript(msgs)

	return a.complete(ctx, a.providers.Summary, a.system(summarySystem), prompt)
}

// Verify fact-checks a statement.
func (a *Assistant) Verify(ctx context.Context, statement string) (string, error) {
	if strings.TrimSpace(statement) == "" {
		return "", ErrNoContext
	}

	prompt := fmt.Sprintf("Please verify this statement: %q", statement)
	return a.complete(ctx, a.providers.Proof, a.system(proofSystem), prompt)
}

// Comment produces an observation about the recent discussion.
func (a *Assistant) Comment(ctx context.Context, msgs []core.ChatMessage) (string, error) {
	if len(msgs) == 0 {
		return "", ErrNoContext
	}

	prompt := "Here are the recent messages in the chat:\n\n" + a.transcript(msgs) +
		"\n\nBased on these messages, provide an insightful comment about the discussion."

	return a.complete(ctx, a.providers.Comment, a.system(commentSystem), prompt)
}

// Answer responds to a free-form question, optionally grounded in recent
// chat context.
func (a *Assistant) Answer(ctx context.Context, question string, contextMsgs []core.ChatMessage) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrNoContext
	}

	history := []core.Message{a.system(answerSystem)}
	if len(contextMsgs) > 0 {
		history = append(history, core.TextMessage(core.RoleUser,
			"Recent chat context:\n\n"+a.transcript(contextMsgs)+"\n"))
	}
	history = append(history, core.TextMessage(core.RoleUser, question))

	reply, err := a.providers.Chat.Chat(ctx, history)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return reply.Content, nil
}

// Roast produces a light-hearted roast of a post.
func (a *Assistant) Roast(ctx context.Context, post string) (string, error) {
	if strings.TrimSpace(post) == "" {
		return "", ErrNoContext
	}

	prompt := fmt.Sprintf("Please roast this post in a funny way: %q", post)
	return a.complete(ctx, a.providers.Comment, a.system(roastSystem), prompt)
}

// ImageRequest is one image-analysis turn.
type ImageRequest struct {
	ConversationID string
	ImageDataURL   string // data:image/...;base64,...
	Instructions   string
}

// AnalyzeImage runs one turn of a multi-turn image analysis. Prior turns for
// the conversation are included from the buffer; the new exchange is recorded
// only after a successful response. The buffer lock is never held across the
// model call.
func (a *Assistant) AnalyzeImage(ctx context.Context, req ImageRequest) (string, error) {
	userPrompt := strings.TrimSpace(req.Instructions)
	promptLine := "User prompt: (no additional instructions provided)"
	if userPrompt != "" {
		promptLine = "User prompt: " + userPrompt
	}

	history := []core.Message{a.system(visionSystem)}
	history = append(history, a.buffers.Snapshot(req.ConversationID)...)
	history = append(history, core.Message{
		Role: core.RoleUser,
		Parts: []core.ContentPart{
			{Type: "text", Text: "Analyze the attached chart or image. Provide feedback and insights, but do not give financial advice."},
			{Type: "text", Text: promptLine},
			{Type: "image_url", ImageURL: &core.ImageURL{URL: req.ImageDataURL}},
		},
	})

	reply, err := a.providers.Vision.Chat(ctx, history)
	if err != nil {
		return "", fmt.Errorf("analyze image: %w", err)
	}

	analysis := strings.TrimSpace(reply.Content)
	if analysis == "" {
		return "", errors.New("empty analysis from model")
	}

	recorded := promptLine
	if len(recorded) > recordedPromptLimit {
		recorded = recorded[:recordedPromptLimit] + "..."
	}

	// The image itself is not replayed on later turns, only its text trace.
	a.buffers.AppendTurn(req.ConversationID,
		core.TextMessage(core.RoleUser, recorded+"\n[Image reference omitted; consult original message.]"),
		core.TextMessage(core.RoleAssistant, analysis),
	)

	log.FromCtx(ctx).Debug().
		Str("conversation", req.ConversationID).
		Int("analysis_len", len(analysis)).
		Msg("image analysis turn recorded")

	return analysis, nil
}

// ResetConversation discards the image-analysis history for a conversation.
func (a *Assistant) ResetConversation(id string) {
	a.buffers.Reset(id)
}

func (a *Assistant) complete(ctx context.Context, provider core.AIProvider, system core.Message, prompt string) (string, error) {
	reply, err := provider.Chat(ctx, []core.Message{
		system,
		core.TextMessage(core.RoleUser, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return reply.Content, nil
}
