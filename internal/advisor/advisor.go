// Package advisor proxies chat conversations to the Anthropic API with a
// system prompt built from the user's stored profile, goals, and holdings.
package advisor

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ameya-wealth/wealth-api/internal/model"
	"github.com/ameya-wealth/wealth-api/pkg/anthropic"
)

// maxHistoryTurns caps how much conversation history is replayed per
// request. Older turns are dropped from the front.
const maxHistoryTurns = 20

// ErrInvalidRequest is returned for malformed chat requests.
var ErrInvalidRequest = eris.New("advisor: invalid chat request")

// Store provides the user context the system prompt is built from.
type Store interface {
	GetDashboard(ctx context.Context, userID string) (*model.Dashboard, error)
}

// Turn is one message in the chat history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the user and the conversation so far. The last turn
// must be from the user.
type ChatRequest struct {
	UserID   string `json:"user_id"`
	Messages []Turn `json:"messages"`
}

// Service answers advisor chats.
type Service struct {
	llm       anthropic.Client
	store     Store
	model     string
	maxTokens int64
}

func New(llm anthropic.Client, store Store, llmModel string, maxTokens int) *Service {
	return &Service{
		llm:       llm,
		store:     store,
		model:     llmModel,
		maxTokens: int64(maxTokens),
	}
}

// Chat streams an assistant response, invoking onDelta for each text
// fragment. The user's dashboard feeds the system prompt; an unknown user
// still gets a generic advisory prompt.
func (s *Service) Chat(ctx context.Context, req ChatRequest, onDelta func(text string) error) (*anthropic.MessageResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var dash *model.Dashboard
	if req.UserID != "" {
		d, err := s.store.GetDashboard(ctx, req.UserID)
		if err != nil {
			// Context lookup failures degrade to a generic prompt rather
			// than blocking the conversation.
			zap.L().Warn("advisor context lookup failed",
				zap.String("user_id", req.UserID),
				zap.Error(err))
		} else {
			dash = d
		}
	}

	msgs := req.Messages
	if len(msgs) > maxHistoryTurns {
		msgs = msgs[len(msgs)-maxHistoryTurns:]
	}

	llmReq := anthropic.MessageRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		System:    anthropic.BuildCachedSystemBlocks(buildSystemPrompt(dash)),
		Messages:  toMessages(msgs),
	}

	resp, err := s.llm.StreamMessage(ctx, llmReq, onDelta)
	if err != nil {
		return nil, eris.Wrap(err, "advisor: stream chat")
	}
	resp.Usage.LogCost(s.model, "advisor_chat")

	return resp, nil
}

func validate(req ChatRequest) error {
	if len(req.Messages) == 0 {
		return eris.Wrap(ErrInvalidRequest, "empty message history")
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != "user" {
		return eris.Wrap(ErrInvalidRequest, "last message must be from the user")
	}
	for _, m := range req.Messages {
		if m.Role != "user" && m.Role != "assistant" {
			return eris.Wrap(ErrInvalidRequest, "unknown role "+m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return eris.Wrap(ErrInvalidRequest, "empty message content")
		}
	}
	return nil
}

func toMessages(turns []Turn) []anthropic.Message {
	out := make([]anthropic.Message, len(turns))
	for i, t := range turns {
		out[i] = anthropic.Message{Role: t.Role, Content: t.Content}
	}
	return out
}
