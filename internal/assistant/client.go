// Package assistant talks to the conversational assistant service, which
// speaks the OpenAI chat-completions protocol. Replies stream in as deltas;
// if the stream breaks before completion the partial text is discarded and
// the caller may retry the same input.
package assistant

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrUnavailable indicates the assistant is not configured.
	ErrUnavailable = errors.New("assistant unavailable")
	// ErrStreamInterrupted indicates the reply stream failed before
	// completion; nothing partial is returned.
	ErrStreamInterrupted = errors.New("assistant stream interrupted")
)

const systemPrompt = `You are a supportive, non-medical menstrual health assistant.

You help users understand their logged cycle data in plain language.

Rules:
- Never diagnose, never name diseases, never recommend medication.
- When a question needs medical judgment, suggest talking to a clinician.
- Be warm, concrete, and brief.`

// Message is one turn of the conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	client openai.Client
	model  string
}

// NewClient builds an assistant client. Returns nil when no base URL is
// configured, in which case the feature is simply off.
func NewClient(baseURL string, apiKey string, model string) *Client {
	if baseURL == "" {
		return nil
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}

	return &Client{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Reply streams the assistant's answer, invoking onDelta for every content
// fragment as it arrives, and returns the accumulated message. On a stream
// error the accumulated partial is thrown away.
func (c *Client) Reply(ctx context.Context, history []Message, onDelta func(fragment string)) (string, error) {
	if c == nil {
		return "", ErrUnavailable
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	messages = append(messages, openai.SystemMessage(systemPrompt))
	for _, message := range history {
		switch message.Role {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(message.Content))
		default:
			messages = append(messages, openai.UserMessage(message.Content))
		}
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: messages,
	})

	var reply strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		fragment := chunk.Choices[0].Delta.Content
		if fragment == "" {
			continue
		}
		reply.WriteString(fragment)
		if onDelta != nil {
			onDelta(fragment)
		}
	}

	if err := stream.Err(); err != nil {
		return "", errors.Join(ErrStreamInterrupted, err)
	}

	return reply.String(), nil
}
