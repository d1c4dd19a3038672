package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/gauss/core"
)

// Request captures the normalized model input produced by an agent.
type Request struct {
	// Instructions is the system prompt prepended to the conversation.
	Instructions string `json:"instructions,omitempty"`
	// Messages is the conversation to complete.
	Messages []core.Message `json:"messages"`
}

// Response is a completed generation.
type Response struct {
	Text         string     `json:"text"`
	FinishReason string     `json:"finish_reason"` // "stop", "length", etc.
	Usage        core.Usage `json:"usage"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required to drive a single generation.
type Model interface {
	// Generate produces one completion for the request. Implementations
	// must respect ctx cancellation and return typed core errors for
	// provider failures.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: map[string]string{},
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every Generate call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Generate implements Model. It answers with the canned response for the
// last message's text, or a generic echo when none is registered.
func (m *MockModel) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	if len(req.Messages) == 0 {
		return nil, core.NewInternalError("no messages provided")
	}

	input := req.Messages[len(req.Messages)-1].Text
	text, ok := m.responses[input]
	if !ok {
		text = fmt.Sprintf("Mock response to: %s", input)
	}
	return &Response{
		Text:         text,
		FinishReason: "stop",
		Usage:        core.Usage{InputTokens: int64(len(input)), OutputTokens: int64(len(text))},
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
