package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Text: "be brief"}, SystemMessage("be brief"))
	assert.Equal(t, Message{Role: RoleUser, Text: "hello"}, UserMessage("hello"))
	assert.Equal(t, Message{Role: RoleAssistant, Text: "hi"}, AssistantMessage("hi"))
	assert.Equal(t, Message{Role: RoleTool, Text: "42", Name: "calc"}, ToolMessage("calc", "42"))
}

func TestUsageAdd(t *testing.T) {
	u := Usage{InputTokens: 10, OutputTokens: 5}
	u.Add(Usage{InputTokens: 3, OutputTokens: 7, ReasoningTokens: 2})

	assert.Equal(t, int64(13), u.InputTokens)
	assert.Equal(t, int64(12), u.OutputTokens)
	assert.Equal(t, int64(2), u.ReasoningTokens)
	assert.Equal(t, int64(25), u.TotalTokens())
}

func TestErrorFormatting(t *testing.T) {
	err := NewConfigError("team 'review'", "team has no agents")
	assert.Equal(t, `config error in "team 'review'": team has no agents`, err.Error())

	bare := NewInternalError("unexpected state")
	assert.Equal(t, "internal error: unexpected state", bare.Error())
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewAgentError("writer", cause)

	require.ErrorIs(t, err, cause)
	var ge *Error
	require.ErrorAs(t, fmt.Errorf("run failed: %w", err), &ge)
	assert.Equal(t, ErrKindAgent, ge.Kind)
	assert.Equal(t, "writer", ge.Subject)
}

func TestErrorRetryable(t *testing.T) {
	cause := errors.New("upstream")

	assert.True(t, NewProviderError("openai", cause).Retryable())
	assert.True(t, NewRateLimitedError("anthropic", cause).Retryable())
	assert.False(t, NewAuthError("openai", cause).Retryable())
	assert.False(t, NewConfigError("team", "empty").Retryable())
	assert.False(t, NewCycleError("workflow", "a -> b -> a").Retryable())
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewCycleError("plugin registry", "p1 -> p2 -> p1"))

	assert.True(t, IsKind(err, ErrKindCycle))
	assert.False(t, IsKind(err, ErrKindConfig))
	assert.False(t, IsKind(errors.New("plain"), ErrKindCycle))
}

func TestRunnerFunc(t *testing.T) {
	r := RunnerFunc{
		FuncName: "echo",
		Fn: func(_ context.Context, messages []Message) (*Output, error) {
			return &Output{Text: messages[0].Text}, nil
		},
	}

	assert.Equal(t, "echo", r.Name())
	out, err := r.Run(context.Background(), []Message{UserMessage("ping")})
	require.NoError(t, err)
	assert.Equal(t, "ping", out.Text)
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
