package core

// Role identifies the author of a Message.
type Role string

const (
	// RoleSystem marks instructions injected by the application.
	RoleSystem Role = "system"
	// RoleUser marks input originating from the end user (or a previous
	// unit of work whose output is being fed forward).
	RoleUser Role = "user"
	// RoleAssistant marks output produced by a model.
	RoleAssistant Role = "assistant"
	// RoleTool marks a tool invocation result.
	RoleTool Role = "tool"
)

// Message is a single role-tagged conversation entry. Messages are plain
// values; callers may copy and mutate them freely before handing them to a
// Runner.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	// Name optionally identifies the author (agent name, tool name).
	Name string `json:"name,omitempty"`
}

// SystemMessage creates a system-role message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Text: text}
}

// UserMessage creates a user-role message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Text: text}
}

// AssistantMessage creates an assistant-role message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Text: text}
}

// ToolMessage creates a tool-role message attributed to the named tool.
func ToolMessage(name, text string) Message {
	return Message{Role: RoleTool, Text: text, Name: name}
}

// Usage accumulates token accounting for one or more model calls.
type Usage struct {
	InputTokens     int64 `json:"input_tokens"`
	OutputTokens    int64 `json:"output_tokens"`
	ReasoningTokens int64 `json:"reasoning_tokens,omitempty"`
}

// Add merges another Usage into this one.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.ReasoningTokens += other.ReasoningTokens
}

// TotalTokens returns the combined input and output token count.
func (u Usage) TotalTokens() int64 {
	return u.InputTokens + u.OutputTokens
}
