package event

import (
	"time"

	"github.com/hupe1980/gauss/core"
)

// Kind identifies the variant of an Event. Fixed variants dispatch under
// their own name; KindCustom dispatches under the event's Name field.
type Kind string

const (
	// KindAgentStart signals that a unit of work began executing.
	KindAgentStart Kind = "agent_start"
	// KindAgentFinish signals that a unit of work completed successfully.
	KindAgentFinish Kind = "agent_finish"
	// KindToolCallStart signals that a tool invocation began.
	KindToolCallStart Kind = "tool_call_start"
	// KindToolCallFinish signals that a tool invocation completed.
	KindToolCallFinish Kind = "tool_call_finish"
	// KindError signals a failure somewhere in the system.
	KindError Kind = "error"
	// KindCustom carries a runtime-defined dispatch name in Name.
	KindCustom Kind = "custom"
)

// Wildcard is the reserved subscription key whose handlers receive every
// published event regardless of dispatch name.
const Wildcard = "*"

// Event is a lifecycle notification published through the Bus. Treat
// emitted events as immutable; the same value is passed to every handler.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`

	// Name is the dispatch name for KindCustom events; empty otherwise.
	Name string `json:"name,omitempty"`

	AgentName  string `json:"agent_name,omitempty"`
	SessionID  string `json:"session_id,omitempty"`
	ResultText string `json:"result_text,omitempty"`

	ToolName string        `json:"tool_name,omitempty"`
	Duration time.Duration `json:"duration_ms,omitempty"`
	IsError  bool          `json:"is_error,omitempty"`

	// Source and Message describe KindError events.
	Source  string `json:"source,omitempty"`
	Message string `json:"message,omitempty"`

	// Data carries variant-specific structured payload (tool arguments,
	// custom event body).
	Data map[string]any `json:"data,omitempty"`
}

// DispatchName returns the string key this event is matched against
// subscriptions with. Every event maps to exactly one dispatch name.
func (e Event) DispatchName() string {
	if e.Kind == KindCustom {
		return e.Name
	}
	return string(e.Kind)
}

func newEvent(kind Kind) Event {
	return Event{ID: core.NewID(), Kind: kind, Timestamp: time.Now().UTC()}
}

// NewAgentStart creates an agent_start event.
func NewAgentStart(agentName, sessionID string) Event {
	e := newEvent(KindAgentStart)
	e.AgentName = agentName
	e.SessionID = sessionID
	return e
}

// NewAgentFinish creates an agent_finish event carrying the result text.
func NewAgentFinish(agentName, sessionID, resultText string) Event {
	e := newEvent(KindAgentFinish)
	e.AgentName = agentName
	e.SessionID = sessionID
	e.ResultText = resultText
	return e
}

// NewToolCallStart creates a tool_call_start event.
func NewToolCallStart(toolName string, arguments map[string]any) Event {
	e := newEvent(KindToolCallStart)
	e.ToolName = toolName
	e.Data = arguments
	return e
}

// NewToolCallFinish creates a tool_call_finish event.
func NewToolCallFinish(toolName string, result map[string]any, duration time.Duration, isError bool) Event {
	e := newEvent(KindToolCallFinish)
	e.ToolName = toolName
	e.Data = result
	e.Duration = duration
	e.IsError = isError
	return e
}

// NewError creates an error event attributed to source.
func NewError(source, message string) Event {
	e := newEvent(KindError)
	e.Source = source
	e.Message = message
	return e
}

// NewCustom creates an event dispatching under a runtime-defined name.
func NewCustom(name string, data map[string]any) Event {
	e := newEvent(KindCustom)
	e.Name = name
	e.Data = data
	return e
}
