package plugin

import (
	"sync"

	"github.com/hupe1980/gauss/event"
	"github.com/hupe1980/gauss/logging"
)

// StateKeyConversations is the shared-state key under which MemoryPlugin
// publishes its recorded conversations on shutdown.
const StateKeyConversations = "memory:conversations"

// TelemetryPlugin logs every published event through the configured logger.
type TelemetryPlugin struct {
	Base
	logger logging.Logger
	subID  string
}

// NewTelemetryPlugin creates a telemetry plugin writing to the given logger
// (or a no-op logger if nil).
func NewTelemetryPlugin(logger logging.Logger) *TelemetryPlugin {
	return &TelemetryPlugin{logger: logging.OrNoOp(logger)}
}

// Name implements Plugin.
func (p *TelemetryPlugin) Name() string { return "telemetry" }

// Version implements Plugin.
func (p *TelemetryPlugin) Version() string { return "0.1.0" }

// Init subscribes a wildcard handler that logs each event's dispatch name.
func (p *TelemetryPlugin) Init(_ *Context, bus *event.Bus) error {
	p.subID = bus.Subscribe(event.Wildcard, func(ev event.Event) {
		p.logger.Info("plugin event", "event_type", ev.DispatchName(), "event_id", ev.ID)
	})
	return nil
}

// Shutdown removes the wildcard subscription.
func (p *TelemetryPlugin) Shutdown(_ *Context, bus *event.Bus) error {
	bus.Unsubscribe(p.subID)
	return nil
}

// ConversationRecord is one agent completion captured by MemoryPlugin.
type ConversationRecord struct {
	AgentName  string `json:"agent_name"`
	SessionID  string `json:"session_id"`
	ResultText string `json:"result_text"`
}

// MemoryPlugin records agent_finish events so other plugins (or the host)
// can replay what every agent produced. Records accumulate internally while
// the bus is live and are handed off via the shared context state on
// shutdown, keeping context access strictly sequential.
type MemoryPlugin struct {
	Base

	mu      sync.Mutex
	records []ConversationRecord
	subID   string
}

// NewMemoryPlugin creates a memory plugin.
func NewMemoryPlugin() *MemoryPlugin {
	return &MemoryPlugin{}
}

// Name implements Plugin.
func (p *MemoryPlugin) Name() string { return "memory" }

// Version implements Plugin.
func (p *MemoryPlugin) Version() string { return "0.1.0" }

// Init subscribes to agent_finish events.
func (p *MemoryPlugin) Init(_ *Context, bus *event.Bus) error {
	p.subID = bus.Subscribe(string(event.KindAgentFinish), func(ev event.Event) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.records = append(p.records, ConversationRecord{
			AgentName:  ev.AgentName,
			SessionID:  ev.SessionID,
			ResultText: ev.ResultText,
		})
	})
	return nil
}

// Shutdown unsubscribes and writes the collected records into the shared
// context state under StateKeyConversations.
func (p *MemoryPlugin) Shutdown(ctx *Context, bus *event.Bus) error {
	bus.Unsubscribe(p.subID)
	ctx.State[StateKeyConversations] = p.Conversations()
	return nil
}

// Conversations returns a copy of the records captured so far.
func (p *MemoryPlugin) Conversations() []ConversationRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ConversationRecord, len(p.records))
	copy(out, p.records)
	return out
}
