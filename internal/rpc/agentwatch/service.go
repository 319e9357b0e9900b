package agentwatch

import (
	"sync"

	"go.uber.org/zap"

	"github.com/SamsoftComputers/catsdk/internal/agent"
	"github.com/SamsoftComputers/catsdk/internal/config"
	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/observability"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// Watcher starts an agent session and yields streamed events. The returned
// stop function halts the runner and closes the event channel; callers must
// invoke it when the stream ends.
type Watcher interface {
	Watch(req rpc.WatchRequest) (<-chan rpc.AgentEvent, func())
}

// Service spawns one scripted agent per watch stream. Each session gets its
// own runner and workspace so concurrent watchers do not interleave.
type Service struct {
	cfg     config.AgentConfig
	pacer   pacing.Pacer
	logger  *zap.Logger
	metrics *observability.Metrics
	seed    int64
}

// NewService constructs a watch service.
func NewService(cfg config.AgentConfig, pacer pacing.Pacer, seed int64, logger *zap.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cfg: cfg, pacer: pacer, logger: logger, metrics: metrics, seed: seed}
}

// Watch starts a fresh agent session streaming its workspace effects.
func (s *Service) Watch(req rpc.WatchRequest) (<-chan rpc.AgentEvent, func()) {
	events := make(chan rpc.AgentEvent, 256)
	sink := &eventSink{events: events, sessionID: req.SessionID, metrics: s.metrics}

	cfg := s.cfg
	if req.Agent != "" {
		cfg.Name = req.Agent
	}
	runner := agent.NewRunner(cfg, sink, sink, sink, s.pacer, pacing.NewSource(s.seed), s.logger)
	runner.Start()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			runner.Stop()
			runner.Wait()
			sink.emit(rpc.AgentEvent{Type: "done", Done: true})
			close(events)
		})
	}
	return events, stop
}

// eventSink adapts the workspace collaborator interfaces onto the event
// channel. Sends never block: a slow consumer drops keystrokes rather than
// stalling the agent loop.
type eventSink struct {
	events    chan rpc.AgentEvent
	sessionID string
	metrics   *observability.Metrics
}

func (k *eventSink) emit(ev rpc.AgentEvent) {
	ev.SessionID = k.sessionID
	k.metrics.RecordAgentStep(ev.Type)
	select {
	case k.events <- ev:
	default:
	}
}

func (k *eventSink) DisplayFile(path, content string) {
	k.emit(rpc.AgentEvent{Type: "file", Path: path, Text: content})
}

func (k *eventSink) AppendText(text string) {
	k.emit(rpc.AgentEvent{Type: "edit", Text: text})
}

func (k *eventSink) AllText() string { return "" }

func (k *eventSink) CurrentLine() (string, engine.Cursor) {
	return "", engine.Cursor{}
}

func (k *eventSink) SetStatus(text string) {
	k.emit(rpc.AgentEvent{Type: "status", Status: text})
}

func (k *eventSink) LogCommand(text string) {
	k.emit(rpc.AgentEvent{Type: "terminal", Line: "$ " + text})
}

func (k *eventSink) LogRaw(text string) {
	k.emit(rpc.AgentEvent{Type: "terminal", Line: text})
}

func (k *eventSink) PostMessage(role, text string) {
	k.emit(rpc.AgentEvent{Type: "chat", Role: role, Message: text})
}
