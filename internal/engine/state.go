package engine

import "sync"

// State holds the emulated model's identity and conversational memory.
// Construct one per engine instance and share it between the completion
// and chat engines.
type State struct {
	modelID       string
	temperature   float64
	topP          float64
	contextWindow int
	historyLimit  int

	mu       sync.Mutex
	history  []Turn
	thinking bool
}

// Options configures a State.
type Options struct {
	ModelID       string
	Temperature   float64
	TopP          float64
	ContextWindow int
	// HistoryLimit caps the retained turns; once exceeded the oldest turns
	// are dropped. Zero means unbounded.
	HistoryLimit int
}

// NewState builds engine state with the given options.
func NewState(opts Options) *State {
	if opts.ModelID == "" {
		opts.ModelID = "CatLLM-14B-Distill-v1"
	}
	if opts.ContextWindow <= 0 {
		opts.ContextWindow = 4096
	}
	return &State{
		modelID:       opts.ModelID,
		temperature:   opts.Temperature,
		topP:          opts.TopP,
		contextWindow: opts.ContextWindow,
		historyLimit:  opts.HistoryLimit,
	}
}

// ModelID returns the configured model identifier.
func (s *State) ModelID() string {
	return s.modelID
}

// ContextWindow returns the advertised token window.
func (s *State) ContextWindow() int {
	return s.contextWindow
}

// Append records turns in conversation order, trimming the oldest entries
// once the history limit is exceeded.
func (s *State) Append(turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, turns...)
	if s.historyLimit > 0 && len(s.history) > s.historyLimit {
		// Copy so the dropped prefix can be collected.
		trimmed := make([]Turn, s.historyLimit)
		copy(trimmed, s.history[len(s.history)-s.historyLimit:])
		s.history = trimmed
	}
}

// History returns a copy of the retained turns in conversation order.
func (s *State) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}

// SetThinking flips the in-flight generation flag.
func (s *State) SetThinking(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thinking = v
}

// Thinking reports whether a generation call is in flight.
func (s *State) Thinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thinking
}

// Status returns a snapshot without side effects.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		ModelID:    s.modelID,
		HistoryLen: len(s.history),
		Thinking:   s.thinking,
	}
}
