package completion

import (
	"strings"
	"time"

	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/workspace"
)

// maxSuggestions bounds every completion result.
const maxSuggestions = 8

// Engine matches the current editing context against the trigger table and
// produces candidate completions. It is total: any input yields a (possibly
// empty) candidate list, never an error.
type Engine struct {
	registry *Registry
	state    *engine.State
	pacer    pacing.Pacer
	latMin   time.Duration
	latMax   time.Duration
}

// Option customises an Engine.
type Option func(*Engine)

// WithLatency sets the simulated inference delay range.
func WithLatency(min, max time.Duration) Option {
	return func(e *Engine) {
		e.latMin = min
		e.latMax = max
	}
}

// New builds a completion engine over the shared state. A nil pacer disables
// latency simulation.
func New(state *engine.State, pacer pacing.Pacer, opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		state:    state,
		pacer:    pacer,
		latMin:   30 * time.Millisecond,
		latMax:   100 * time.Millisecond,
	}
	if e.pacer == nil {
		e.pacer = pacing.Zero{}
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Complete returns up to 8 candidates for the current line, highest priority
// first. line is trimmed before trigger matching; context is the whole buffer.
func (e *Engine) Complete(context, line string, _ engine.Cursor) []string {
	e.state.SetThinking(true)
	defer e.state.SetThinking(false)
	e.pacer.SleepBetween(e.latMin, e.latMax)

	trimmed := strings.TrimSpace(line)

	var suggestions []string
	if p, groups, ok := e.registry.Match(trimmed); ok {
		suggestions = p.Handler(groups, context)
	}
	if len(suggestions) == 0 {
		suggestions = completeGeneric(trimmed)
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Suggest completes at the editor's current cursor position and publishes
// the candidates to the popup.
func (e *Engine) Suggest(ed workspace.Editor, popup workspace.CompletionPopup) []string {
	line, cursor := ed.CurrentLine()
	out := e.Complete(ed.AllText(), line, cursor)
	if popup != nil {
		popup.ShowCandidates(out)
	}
	return out
}

// PatternName reports which trigger line would hit, or "fallback" when no
// trigger matches. Used for observability labels.
func (e *Engine) PatternName(line string) string {
	if p, _, ok := e.registry.Match(strings.TrimSpace(line)); ok {
		return p.Name
	}
	return "fallback"
}

// completeGeneric is the fallback when no trigger matches: prefix-match the
// last token on the line against keywords, then built-in functions.
func completeGeneric(line string) []string {
	words := strings.Fields(line)
	current := ""
	if len(words) > 0 {
		current = strings.ToLower(words[len(words)-1])
	}

	var out []string
	for _, kw := range pythonKeywords {
		if strings.HasPrefix(strings.ToLower(kw), current) {
			out = append(out, kw)
		}
	}
	for _, b := range builtinFunctions {
		if strings.HasPrefix(b.Name, current) {
			out = append(out, b.Name+"()")
		}
	}
	return out
}
