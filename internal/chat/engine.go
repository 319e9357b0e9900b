package chat

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
)

// Intent is the classified category of an inbound message.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentError    Intent = "error"
	IntentConcept  Intent = "concept"
	IntentExplain  Intent = "explain"
	IntentFix      Intent = "fix"
	IntentHowTo    Intent = "howto"
	IntentGenerate Intent = "generate"
	IntentFallback Intent = "fallback"
)

// Engine classifies chat messages against ordered keyword rules and produces
// canned responses. Like completion, it is total over its input domain.
type Engine struct {
	state  *engine.State
	pacer  pacing.Pacer
	src    *pacing.Source
	latMin time.Duration
	latMax time.Duration
}

// Option customises an Engine.
type Option func(*Engine)

// WithLatency sets the simulated response delay range.
func WithLatency(min, max time.Duration) Option {
	return func(e *Engine) {
		e.latMin = min
		e.latMax = max
	}
}

// New builds a chat engine over the shared state. src drives pool selection
// and may be seeded for deterministic output.
func New(state *engine.State, pacer pacing.Pacer, src *pacing.Source, opts ...Option) *Engine {
	e := &Engine{
		state:  state,
		pacer:  pacer,
		src:    src,
		latMin: 150 * time.Millisecond,
		latMax: 400 * time.Millisecond,
	}
	if e.pacer == nil {
		e.pacer = pacing.Zero{}
	}
	if e.src == nil {
		e.src = pacing.NewSource(0)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Respond generates a reply to message, consulting codeContext for the
// explain/fix intents. The user turn and the produced assistant turn are
// appended to history, in that order.
func (e *Engine) Respond(message, codeContext string) string {
	e.state.SetThinking(true)
	defer e.state.SetThinking(false)

	e.state.Append(engine.Turn{Role: engine.RoleUser, Content: message})
	e.pacer.SleepBetween(e.latMin, e.latMax)

	response := e.generate(message, codeContext)

	e.state.Append(engine.Turn{Role: engine.RoleAssistant, Content: response})
	return response
}

// Status returns the engine snapshot without side effects.
func (e *Engine) Status() engine.Status {
	return e.state.Status()
}

// Classify reports which rule category the message routes to. First match
// wins; the order here is the response priority order.
func Classify(message string) Intent {
	msg := strings.ToLower(message)

	for _, g := range greetingTokens {
		if strings.Contains(msg, g) {
			return IntentGreeting
		}
	}
	for _, eh := range errorHelp {
		if strings.Contains(msg, strings.ToLower(eh.Key)) {
			return IntentError
		}
	}
	for _, c := range conceptHelp {
		if strings.Contains(msg, c.Key) {
			return IntentConcept
		}
	}
	if strings.Contains(msg, "explain") || strings.Contains(msg, "what does") {
		return IntentExplain
	}
	for _, w := range []string{"fix", "help", "error", "bug"} {
		if strings.Contains(msg, w) {
			return IntentFix
		}
	}
	if strings.Contains(msg, "how to") || strings.Contains(msg, "how do") {
		return IntentHowTo
	}
	for _, w := range []string{"write", "create", "make", "generate"} {
		if strings.Contains(msg, w) {
			return IntentGenerate
		}
	}
	return IntentFallback
}

func (e *Engine) generate(message, codeContext string) string {
	msg := strings.ToLower(message)

	switch Classify(message) {
	case IntentGreeting:
		return e.src.Pick(greetings)
	case IntentError:
		for _, eh := range errorHelp {
			if strings.Contains(msg, strings.ToLower(eh.Key)) {
				return fmt.Sprintf("🐱 %s? %s", eh.Key, eh.Text)
			}
		}
	case IntentConcept:
		for _, c := range conceptHelp {
			if strings.Contains(msg, c.Key) {
				return "🐱 " + c.Text
			}
		}
	case IntentExplain:
		return explainCode(codeContext)
	case IntentFix:
		return debugChecklist
	case IntentHowTo:
		return howTo(msg)
	case IntentGenerate:
		return generateCode(msg)
	}
	return e.src.Pick(fallbacks)
}

var (
	defLineRe   = regexp.MustCompile(`def\s+(\w+)`)
	classLineRe = regexp.MustCompile(`class\s+(\w+)`)
)

// explainCode emits one bullet per recognized line among the first 8
// non-empty lines of code.
func explainCode(code string) string {
	if strings.TrimSpace(code) == "" {
		return explainEmpty
	}

	var b strings.Builder
	b.WriteString("🐱 Here's what I see:\n\n")

	seen := 0
	for _, line := range strings.Split(strings.TrimSpace(code), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen++; seen > 8 {
			break
		}
		switch {
		case strings.HasPrefix(line, "def "):
			if m := defLineRe.FindStringSubmatch(line); m != nil {
				fmt.Fprintf(&b, "• Function `%s`\n", m[1])
			}
		case strings.HasPrefix(line, "class "):
			if m := classLineRe.FindStringSubmatch(line); m != nil {
				fmt.Fprintf(&b, "• Class `%s`\n", m[1])
			}
		case strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "from "):
			fmt.Fprintf(&b, "• Import: `%s`\n", line)
		case strings.HasPrefix(line, "if "):
			b.WriteString("• Conditional\n")
		case strings.HasPrefix(line, "for ") || strings.HasPrefix(line, "while "):
			b.WriteString("• Loop\n")
		case strings.HasPrefix(line, "return "):
			b.WriteString("• Return statement\n")
		}
	}

	b.WriteString("\nAsk me about any part! 🐱")
	return b.String()
}

func howTo(msg string) string {
	switch {
	case strings.Contains(msg, "read") && strings.Contains(msg, "file"):
		return howToReadFile
	case strings.Contains(msg, "write") && strings.Contains(msg, "file"):
		return howToWriteFile
	case strings.Contains(msg, "list"):
		return howToList
	case strings.Contains(msg, "dict"):
		return howToDict
	case strings.Contains(msg, "loop"):
		return howToLoop
	}
	return howToUnknown
}

func generateCode(msg string) string {
	switch {
	case strings.Contains(msg, "hello"):
		return generateHello
	case strings.Contains(msg, "game"):
		return generateGame
	}
	return generateUnknown
}
