package workspace

import (
	"strings"
	"sync"

	"github.com/SamsoftComputers/catsdk/internal/engine"
)

// The engine core never touches pixels. These interfaces are the full surface
// it needs from the hosting IDE; the in-memory implementations below back the
// daemon and tests.

// Editor receives file and text updates from the engine.
type Editor interface {
	DisplayFile(path, content string)
	AppendText(text string)
	AllText() string
	CurrentLine() (string, engine.Cursor)
	SetStatus(text string)
}

// Terminal receives command echo and raw output lines.
type Terminal interface {
	LogCommand(text string)
	LogRaw(text string)
}

// Chat receives conversation messages.
type Chat interface {
	PostMessage(role, text string)
}

// CompletionPopup receives candidate lists for display.
type CompletionPopup interface {
	ShowCandidates(candidates []string)
}

// BufferEditor is a mutex-guarded Editor keeping the full buffer in memory.
type BufferEditor struct {
	mu      sync.Mutex
	path    string
	content strings.Builder
	status  string
}

// NewBufferEditor returns an empty editor buffer.
func NewBufferEditor() *BufferEditor {
	return &BufferEditor{}
}

func (e *BufferEditor) DisplayFile(path, content string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.path = path
	e.content.Reset()
	e.content.WriteString(content)
}

func (e *BufferEditor) AppendText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.content.WriteString(text)
}

func (e *BufferEditor) AllText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.content.String()
}

// CurrentLine returns the last line of the buffer and the cursor position at
// its end.
func (e *BufferEditor) CurrentLine() (string, engine.Cursor) {
	e.mu.Lock()
	defer e.mu.Unlock()

	text := e.content.String()
	lines := strings.Split(text, "\n")
	last := lines[len(lines)-1]
	return last, engine.Cursor{Line: len(lines), Col: len(last)}
}

func (e *BufferEditor) SetStatus(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = text
}

// Status returns the last status line set by the engine.
func (e *BufferEditor) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Path returns the displayed file path.
func (e *BufferEditor) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// LogTerminal is a Terminal retaining every logged line.
type LogTerminal struct {
	mu    sync.Mutex
	lines []string
}

// NewLogTerminal returns an empty terminal log.
func NewLogTerminal() *LogTerminal {
	return &LogTerminal{}
}

func (t *LogTerminal) LogCommand(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, "$ "+text)
}

func (t *LogTerminal) LogRaw(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, text)
}

// Lines returns a copy of the logged lines in order.
func (t *LogTerminal) Lines() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lines))
	copy(out, t.lines)
	return out
}

// ListPopup is a CompletionPopup retaining the last shown candidate list.
type ListPopup struct {
	mu         sync.Mutex
	candidates []string
}

// NewListPopup returns an empty popup.
func NewListPopup() *ListPopup {
	return &ListPopup{}
}

func (p *ListPopup) ShowCandidates(candidates []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.candidates = append(p.candidates[:0], candidates...)
}

// Candidates returns a copy of the last shown list.
func (p *ListPopup) Candidates() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.candidates))
	copy(out, p.candidates)
	return out
}

// Message is one chat panel entry.
type Message struct {
	Role string
	Text string
}

// LogChat is a Chat retaining every posted message.
type LogChat struct {
	mu       sync.Mutex
	messages []Message
}

// NewLogChat returns an empty chat log.
func NewLogChat() *LogChat {
	return &LogChat{}
}

func (c *LogChat) PostMessage(role, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Role: role, Text: text})
}

// Messages returns a copy of the posted messages in order.
func (c *LogChat) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}
