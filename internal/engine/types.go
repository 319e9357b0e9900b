package engine

// Role is the message role used in chat exchanges.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn represents a single message in the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Cursor is a (line, column) editor position.
type Cursor struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Status is a point-in-time snapshot of the engine.
type Status struct {
	ModelID    string `json:"model"`
	HistoryLen int    `json:"context"`
	Thinking   bool   `json:"thinking"`
}
