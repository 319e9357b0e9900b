package rpc

// Cursor addresses a position in the editing buffer.
type Cursor struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// ChatRequest carries one user message to the model.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
}

// ChatEvent streams back the model reply token by token.
type ChatEvent struct {
	Type      string `json:"type"` // message|token|error|done
	SessionID string `json:"session_id,omitempty"`
	Token     string `json:"token,omitempty"`
	Message   string `json:"message,omitempty"`
	Intent    string `json:"intent,omitempty"`
	Model     string `json:"model,omitempty"`
	History   int    `json:"history,omitempty"`
	Error     string `json:"error,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// CompleteRequest asks for completion candidates at a cursor position.
type CompleteRequest struct {
	Context string `json:"context,omitempty"`
	Line    string `json:"line"`
	Cursor  Cursor `json:"cursor"`
}

// CompleteResponse returns ranked completion candidates.
type CompleteResponse struct {
	Suggestions []string `json:"suggestions"`
	Pattern     string   `json:"pattern"`
	Model       string   `json:"model"`
}

// WatchRequest opens an agent activity stream.
type WatchRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Agent     string `json:"agent,omitempty"`
}

// AgentEvent is one observed effect of the agent on its workspace.
type AgentEvent struct {
	Type      string `json:"type"` // status|chat|terminal|file|edit|error|done
	SessionID string `json:"session_id,omitempty"`
	Status    string `json:"status,omitempty"`
	Role      string `json:"role,omitempty"`
	Message   string `json:"message,omitempty"`
	Line      string `json:"line,omitempty"`
	Path      string `json:"path,omitempty"`
	Text      string `json:"text,omitempty"`
	Error     string `json:"error,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// WatchStreamRequest is the bidirectional stream payload for Connect RPC.
// The first message must carry the Watch request; later messages can carry
// control signals.
type WatchStreamRequest struct {
	Watch     *WatchRequest `json:"watch,omitempty"`
	Cancel    bool          `json:"cancel,omitempty"`
	SessionID string        `json:"session_id,omitempty"`
}
