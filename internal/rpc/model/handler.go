package model

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SamsoftComputers/catsdk/internal/chat"
	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/observability"
	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// Responder answers chat messages against the shared conversation state.
type Responder interface {
	Respond(message, codeContext string) string
	Status() engine.Status
}

// Completer produces completion candidates for an editing position.
type Completer interface {
	Complete(context, line string, cursor engine.Cursor) []string
	PatternName(line string) string
}

// ChatHandler processes chat requests and streams the reply as NDJSON
// token events, the way a live model surface would.
type ChatHandler struct {
	responder Responder
	metrics   *observability.Metrics
}

// NewChatHandler constructs a chat handler instance.
func NewChatHandler(responder Responder, metrics *observability.Metrics) *ChatHandler {
	return &ChatHandler{responder: responder, metrics: metrics}
}

// ServeHTTP handles POST /engine/chat with an NDJSON stream of ChatEvent.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.metrics.RecordTransportError("ndjson", "method_not_allowed")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.metrics.IncActiveStreams("ndjson")
	defer h.metrics.DecActiveStreams("ndjson")

	var req rpc.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordTransportError("ndjson", "decode")
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = fmt.Sprintf("session-%d", time.Now().UnixNano())
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	started := time.Now()
	intent := chat.Classify(req.Message)
	reply := h.responder.Respond(req.Message, req.Context)
	status := h.responder.Status()
	h.metrics.RecordChatTurn(string(intent), time.Since(started), status.HistoryLen)

	writer := bufio.NewWriter(w)
	emit := func(ev rpc.ChatEvent) bool {
		ev.SessionID = req.SessionID
		if err := json.NewEncoder(writer).Encode(ev); err != nil {
			return false
		}
		writer.Flush()
		flusher.Flush()
		return true
	}

	if !emit(rpc.ChatEvent{Type: "message", Intent: string(intent), Model: status.ModelID}) {
		return
	}
	for _, tok := range strings.Fields(reply) {
		if !emit(rpc.ChatEvent{Type: "token", Token: tok}) {
			return
		}
	}
	emit(rpc.ChatEvent{Type: "done", Done: true, Message: reply, History: status.HistoryLen})
}

// CompleteHandler processes completion requests with a single JSON reply.
type CompleteHandler struct {
	completer Completer
	modelID   string
	metrics   *observability.Metrics
}

// NewCompleteHandler constructs a completion handler instance.
func NewCompleteHandler(completer Completer, modelID string, metrics *observability.Metrics) *CompleteHandler {
	return &CompleteHandler{completer: completer, modelID: modelID, metrics: metrics}
}

// ServeHTTP handles POST /engine/complete.
func (h *CompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.metrics.RecordTransportError("http", "method_not_allowed")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req rpc.CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordTransportError("http", "decode")
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	started := time.Now()
	cursor := engine.Cursor{Line: req.Cursor.Line, Col: req.Cursor.Col}
	suggestions := h.completer.Complete(req.Context, req.Line, cursor)
	pattern := h.completer.PatternName(req.Line)
	h.metrics.RecordCompletion(pattern, time.Since(started))

	if suggestions == nil {
		suggestions = []string{}
	}
	resp := rpc.CompleteResponse{
		Suggestions: suggestions,
		Pattern:     pattern,
		Model:       h.modelID,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.metrics.RecordTransportError("http", "encode")
	}
}
