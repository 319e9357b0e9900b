package agentwatch

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/SamsoftComputers/catsdk/internal/observability"
	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// Handler streams agent activity over NDJSON. The stream runs until the
// client disconnects; the agent is stopped when the stream ends.
type Handler struct {
	watcher Watcher
	metrics *observability.Metrics
}

// NewHandler constructs a handler instance.
func NewHandler(watcher Watcher, metrics *observability.Metrics) *Handler {
	return &Handler{watcher: watcher, metrics: metrics}
}

// ServeHTTP handles POST /agent/watch with an NDJSON stream of AgentEvent.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.metrics.RecordTransportError("ndjson", "method_not_allowed")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.metrics.IncActiveStreams("ndjson")
	defer h.metrics.DecActiveStreams("ndjson")

	var req rpc.WatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.RecordTransportError("ndjson", "decode")
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = fmt.Sprintf("watch-%d", time.Now().UnixNano())
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	events, stop := h.watcher.Watch(req)
	defer stop()

	writer := bufio.NewWriter(w)
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if err := json.NewEncoder(writer).Encode(ev); err != nil {
				h.metrics.RecordTransportError("ndjson", "encode")
				return
			}
			writer.Flush()
			flusher.Flush()
		}
	}
}
