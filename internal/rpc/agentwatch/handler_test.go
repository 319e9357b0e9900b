package agentwatch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// scriptedWatcher replays a fixed event sequence and records stop calls.
type scriptedWatcher struct {
	events  []rpc.AgentEvent
	stopped bool
}

func (w *scriptedWatcher) Watch(req rpc.WatchRequest) (<-chan rpc.AgentEvent, func()) {
	out := make(chan rpc.AgentEvent, len(w.events))
	for _, ev := range w.events {
		ev.SessionID = req.SessionID
		out <- ev
	}
	close(out)
	return out, func() { w.stopped = true }
}

func TestHandlerStreamsEvents(t *testing.T) {
	watcher := &scriptedWatcher{events: []rpc.AgentEvent{
		{Type: "status", Status: "Ralph Agent: Refactor Authentication Logic"},
		{Type: "chat", Role: "assistant", Message: "Auth logic is spaghetti. Refactoring to JWT."},
		{Type: "terminal", Line: "$ pytest tests/auth_test.py"},
		{Type: "done", Done: true},
	}}
	handler := NewHandler(watcher, nil)

	body := bytes.NewBufferString(`{"session_id":"watch-1"}`)
	req := httptest.NewRequest(http.MethodPost, "/agent/watch", body)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	resp := rr.Result()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []rpc.AgentEvent
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		var ev rpc.AgentEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}

	require.Len(t, events, 4)
	require.Equal(t, "status", events[0].Type)
	require.Equal(t, "watch-1", events[0].SessionID)
	require.True(t, events[3].Done)
	require.True(t, watcher.stopped, "stream end must stop the session")
}

func TestHandlerRejectsGet(t *testing.T) {
	handler := NewHandler(&scriptedWatcher{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/agent/watch", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHandlerRejectsBadJSON(t *testing.T) {
	handler := NewHandler(&scriptedWatcher{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/agent/watch", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandlerAssignsSessionID(t *testing.T) {
	watcher := &scriptedWatcher{events: []rpc.AgentEvent{{Type: "done", Done: true}}}
	handler := NewHandler(watcher, nil)

	req := httptest.NewRequest(http.MethodPost, "/agent/watch", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	var ev rpc.AgentEvent
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(rr.Body.Bytes()), &ev))
	require.NotEmpty(t, ev.SessionID)
}
