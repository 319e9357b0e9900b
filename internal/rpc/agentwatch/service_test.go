package agentwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SamsoftComputers/catsdk/internal/config"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

func TestServiceStreamsAgentActivity(t *testing.T) {
	svc := NewService(config.AgentConfig{Name: "Ralph"}, pacing.Zero{}, 1, nil, nil)

	events, stop := svc.Watch(rpc.WatchRequest{SessionID: "s1"})

	seen := map[string]bool{}
	deadline := time.After(5 * time.Second)
collect:
	for len(seen) < 4 {
		select {
		case ev := <-events:
			seen[ev.Type] = true
			require.Equal(t, "s1", ev.SessionID)
		case <-deadline:
			break collect
		}
	}
	stop()

	require.True(t, seen["status"], "agent must publish status transitions")
	require.True(t, seen["chat"], "agent must post chat messages")
}

func TestServiceStopEndsStream(t *testing.T) {
	svc := NewService(config.AgentConfig{}, pacing.Zero{}, 1, nil, nil)
	events, stop := svc.Watch(rpc.WatchRequest{})

	stop()

	// Drain until close; must terminate.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, open := <-events:
			if !open {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after stop")
		}
	}
}

func TestServiceOverridesAgentName(t *testing.T) {
	svc := NewService(config.AgentConfig{Name: "Ralph"}, pacing.Zero{}, 1, nil, nil)
	events, stop := svc.Watch(rpc.WatchRequest{Agent: "Felix"})
	defer stop()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Type == "status" {
				require.Contains(t, ev.Status, "Felix Agent:")
				return
			}
		case <-deadline:
			t.Fatal("no status event observed")
		}
	}
}
