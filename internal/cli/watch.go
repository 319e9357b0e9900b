package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bufbuild/connect-go"
	"github.com/spf13/cobra"

	"github.com/SamsoftComputers/catsdk/internal/rpc"
	"github.com/SamsoftComputers/catsdk/internal/rpc/agentwatch"
	"github.com/SamsoftComputers/catsdk/internal/rpc/connectjson"
)

// NewWatchCmd streams agent workspace activity from the daemon.
func NewWatchCmd(opts *Options) *cobra.Command {
	var agentName string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the scripted agent work through its goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			reqBody := rpc.WatchRequest{
				SessionID: fmt.Sprintf("cli-%d", time.Now().UnixNano()),
				Agent:     agentName,
			}

			baseURL := daemonURL(cfg.Server.Addr)
			switch strings.ToLower(strings.TrimSpace(cfg.Server.Transport)) {
			case "ndjson":
				return watchNDJSON(ctx, cmd, baseURL+"/agent/watch", reqBody)
			default:
				return watchConnect(ctx, cmd, baseURL+agentwatch.ConnectWatchProcedure, reqBody)
			}
		},
	}

	cmd.Flags().StringVar(&agentName, "agent", "", "Override the agent display name for this session")
	return cmd
}

func watchNDJSON(ctx context.Context, cmd *cobra.Command, url string, reqBody rpc.WatchRequest) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		var evt rpc.AgentEvent
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return fmt.Errorf("decode event: %w", err)
		}
		if err := renderAgentEvent(cmd, evt); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func watchConnect(ctx context.Context, cmd *cobra.Command, url string, reqBody rpc.WatchRequest) error {
	client := connect.NewClient[rpc.WatchStreamRequest, rpc.AgentEvent](buildH2CClient(), url, connectjson.Option())
	stream := client.CallBidiStream(ctx)

	if err := stream.Send(&rpc.WatchStreamRequest{Watch: &reqBody}); err != nil {
		return err
	}

	// propagate cancellation to the daemon.
	go func() {
		<-ctx.Done()
		_ = stream.Send(&rpc.WatchStreamRequest{Cancel: true, SessionID: reqBody.SessionID})
		_ = stream.CloseRequest()
	}()

	for {
		evt, err := stream.Receive()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if err := renderAgentEvent(cmd, *evt); err != nil {
			return err
		}
	}
	_ = stream.CloseRequest()
	return stream.CloseResponse()
}

func renderAgentEvent(cmd *cobra.Command, evt rpc.AgentEvent) error {
	out := cmd.OutOrStdout()
	switch evt.Type {
	case "status":
		fmt.Fprintf(out, "[status] %s\n", evt.Status)
	case "chat":
		fmt.Fprintf(out, "[%s] %s\n", evt.Role, evt.Message)
	case "terminal":
		fmt.Fprintln(out, evt.Line)
	case "file":
		fmt.Fprintf(out, "[open] %s\n", evt.Path)
	case "edit":
		fmt.Fprint(out, evt.Text)
	case "done":
		fmt.Fprintln(out, "\n[session ended]")
	case "error":
		return fmt.Errorf("agent error: %s", evt.Error)
	}
	return nil
}
