package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// NewChatCmd sends a chat message to the daemon and streams the reply.
func NewChatCmd(opts *Options) *cobra.Command {
	var contextFile string

	cmd := &cobra.Command{
		Use:   "chat \"<message>\"",
		Short: "Send a chat message to the engine and stream the reply",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			message := args[0]
			if strings.TrimSpace(message) == "" {
				return fmt.Errorf("message cannot be empty")
			}

			reqBody := rpc.ChatRequest{
				SessionID: fmt.Sprintf("cli-%d", time.Now().UnixNano()),
				Message:   message,
				Context:   contextFile,
			}
			data, err := json.Marshal(reqBody)
			if err != nil {
				return err
			}

			url := daemonURL(cfg.Server.Addr) + "/engine/chat"
			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost, url, bytes.NewReader(data))
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

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(resp.Body)
			for scanner.Scan() {
				var evt rpc.ChatEvent
				if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
					return fmt.Errorf("decode event: %w", err)
				}
				switch evt.Type {
				case "message":
					fmt.Fprintf(out, "[%s intent=%s]\n", evt.Model, evt.Intent)
				case "token":
					fmt.Fprint(out, evt.Token+" ")
				case "done":
					fmt.Fprintf(out, "\n[done history=%d]\n", evt.History)
				case "error":
					return fmt.Errorf("engine error: %s", evt.Error)
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&contextFile, "code", "", "Code snippet sent as context for explain/fix intents")
	return cmd
}
