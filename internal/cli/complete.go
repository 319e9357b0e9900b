package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/SamsoftComputers/catsdk/internal/rpc"
)

// NewCompleteCmd asks the daemon for completion candidates.
func NewCompleteCmd(opts *Options) *cobra.Command {
	var codeContext string
	var line, col int

	cmd := &cobra.Command{
		Use:   "complete \"<line>\"",
		Short: "Request completion candidates for an editing line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			reqBody := rpc.CompleteRequest{
				Context: codeContext,
				Line:    args[0],
				Cursor:  rpc.Cursor{Line: line, Col: col},
			}
			data, err := json.Marshal(reqBody)
			if err != nil {
				return err
			}

			url := daemonURL(cfg.Server.Addr) + "/engine/complete"
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

			var out rpc.CompleteResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "[%s pattern=%s]\n", out.Model, out.Pattern)
			for _, s := range out.Suggestions {
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&codeContext, "code", "", "Surrounding buffer text (optional)")
	cmd.Flags().IntVar(&line, "line", 0, "Cursor line")
	cmd.Flags().IntVar(&col, "col", 0, "Cursor column")
	return cmd
}
