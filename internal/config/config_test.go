package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "version: \"1\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "CatLLM-14B-Distill-v1", cfg.Model.ID)
	require.Equal(t, 0.7, cfg.Model.Temperature)
	require.Equal(t, 0.9, cfg.Model.TopP)
	require.Equal(t, 4096, cfg.Model.ContextWindow)
	require.Equal(t, 256, cfg.Model.HistoryLimit)
	require.True(t, cfg.Latency.Enabled)
	require.Equal(t, 30, cfg.Latency.CompletionMinMS)
	require.Equal(t, 400, cfg.Latency.ChatMaxMS)
	require.Equal(t, "Ralph", cfg.Agent.Name)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "connect", cfg.Server.Transport)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := writeConfig(t, `
model:
  id: CatLLM-7B-Mini
  temperature: 0.2
  history_limit: 16
latency:
  enabled: false
server:
  addr: ":9999"
  transport: ndjson
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "CatLLM-7B-Mini", cfg.Model.ID)
	require.Equal(t, 0.2, cfg.Model.Temperature)
	require.Equal(t, 16, cfg.Model.HistoryLimit)
	require.False(t, cfg.Latency.Enabled)
	require.Equal(t, ":9999", cfg.Server.Addr)
	require.Equal(t, "ndjson", cfg.Server.Transport)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"temperature", "model:\n  temperature: 3.0\n"},
		{"top_p", "model:\n  top_p: 1.5\n"},
		{"history", "model:\n  history_limit: -1\n"},
		{"latency", "latency:\n  completion_min_ms: 50\n  completion_max_ms: 10\n"},
		{"chance", "agent:\n  hesitation_chance: 2.0\n"},
		{"transport", "server:\n  transport: grpc\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}
}
