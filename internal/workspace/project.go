package workspace

// Project is the virtual file tree the agent navigates. Paths map to a
// display language; bodies are placeholders generated on open.
var Project = map[string]string{
	"src/server.py":    "python",
	"src/utils.py":     "python",
	"src/api.rs":       "rust",
	"src/App.jsx":      "javascript",
	"src/styles.css":   "css",
	"kernel/boot.c":    "c",
	"kernel/memory.h":  "c",
	"scripts/deploy.sh": "bash",
	"README.md":        "markdown",
}

// PlaceholderBody returns the initial buffer content for a path opened by
// the named agent.
func PlaceholderBody(agent string) string {
	return "# File opened by " + agent + "\n"
}
