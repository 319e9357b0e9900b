package agent

import "time"

// Step is one scripted agent action. Exactly one concrete type applies;
// the runner dispatches on it.
type Step interface {
	isStep()
}

// ChatStep posts a message to the chat panel.
type ChatStep struct {
	Message string
}

// OpenFileStep switches the editor to a placeholder buffer for Path.
type OpenFileStep struct {
	Path string
}

// EditStep streams Content into the editor character by character.
type EditStep struct {
	Content string
}

// RunCommandStep plays a command execution in the terminal.
type RunCommandStep struct {
	Command string
}

// ThinkStep shows a random thought in the status bar for Duration.
type ThinkStep struct {
	Duration time.Duration
}

func (ChatStep) isStep()       {}
func (OpenFileStep) isStep()   {}
func (EditStep) isStep()       {}
func (RunCommandStep) isStep() {}
func (ThinkStep) isStep()      {}

// Goal is a named ordered step sequence. Goals are static configuration,
// cycled round-robin by the runner.
type Goal struct {
	Name  string
	Steps []Step
}

// Thoughts shown in the status bar during ThinkStep.
var Thoughts = []string{
	"Compiling shaders...",
	"Rebalancing binary trees...",
	"Ignored a linting error (it was annoying)...",
	"Checking StackOverflow (simulated)...",
	"Drinking virtual coffee...",
	"Centering a div...",
	"Resolving git merge conflict...",
	"Reading documentation...",
}

// DefaultGoals returns the built-in task scripts.
func DefaultGoals() []Goal {
	return []Goal{
		{
			Name: "Refactor Authentication Logic",
			Steps: []Step{
				ChatStep{Message: "Auth logic is spaghetti. Refactoring to JWT."},
				OpenFileStep{Path: "src/server.py"},
				ThinkStep{Duration: 2 * time.Second},
				EditStep{Content: "\ndef verify_token(token):\n    try:\n        # Decoding JWT payload\n        payload = jwt.decode(token, SECRET, algorithms=['HS256'])\n        return payload\n    except jwt.ExpiredSignatureError:\n        return None\n"},
				RunCommandStep{Command: "pytest tests/auth_test.py"},
				ChatStep{Message: "Tests passed. Merging."},
			},
		},
		{
			Name: "Optimize Rendering Engine",
			Steps: []Step{
				ChatStep{Message: "FPS is dropping. Need to optimize the render loop."},
				OpenFileStep{Path: "kernel/boot.c"},
				EditStep{Content: "\nvoid render_frame() {\n    // Use double buffering\n    if (buffer_ready) {\n        swap_buffers();\n    }\n    // Clear V-Sync\n    gpu_sync();\n}\n"},
				RunCommandStep{Command: "make build"},
				ChatStep{Message: "Kernel rebuilt. Performance increased by 15%."},
			},
		},
		{
			Name: "Update Frontend Components",
			Steps: []Step{
				ChatStep{Message: "The UI looks like 1999. Updating components."},
				OpenFileStep{Path: "src/App.jsx"},
				ThinkStep{Duration: 1500 * time.Millisecond},
				EditStep{Content: "\nconst Dashboard = () => {\n  const [data, setData] = useState(null);\n  useEffect(() => {\n    fetchData().then(d => setData(d));\n  }, []);\n\n  return (\n    <div className=\"dashboard-container\">\n      <Header title=\"RalphOS\" />\n      <Sidebar />\n    </div>\n  );\n};\n"},
				RunCommandStep{Command: "npm run build"},
				ChatStep{Message: "Build successful. Deploying to edge."},
			},
		},
		{
			Name: "Rewrite Memory Allocator",
			Steps: []Step{
				ChatStep{Message: "Memory leaks detected. Rewriting allocator in Rust."},
				OpenFileStep{Path: "src/api.rs"},
				EditStep{Content: "\nfn unsafe_allocation(size: usize) -> *mut u8 {\n    // DANGER: Manual memory management\n    unsafe {\n        let layout = Layout::from_size_align(size, 8).unwrap();\n        alloc(layout)\n    }\n}\n"},
				RunCommandStep{Command: "cargo check"},
				ChatStep{Message: "Borrow checker is happy. I am happy."},
			},
		},
	}
}
