package agent

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/SamsoftComputers/catsdk/internal/config"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/workspace"
)

// Runner replays scripted goals against the editor, terminal, and chat
// collaborators on a background goroutine. Goals cycle forever; the only
// exit is a cooperative stop, observed between steps and between typed
// characters (never mid-handler).
type Runner struct {
	editor   workspace.Editor
	terminal workspace.Terminal
	chat     workspace.Chat
	pacer    pacing.Pacer
	src      *pacing.Source
	logger   *zap.Logger

	name   string
	goals  []Goal
	pauses pauses

	mu        sync.Mutex
	running   bool
	goalIndex int
	done      chan struct{}
}

type pauses struct {
	step            time.Duration
	goal            time.Duration
	typingMin       time.Duration
	typingMax       time.Duration
	hesitation      time.Duration
	hesitationOdds  float64
	commandSettle   time.Duration
	commandRun      time.Duration
	elapsedMin      int
	elapsedMax      int
}

// NewRunner wires a runner to its collaborators. A nil pacer disables all
// simulated delays; a nil goals slice uses the built-in scripts.
func NewRunner(cfg config.AgentConfig, ed workspace.Editor, term workspace.Terminal, ch workspace.Chat, pacer pacing.Pacer, src *pacing.Source, logger *zap.Logger) *Runner {
	if pacer == nil {
		pacer = pacing.Zero{}
	}
	if src == nil {
		src = pacing.NewSource(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	name := cfg.Name
	if name == "" {
		name = "Ralph"
	}
	return &Runner{
		editor:   ed,
		terminal: term,
		chat:     ch,
		pacer:    pacer,
		src:      src,
		logger:   logger,
		name:     name,
		goals:    DefaultGoals(),
		pauses: pauses{
			step:           time.Duration(cfg.StepPauseMS) * time.Millisecond,
			goal:           time.Duration(cfg.GoalPauseMS) * time.Millisecond,
			typingMin:      time.Duration(cfg.TypingMinMS) * time.Millisecond,
			typingMax:      time.Duration(cfg.TypingMaxMS) * time.Millisecond,
			hesitation:     time.Duration(cfg.HesitationMS) * time.Millisecond,
			hesitationOdds: cfg.HesitationChance,
			commandSettle:  time.Duration(cfg.CommandSettleMS) * time.Millisecond,
			commandRun:     time.Duration(cfg.CommandRunMS) * time.Millisecond,
			elapsedMin:     cfg.CommandElapsedMin,
			elapsedMax:     cfg.CommandElapsedMax,
		},
	}
}

// SetGoals replaces the goal table. Only valid before Start.
func (r *Runner) SetGoals(goals []Goal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running && len(goals) > 0 {
		r.goals = goals
	}
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// GoalIndex returns the current goal index, always within [0, goal count).
func (r *Runner) GoalIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.goalIndex
}

// Start launches the goal loop. Starting a running runner is a no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	r.logger.Info("agent starting", zap.String("agent", r.name), zap.Int("goals", len(r.goals)))
	go func() {
		defer close(done)
		r.loop()
	}()
}

// Stop requests a cooperative halt. The loop exits at the next checked
// point: a step boundary or, inside an edit, the next character.
func (r *Runner) Stop() {
	r.mu.Lock()
	wasRunning := r.running
	r.running = false
	r.mu.Unlock()
	if wasRunning {
		r.logger.Info("agent stop requested", zap.String("agent", r.name))
	}
}

// Wait blocks until the loop goroutine has exited. Safe to call after Stop;
// returns immediately if the runner never started.
func (r *Runner) Wait() {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (r *Runner) loop() {
	for r.Running() {
		goal := r.goals[r.GoalIndex()]
		r.editor.SetStatus(fmt.Sprintf("%s Agent: %s", r.name, goal.Name))
		r.logger.Debug("goal started", zap.String("goal", goal.Name))

		for _, step := range goal.Steps {
			if !r.Running() {
				return
			}
			r.execute(step)
			r.pacer.Sleep(r.pauses.step)
		}
		if !r.Running() {
			return
		}

		r.chat.PostMessage("assistant", fmt.Sprintf("Completed: %s. Taking a quick break.", goal.Name))
		r.advance()
		r.pacer.Sleep(r.pauses.goal)
	}
}

func (r *Runner) advance() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goalIndex = (r.goalIndex + 1) % len(r.goals)
}

func (r *Runner) execute(step Step) {
	switch s := step.(type) {
	case ChatStep:
		r.pacer.Sleep(r.pauses.step)
		r.chat.PostMessage("assistant", s.Message)

	case OpenFileStep:
		r.pacer.Sleep(r.pauses.step)
		r.editor.SetStatus(fmt.Sprintf("%s Agent: Opening %s...", r.name, s.Path))
		r.editor.DisplayFile(s.Path, workspace.PlaceholderBody(r.name))
		r.terminal.LogCommand("opening " + s.Path)

	case EditStep:
		r.editor.SetStatus(fmt.Sprintf("%s Agent: Writing code...", r.name))
		r.typeText(s.Content)

	case RunCommandStep:
		r.editor.SetStatus(fmt.Sprintf("%s Agent: Running commands...", r.name))
		r.pacer.Sleep(r.pauses.step)
		r.terminal.LogCommand(s.Command)
		r.pacer.Sleep(r.pauses.commandSettle)
		r.terminal.LogRaw("... Executing ...")
		r.pacer.Sleep(r.pauses.commandRun)
		elapsed := r.src.IntBetween(r.pauses.elapsedMin, r.pauses.elapsedMax)
		r.terminal.LogRaw(fmt.Sprintf("Process finished with exit code 0 (%dms)", elapsed))

	case ThinkStep:
		thought := r.src.Pick(Thoughts)
		r.editor.SetStatus(fmt.Sprintf("%s Agent: %s", r.name, thought))
		r.pacer.Sleep(s.Duration)
	}
}

// typeText streams text into the editor one character at a time, with a
// short random delay per character and an occasional longer hesitation.
// The stop flag wins between characters.
func (r *Runner) typeText(text string) {
	for _, ch := range text {
		if !r.Running() {
			return
		}
		r.editor.AppendText(string(ch))
		r.pacer.SleepBetween(r.pauses.typingMin, r.pauses.typingMax)
		if r.src.Float64() < r.pauses.hesitationOdds {
			r.pacer.Sleep(r.pauses.hesitation)
		}
	}
}
