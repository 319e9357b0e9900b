package chat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
)

func newTestEngine(t *testing.T) (*Engine, *engine.State) {
	t.Helper()
	st := engine.NewState(engine.Options{ModelID: "CatLLM-14B-Distill-v1"})
	return New(st, pacing.Zero{}, pacing.NewSource(1)), st
}

func TestGreetingComesFromPoolAndAppendsTwoTurns(t *testing.T) {
	e, st := newTestEngine(t)

	resp := e.Respond("hello", "")
	require.Contains(t, greetings, resp)

	h := st.History()
	require.Len(t, h, 2)
	require.Equal(t, engine.RoleUser, h[0].Role)
	require.Equal(t, "hello", h[0].Content)
	require.Equal(t, engine.RoleAssistant, h[1].Role)
	require.Equal(t, resp, h[1].Content)
}

func TestGreetingIsDeterministicForFixedSeed(t *testing.T) {
	st := engine.NewState(engine.Options{})
	a := New(st, pacing.Zero{}, pacing.NewSource(99))
	b := New(engine.NewState(engine.Options{}), pacing.Zero{}, pacing.NewSource(99))
	require.Equal(t, a.Respond("hey", ""), b.Respond("hey", ""))
}

func TestErrorNameReturnsFixedGuidance(t *testing.T) {
	e, _ := newTestEngine(t)

	resp := e.Respond("I keep getting a KeyError in my script", "")
	require.Contains(t, resp, "KeyError")
	require.Contains(t, resp, "Key not in dict. Use `.get(key, default)`.")

	resp = e.Respond("got an IndentationError again", "")
	require.Contains(t, resp, "Use consistent indentation (4 spaces).")
}

func TestConceptExplanation(t *testing.T) {
	e, _ := newTestEngine(t)
	resp := e.Respond("can you tell me about a dict", "")
	require.Equal(t, "🐱 Dicts store key-value pairs. Create with `{}`, access by key.", resp)
}

func TestExplainCodeBullets(t *testing.T) {
	e, _ := newTestEngine(t)

	resp := e.Respond("explain", "def foo():\n    return 1\n")
	require.Contains(t, resp, "• Function `foo`")
	require.Contains(t, resp, "• Return statement")

	resp = e.Respond("explain", "")
	require.Equal(t, explainEmpty, resp)
}

func TestExplainCodeConsidersAtMostEightLines(t *testing.T) {
	e, _ := newTestEngine(t)

	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "if x:")
	}
	lines = append(lines, "def late_function():")
	code := strings.Join(lines, "\n")

	resp := e.Respond("explain the code", code)
	require.Equal(t, 8, strings.Count(resp, "• Conditional"))
	require.NotContains(t, resp, "late_function")
}

func TestExplainClassifiesImportsAndLoops(t *testing.T) {
	e, _ := newTestEngine(t)
	resp := e.Respond("what does it do", "import os\nfor i in range(3):\nwhile True:\n")
	require.Contains(t, resp, "• Import: `import os`")
	require.Equal(t, 2, strings.Count(resp, "• Loop"))
}

func TestFixIntentReturnsChecklist(t *testing.T) {
	e, _ := newTestEngine(t)
	resp := e.Respond("please fix my bug", "")
	require.Equal(t, debugChecklist, resp)
}

func TestHowToSnippets(t *testing.T) {
	e, _ := newTestEngine(t)

	require.Equal(t, howToReadFile, e.Respond("how to read a file", ""))
	require.Equal(t, howToWriteFile, e.Respond("how do I write to a file", ""))
	require.Equal(t, howToUnknown, e.Respond("how to juggle", ""))
}

func TestGenerateSnippets(t *testing.T) {
	e, _ := newTestEngine(t)

	require.Equal(t, generateGame, e.Respond("write me a game", ""))
	require.Equal(t, generateUnknown, e.Respond("create something cool", ""))
}

func TestFallbackComesFromPool(t *testing.T) {
	e, _ := newTestEngine(t)
	resp := e.Respond("zzz qqq", "")
	require.Contains(t, fallbacks, resp)
}

func TestClassifyOrder(t *testing.T) {
	cases := []struct {
		msg  string
		want Intent
	}{
		{"hello there", IntentGreeting},
		{"sup", IntentGreeting},
		{"TypeError when adding", IntentError},
		{"what is a class", IntentConcept},
		{"explain the code", IntentExplain},
		{"help me debug", IntentFix},
		{"how do I sort", IntentHowTo},
		{"generate a parser", IntentGenerate},
		{"qqq", IntentFallback},
		// Greetings shadow later categories, matching the rule order.
		{"say hello world for me", IntentGreeting},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Classify(tc.msg), "message %q", tc.msg)
	}
}

func TestRespondIsTotalOverArbitraryInput(t *testing.T) {
	e, st := newTestEngine(t)
	inputs := []string{"", " ", "\x00\xff\xfe", strings.Repeat("x", 1<<16)}
	for _, in := range inputs {
		require.NotEmpty(t, e.Respond(in, in))
	}
	require.Equal(t, len(inputs)*2, st.Status().HistoryLen)
}

func TestStatusReflectsState(t *testing.T) {
	e, _ := newTestEngine(t)
	st := e.Status()
	require.Equal(t, "CatLLM-14B-Distill-v1", st.ModelID)
	require.Zero(t, st.HistoryLen)
	require.False(t, st.Thinking)

	e.Respond("hi", "")
	require.Equal(t, 2, e.Status().HistoryLen)
	require.False(t, e.Status().Thinking)
}
