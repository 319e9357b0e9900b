package completion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SamsoftComputers/catsdk/internal/engine"
	"github.com/SamsoftComputers/catsdk/internal/pacing"
	"github.com/SamsoftComputers/catsdk/internal/workspace"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(engine.NewState(engine.Options{}), pacing.Zero{})
}

func TestCompleteNeverExceedsEightCandidates(t *testing.T) {
	e := newTestEngine(t)
	inputs := []string{
		"", "   ", "import ", "x", "def get_value(", "self.",
		"qqqqqq zzzzzz", "# ", "print(", strings.Repeat("a", 4096),
	}
	for _, in := range inputs {
		require.LessOrEqual(t, len(e.Complete("", in, engine.Cursor{})), 8, "input %q", in)
	}
}

func TestGetterDefUsesLookupTemplate(t *testing.T) {
	e := newTestEngine(t)
	for _, line := range []string{"def get_name(", "def getValue(", "def forget_it("} {
		got := e.Complete("", line, engine.Cursor{})
		require.NotEmpty(t, got, "line %q", line)
		require.Contains(t, got[0], "return self._data.get(key)", "line %q", line)
	}
}

func TestFunctionDefVariants(t *testing.T) {
	e := newTestEngine(t)

	got := e.Complete("", "def __init__(", engine.Cursor{})
	require.Len(t, got, 2)
	require.Equal(t, "self):\n        pass", got[0])

	got = e.Complete("", "def save_report(", engine.Cursor{})
	require.Contains(t, got[0], "open(filename, 'w')")

	got = e.Complete("", "def main(", engine.Cursor{})
	require.Contains(t, got[0], "if __name__ == '__main__':")

	got = e.Complete("", "def frobnicate(", engine.Cursor{})
	require.Len(t, got, 3)
	require.Equal(t, "):\n        pass", got[0])
}

func TestClassDefInterpolatesName(t *testing.T) {
	e := newTestEngine(t)
	got := e.Complete("", "class Widget", engine.Cursor{})
	require.Len(t, got, 2)
	require.Contains(t, got[0], `"""A Widget class."""`)
	require.Contains(t, got[1], `return f"Widget({self.name})"`)
}

func TestImportPrefixMatchesModuleTable(t *testing.T) {
	e := newTestEngine(t)

	got := e.Complete("", "import ma", engine.Cursor{})
	require.Equal(t, []string{"math"}, got)

	got = e.Complete("", "import p", engine.Cursor{})
	require.Equal(t, []string{"pathlib", "pygame"}, got)

	// A bare "import" trims to a keyword token and takes the generic path.
	got = e.Complete("", "import ", engine.Cursor{})
	require.Equal(t, []string{"import"}, got)

	// The handler itself offers the whole table, alphabetical, capped at 8.
	require.Equal(t, []string{
		"collections", "datetime", "json", "math", "os", "pathlib", "pygame", "random",
	}, completeImport([]string{"import ", ""}, ""))
}

func TestFromImportIntersectsSymbolTable(t *testing.T) {
	e := newTestEngine(t)

	got := e.Complete("", "from json import l", engine.Cursor{})
	require.Equal(t, []string{"load", "loads"}, got)

	// Unknown module yields nothing from the handler, and the generic
	// fallback finds no keyword or builtin starting with "x" either.
	got = e.Complete("", "from nosuchmod import x", engine.Cursor{})
	require.Empty(t, got)
}

func TestAttributeCompletionByReceiver(t *testing.T) {
	e := newTestEngine(t)

	got := e.Complete("", "self.", engine.Cursor{})
	require.Equal(t, []string{"_data", "_cache", "__init__", "__str__"}, got)

	got = e.Complete("", "DICT.", engine.Cursor{})
	require.Equal(t, []string{"get()", "keys()", "values()", "items()", "update()"}, got,
		"receiver lookup is lowercased")

	got = e.Complete("", "mystery.", engine.Cursor{})
	require.Equal(t, []string{"__class__", "__dict__"}, got)
}

func TestTriggerOrderIsPriority(t *testing.T) {
	e := newTestEngine(t)

	// "for x in " must hit the for-trigger, not attribute or generic handling.
	got := e.Complete("", "for row in ", engine.Cursor{})
	require.Equal(t, []string{"\n        print(row)", "\n        result.append(row)"}, got)

	// try: is matched before generic keyword fallback.
	got = e.Complete("", "try:", engine.Cursor{})
	require.Len(t, got, 1)
	require.Contains(t, got[0], "except Exception as e:")
}

func TestGenericFallbackKeywordsThenBuiltins(t *testing.T) {
	e := newTestEngine(t)

	got := e.Complete("", "x = fi", engine.Cursor{})
	require.Equal(t, []string{"finally", "filter()"}, got)

	got = e.Complete("", "value = no", engine.Cursor{})
	require.Equal(t, []string{"nonlocal", "not", "None"}, got, "keyword prefix match is case-insensitive")
}

func TestCompleteTogglesThinkingOnlyDuringCall(t *testing.T) {
	st := engine.NewState(engine.Options{})
	e := New(st, pacing.Zero{})

	require.False(t, st.Thinking())
	e.Complete("", "import ", engine.Cursor{})
	require.False(t, st.Thinking(), "thinking flag cleared after return")
}

func TestLeadingWhitespaceIsTrimmed(t *testing.T) {
	e := newTestEngine(t)
	got := e.Complete("", "    while ", engine.Cursor{})
	require.Equal(t, []string{"True:\n        pass", "condition:\n        break"}, got)
}

func TestSuggestPublishesEditorCandidates(t *testing.T) {
	e := newTestEngine(t)
	ed := workspace.NewBufferEditor()
	ed.DisplayFile("src/utils.py", "import os\n")
	ed.AppendText("def get_name(")
	popup := workspace.NewListPopup()

	got := e.Suggest(ed, popup)
	require.NotEmpty(t, got)
	require.Equal(t, got, popup.Candidates())
	require.Contains(t, got[0], "return self._data.get(key)")
}

func TestPatternNameLabels(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, "def", e.PatternName("def get_name("))
	require.Equal(t, "attribute", e.PatternName("  self. "))
	require.Equal(t, "fallback", e.PatternName("x = fi"))
}
