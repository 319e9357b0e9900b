package completion

import (
	"fmt"
	"regexp"
	"strings"
)

// Handler produces candidate completions for a matched trigger. groups holds
// the regexp submatches (groups[0] is the full match); context is the full
// buffer text around the cursor.
type Handler func(groups []string, context string) []string

// Pattern pairs a trigger with its handler. Triggers are tested against the
// trimmed current line, anchored at the start.
type Pattern struct {
	Name    string
	Trigger *regexp.Regexp
	Handler Handler
}

// Registry is the ordered trigger table. Declaration order is priority order:
// the first matching trigger wins and later entries are never consulted.
type Registry struct {
	patterns []Pattern
}

// NewRegistry builds the default trigger table.
func NewRegistry() *Registry {
	return &Registry{patterns: []Pattern{
		{"def", regexp.MustCompile(`^def\s+(\w+)\s*\($`), completeFunctionDef},
		{"class", regexp.MustCompile(`^class\s+(\w+)`), completeClassDef},
		{"import", regexp.MustCompile(`^import\s+(\w*)$`), completeImport},
		{"from_import", regexp.MustCompile(`^from\s+(\w+)\s+import\s*(\w*)$`), completeFromImport},
		{"if", regexp.MustCompile(`^if\s+`), completeIf},
		{"for", regexp.MustCompile(`^for\s+(\w+)\s+in\s+`), completeFor},
		{"while", regexp.MustCompile(`^while\s+`), completeWhile},
		{"try", regexp.MustCompile(`^try:\s*$`), completeTry},
		{"with", regexp.MustCompile(`^with\s+`), completeWith},
		{"print", regexp.MustCompile(`^print\($`), completePrint},
		{"attribute", regexp.MustCompile(`^(\w+)\.\s*$`), completeAttribute},
		{"comment", regexp.MustCompile(`^#\s*`), completeComment},
	}}
}

// Match returns the first pattern whose trigger matches line, with submatches.
func (r *Registry) Match(line string) (Pattern, []string, bool) {
	for _, p := range r.patterns {
		if groups := p.Trigger.FindStringSubmatch(line); groups != nil {
			return p, groups, true
		}
	}
	return Pattern{}, nil, false
}

// Len reports the number of registered triggers.
func (r *Registry) Len() int {
	return len(r.patterns)
}

func completeFunctionDef(groups []string, _ string) []string {
	name := "func"
	if len(groups) > 1 && groups[1] != "" {
		name = groups[1]
	}
	lower := strings.ToLower(name)

	switch {
	case strings.Contains(lower, "init"):
		return []string{
			"self):\n        pass",
			"self, name, value):\n        self.name = name\n        self.value = value",
		}
	case strings.Contains(lower, "get"):
		return []string{"self, key):\n        return self._data.get(key)"}
	case strings.Contains(lower, "set"):
		return []string{"self, key, value):\n        self._data[key] = value"}
	case strings.Contains(lower, "is_"), strings.Contains(lower, "has_"):
		return []string{"self):\n        return bool(self._value)"}
	case strings.Contains(lower, "load"):
		return []string{"filename):\n        with open(filename, 'r') as f:\n            return f.read()"}
	case strings.Contains(lower, "save"):
		return []string{"data, filename):\n        with open(filename, 'w') as f:\n            f.write(data)"}
	case strings.Contains(lower, "main"):
		return []string{"):\n        print('Hello, World!')\n\n\nif __name__ == '__main__':\n    main()"}
	default:
		return []string{
			"):\n        pass",
			"arg1, arg2):\n        return arg1 + arg2",
			"*args, **kwargs):\n        pass",
		}
	}
}

func completeClassDef(groups []string, _ string) []string {
	name := "MyClass"
	if len(groups) > 1 && groups[1] != "" {
		name = groups[1]
	}
	return []string{
		fmt.Sprintf(":\n    \"\"\"A %s class.\"\"\"\n    \n    def __init__(self):\n        pass", name),
		fmt.Sprintf(":\n    def __init__(self, name):\n        self.name = name\n    \n    def __repr__(self):\n        return f\"%s({self.name})\"", name),
	}
}

func completeImport(groups []string, _ string) []string {
	partial := ""
	if len(groups) > 1 {
		partial = groups[1]
	}
	var out []string
	for _, mod := range sortedModules {
		if strings.HasPrefix(mod, partial) {
			out = append(out, mod)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func completeFromImport(groups []string, _ string) []string {
	if len(groups) < 2 {
		return nil
	}
	module := groups[1]
	partial := ""
	if len(groups) > 2 {
		partial = groups[2]
	}
	symbols, ok := commonImports[module]
	if !ok {
		return nil
	}
	var out []string
	for _, sym := range symbols {
		if strings.HasPrefix(sym, partial) {
			out = append(out, sym)
		}
	}
	return out
}

func completeIf(_ []string, _ string) []string {
	return []string{
		"condition:\n        pass",
		"x is not None:\n        pass",
		"len(items) > 0:\n        pass",
	}
}

func completeFor(groups []string, _ string) []string {
	loopVar := "item"
	if len(groups) > 1 && groups[1] != "" {
		loopVar = groups[1]
	}
	return []string{
		fmt.Sprintf("\n        print(%s)", loopVar),
		fmt.Sprintf("\n        result.append(%s)", loopVar),
	}
}

func completeWhile(_ []string, _ string) []string {
	return []string{"True:\n        pass", "condition:\n        break"}
}

func completeTry(_ []string, _ string) []string {
	return []string{"\n        pass\n    except Exception as e:\n        print(f\"Error: {e}\")"}
}

func completeWith(_ []string, _ string) []string {
	return []string{"open(filename, 'r') as f:\n        content = f.read()"}
}

func completePrint(_ []string, _ string) []string {
	return []string{`"Hello, World!")`, `f"Value: {value}")`, `*args, sep=", ")`}
}

func completeAttribute(groups []string, _ string) []string {
	if len(groups) < 2 {
		return genericAttributes
	}
	receiver := strings.ToLower(groups[1])
	if attrs, ok := receiverAttributes[receiver]; ok {
		return attrs
	}
	return genericAttributes
}

func completeComment(_ []string, _ string) []string {
	return []string{"TODO: ", "FIXME: ", "NOTE: ", "Initialize ", "Handle ", "Process "}
}
