package completion

// Static Python knowledge backing the completion engine. Slices, not maps,
// wherever iteration order is candidate priority.

var pythonKeywords = []string{
	"def", "class", "if", "elif", "else", "for", "while", "try",
	"except", "finally", "with", "as", "import", "from", "return",
	"yield", "raise", "pass", "break", "continue", "lambda", "async",
	"await", "global", "nonlocal", "assert", "del", "in", "is", "not",
	"and", "or", "True", "False", "None",
}

// Builtin describes a built-in function for completion and hover detail.
type Builtin struct {
	Name      string
	Signature string
	Doc       string
}

var builtinFunctions = []Builtin{
	{"print", `print(value, ..., sep=" ", end="\n")`, "Print objects"},
	{"len", "len(obj)", "Return length"},
	{"range", "range(stop)", "Generate sequence"},
	{"str", "str(object)", "Convert to string"},
	{"int", "int(x)", "Convert to integer"},
	{"float", "float(x)", "Convert to float"},
	{"list", "list(iterable)", "Create list"},
	{"dict", "dict(**kwargs)", "Create dictionary"},
	{"set", "set(iterable)", "Create set"},
	{"open", `open(file, mode="r")`, "Open file"},
	{"input", "input(prompt)", "Read input"},
	{"type", "type(object)", "Return type"},
	{"isinstance", "isinstance(obj, cls)", "Check type"},
	{"enumerate", "enumerate(iterable)", "Enumerate"},
	{"zip", "zip(*iterables)", "Zip iterables"},
	{"map", "map(func, iterable)", "Map function"},
	{"filter", "filter(func, iterable)", "Filter"},
	{"sorted", "sorted(iterable)", "Sort"},
	{"sum", "sum(iterable)", "Sum values"},
	{"min", "min(iterable)", "Minimum"},
	{"max", "max(iterable)", "Maximum"},
	{"abs", "abs(x)", "Absolute value"},
	{"round", "round(x, n)", "Round number"},
}

// LookupBuiltin returns detail for a built-in function name.
func LookupBuiltin(name string) (Builtin, bool) {
	for _, b := range builtinFunctions {
		if b.Name == name {
			return b, true
		}
	}
	return Builtin{}, false
}

// commonImports maps module names to their well-known symbols. Module name
// candidates are offered alphabetically; symbol order is the table order.
var commonImports = map[string][]string{
	"os":          {"path", "getcwd", "listdir", "mkdir", "remove", "environ"},
	"sys":         {"argv", "exit", "path", "version", "platform"},
	"json":        {"load", "loads", "dump", "dumps"},
	"math":        {"sqrt", "sin", "cos", "tan", "pi", "e", "floor", "ceil"},
	"random":      {"random", "randint", "choice", "shuffle", "sample"},
	"datetime":    {"datetime", "date", "time", "timedelta"},
	"re":          {"match", "search", "findall", "sub", "compile"},
	"collections": {"defaultdict", "Counter", "deque", "namedtuple"},
	"pathlib":     {"Path"},
	"typing":      {"List", "Dict", "Tuple", "Optional", "Union", "Any"},
	"tkinter":     {"Tk", "Frame", "Label", "Button", "Entry", "Text"},
	"pygame":      {"init", "display", "event", "draw", "sprite"},
}

// sortedModules is the alphabetical module list used for import completion.
var sortedModules = []string{
	"collections", "datetime", "json", "math", "os", "pathlib",
	"pygame", "random", "re", "sys", "tkinter", "typing",
}

// receiverAttributes maps a lowercased receiver token to attribute candidates.
var receiverAttributes = map[string][]string{
	"self": {"_data", "_cache", "__init__", "__str__"},
	"str":  {"strip()", "split()", "join()", "replace()", "lower()", "upper()"},
	"list": {"append()", "extend()", "pop()", "remove()", "sort()"},
	"dict": {"get()", "keys()", "values()", "items()", "update()"},
	"os":   {"path", "getcwd()", "listdir()", "mkdir()"},
	"path": {"exists()", "join()", "dirname()", "basename()"},
	"f":    {"read()", "write()", "readline()", "close()"},
}

// genericAttributes is offered when the receiver is unknown.
var genericAttributes = []string{"__class__", "__dict__"}
