package chat

// Canned response material for the rule engine. Pools are selected from at
// random through the injected source; keyed tables are scanned in declaration
// order, so earlier entries shadow later ones when a message mentions both.

var greetings = []string{
	"Meow! 🐱 How can I help you code today?",
	"Hey there! Cat Copilot ready to help~ nyaa~",
	"*stretches paws* Ready for some purr-fect code!",
	"Mrow! What are we building today?",
	"🐱 CatLLM online! Let's code something awesome~",
}

var greetingTokens = []string{"hello", "hi", "hey", "meow", "sup"}

type keyedResponse struct {
	Key  string
	Text string
}

var errorHelp = []keyedResponse{
	{"SyntaxError", "Check colons, parentheses, quotes, and indentation!"},
	{"NameError", "Variable/function not defined. Check spelling or imports."},
	{"TypeError", "Wrong type. Check if mixing strings/numbers."},
	{"IndexError", "Index out of range. Lists start at 0!"},
	{"KeyError", "Key not in dict. Use `.get(key, default)`."},
	{"AttributeError", "Object doesn't have that attribute/method."},
	{"ImportError", "Module not found. Check name and installation."},
	{"IndentationError", "Use consistent indentation (4 spaces)."},
}

var conceptHelp = []keyedResponse{
	{"function", "A function is a reusable block of code. Define with `def name(args):`"},
	{"class", "A class bundles data and methods. Define with `class Name:`"},
	{"loop", "Loops repeat code. `for` iterates, `while` repeats until false."},
	{"list", "Lists are ordered collections. Create with `[]`, access by index."},
	{"dict", "Dicts store key-value pairs. Create with `{}`, access by key."},
	{"exception", "Handle errors with `try/except` to avoid crashes."},
	{"import", "Imports bring in external code. `import x` or `from x import y`"},
}

const debugChecklist = `🐱 Quick debugging checklist:

1. Balanced parentheses/brackets?
2. Correct indentation (4 spaces)?
3. Variables defined before use?
4. Typos in names?
5. Right data types?

Paste your error message for specific help! 🐱`

const howToReadFile = "🐱 Read a file:\n\n```python\nwith open('file.txt', 'r') as f:\n    content = f.read()\n```"

const howToWriteFile = "🐱 Write a file:\n\n```python\nwith open('file.txt', 'w') as f:\n    f.write('Hello!')\n```"

const howToList = "🐱 Lists:\n\n```python\nmy_list = [1, 2, 3]\nmy_list.append(4)\nmy_list[0]  # First item\n```"

const howToDict = "🐱 Dicts:\n\n```python\nd = {'key': 'value'}\nd['new'] = 'item'\nd.get('key', 'default')\n```"

const howToLoop = "🐱 Loops:\n\n```python\nfor item in collection:\n    print(item)\n\nfor i, item in enumerate(collection):\n    print(i, item)\n```"

const howToUnknown = "🐱 What specifically would you like to know how to do?"

const generateHello = "🐱 Here you go:\n\n```python\nprint(\"Hello, World!\")\n```"

const generateGame = `🐱 Simple game:

` + "```python" + `
import random

number = random.randint(1, 100)
while True:
    guess = int(input("Guess: "))
    if guess == number:
        print("You win! 🎉")
        break
    print("Higher!" if guess < number else "Lower!")
` + "```"

const generateUnknown = "🐱 Tell me more about what you want to build!"

const explainEmpty = "🐱 Paste some code and I'll explain it!"

var fallbacks = []string{
	"🐱 Tell me more about what you're building!",
	"🐱 I can help with code completion, explanations, and debugging!",
	"🐱 What would you like to code today?",
}
