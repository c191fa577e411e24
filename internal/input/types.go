package input

import "strings"

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from a key binding.
	SourceKeyboard ActionSource = iota
	// SourcePalette indicates the action originated from the command palette.
	SourcePalette
	// SourcePlugin indicates the action originated from a Lua script.
	SourcePlugin
	// SourceCLI indicates the action originated from the command line.
	SourceCLI
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePalette:
		return "palette"
	case SourcePlugin:
		return "plugin"
	case SourceCLI:
		return "cli"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Extra holds named arguments such as "dryRun".
	Extra map[string]interface{}
}

// Get retrieves a value from Extra with type assertion.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetBool retrieves a bool value from Extra.
func (a ActionArgs) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "inflection.pluralize").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource
}

// NewAction creates an action with the given name and source.
func NewAction(name string, source ActionSource) Action {
	return Action{Name: name, Source: source}
}

// Namespace returns the prefix before the first dot ("inflection" in
// "inflection.pluralize"), or the whole name if there is no dot.
func (a Action) Namespace() string {
	ns, _, _ := strings.Cut(a.Name, ".")
	return ns
}

// WithArg returns a copy of the action with an Extra argument set.
func (a Action) WithArg(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}
