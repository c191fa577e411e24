// Package input defines the Action value that flows from every entry point
// (key binding, command palette, Lua script, command line) to the
// dispatcher.
//
// Action names are namespaced with a dot; the part before the first dot
// selects the handler, e.g. "inflection.pluralize".
package input
