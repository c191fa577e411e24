// Package dispatcher routes input actions to handlers and coordinates execution.
//
// Actions are named "namespace.action" (for example "inflection.pluralize").
// The Router maps a namespace to a handler.NamespaceHandler. Actions without
// a namespace, such as "undo", are bound by exact name in the Registry, which
// is consulted when no namespace handler accepts the action.
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built with the engine, cursors and renderer,
//     a fresh invocation id and a logger tagged with it
//  2. The handler is located and executed (with optional panic recovery)
//  3. View updates in the result are forwarded to the renderer
//  4. Post-dispatch hooks run
//  5. Metrics are recorded (if enabled)
//
// Basic setup:
//
//	d := dispatcher.NewWithDefaults()
//	d.SetEngine(doc)
//	d.SetCursors(doc)
//	d.RegisterNamespace(inflection.NewHandler(inflect.New()))
//
//	result := d.Dispatch(input.NewAction("inflection.pluralize", input.SourceCLI))
package dispatcher
