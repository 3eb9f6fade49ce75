// Package trace provides a tracing subsystem for the bytecode translator.
//
// The trace package enables tracking of per-object and per-instruction
// translation events to help diagnose slow or misbehaving translations.
//
// # Usage
//
// Enable tracing via configuration:
//
//	pyir translate --trace=- --trace-level=opcode input.json
//
// # Architecture
//
// The package provides two tracer implementations:
//
//   - nopTracer: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: no tracing
//   - LevelObject: one span per translated code object
//   - LevelOpcode: everything, including one point event per instruction
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeTranslate: the top-level translate call
//   - ScopeObject: per-code-object processing
//   - ScopeOpcode: per-instruction interpretation
//
// # Context Propagation
//
// A Tracer can be carried in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
// The translator itself reads no context: lower.Translate takes its
// Tracer as an argument and opens one span per code object:
//
//	span := trace.Begin(t, trace.ScopeObject, "object:pkg.mod", 0)
//	defer span.End("")
package trace
