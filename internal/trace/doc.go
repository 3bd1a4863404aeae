// Package trace records what the formatter driver is doing.
//
// Events are spans (begin/end pairs) and points, grouped by scope:
//
//   - ScopeDriver: one span per CLI run
//   - ScopePass: lex+parse, format, write for every file
//   - ScopeFile: per-file bookkeeping (cache hits, skipped files)
//
// Enable from the command line:
//
//	svfmt fmt --trace=- --trace-level=detail rtl/
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "format", parent)
//	defer span.End("")
package trace
