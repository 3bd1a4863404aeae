// Package diag defines the diagnostic model shared by the lexer, the syntax
// tree builder and the formatter.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1001, SYN2001, FMT3001).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so emission is decoupled from storage.
// BagReporter aggregates diagnostics into a Bag, which supports limits,
// sorting and deduplication. ReportBuilder chains notes before Emit.
//
// Package diag does not perform IO. Rendering to the terminal lives in the CLI;
// FormatShortDiagnostics gives the stable one-line-per-entry form used there
// and in tests.
package diag
