// Package cli constructs the docmaint command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives. It exposes helpers to build application instances, execute the
// full command set, or run a single tool as a standalone program.
package cli
