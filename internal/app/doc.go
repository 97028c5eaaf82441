// Package app contains the core application logic. It wires the loaders,
// builder, scheduler, report, and the output sinks (output document, console,
// store, metrics) into one pipeline, decoupled from any specific entrypoint
// like a CLI or server.
package app
