// Package logging provides the structured logger shared by the CLI, the
// REPL and the HTTP service. Entries are zerolog JSON lines tagged with the
// component that wrote them.
package logging
