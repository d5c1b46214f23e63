// Package calc exposes the integer engine as a registry of named operations
// and an evaluator for one-line expressions such as "gcd 12 10" or
// "div ff 7". The CLI, the REPL and the HTTP service all evaluate through it.
package calc
