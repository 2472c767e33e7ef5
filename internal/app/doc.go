// Package app contains the stress harness lifecycle. It defines the App
// struct, its configuration (CLI flags layered over environment defaults),
// and the run loop that loads manifests and executes scenarios, decoupled
// from any specific entrypoint.
package app
