// Package cli parses command-line arguments, layers them over environment
// defaults, and handles process-level concerns like exit codes. It
// translates flags into the app configuration.
package cli
