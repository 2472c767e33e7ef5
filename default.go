package setonce

// defaultRegistry backs the package-level functions. It is created when the
// package is initialized and lives until the process exits; flags set on it
// can never be cleared. Tests should use New instead to avoid leaking state
// across test cases.
var defaultRegistry = New()

// Default returns the process-wide registry used by the package-level
// functions.
func Default() *Registry {
	return defaultRegistry
}

// IsSet reports whether flag is set on the process-wide registry.
func IsSet(flag string) bool {
	return defaultRegistry.IsSet(flag)
}

// Set marks flag as set on the process-wide registry.
func Set(flag string) {
	defaultRegistry.Set(flag)
}

// TrySet marks flag as set on the process-wide registry and reports whether
// this call performed the transition.
func TrySet(flag string) bool {
	return defaultRegistry.TrySet(flag)
}

// Once invokes action and sets flag on the process-wide registry, unless
// flag is already set. See Registry.Once for the concurrency caveat.
func Once(flag string, action func()) {
	defaultRegistry.Once(flag, action)
}

// OnceExclusive invokes action at most once per flag on the process-wide
// registry, even under concurrent callers.
func OnceExclusive(flag string, action func()) {
	defaultRegistry.OnceExclusive(flag, action)
}

// RunIfSet invokes action if flag is set on the process-wide registry.
func RunIfSet(flag string, action func()) {
	defaultRegistry.RunIfSet(flag, action)
}

// RunIfUnset invokes action if flag is not set on the process-wide registry.
func RunIfUnset(flag string, action func()) {
	defaultRegistry.RunIfUnset(flag, action)
}
