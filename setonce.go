// Package setonce provides a process-wide registry of named boolean flags
// with set-once semantics: a flag, once set, stays set for the lifetime of
// the process. There is no removal, no reset, and no value beyond presence.
//
// The registry answers "has this already happened" questions cheaply and
// safely from any number of goroutines. On top of the membership check it
// offers three conditional-execution helpers (Once, RunIfSet, RunIfUnset)
// and an explicit claim primitive (TrySet, OnceExclusive) for callers that
// need a strict at-most-once guarantee under concurrency.
//
// Most callers use the package-level functions, which operate on a single
// process-wide registry. Independent Registry instances can be created with
// New, which is also how tests isolate themselves from the irreversible
// process-wide state.
package setonce

import (
	"sort"
	"strings"
	"sync"
)

// keyPrefix namespaces every stored key so flag names can never collide
// with any other string key space that might share the underlying storage.
// It is applied uniformly on the way in and stripped on the way out; it is
// never visible to callers.
const keyPrefix = "setonce:"

// Registry is a monotonic set of string flags. Flags are compared by exact
// byte equality and are never normalized. The zero value is an empty
// registry ready for use.
//
// # Concurrency model
//
// Storage is a sync.Map keyed by the prefixed flag name. The key space only
// grows and individual keys are written at most meaningfully once, which is
// exactly the access pattern sync.Map is optimized for: membership checks
// are lock-free loads, and concurrent Set calls on the same flag are safe.
//
// IsSet and Set are individually safe from any number of goroutines. Once
// is deliberately NOT atomic across its check-then-act-then-set sequence;
// see its doc comment.
type Registry struct {
	flags sync.Map // key: prefixed flag name, value: struct{}
}

// New creates a new, empty, independent flag registry.
func New() *Registry {
	return &Registry{}
}

func key(flag string) string {
	return keyPrefix + flag
}

// IsSet reports whether flag has been set on this registry. It never
// mutates state: querying a flag that was never set allocates nothing and
// leaves the registry unchanged. Any string is a valid flag, including "".
func (r *Registry) IsSet(flag string) bool {
	_, ok := r.flags.Load(key(flag))
	return ok
}

// Set marks flag as set. Setting an already-set flag is a no-op; the flag
// remains set for the lifetime of the registry. Safe for concurrent use.
func (r *Registry) Set(flag string) {
	r.flags.Store(key(flag), struct{}{})
}

// TrySet marks flag as set and reports whether this call performed the
// transition from unset to set. Exactly one call returns true per flag per
// registry, even when many goroutines race on the same flag. It is the
// claim primitive underlying OnceExclusive.
func (r *Registry) TrySet(flag string) bool {
	_, loaded := r.flags.LoadOrStore(key(flag), struct{}{})
	return !loaded
}

// Once invokes action and then sets flag, unless flag is already set, in
// which case it does nothing. Called twice in sequence from one goroutine,
// action runs exactly once.
//
// The check-act-set sequence is not atomic: two goroutines calling Once
// concurrently on the same unset flag may both observe it unset and both
// run action before either sets the flag. Callers that need a strict
// at-most-once guarantee should use OnceExclusive instead.
//
// If action panics, the panic propagates and the flag is left unset, so a
// later Once call will run action again.
func (r *Registry) Once(flag string, action func()) {
	if r.IsSet(flag) {
		return
	}
	action()
	r.Set(flag)
}

// OnceExclusive invokes action only if this call wins the claim on flag:
// action runs at most once per flag per registry, regardless of how many
// goroutines call OnceExclusive concurrently.
//
// The claim is taken before action runs, so unlike Once, a panicking action
// still consumes the flag and will not be retried.
func (r *Registry) OnceExclusive(flag string, action func()) {
	if r.TrySet(flag) {
		action()
	}
}

// RunIfSet invokes action if flag is set, and does nothing otherwise. It
// never mutates the registry.
func (r *Registry) RunIfSet(flag string, action func()) {
	if r.IsSet(flag) {
		action()
	}
}

// RunIfUnset invokes action if flag is not set, and does nothing otherwise.
// It never mutates the registry: unlike Once, it does not set the flag, so
// repeated calls on a still-unset flag run action every time.
func (r *Registry) RunIfUnset(flag string, action func()) {
	if !r.IsSet(flag) {
		action()
	}
}

// Len returns the number of flags currently set. Because the registry is
// monotonic the result is a lower bound by the time it is returned.
func (r *Registry) Len() int {
	n := 0
	r.flags.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Flags returns a sorted snapshot of all set flags. Flags set concurrently
// with the call may or may not be included.
func (r *Registry) Flags() []string {
	var out []string
	r.flags.Range(func(k, _ any) bool {
		out = append(out, strings.TrimPrefix(k.(string), keyPrefix))
		return true
	})
	sort.Strings(out)
	return out
}
