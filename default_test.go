package setonce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The default registry is process-wide and cannot be reset, so each test
// below uses keys unique to that test to avoid cross-test leakage.

func TestDefaultSetAndIsSet(t *testing.T) {
	assert.False(t, IsSet("default_test_set"))
	Set("default_test_set")
	assert.True(t, IsSet("default_test_set"))
}

func TestDefaultOnce(t *testing.T) {
	counter := 0
	Once("default_test_once", func() { counter++ })
	Once("default_test_once", func() { counter++ })
	assert.Equal(t, 1, counter)
}

func TestDefaultConditionalHelpers(t *testing.T) {
	ran := 0

	RunIfSet("default_test_cond", func() { ran++ })
	assert.Equal(t, 0, ran)

	RunIfUnset("default_test_cond", func() { ran++ })
	assert.Equal(t, 1, ran)

	Set("default_test_cond")
	RunIfSet("default_test_cond", func() { ran++ })
	RunIfUnset("default_test_cond", func() { ran++ })
	assert.Equal(t, 2, ran)
}

func TestDefaultTrySetAndExclusive(t *testing.T) {
	assert.True(t, TrySet("default_test_claim"))
	assert.False(t, TrySet("default_test_claim"))

	counter := 0
	OnceExclusive("default_test_excl", func() { counter++ })
	OnceExclusive("default_test_excl", func() { counter++ })
	assert.Equal(t, 1, counter)
}

func TestDefaultHandleIsStable(t *testing.T) {
	Default().Set("default_test_handle")
	assert.True(t, IsSet("default_test_handle"))
	assert.Same(t, Default(), Default())
}
