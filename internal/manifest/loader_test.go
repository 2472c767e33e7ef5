package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeManifest writes content to dir/name and returns the full path.
func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadSingleFile(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "main.hcl", `
scenario "warmup" {
  flag    = "cache_warm"
  op      = op.once
  workers = 8
  repeat  = 100
}

scenario "probe" {
  flag = "cache_warm"
  op   = "run_if_set"
}
`)

	scenarios, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	warmup := scenarios[0]
	assert.Equal(t, "warmup", warmup.Name)
	assert.Equal(t, "cache_warm", warmup.Flag)
	assert.Equal(t, OpOnce, warmup.Op)
	assert.Equal(t, 8, warmup.Workers)
	assert.Equal(t, 100, warmup.Repeat)

	// Both op spellings resolve to the same operation; defaults fill the
	// omitted attributes.
	probe := scenarios[1]
	assert.Equal(t, OpRunIfSet, probe.Op)
	assert.Equal(t, DefaultWorkers, probe.Workers)
	assert.Equal(t, DefaultRepeat, probe.Repeat)
}

func TestLoadDirectoryRecursion(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `
scenario "first" {
  flag = "f1"
  op   = "set"
}
`)
	writeManifest(t, dir, "nested/b.hcl", `
scenario "second" {
  flag = "f2"
  op   = "try_set"
}
`)
	writeManifest(t, dir, "notes.txt", "ignored, not hcl")

	scenarios, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Len(t, scenarios, 2)
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name    string
		hcl     string
		wantErr string
	}{
		{
			name: "unknown op",
			hcl: `scenario "s" {
  flag = "f"
  op   = "onec"
}`,
			wantErr: "unknown op",
		},
		{
			name: "typoed op constant",
			hcl: `scenario "s" {
  flag = "f"
  op   = op.onec
}`,
			wantErr: "evaluating op",
		},
		{
			name: "empty flag",
			hcl: `scenario "s" {
  flag = ""
  op   = "set"
}`,
			wantErr: "flag must not be empty",
		},
		{
			name: "zero workers",
			hcl: `scenario "s" {
  flag    = "f"
  op      = "set"
  workers = 0
}`,
			wantErr: "workers must be positive",
		},
		{
			name: "negative repeat",
			hcl: `scenario "s" {
  flag   = "f"
  op     = "set"
  repeat = -1
}`,
			wantErr: "repeat must be positive",
		},
		{
			name: "missing op attribute",
			hcl: `scenario "s" {
  flag = "f"
}`,
			wantErr: "decoding",
		},
		{
			name:    "syntax error",
			hcl:     `scenario "s" {`,
			wantErr: "parsing",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), "main.hcl", tc.hcl)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoadDuplicateScenarioNames(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "a.hcl", `
scenario "dup" {
  flag = "f1"
  op   = "set"
}
`)
	writeManifest(t, dir, "b.hcl", `
scenario "dup" {
  flag = "f2"
  op   = "set"
}
`)

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, `duplicate scenario "dup"`)
}

func TestLoadEmptyManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "main.hcl", "\n")
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.ErrorContains(t, err, "no scenarios defined")
}

func TestLoadMissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
