// Package manifest loads and validates stress manifests: HCL files that
// declare which registry operations to drive, against which flags, with how
// much concurrency.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/setonce/internal/ctxlog"
	"github.com/vk/setonce/internal/fsutil"
	"github.com/vk/setonce/internal/schema"
)

// Loader parses stress manifests from disk.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a manifest loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load resolves path (a single .hcl file or a directory searched
// recursively) and returns the validated scenarios from all files found.
// Scenario names must be unique across the whole manifest set.
func (l *Loader) Load(ctx context.Context, path string) ([]*Scenario, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.ResolveFiles(path, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Manifest files resolved.", "path", path, "count", len(files))

	var scenarios []*Scenario
	seen := make(map[string]string) // scenario name -> file it came from

	for _, filename := range files {
		file, diags := l.parser.ParseHCLFile(filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", filename, diags)
		}

		var m schema.Manifest
		if diags := gohcl.DecodeBody(file.Body, nil, &m); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", filename, diags)
		}

		for _, raw := range m.Scenarios {
			sc, err := translate(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", filename, err)
			}
			if prev, dup := seen[sc.Name]; dup {
				return nil, fmt.Errorf("%s: duplicate scenario %q (already defined in %s)", filename, sc.Name, prev)
			}
			seen[sc.Name] = filename
			scenarios = append(scenarios, sc)
		}
		logger.Debug("Manifest file loaded.", "file", filename, "scenarios", len(m.Scenarios))
	}

	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined under %q", path)
	}
	return scenarios, nil
}

// translate evaluates and validates one raw scenario block.
func translate(raw *schema.Scenario) (*Scenario, error) {
	op, err := evalOp(raw.Op)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", raw.Name, err)
	}

	sc := &Scenario{
		Name:    raw.Name,
		Flag:    raw.Flag,
		Op:      op,
		Workers: DefaultWorkers,
		Repeat:  DefaultRepeat,
	}
	if raw.Workers != nil {
		sc.Workers = *raw.Workers
	}
	if raw.Repeat != nil {
		sc.Repeat = *raw.Repeat
	}

	if sc.Flag == "" {
		return nil, fmt.Errorf("scenario %q: flag must not be empty", sc.Name)
	}
	if sc.Workers <= 0 {
		return nil, fmt.Errorf("scenario %q: workers must be positive, got %d", sc.Name, sc.Workers)
	}
	if sc.Repeat <= 0 {
		return nil, fmt.Errorf("scenario %q: repeat must be positive, got %d", sc.Name, sc.Repeat)
	}
	return sc, nil
}

// evalOp evaluates the op expression. Manifests may spell the operation as
// a plain string ("once") or via the op constants object (op.once).
func evalOp(expr hcl.Expression) (Op, error) {
	val, diags := expr.Value(opEvalContext())
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating op at %s: %w", expr.Range(), diags)
	}

	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("op at %s must be a string: %w", expr.Range(), err)
	}
	if val.IsNull() {
		return "", fmt.Errorf("op at %s must not be null", expr.Range())
	}

	op := Op(val.AsString())
	if !op.valid() {
		return "", fmt.Errorf("unknown op %q at %s (valid: %v)", op, expr.Range(), Ops())
	}
	return op, nil
}

// opEvalContext exposes the valid operations as the `op` object so
// manifests get early feedback on typos (op.onec is an eval error, not a
// string that fails validation later).
func opEvalContext() *hcl.EvalContext {
	attrs := make(map[string]cty.Value, len(Ops()))
	for _, op := range Ops() {
		attrs[string(op)] = cty.StringVal(string(op))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"op": cty.ObjectVal(attrs),
		},
	}
}
