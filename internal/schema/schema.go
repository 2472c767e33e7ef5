// Package schema defines the HCL block structures for stress manifests.
// The manifest package translates these raw structures into the validated
// model the runner consumes.
package schema

import "github.com/hashicorp/hcl/v2"

// Scenario represents a `scenario` block from a stress manifest. Each
// scenario drives one registry operation against one flag from a pool of
// concurrent workers.
type Scenario struct {
	Name    string         `hcl:"name,label"`
	Flag    string         `hcl:"flag"`
	Op      hcl.Expression `hcl:"op"`
	Workers *int           `hcl:"workers,optional"`
	Repeat  *int           `hcl:"repeat,optional"`
}

// Manifest is the top-level structure of a stress manifest file.
type Manifest struct {
	Scenarios []*Scenario `hcl:"scenario,block"`
}
