package manifest

// Op identifies the registry operation a scenario exercises.
type Op string

const (
	OpSet           Op = "set"
	OpTrySet        Op = "try_set"
	OpOnce          Op = "once"
	OpOnceExclusive Op = "once_exclusive"
	OpRunIfSet      Op = "run_if_set"
	OpRunIfUnset    Op = "run_if_unset"
)

// Ops lists every valid operation, in the order they are documented.
func Ops() []Op {
	return []Op{OpSet, OpTrySet, OpOnce, OpOnceExclusive, OpRunIfSet, OpRunIfUnset}
}

func (op Op) valid() bool {
	switch op {
	case OpSet, OpTrySet, OpOnce, OpOnceExclusive, OpRunIfSet, OpRunIfUnset:
		return true
	}
	return false
}

// Scenario is the validated form of a `scenario` block: one operation,
// one flag, driven by Workers goroutines performing Repeat iterations each.
type Scenario struct {
	Name    string
	Flag    string
	Op      Op
	Workers int
	Repeat  int
}

// Defaults applied when a scenario omits the optional attributes.
const (
	DefaultWorkers = 4
	DefaultRepeat  = 1
)
