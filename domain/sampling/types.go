package sampling

import (
	"fmt"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
)

// AttributeTable holds the feature matrix for all candidate stimuli.
// Columns are index-aligned: row i of every column describes stimulus IDs[i].
type AttributeTable struct {
	IDs     []string    // stimulus identifiers, one per row
	Names   []string    // attribute names, one per column
	Columns [][]float64 // Columns[c][r] = value of attribute c for stimulus r

	index map[string]int // attribute name -> column, built once at load time
}

// NewAttributeTable builds a table and its name index.
// All columns must have the same length as IDs.
func NewAttributeTable(ids []string, names []string, columns [][]float64) (*AttributeTable, error) {
	if len(ids) == 0 || len(names) == 0 {
		return nil, core.ErrEmptyTable
	}
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", core.ErrColumnMismatch, len(names), len(columns))
	}
	index := make(map[string]int, len(names))
	for c, name := range names {
		if len(columns[c]) != len(ids) {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", core.ErrColumnMismatch, name, len(columns[c]), len(ids))
		}
		index[name] = c
	}
	return &AttributeTable{IDs: ids, Names: names, Columns: columns, index: index}, nil
}

// RowCount returns the number of stimuli in the table.
func (t *AttributeTable) RowCount() int {
	return len(t.IDs)
}

// Column resolves an attribute name to its column index.
func (t *AttributeTable) Column(name string) (int, bool) {
	c, ok := t.index[name]
	return c, ok
}

// Values returns the full value vector for a resolved column.
func (t *AttributeTable) Values(column int) []float64 {
	return t.Columns[column]
}

// FilterOp is a relational operator applied by group filters.
type FilterOp int

const (
	OpLess FilterOp = iota
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpEqual
)

var filterOpNames = map[FilterOp]string{
	OpLess:         "<",
	OpLessEqual:    "<=",
	OpGreater:      ">",
	OpGreaterEqual: ">=",
	OpEqual:        "=",
}

// filterOpTable dispatches relational comparisons without string branching.
var filterOpTable = map[FilterOp]func(a, b float64) bool{
	OpLess:         func(a, b float64) bool { return a < b },
	OpLessEqual:    func(a, b float64) bool { return a <= b },
	OpGreater:      func(a, b float64) bool { return a > b },
	OpGreaterEqual: func(a, b float64) bool { return a >= b },
	OpEqual:        func(a, b float64) bool { return a == b },
}

// ParseFilterOp converts operator text from a protocol file into a FilterOp.
func ParseFilterOp(s string) (FilterOp, error) {
	for op, name := range filterOpNames {
		if name == s {
			return op, nil
		}
	}
	return 0, core.NewOperatorError(s)
}

// String returns the operator's textual form.
func (op FilterOp) String() string {
	if name, ok := filterOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("FilterOp(%d)", int(op))
}

// Compare applies the operator to (a, b).
func (op FilterOp) Compare(a, b float64) (bool, error) {
	fn, ok := filterOpTable[op]
	if !ok {
		return false, core.NewOperatorError(op.String())
	}
	return fn(a, b), nil
}

// Filter is one relational predicate over a named attribute.
type Filter struct {
	Attribute string
	Op        FilterOp
	Threshold float64
}

// GroupSpec defines one labeled candidate pool: filters select the eligible
// stimuli, N is the required sample size.
type GroupSpec struct {
	Label   string
	N       int
	Filters []Filter
}

// Pool is the derived eligible index set for one group.
type Pool struct {
	Label    string
	N        int
	Eligible []int // row indices into the attribute table
}

// Degenerate reports whether the pool admits exactly one possible draw.
func (p Pool) Degenerate() bool {
	return p.N == len(p.Eligible)
}

// TestKind selects the statistical test run by a constraint.
type TestKind int

const (
	TestTwoSample TestKind = iota // exactly two groups
	TestKSample                   // two or more groups
)

var testKindNames = map[TestKind]string{
	TestTwoSample: "two-sample",
	TestKSample:   "k-sample",
}

// ParseTestKind converts protocol text into a TestKind.
func ParseTestKind(s string) (TestKind, error) {
	for kind, name := range testKindNames {
		if name == s {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnknownTestKind, s)
}

func (k TestKind) String() string {
	if name, ok := testKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TestKind(%d)", int(k))
}

// PValueOp decides how a constraint's p-value is compared to its threshold.
// Less demands a significant difference, Greater demands similarity.
type PValueOp int

const (
	PValueLess PValueOp = iota
	PValueGreater
)

var pValueOpNames = map[PValueOp]string{
	PValueLess:    "<",
	PValueGreater: ">",
}

var pValueOpTable = map[PValueOp]func(p, threshold float64) bool{
	PValueLess:    func(p, threshold float64) bool { return p < threshold },
	PValueGreater: func(p, threshold float64) bool { return p > threshold },
}

// ParsePValueOp converts protocol text into a PValueOp.
func ParsePValueOp(s string) (PValueOp, error) {
	for op, name := range pValueOpNames {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", core.ErrUnknownPValueOperator, s)
}

func (op PValueOp) String() string {
	if name, ok := pValueOpNames[op]; ok {
		return name
	}
	return fmt.Sprintf("PValueOp(%d)", int(op))
}

// Passes applies the operator to an observed p-value.
func (op PValueOp) Passes(p, threshold float64) (bool, error) {
	fn, ok := pValueOpTable[op]
	if !ok {
		return false, fmt.Errorf("%w: %s", core.ErrUnknownPValueOperator, op)
	}
	return fn(p, threshold), nil
}

// ConstraintSpec is one acceptance test as written in the protocol:
// a statistical test on one attribute across two or more named groups.
type ConstraintSpec struct {
	Kind      TestKind
	Attribute string
	Groups    []string // group labels, order preserved
	Op        PValueOp
	Threshold float64
}

// Constraint is a compiled ConstraintSpec: the attribute reference is
// resolved to a stable column and group labels to pool positions once, at
// load time, so evaluation never scans names.
type Constraint struct {
	Kind      TestKind
	Attribute string
	Column    int
	Groups    []int // positions into the pools slice
	Op        PValueOp
	Threshold float64
}

// CompileConstraints resolves constraint specs against a table and pool list.
// All definition errors (unknown attribute, unknown group label, wrong group
// count for a two-sample test) surface here, before any search attempt.
func CompileConstraints(table *AttributeTable, pools []Pool, specs []ConstraintSpec) ([]Constraint, error) {
	position := make(map[string]int, len(pools))
	for i, p := range pools {
		position[p.Label] = i
	}

	compiled := make([]Constraint, 0, len(specs))
	for _, spec := range specs {
		column, ok := table.Column(spec.Attribute)
		if !ok {
			return nil, core.NewAttributeError(spec.Attribute)
		}
		if len(spec.Groups) < 2 {
			return nil, fmt.Errorf("%w: %s test references %d groups, need at least 2",
				core.ErrGroupCount, spec.Kind, len(spec.Groups))
		}
		if spec.Kind == TestTwoSample && len(spec.Groups) != 2 {
			return nil, fmt.Errorf("%w: two-sample test references %d groups",
				core.ErrGroupCount, len(spec.Groups))
		}
		groups := make([]int, len(spec.Groups))
		for i, label := range spec.Groups {
			pos, ok := position[label]
			if !ok {
				return nil, core.NewGroupError(label)
			}
			groups[i] = pos
		}
		compiled = append(compiled, Constraint{
			Kind:      spec.Kind,
			Attribute: spec.Attribute,
			Column:    column,
			Groups:    groups,
			Op:        spec.Op,
			Threshold: spec.Threshold,
		})
	}
	return compiled, nil
}
