package sampling

import (
	"errors"
	"testing"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
)

func testTable(t *testing.T) *AttributeTable {
	t.Helper()
	table, err := NewAttributeTable(
		[]string{"s0", "s1", "s2"},
		[]string{"luminance", "contrast"},
		[][]float64{{1, 5, 7}, {0.2, 0.4, 0.6}},
	)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return table
}

func TestParseFilterOp(t *testing.T) {
	cases := map[string]FilterOp{
		"<": OpLess, "<=": OpLessEqual, ">": OpGreater, ">=": OpGreaterEqual, "=": OpEqual,
	}
	for text, want := range cases {
		got, err := ParseFilterOp(text)
		if err != nil {
			t.Fatalf("ParseFilterOp(%q): %v", text, err)
		}
		if got != want {
			t.Errorf("ParseFilterOp(%q) = %v, want %v", text, got, want)
		}
	}

	if _, err := ParseFilterOp("!="); !errors.Is(err, core.ErrUnknownOperator) {
		t.Errorf("expected ErrUnknownOperator for \"!=\", got %v", err)
	}
}

func TestFilterOpCompare(t *testing.T) {
	cases := []struct {
		op   FilterOp
		a, b float64
		want bool
	}{
		{OpLess, 1, 2, true},
		{OpLess, 2, 2, false},
		{OpLessEqual, 2, 2, true},
		{OpGreater, 3, 2, true},
		{OpGreaterEqual, 2, 2, true},
		{OpEqual, 2, 2, true},
		{OpEqual, 2.1, 2, false},
	}
	for _, c := range cases {
		got, err := c.op.Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("%v.Compare(%v, %v): %v", c.op, c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("%v.Compare(%v, %v) = %v, want %v", c.op, c.a, c.b, got, c.want)
		}
	}
}

func TestPValueOpSemantics(t *testing.T) {
	// Less demands significance, Greater demands similarity.
	if ok, _ := PValueLess.Passes(0.01, 0.05); !ok {
		t.Error("p=0.01 should pass under < 0.05")
	}
	if ok, _ := PValueLess.Passes(0.20, 0.05); ok {
		t.Error("p=0.20 should fail under < 0.05")
	}
	if ok, _ := PValueGreater.Passes(0.20, 0.05); !ok {
		t.Error("p=0.20 should pass under > 0.05")
	}
	if ok, _ := PValueGreater.Passes(0.01, 0.05); ok {
		t.Error("p=0.01 should fail under > 0.05")
	}
}

func TestCompileConstraints(t *testing.T) {
	table := testTable(t)
	pools := []Pool{
		{Label: "A", N: 1, Eligible: []int{0, 1}},
		{Label: "B", N: 1, Eligible: []int{2}},
	}

	compiled, err := CompileConstraints(table, pools, []ConstraintSpec{{
		Kind:      TestTwoSample,
		Attribute: "contrast",
		Groups:    []string{"A", "B"},
		Op:        PValueGreater,
		Threshold: 0.05,
	}})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if compiled[0].Column != 1 {
		t.Errorf("expected contrast pre-resolved to column 1, got %d", compiled[0].Column)
	}
	if compiled[0].Groups[0] != 0 || compiled[0].Groups[1] != 1 {
		t.Errorf("expected group positions [0 1], got %v", compiled[0].Groups)
	}
}

func TestCompileConstraintsConfigurationErrors(t *testing.T) {
	table := testTable(t)
	pools := []Pool{{Label: "A", N: 1, Eligible: []int{0}}, {Label: "B", N: 1, Eligible: []int{1}}}

	cases := []struct {
		name string
		spec ConstraintSpec
		want error
	}{
		{
			name: "unknown attribute",
			spec: ConstraintSpec{Kind: TestTwoSample, Attribute: "hue", Groups: []string{"A", "B"}},
			want: core.ErrAttributeNotFound,
		},
		{
			name: "unknown group label",
			spec: ConstraintSpec{Kind: TestTwoSample, Attribute: "contrast", Groups: []string{"A", "C"}},
			want: core.ErrGroupNotFound,
		},
		{
			name: "two-sample with three groups",
			spec: ConstraintSpec{Kind: TestTwoSample, Attribute: "contrast", Groups: []string{"A", "B", "A"}},
			want: core.ErrGroupCount,
		},
		{
			name: "single group",
			spec: ConstraintSpec{Kind: TestKSample, Attribute: "contrast", Groups: []string{"A"}},
			want: core.ErrGroupCount,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := CompileConstraints(table, pools, []ConstraintSpec{c.spec})
			if !errors.Is(err, c.want) {
				t.Errorf("expected %v, got %v", c.want, err)
			}
			if !core.IsConfigurationError(err) {
				t.Errorf("expected a configuration error, got %v", err)
			}
		})
	}
}

func TestParseProtocol(t *testing.T) {
	doc := []byte(`{
		"groups": [
			{"label": "A", "n": 2, "filters": [{"attribute": "luminance", "op": ">", "threshold": 4}]},
			{"label": "B", "n": 1, "filters": []}
		],
		"constraints": [
			{"kind": "two-sample", "attribute": "contrast", "groups": ["A", "B"], "op": ">", "threshold": 0.05}
		]
	}`)

	groups, constraints, err := ParseProtocol(doc)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(groups) != 2 || len(constraints) != 1 {
		t.Fatalf("expected 2 groups and 1 constraint, got %d and %d", len(groups), len(constraints))
	}
	if groups[0].Filters[0].Op != OpGreater {
		t.Errorf("expected > filter, got %v", groups[0].Filters[0].Op)
	}
	if constraints[0].Op != PValueGreater {
		t.Errorf("expected > p-value operator, got %v", constraints[0].Op)
	}
}

func TestParseProtocolRejectsBadOperator(t *testing.T) {
	doc := []byte(`{
		"groups": [{"label": "A", "n": 1, "filters": [{"attribute": "x", "op": "~", "threshold": 0}]}]
	}`)
	if _, _, err := ParseProtocol(doc); !errors.Is(err, core.ErrUnknownOperator) {
		t.Errorf("expected ErrUnknownOperator, got %v", err)
	}
}
