package sampling

import (
	"encoding/json"
	"fmt"
)

// Protocol is the JSON study definition consumed by the entrypoints:
// group pools and the constraint battery, as written by the experimenter.
type Protocol struct {
	Groups      []protocolGroup      `json:"groups"`
	Constraints []protocolConstraint `json:"constraints"`
}

type protocolGroup struct {
	Label   string           `json:"label"`
	N       int              `json:"n"`
	Filters []protocolFilter `json:"filters"`
}

type protocolFilter struct {
	Attribute string  `json:"attribute"`
	Op        string  `json:"op"`
	Threshold float64 `json:"threshold"`
}

type protocolConstraint struct {
	Kind      string   `json:"kind"`
	Attribute string   `json:"attribute"`
	Groups    []string `json:"groups"`
	Op        string   `json:"op"`
	Threshold float64  `json:"threshold"`
}

// ParseProtocol decodes and validates a protocol document, converting
// operator and test-kind text into their closed enum forms.
func ParseProtocol(data []byte) ([]GroupSpec, []ConstraintSpec, error) {
	var doc Protocol
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to decode protocol: %w", err)
	}
	if len(doc.Groups) == 0 {
		return nil, nil, fmt.Errorf("protocol defines no groups")
	}

	groups := make([]GroupSpec, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		if g.N <= 0 {
			return nil, nil, fmt.Errorf("group %q: required sample size must be positive, got %d", g.Label, g.N)
		}
		filters := make([]Filter, 0, len(g.Filters))
		for _, f := range g.Filters {
			op, err := ParseFilterOp(f.Op)
			if err != nil {
				return nil, nil, fmt.Errorf("group %q: %w", g.Label, err)
			}
			filters = append(filters, Filter{Attribute: f.Attribute, Op: op, Threshold: f.Threshold})
		}
		groups = append(groups, GroupSpec{Label: g.Label, N: g.N, Filters: filters})
	}

	constraints := make([]ConstraintSpec, 0, len(doc.Constraints))
	for i, c := range doc.Constraints {
		kind, err := ParseTestKind(c.Kind)
		if err != nil {
			return nil, nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		op, err := ParsePValueOp(c.Op)
		if err != nil {
			return nil, nil, fmt.Errorf("constraint %d: %w", i, err)
		}
		constraints = append(constraints, ConstraintSpec{
			Kind:      kind,
			Attribute: c.Attribute,
			Groups:    c.Groups,
			Op:        op,
			Threshold: c.Threshold,
		})
	}
	return groups, constraints, nil
}
