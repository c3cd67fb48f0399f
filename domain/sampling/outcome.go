package sampling

import (
	"math"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
)

// BatteryResult is the outcome of a full-scan evaluation: one entry per
// constraint regardless of individual failures.
type BatteryResult struct {
	Pass    []bool
	PValues []float64
}

// AllPassed reports whether every constraint in the battery passed.
func (r BatteryResult) AllPassed() bool {
	for _, ok := range r.Pass {
		if !ok {
			return false
		}
	}
	return true
}

// DescriptiveStats summarizes one group's drawn values.
type DescriptiveStats struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
}

// GroupSummary pairs a group label with its descriptive statistics.
type GroupSummary struct {
	Label string           `json:"label"`
	Stats DescriptiveStats `json:"stats"`
}

// ConstraintReport is the reporter's full record for one constraint of an
// accepted draw.
type ConstraintReport struct {
	Attribute string         `json:"attribute"`
	Kind      string         `json:"kind"`
	Op        string         `json:"op"`
	Threshold float64        `json:"threshold"`
	PValue    float64        `json:"p_value"`
	Passed    bool           `json:"passed"`
	Groups    []GroupSummary `json:"groups"`
}

// Selection is the search's sole persistent output: the accepted draw plus
// how it was found.
type Selection struct {
	SearchID    core.SearchID       `json:"search_id"`
	Draw        Draw                `json:"-"`
	Groups      map[string][]string `json:"groups"` // label -> chosen stimulus identifiers
	Rounds      int                 `json:"rounds"`
	WorkerIndex int                 `json:"worker_index"`
	Attempts    int                 `json:"attempts"` // attempts by the accepting worker
	AcceptedAt  core.Timestamp      `json:"accepted_at"`
}

// FeasibilitySeverity grades pool-size findings from the pool builder.
type FeasibilitySeverity int

const (
	SeverityWarning FeasibilitySeverity = iota // N == |pool|: unique draw, search degenerate
	SeverityError                              // N > |pool|: search cannot start
)

// FeasibilityNote is a pool-size finding reported before a search starts.
type FeasibilityNote struct {
	Label    string
	Severity FeasibilitySeverity
	Message  string
}

// HasBlocking reports whether any note forbids starting a search.
func HasBlocking(notes []FeasibilityNote) bool {
	for _, n := range notes {
		if n.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FeasibilityReport holds per-constraint pass tallies from independent random
// trials. Derived quantities are computed on demand from the raw counts.
type FeasibilityReport struct {
	Trials     int
	PassCounts []int
}

// Frequencies returns each constraint's relative pass frequency.
func (r *FeasibilityReport) Frequencies() []float64 {
	freqs := make([]float64, len(r.PassCounts))
	for i, count := range r.PassCounts {
		freqs[i] = float64(count) / float64(r.Trials)
	}
	return freqs
}

// JointProbability estimates the whole battery's pass probability as the
// product of per-constraint marginal frequencies. Constraints sharing a group
// or attribute are not actually independent; the product is a deliberate,
// retained approximation. When any constraint observed zero passes the raw
// product is 0 and Laplace add-one smoothing is applied instead; conservative
// is true in that case.
func (r *FeasibilityReport) JointProbability() (joint float64, conservative bool) {
	joint = 1.0
	for _, count := range r.PassCounts {
		joint *= float64(count) / float64(r.Trials)
	}
	if joint > 0 {
		return joint, false
	}
	joint = 1.0
	for _, count := range r.PassCounts {
		joint *= float64(count+1) / float64(r.Trials+1)
	}
	return joint, true
}

// ExpectedDraws is the number of independent whole-battery draws needed to
// find one success at 50% confidence, assuming i.i.d. Bernoulli attempts:
// ceil(log(0.5) / log(1-p)).
func (r *FeasibilityReport) ExpectedDraws() int {
	p, _ := r.JointProbability()
	if p >= 1 {
		return 1
	}
	if p <= 0 {
		return math.MaxInt64
	}
	return int(math.Ceil(math.Log(0.5) / math.Log(1-p)))
}

// HardestFirst returns a permutation of constraint indices ordered by
// ascending pass count. Only the search scheduler uses this order; full-scan
// paths evaluate every constraint regardless.
func (r *FeasibilityReport) HardestFirst() []int {
	order := make([]int, len(r.PassCounts))
	for i := range order {
		order[i] = i
	}
	// Insertion sort keeps the permutation stable for equal counts.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && r.PassCounts[order[j]] < r.PassCounts[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
