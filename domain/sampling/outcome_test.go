package sampling

import (
	"math"
	"testing"
)

func TestBatteryResultAllPassed(t *testing.T) {
	if !(BatteryResult{Pass: []bool{true, true, true}}).AllPassed() {
		t.Error("all-true battery should pass")
	}
	if (BatteryResult{Pass: []bool{false, true, true}}).AllPassed() {
		t.Error("battery with a failure should not pass")
	}
	if !(BatteryResult{}).AllPassed() {
		t.Error("empty battery is vacuously passing")
	}
}

func TestJointProbabilityProductOfMarginals(t *testing.T) {
	r := &FeasibilityReport{Trials: 100, PassCounts: []int{50, 20}}
	joint, conservative := r.JointProbability()
	if conservative {
		t.Error("nonzero counts should not trigger smoothing")
	}
	if math.Abs(joint-0.10) > 1e-12 {
		t.Errorf("joint = %v, want 0.10", joint)
	}
}

func TestJointProbabilityLaplaceSmoothing(t *testing.T) {
	// One constraint never passed: raw product is 0, the add-one estimate
	// must replace it and be flagged conservative.
	r := &FeasibilityReport{Trials: 100, PassCounts: []int{50, 0}}
	joint, conservative := r.JointProbability()
	if !conservative {
		t.Error("zero count must be flagged conservative")
	}
	want := (51.0 / 101.0) * (1.0 / 101.0)
	if math.Abs(joint-want) > 1e-12 {
		t.Errorf("smoothed joint = %v, want %v", joint, want)
	}
}

func TestExpectedDraws(t *testing.T) {
	// p = 0.5 -> one draw finds a success at 50% confidence.
	r := &FeasibilityReport{Trials: 10, PassCounts: []int{5}}
	if got := r.ExpectedDraws(); got != 1 {
		t.Errorf("ExpectedDraws at p=0.5 = %d, want 1", got)
	}

	// p = 0.1 -> ceil(log 0.5 / log 0.9) = 7.
	r = &FeasibilityReport{Trials: 10, PassCounts: []int{1}}
	if got := r.ExpectedDraws(); got != 7 {
		t.Errorf("ExpectedDraws at p=0.1 = %d, want 7", got)
	}

	// Every trial passed -> a single draw suffices.
	r = &FeasibilityReport{Trials: 10, PassCounts: []int{10, 10}}
	if got := r.ExpectedDraws(); got != 1 {
		t.Errorf("ExpectedDraws at p=1 = %d, want 1", got)
	}
}

func TestHardestFirst(t *testing.T) {
	r := &FeasibilityReport{Trials: 100, PassCounts: []int{90, 5, 40}}
	got := r.HardestFirst()
	want := []int{1, 2, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HardestFirst = %v, want %v", got, want)
		}
	}
}

func TestHardestFirstStableOnTies(t *testing.T) {
	r := &FeasibilityReport{Trials: 100, PassCounts: []int{40, 40, 10, 40}}
	got := r.HardestFirst()
	want := []int{2, 0, 1, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HardestFirst = %v, want %v", got, want)
		}
	}
}

func TestHasBlocking(t *testing.T) {
	warn := FeasibilityNote{Label: "A", Severity: SeverityWarning}
	block := FeasibilityNote{Label: "B", Severity: SeverityError}
	if HasBlocking([]FeasibilityNote{warn}) {
		t.Error("a warning alone must not block")
	}
	if !HasBlocking([]FeasibilityNote{warn, block}) {
		t.Error("an error note must block")
	}
}
