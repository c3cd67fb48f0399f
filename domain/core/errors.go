package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: malformed group or constraint definitions.
	// These fail fast and are never retried.
	ErrUnknownOperator       = errors.New("unknown relational operator")
	ErrUnknownPValueOperator = errors.New("unknown p-value operator")
	ErrUnknownTestKind       = errors.New("unknown test kind")
	ErrAttributeNotFound     = errors.New("attribute not found")
	ErrGroupNotFound         = errors.New("group not found")
	ErrGroupCount            = errors.New("wrong number of groups for test")

	// Feasibility errors: group definitions that cannot yield a valid draw.
	ErrPoolExhausted = errors.New("required sample size exceeds eligible pool")

	// Data errors
	ErrEmptyTable      = errors.New("attribute table is empty")
	ErrColumnMismatch  = errors.New("attribute columns are not index-aligned")
	ErrNonNumericValue = errors.New("non-numeric attribute value")
)

// Error constructors with context
func NewOperatorError(op string) error {
	return fmt.Errorf("%w: %q", ErrUnknownOperator, op)
}

func NewAttributeError(name string) error {
	return fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
}

func NewGroupError(label string) error {
	return fmt.Errorf("%w: %q", ErrGroupNotFound, label)
}

func NewPoolError(label string, required, eligible int) error {
	return fmt.Errorf("%w: group %q requires %d of %d eligible", ErrPoolExhausted, label, required, eligible)
}

// IsConfigurationError reports whether err is a fail-fast definition error.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrUnknownOperator) ||
		errors.Is(err, ErrUnknownPValueOperator) ||
		errors.Is(err, ErrUnknownTestKind) ||
		errors.Is(err, ErrAttributeNotFound) ||
		errors.Is(err, ErrGroupNotFound) ||
		errors.Is(err, ErrGroupCount)
}

// IsFeasibilityError reports whether err blocks a search before it starts.
func IsFeasibilityError(err error) bool {
	return errors.Is(err, ErrPoolExhausted)
}
