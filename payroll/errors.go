/*
errors.go - Error types for the payroll-tax engine

ERROR CATEGORIES:
  1. Validation errors - Caller's fault (termination before hire,
     non-positive salary)
  2. Configuration errors - Broken compliance data (malformed bracket
     table, uncovered taxable amount). These are fatal, never a silent
     zero: a payroll amount falling outside all configured brackets means
     the tables were loaded wrong.
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrMissingBracketTable is returned when Tables has no bracket table.
	ErrMissingBracketTable = errors.New("missing bracket table")

	// ErrInvalidBracketTable is returned when a bracket table is malformed
	// (empty, unordered, or overlapping).
	ErrInvalidBracketTable = errors.New("invalid bracket table")

	// ErrNoBracketForAmount is returned when a taxable amount falls in a gap
	// between configured brackets. A fatal configuration error.
	ErrNoBracketForAmount = errors.New("no bracket covers amount")

	// ErrInvalidContributionRule is returned for a malformed rule
	// (negative rate, floor above cap).
	ErrInvalidContributionRule = errors.New("invalid contribution rule")

	// ErrInvalidSeverancePolicy is returned for a malformed severance policy.
	ErrInvalidSeverancePolicy = errors.New("invalid severance policy")

	// ErrTerminationBeforeHire is returned when termination_date < hire_date.
	ErrTerminationBeforeHire = errors.New("termination date before hire date")

	// ErrNonPositiveSalary is returned when monthly salary <= 0.
	ErrNonPositiveSalary = errors.New("monthly salary must be positive")

	// ErrNegativeGross is returned when a payroll run's gross amount is negative.
	ErrNegativeGross = errors.New("gross amount must not be negative")

	// ErrUnknownTerminationType is returned for a termination type outside
	// {voluntary, involuntary, layoff}.
	ErrUnknownTerminationType = errors.New("unknown termination type")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// BracketTableError reports which bracket broke table validation.
type BracketTableError struct {
	Index  int
	Reason string
}

func (e *BracketTableError) Error() string {
	return fmt.Sprintf("bracket %d: %s", e.Index, e.Reason)
}

func (e *BracketTableError) Unwrap() error { return ErrInvalidBracketTable }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError returns true if the error means the compliance data is
// broken rather than the caller's input. The API layer maps these to 500.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingBracketTable) ||
		errors.Is(err, ErrInvalidBracketTable) ||
		errors.Is(err, ErrNoBracketForAmount) ||
		errors.Is(err, ErrInvalidContributionRule) ||
		errors.Is(err, ErrInvalidSeverancePolicy)
}

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrTerminationBeforeHire) ||
		errors.Is(err, ErrNonPositiveSalary) ||
		errors.Is(err, ErrNegativeGross) ||
		errors.Is(err, ErrUnknownTerminationType)
}
