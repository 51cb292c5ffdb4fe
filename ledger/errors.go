/*
errors.go - Centralized error types for the ledger core

PURPOSE:
  All error types in one place for consistency and discoverability.
  The calling layer uses the classification helpers to decide HTTP status
  codes or user-facing messages; the core never swallows an error or
  logs-and-continues.

ERROR CATEGORIES:
  1. Validation errors - Caller's fault, recoverable (unbalanced entry,
     bad line, posting to a summary account)
  2. State errors - Illegal lifecycle transition (re-post, reverse twice,
     close a closed period)
  3. Not-found errors - Missing account or entry

Nothing here is retried automatically: these are business-rule violations,
not transient infrastructure failures.

USAGE:
  Callers can match sentinels:

    if errors.Is(err, ledger.ErrUnbalancedEntry) { ... }

  or extract structured detail:

    var ub *ledger.UnbalancedEntryError
    if errors.As(err, &ub) {
        fmt.Println(ub.Debits, ub.Credits)
    }

SEE ALSO:
  - engine.go: Raises these errors on posting/reversal
  - trial.go: Raises the period-closing errors
*/
package ledger

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnbalancedEntry is returned when an entry's debits != credits.
	// The fundamental double-entry invariant.
	ErrUnbalancedEntry = errors.New("unbalanced entry: debits != credits")

	// ErrInvalidLine is returned when a line violates the debit-XOR-credit
	// rule, carries a negative amount, or has sub-cent precision.
	ErrInvalidLine = errors.New("invalid journal line")

	// ErrNoLines is returned when posting an entry with no lines.
	ErrNoLines = errors.New("entry has no lines")

	// ErrAlreadyPosted is returned when re-posting a posted entry.
	ErrAlreadyPosted = errors.New("entry already posted")

	// ErrNotPosted is returned when reversing an entry that was never posted.
	ErrNotPosted = errors.New("entry not posted")

	// ErrAlreadyReversed is returned when reversing an entry twice.
	ErrAlreadyReversed = errors.New("entry already reversed")

	// ErrApprovalRequired is returned when posting an unapproved entry that
	// requires approval.
	ErrApprovalRequired = errors.New("entry requires approval before posting")

	// ErrSummaryAccountPosting is returned when a line targets a non-detail
	// account. Summary accounts aggregate children; they never receive
	// direct postings.
	ErrSummaryAccountPosting = errors.New("cannot post to summary account")

	// ErrInactiveAccount is returned when a line targets a deactivated account.
	ErrInactiveAccount = errors.New("cannot post to inactive account")

	// ErrBackdatedEntry is returned when a line is dated before the account's
	// last ledger row. Running balances are a prefix sum in append order, so
	// an out-of-order date would make as-of balance queries disagree with the
	// stored running balance.
	ErrBackdatedEntry = errors.New("entry dated before account's last ledger row")

	// ErrAccountNotFound is returned when a referenced account doesn't exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrEntryNotFound is returned when a referenced journal entry doesn't exist.
	ErrEntryNotFound = errors.New("journal entry not found")

	// ErrUnbalancedTrialBalance is returned when closing a trial balance
	// whose ending debit and credit totals differ.
	ErrUnbalancedTrialBalance = errors.New("trial balance is not balanced")

	// ErrPeriodClosed is returned when closing an already-closed period.
	// Closing is not idempotent by design: a second close must be rejected,
	// never re-executed.
	ErrPeriodClosed = errors.New("period already closed")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrStaleTrialBalance is returned when closing from a trial-balance
	// snapshot that no longer matches the ledger: postings landed in the
	// period after the snapshot was generated. The caller must regenerate
	// and retry.
	ErrStaleTrialBalance = errors.New("trial balance is stale: ledger changed since generation")

	// ErrInvalidChart is returned when chart-of-accounts validation fails
	// (cycles, duplicate numbers, dangling parents).
	ErrInvalidChart = errors.New("invalid chart of accounts")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// UnbalancedEntryError reports the exact debit/credit totals of a rejected entry.
type UnbalancedEntryError struct {
	Entry   EntryNumber
	Debits  Money
	Credits Money
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entry %s: debits %s != credits %s (difference %s)",
		e.Entry, e.Debits, e.Credits, e.Debits.Sub(e.Credits))
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrUnbalancedEntry }

// LineError reports which line of an entry failed validation and why.
type LineError struct {
	Index     int
	AccountID AccountID
	Reason    string
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (account %s): %s", e.Index, e.AccountID, e.Reason)
}

func (e *LineError) Unwrap() error { return ErrInvalidLine }

// BackdatedEntryError reports which account rejected an out-of-order date.
type BackdatedEntryError struct {
	AccountID AccountID
	EntryDate time.Time
	LastDate  time.Time
}

func (e *BackdatedEntryError) Error() string {
	return fmt.Sprintf("account %s: entry dated %s before last ledger row dated %s",
		e.AccountID, e.EntryDate.Format("2006-01-02"), e.LastDate.Format("2006-01-02"))
}

func (e *BackdatedEntryError) Unwrap() error { return ErrBackdatedEntry }

// ChartError reports a structural problem in a chart of accounts.
type ChartError struct {
	AccountID AccountID
	Reason    string
}

func (e *ChartError) Error() string {
	return fmt.Sprintf("chart of accounts: account %s: %s", e.AccountID, e.Reason)
}

func (e *ChartError) Unwrap() error { return ErrInvalidChart }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
// The API layer maps these to 400.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnbalancedEntry) ||
		errors.Is(err, ErrInvalidLine) ||
		errors.Is(err, ErrNoLines) ||
		errors.Is(err, ErrSummaryAccountPosting) ||
		errors.Is(err, ErrInactiveAccount) ||
		errors.Is(err, ErrBackdatedEntry) ||
		errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidChart) ||
		errors.Is(err, ErrUnbalancedTrialBalance)
}

// IsStateError returns true if the error is an illegal lifecycle transition.
// The API layer maps these to 409.
func IsStateError(err error) bool {
	return errors.Is(err, ErrAlreadyPosted) ||
		errors.Is(err, ErrNotPosted) ||
		errors.Is(err, ErrAlreadyReversed) ||
		errors.Is(err, ErrApprovalRequired) ||
		errors.Is(err, ErrPeriodClosed) ||
		errors.Is(err, ErrStaleTrialBalance)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrEntryNotFound)
}
