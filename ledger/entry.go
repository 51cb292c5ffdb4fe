/*
entry.go - Journal entries and the double-entry invariant

PURPOSE:
  A JournalEntry is an atomic, dated financial transaction made of lines,
  where each line debits or credits exactly one account. The fundamental
  invariant: for any posted entry, sum(debits) == sum(credits), compared
  with exact decimal equality (never floating-point tolerance).

LIFECYCLE:
  draft -> approved (optional) -> posted -> reversed (optional, terminal)

  Posting and reversal are the only mutating transitions after draft.
  There is no "edit posted entry" - corrections are always new entries.

LINE INVARIANT:
  Each line has debit XOR credit: exactly one of the two is nonzero, both
  are non-negative, and neither carries sub-cent precision.

ENTRY NUMBERS:
  "JE-YYYY-MM-NNNN", monotonic within the month prefix. Numbers are
  allocated by the repository at posting time, so drafts can be discarded
  without burning a sequence slot.

SEE ALSO:
  - engine.go: Enforces the balance invariant at posting time
  - errors.go: UnbalancedEntryError, LineError
*/
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// JOURNAL ENTRY LINE
// =============================================================================

// JournalEntryLine is one side of a posting: a debit or credit against a
// single detail account.
type JournalEntryLine struct {
	ID          string // uuid, assigned at posting if empty
	AccountID   AccountID
	Description string
	Debit       Money
	Credit      Money

	// Optional tax detail carried through to reporting.
	TaxRate   *decimal.Decimal
	TaxAmount Money
}

// NetAmount returns debit - credit (positive for debit lines).
func (l JournalEntryLine) NetAmount() Money { return l.Debit.Sub(l.Credit) }

// Side returns which column this line posts to.
func (l JournalEntryLine) Side() Side {
	if !l.Debit.IsZero() {
		return SideDebit
	}
	return SideCredit
}

func (l JournalEntryLine) validate(index int) error {
	hasDebit := !l.Debit.IsZero()
	hasCredit := !l.Credit.IsZero()
	if hasDebit == hasCredit {
		return &LineError{Index: index, AccountID: l.AccountID, Reason: "line must have exactly one of debit or credit"}
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return &LineError{Index: index, AccountID: l.AccountID, Reason: "amounts must be non-negative"}
	}
	if !l.Debit.HasCentPrecision() || !l.Credit.HasCentPrecision() {
		return &LineError{Index: index, AccountID: l.AccountID, Reason: "amount has more than 2 decimal places"}
	}
	if l.AccountID == "" {
		return &LineError{Index: index, AccountID: l.AccountID, Reason: "missing account"}
	}
	return nil
}

// =============================================================================
// JOURNAL ENTRY
// =============================================================================

type JournalEntry struct {
	Number      EntryNumber // assigned at posting if empty
	Date        time.Time
	Description string
	Type        EntryType
	Lines       []JournalEntryLine

	// Derived from lines; authoritative once posted.
	TotalDebits  Money
	TotalCredits Money

	IsPosted   bool
	PostedAt   *time.Time
	IsReversed bool
	ReversalOf EntryNumber // set on reversal entries, back-reference to the original

	RequiresApproval bool
	IsApproved       bool
	ApprovedBy       string

	CreatedBy string
	CreatedAt time.Time
}

// CalculateTotals recomputes TotalDebits/TotalCredits from the lines.
func (e *JournalEntry) CalculateTotals() {
	debits, credits := Zero, Zero
	for _, l := range e.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	e.TotalDebits = debits
	e.TotalCredits = credits
}

// IsBalanced reports exact decimal equality of debit and credit totals.
func (e *JournalEntry) IsBalanced() bool {
	e.CalculateTotals()
	return e.TotalDebits.Equal(e.TotalCredits)
}

// Validate checks the draft-state invariants (line shape only; the balance
// check happens at posting time so the caller gets the typed error with
// exact totals).
func (e *JournalEntry) Validate() error {
	if len(e.Lines) == 0 {
		return ErrNoLines
	}
	for i, l := range e.Lines {
		if err := l.validate(i); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// GENERAL LEDGER ENTRY - Append-only running-balance projection
// =============================================================================

// GeneralLedgerEntry is the immutable projection of one journal line onto its
// account. Rows for an account are strictly ordered by Seq (append order);
// RunningBalance is the prefix sum over that order, signed by the account's
// normal side. Rows are never updated or deleted - corrections arrive as new
// rows via reversal entries.
type GeneralLedgerEntry struct {
	ID             string // uuid
	AccountID      AccountID
	EntryNumber    EntryNumber
	LineID         string
	Date           time.Time
	Description    string
	Debit          Money
	Credit         Money
	RunningBalance Money
	Seq            int64 // per-account append order, starts at 1
	CreatedAt      time.Time
}

// NewLedgerEntryID returns a fresh ledger-row identifier.
func NewLedgerEntryID() string { return uuid.NewString() }

// =============================================================================
// ENTRY NUMBERS
// =============================================================================

// FormatEntryNumber renders "JE-YYYY-MM-NNNN".
func FormatEntryNumber(year int, month time.Month, seq int) EntryNumber {
	return EntryNumber(fmt.Sprintf("JE-%04d-%02d-%04d", year, int(month), seq))
}

// MonthPrefix returns the "YYYY-MM" sequence bucket for a date.
func MonthPrefix(date time.Time) string {
	return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
}
