/*
repository.go - Persistence interface for the ledger

PURPOSE:
  Defines the interface between the engine and the database. The repository
  handles persistence while maintaining append-only semantics on the
  general ledger. Different implementations can use SQLite, PostgreSQL, or
  in-memory storage.

APPEND-ONLY CONTRACT:
  The general ledger table is append-only:
  - AppendLedgerEntries(): The ONLY ledger write operation
  - NO update or delete methods exist for ledger rows
  - Corrections arrive as new rows via reversal entries

TRANSACTIONS:
  WithTx() runs a function against a transactional view of the repository.
  The engine wraps every posting in WithTx so that either all lines post
  and all balances update, or none do. A partial post would break the
  double-entry invariant.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite (WAL, auto-migrated schema)
  - ledger/store: In-memory for testing

SEE ALSO:
  - engine.go: The only consumer of the write methods
  - store/memory.go: Reference implementation
*/
package ledger

import (
	"context"
	"time"
)

// =============================================================================
// LEDGER REPOSITORY
// =============================================================================

// LedgerRepository persists accounts, journal entries, and the append-only
// general ledger. Implementations must be safe for concurrent use; the
// engine additionally serializes balance-mutating posts per account.
type LedgerRepository interface {
	// --- Accounts ---

	// Account returns the account or ErrAccountNotFound.
	Account(ctx context.Context, id AccountID) (Account, error)

	// SaveAccount inserts or updates an account (used for creation and for
	// the CurrentBalance cache).
	SaveAccount(ctx context.Context, a Account) error

	// Accounts returns all accounts ordered by number.
	Accounts(ctx context.Context) ([]Account, error)

	// --- Journal entries ---

	// JournalEntry returns an entry by number or ErrEntryNotFound.
	JournalEntry(ctx context.Context, number EntryNumber) (JournalEntry, error)

	// SaveJournalEntry inserts or updates a journal entry with its lines.
	// Posted entries are only ever touched again to flip IsReversed.
	SaveJournalEntry(ctx context.Context, e JournalEntry) error

	// NextEntryNumber allocates the next monotonic number for the month of
	// the given date ("JE-YYYY-MM-NNNN").
	NextEntryNumber(ctx context.Context, date time.Time) (EntryNumber, error)

	// --- General ledger (append-only) ---

	// AppendLedgerEntries appends rows. The ONLY ledger write operation.
	AppendLedgerEntries(ctx context.Context, rows []GeneralLedgerEntry) error

	// LastLedgerEntry returns the most recently appended row for an account.
	// ok is false when the account has no rows yet.
	LastLedgerEntry(ctx context.Context, accountID AccountID) (row GeneralLedgerEntry, ok bool, err error)

	// LedgerEntries returns the account's rows with Date <= upTo, in append
	// order. Zero upTo means no date bound.
	LedgerEntries(ctx context.Context, accountID AccountID, upTo time.Time) ([]GeneralLedgerEntry, error)

	// --- Period closing ---

	// PeriodClosed reports whether a trial balance covering [start, end]
	// was already closed.
	PeriodClosed(ctx context.Context, start, end time.Time) (bool, error)

	// MarkPeriodClosed records that [start, end] has been closed.
	MarkPeriodClosed(ctx context.Context, start, end time.Time, closedAt time.Time) error

	// --- Transactions ---

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back and nothing becomes visible.
	WithTx(ctx context.Context, fn func(LedgerRepository) error) error
}
