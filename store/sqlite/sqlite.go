/*
Package sqlite provides a SQLite-backed ledger.LedgerRepository.

PURPOSE:
  Production persistence for accounts, journal entries, and the general
  ledger. In production with PostgreSQL the same patterns apply - only
  minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on ledger_entries
  - No DELETE statements on ledger_entries
  - Corrections via reversal entries only

KEY TABLES:
  accounts:        Chart of accounts with cached current balances
  journal_entries: Entry headers (lifecycle flags, derived totals)
  journal_lines:   Entry lines (debit XOR credit per line)
  ledger_entries:  Immutable running-balance rows, UNIQUE(account, seq)
  entry_sequences: Monotonic per-month entry numbering
  closed_periods:  Period-closing idempotency guard

MONEY:
  Stored as exact decimal TEXT, never floats. Parsed back through
  decimal.NewFromString.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  A mutex serializes writes on top of WAL. The ledger engine additionally
  serializes posts per account; the transaction in WithTx makes each post
  atomic.

USAGE:
  st, err := sqlite.New("./data/ledger.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  engine := ledger.NewEngine(st)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - ledger/repository.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/huntred/payroll-engine/ledger"
)

// Store implements ledger.LedgerRepository backed by SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		id              TEXT PRIMARY KEY,
		number          TEXT NOT NULL UNIQUE,
		name            TEXT NOT NULL,
		type            TEXT NOT NULL,
		category        TEXT NOT NULL DEFAULT '',
		parent_id       TEXT NOT NULL DEFAULT '',
		is_detail       INTEGER NOT NULL DEFAULT 0,
		is_active       INTEGER NOT NULL DEFAULT 1,
		opening_balance TEXT NOT NULL DEFAULT '0',
		tax_rate        TEXT,
		level           INTEGER NOT NULL DEFAULT 0,
		current_balance TEXT NOT NULL DEFAULT '0',
		created_at      TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		number            TEXT PRIMARY KEY,
		date              TIMESTAMP NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		type              TEXT NOT NULL DEFAULT 'general',
		total_debits      TEXT NOT NULL DEFAULT '0',
		total_credits     TEXT NOT NULL DEFAULT '0',
		is_posted         INTEGER NOT NULL DEFAULT 0,
		posted_at         TIMESTAMP,
		is_reversed       INTEGER NOT NULL DEFAULT 0,
		reversal_of       TEXT NOT NULL DEFAULT '',
		requires_approval INTEGER NOT NULL DEFAULT 0,
		is_approved       INTEGER NOT NULL DEFAULT 0,
		approved_by       TEXT NOT NULL DEFAULT '',
		created_by        TEXT NOT NULL DEFAULT '',
		created_at        TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_lines (
		id           TEXT PRIMARY KEY,
		entry_number TEXT NOT NULL REFERENCES journal_entries(number),
		line_index   INTEGER NOT NULL,
		account_id   TEXT NOT NULL REFERENCES accounts(id),
		description  TEXT NOT NULL DEFAULT '',
		debit        TEXT NOT NULL DEFAULT '0',
		credit       TEXT NOT NULL DEFAULT '0',
		tax_rate     TEXT,
		tax_amount   TEXT NOT NULL DEFAULT '0'
	);
	CREATE INDEX IF NOT EXISTS idx_journal_lines_entry ON journal_lines(entry_number, line_index);

	-- Append-only. Never UPDATEd or DELETEd.
	CREATE TABLE IF NOT EXISTS ledger_entries (
		id              TEXT PRIMARY KEY,
		account_id      TEXT NOT NULL REFERENCES accounts(id),
		entry_number    TEXT NOT NULL,
		line_id         TEXT NOT NULL,
		date            TIMESTAMP NOT NULL,
		description     TEXT NOT NULL DEFAULT '',
		debit           TEXT NOT NULL DEFAULT '0',
		credit          TEXT NOT NULL DEFAULT '0',
		running_balance TEXT NOT NULL,
		seq             INTEGER NOT NULL,
		created_at      TIMESTAMP NOT NULL,
		UNIQUE(account_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_ledger_entries_account_date ON ledger_entries(account_id, date, seq);

	CREATE TABLE IF NOT EXISTS entry_sequences (
		prefix   TEXT PRIMARY KEY,
		last_seq INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS closed_periods (
		period_start TEXT NOT NULL,
		period_end   TEXT NOT NULL,
		closed_at    TIMESTAMP NOT NULL,
		PRIMARY KEY (period_start, period_end)
	);`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// QUERYER - *sql.DB and *sql.Tx behind one face
// =============================================================================

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface{ Scan(dest ...any) error }

// =============================================================================
// ACCOUNTS
// =============================================================================

const accountColumns = `id, number, name, type, category, parent_id, is_detail,
	is_active, opening_balance, tax_rate, level, current_balance, created_at`

func (s *Store) Account(ctx context.Context, id ledger.AccountID) (ledger.Account, error) {
	return getAccount(ctx, s.db, id)
}

func getAccount(ctx context.Context, q queryer, id ledger.AccountID) (ledger.Account, error) {
	row := q.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, string(id))
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return a, err
}

func scanAccount(row rowScanner) (ledger.Account, error) {
	var (
		a                       ledger.Account
		typ, category, parentID string
		opening, current        string
		taxRate                 sql.NullString
	)
	err := row.Scan(&a.ID, &a.Number, &a.Name, &typ, &category, &parentID, &a.IsDetail,
		&a.IsActive, &opening, &taxRate, &a.Level, &current, &a.CreatedAt)
	if err != nil {
		return ledger.Account{}, err
	}
	a.Type = ledger.AccountType(typ)
	a.Category = ledger.AccountCategory(category)
	a.ParentID = ledger.AccountID(parentID)
	if a.OpeningBalance, err = parseMoney(opening); err != nil {
		return ledger.Account{}, err
	}
	if a.CurrentBalance, err = parseMoney(current); err != nil {
		return ledger.Account{}, err
	}
	if taxRate.Valid {
		rate, err := decimal.NewFromString(taxRate.String)
		if err != nil {
			return ledger.Account{}, err
		}
		a.TaxRate = &rate
	}
	return a, nil
}

func (s *Store) SaveAccount(ctx context.Context, a ledger.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveAccount(ctx, s.db, a)
}

func saveAccount(ctx context.Context, q queryer, a ledger.Account) error {
	var taxRate any
	if a.TaxRate != nil {
		taxRate = a.TaxRate.String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			number = excluded.number, name = excluded.name,
			type = excluded.type, category = excluded.category,
			parent_id = excluded.parent_id, is_detail = excluded.is_detail,
			is_active = excluded.is_active,
			opening_balance = excluded.opening_balance,
			tax_rate = excluded.tax_rate, level = excluded.level,
			current_balance = excluded.current_balance`,
		string(a.ID), a.Number, a.Name, string(a.Type), string(a.Category),
		string(a.ParentID), a.IsDetail, a.IsActive, a.OpeningBalance.Value.String(),
		taxRate, a.Level, a.CurrentBalance.Value.String(), a.CreatedAt)
	return err
}

func (s *Store) Accounts(ctx context.Context) ([]ledger.Account, error) {
	return listAccounts(ctx, s.db)
}

func listAccounts(ctx context.Context, q queryer) ([]ledger.Account, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// =============================================================================
// JOURNAL ENTRIES
// =============================================================================

func (s *Store) JournalEntry(ctx context.Context, number ledger.EntryNumber) (ledger.JournalEntry, error) {
	return getJournalEntry(ctx, s.db, number)
}

func getJournalEntry(ctx context.Context, q queryer, number ledger.EntryNumber) (ledger.JournalEntry, error) {
	row := q.QueryRowContext(ctx, `
		SELECT number, date, description, type, total_debits, total_credits,
		       is_posted, posted_at, is_reversed, reversal_of,
		       requires_approval, is_approved, approved_by, created_by, created_at
		FROM journal_entries WHERE number = ?`, string(number))

	var (
		e                    ledger.JournalEntry
		num, typ, reversalOf string
		debits, credits      string
		postedAt             sql.NullTime
	)
	err := row.Scan(&num, &e.Date, &e.Description, &typ, &debits, &credits,
		&e.IsPosted, &postedAt, &e.IsReversed, &reversalOf,
		&e.RequiresApproval, &e.IsApproved, &e.ApprovedBy, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.JournalEntry{}, ledger.ErrEntryNotFound
	}
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	e.Number = ledger.EntryNumber(num)
	e.Type = ledger.EntryType(typ)
	e.ReversalOf = ledger.EntryNumber(reversalOf)
	if postedAt.Valid {
		t := postedAt.Time
		e.PostedAt = &t
	}
	if e.TotalDebits, err = parseMoney(debits); err != nil {
		return ledger.JournalEntry{}, err
	}
	if e.TotalCredits, err = parseMoney(credits); err != nil {
		return ledger.JournalEntry{}, err
	}

	lineRows, err := q.QueryContext(ctx, `
		SELECT id, account_id, description, debit, credit, tax_rate, tax_amount
		FROM journal_lines WHERE entry_number = ? ORDER BY line_index`, string(number))
	if err != nil {
		return ledger.JournalEntry{}, err
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var (
			l                        ledger.JournalEntryLine
			accountID, debit, credit string
			taxRate                  sql.NullString
			taxAmount                string
		)
		if err := lineRows.Scan(&l.ID, &accountID, &l.Description, &debit, &credit, &taxRate, &taxAmount); err != nil {
			return ledger.JournalEntry{}, err
		}
		l.AccountID = ledger.AccountID(accountID)
		if l.Debit, err = parseMoney(debit); err != nil {
			return ledger.JournalEntry{}, err
		}
		if l.Credit, err = parseMoney(credit); err != nil {
			return ledger.JournalEntry{}, err
		}
		if l.TaxAmount, err = parseMoney(taxAmount); err != nil {
			return ledger.JournalEntry{}, err
		}
		if taxRate.Valid {
			rate, err := decimal.NewFromString(taxRate.String)
			if err != nil {
				return ledger.JournalEntry{}, err
			}
			l.TaxRate = &rate
		}
		e.Lines = append(e.Lines, l)
	}
	return e, lineRows.Err()
}

func (s *Store) SaveJournalEntry(ctx context.Context, e ledger.JournalEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveJournalEntry(ctx, s.db, e)
}

func saveJournalEntry(ctx context.Context, q queryer, e ledger.JournalEntry) error {
	var postedAt any
	if e.PostedAt != nil {
		postedAt = *e.PostedAt
	}
	_, err := q.ExecContext(ctx, `
		INSERT INTO journal_entries (number, date, description, type,
			total_debits, total_credits, is_posted, posted_at, is_reversed,
			reversal_of, requires_approval, is_approved, approved_by,
			created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(number) DO UPDATE SET
			total_debits = excluded.total_debits,
			total_credits = excluded.total_credits,
			is_posted = excluded.is_posted, posted_at = excluded.posted_at,
			is_reversed = excluded.is_reversed`,
		string(e.Number), e.Date, e.Description, string(e.Type),
		e.TotalDebits.Value.String(), e.TotalCredits.Value.String(),
		e.IsPosted, postedAt, e.IsReversed, string(e.ReversalOf),
		e.RequiresApproval, e.IsApproved, e.ApprovedBy, e.CreatedBy, e.CreatedAt)
	if err != nil {
		return err
	}

	// Replacing lines keeps draft re-saves simple. Posted entries only
	// ever update header flags above, so posted lines never change.
	if _, err := q.ExecContext(ctx, `DELETE FROM journal_lines WHERE entry_number = ?`, string(e.Number)); err != nil {
		return err
	}
	for i, l := range e.Lines {
		var taxRate any
		if l.TaxRate != nil {
			taxRate = l.TaxRate.String()
		}
		_, err := q.ExecContext(ctx, `
			INSERT INTO journal_lines (id, entry_number, line_index, account_id,
				description, debit, credit, tax_rate, tax_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, string(e.Number), i, string(l.AccountID), l.Description,
			l.Debit.Value.String(), l.Credit.Value.String(), taxRate,
			l.TaxAmount.Value.String())
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) NextEntryNumber(ctx context.Context, date time.Time) (ledger.EntryNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return nextEntryNumber(ctx, s.db, date)
}

func nextEntryNumber(ctx context.Context, q queryer, date time.Time) (ledger.EntryNumber, error) {
	prefix := ledger.MonthPrefix(date)
	_, err := q.ExecContext(ctx, `
		INSERT INTO entry_sequences (prefix, last_seq) VALUES (?, 1)
		ON CONFLICT(prefix) DO UPDATE SET last_seq = last_seq + 1`, prefix)
	if err != nil {
		return "", err
	}
	var seq int
	if err := q.QueryRowContext(ctx, `SELECT last_seq FROM entry_sequences WHERE prefix = ?`, prefix).Scan(&seq); err != nil {
		return "", err
	}
	return ledger.FormatEntryNumber(date.Year(), date.Month(), seq), nil
}

// =============================================================================
// GENERAL LEDGER (append-only)
// =============================================================================

const ledgerColumns = `id, account_id, entry_number, line_id, date, description,
	debit, credit, running_balance, seq, created_at`

func (s *Store) AppendLedgerEntries(ctx context.Context, rows []ledger.GeneralLedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendLedgerEntries(ctx, s.db, rows)
}

func appendLedgerEntries(ctx context.Context, q queryer, rows []ledger.GeneralLedgerEntry) error {
	for _, row := range rows {
		_, err := q.ExecContext(ctx, `
			INSERT INTO ledger_entries (`+ledgerColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			row.ID, string(row.AccountID), string(row.EntryNumber), row.LineID,
			row.Date, row.Description, row.Debit.Value.String(),
			row.Credit.Value.String(), row.RunningBalance.Value.String(),
			row.Seq, row.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) LastLedgerEntry(ctx context.Context, accountID ledger.AccountID) (ledger.GeneralLedgerEntry, bool, error) {
	return lastLedgerEntry(ctx, s.db, accountID)
}

func lastLedgerEntry(ctx context.Context, q queryer, accountID ledger.AccountID) (ledger.GeneralLedgerEntry, bool, error) {
	row := q.QueryRowContext(ctx, `
		SELECT `+ledgerColumns+` FROM ledger_entries
		WHERE account_id = ? ORDER BY seq DESC LIMIT 1`, string(accountID))
	entry, err := scanLedgerEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.GeneralLedgerEntry{}, false, nil
	}
	if err != nil {
		return ledger.GeneralLedgerEntry{}, false, err
	}
	return entry, true, nil
}

func (s *Store) LedgerEntries(ctx context.Context, accountID ledger.AccountID, upTo time.Time) ([]ledger.GeneralLedgerEntry, error) {
	return listLedgerEntries(ctx, s.db, accountID, upTo)
}

func listLedgerEntries(ctx context.Context, q queryer, accountID ledger.AccountID, upTo time.Time) ([]ledger.GeneralLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM ledger_entries WHERE account_id = ?`
	args := []any{string(accountID)}
	if !upTo.IsZero() {
		query += ` AND date <= ?`
		args = append(args, upTo)
	}
	query += ` ORDER BY seq`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.GeneralLedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func scanLedgerEntry(row rowScanner) (ledger.GeneralLedgerEntry, error) {
	var (
		e                      ledger.GeneralLedgerEntry
		accountID, entryNumber string
		debit, credit, running string
	)
	err := row.Scan(&e.ID, &accountID, &entryNumber, &e.LineID, &e.Date,
		&e.Description, &debit, &credit, &running, &e.Seq, &e.CreatedAt)
	if err != nil {
		return ledger.GeneralLedgerEntry{}, err
	}
	e.AccountID = ledger.AccountID(accountID)
	e.EntryNumber = ledger.EntryNumber(entryNumber)
	if e.Debit, err = parseMoney(debit); err != nil {
		return ledger.GeneralLedgerEntry{}, err
	}
	if e.Credit, err = parseMoney(credit); err != nil {
		return ledger.GeneralLedgerEntry{}, err
	}
	if e.RunningBalance, err = parseMoney(running); err != nil {
		return ledger.GeneralLedgerEntry{}, err
	}
	return e, nil
}

// =============================================================================
// PERIOD CLOSING
// =============================================================================

func (s *Store) PeriodClosed(ctx context.Context, start, end time.Time) (bool, error) {
	return periodClosed(ctx, s.db, start, end)
}

func periodClosed(ctx context.Context, q queryer, start, end time.Time) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM closed_periods WHERE period_start = ? AND period_end = ?`,
		start.Format("2006-01-02"), end.Format("2006-01-02")).Scan(&n)
	return n > 0, err
}

func (s *Store) MarkPeriodClosed(ctx context.Context, start, end, closedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return markPeriodClosed(ctx, s.db, start, end, closedAt)
}

func markPeriodClosed(ctx context.Context, q queryer, start, end, closedAt time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO closed_periods (period_start, period_end, closed_at) VALUES (?, ?, ?)`,
		start.Format("2006-01-02"), end.Format("2006-01-02"), closedAt)
	return err
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx runs fn inside a database transaction, rolling back on error.
func (s *Store) WithTx(ctx context.Context, fn func(ledger.LedgerRepository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&txRepo{q: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// txRepo is the repository view inside an open transaction.
type txRepo struct {
	q *sql.Tx
}

func (t *txRepo) Account(ctx context.Context, id ledger.AccountID) (ledger.Account, error) {
	return getAccount(ctx, t.q, id)
}

func (t *txRepo) SaveAccount(ctx context.Context, a ledger.Account) error {
	return saveAccount(ctx, t.q, a)
}

func (t *txRepo) Accounts(ctx context.Context) ([]ledger.Account, error) {
	return listAccounts(ctx, t.q)
}

func (t *txRepo) JournalEntry(ctx context.Context, number ledger.EntryNumber) (ledger.JournalEntry, error) {
	return getJournalEntry(ctx, t.q, number)
}

func (t *txRepo) SaveJournalEntry(ctx context.Context, e ledger.JournalEntry) error {
	return saveJournalEntry(ctx, t.q, e)
}

func (t *txRepo) NextEntryNumber(ctx context.Context, date time.Time) (ledger.EntryNumber, error) {
	return nextEntryNumber(ctx, t.q, date)
}

func (t *txRepo) AppendLedgerEntries(ctx context.Context, rows []ledger.GeneralLedgerEntry) error {
	return appendLedgerEntries(ctx, t.q, rows)
}

func (t *txRepo) LastLedgerEntry(ctx context.Context, accountID ledger.AccountID) (ledger.GeneralLedgerEntry, bool, error) {
	return lastLedgerEntry(ctx, t.q, accountID)
}

func (t *txRepo) LedgerEntries(ctx context.Context, accountID ledger.AccountID, upTo time.Time) ([]ledger.GeneralLedgerEntry, error) {
	return listLedgerEntries(ctx, t.q, accountID, upTo)
}

func (t *txRepo) PeriodClosed(ctx context.Context, start, end time.Time) (bool, error) {
	return periodClosed(ctx, t.q, start, end)
}

func (t *txRepo) MarkPeriodClosed(ctx context.Context, start, end, closedAt time.Time) error {
	return markPeriodClosed(ctx, t.q, start, end, closedAt)
}

// WithTx inside a transaction stays in the same transaction.
func (t *txRepo) WithTx(_ context.Context, fn func(ledger.LedgerRepository) error) error {
	return fn(t)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseMoney(s string) (ledger.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ledger.Zero, fmt.Errorf("parse money %q: %w", s, err)
	}
	return ledger.MoneyFromDecimal(d), nil
}
