// Package store provides LedgerRepository implementations.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/huntred/payroll-engine/ledger"
)

// =============================================================================
// MEMORY REPOSITORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu sync.RWMutex

	accounts  map[ledger.AccountID]ledger.Account
	entries   map[ledger.EntryNumber]ledger.JournalEntry
	rows      map[ledger.AccountID][]ledger.GeneralLedgerEntry
	sequences map[string]int // month prefix -> last allocated seq
	closed    map[string]time.Time
}

func NewMemory() *Memory {
	return &Memory{
		accounts:  make(map[ledger.AccountID]ledger.Account),
		entries:   make(map[ledger.EntryNumber]ledger.JournalEntry),
		rows:      make(map[ledger.AccountID][]ledger.GeneralLedgerEntry),
		sequences: make(map[string]int),
		closed:    make(map[string]time.Time),
	}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (m *Memory) Account(_ context.Context, id ledger.AccountID) (ledger.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accountLocked(id)
}

func (m *Memory) accountLocked(id ledger.AccountID) (ledger.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	return a, nil
}

func (m *Memory) SaveAccount(_ context.Context, a ledger.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = a
	return nil
}

func (m *Memory) Accounts(_ context.Context) ([]ledger.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accountsLocked(), nil
}

func (m *Memory) accountsLocked() []ledger.Account {
	out := make([]ledger.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// =============================================================================
// JOURNAL ENTRIES
// =============================================================================

func (m *Memory) JournalEntry(_ context.Context, number ledger.EntryNumber) (ledger.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[number]
	if !ok {
		return ledger.JournalEntry{}, ledger.ErrEntryNotFound
	}
	return e, nil
}

func (m *Memory) SaveJournalEntry(_ context.Context, e ledger.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Number] = e
	return nil
}

func (m *Memory) NextEntryNumber(_ context.Context, date time.Time) (ledger.EntryNumber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextEntryNumberLocked(date), nil
}

func (m *Memory) nextEntryNumberLocked(date time.Time) ledger.EntryNumber {
	prefix := ledger.MonthPrefix(date)
	m.sequences[prefix]++
	return ledger.FormatEntryNumber(date.Year(), date.Month(), m.sequences[prefix])
}

// =============================================================================
// GENERAL LEDGER (append-only)
// =============================================================================

func (m *Memory) AppendLedgerEntries(_ context.Context, rows []ledger.GeneralLedgerEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range rows {
		m.rows[row.AccountID] = append(m.rows[row.AccountID], row)
	}
	return nil
}

func (m *Memory) LastLedgerEntry(_ context.Context, accountID ledger.AccountID) (ledger.GeneralLedgerEntry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.rows[accountID]
	if len(rows) == 0 {
		return ledger.GeneralLedgerEntry{}, false, nil
	}
	return rows[len(rows)-1], true, nil
}

func (m *Memory) LedgerEntries(_ context.Context, accountID ledger.AccountID, upTo time.Time) ([]ledger.GeneralLedgerEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.GeneralLedgerEntry
	for _, row := range m.rows[accountID] {
		if upTo.IsZero() || !row.Date.After(upTo) {
			out = append(out, row)
		}
	}
	return out, nil
}

// =============================================================================
// PERIOD CLOSING
// =============================================================================

func periodKey(start, end time.Time) string {
	return fmt.Sprintf("%s|%s", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (m *Memory) PeriodClosed(_ context.Context, start, end time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.closed[periodKey(start, end)]
	return ok, nil
}

func (m *Memory) MarkPeriodClosed(_ context.Context, start, end time.Time, closedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed[periodKey(start, end)] = closedAt
	return nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn against a transactional view. For the memory
// repository this is simulated with a snapshot + rollback on error.
func (m *Memory) WithTx(ctx context.Context, fn func(ledger.LedgerRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.snapshot()
	view := &txView{parent: m}

	if err := fn(view); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	accounts  map[ledger.AccountID]ledger.Account
	entries   map[ledger.EntryNumber]ledger.JournalEntry
	rows      map[ledger.AccountID][]ledger.GeneralLedgerEntry
	sequences map[string]int
	closed    map[string]time.Time
}

func (m *Memory) snapshot() memorySnapshot {
	s := memorySnapshot{
		accounts:  make(map[ledger.AccountID]ledger.Account, len(m.accounts)),
		entries:   make(map[ledger.EntryNumber]ledger.JournalEntry, len(m.entries)),
		rows:      make(map[ledger.AccountID][]ledger.GeneralLedgerEntry, len(m.rows)),
		sequences: make(map[string]int, len(m.sequences)),
		closed:    make(map[string]time.Time, len(m.closed)),
	}
	for k, v := range m.accounts {
		s.accounts[k] = v
	}
	for k, v := range m.entries {
		s.entries[k] = v
	}
	for k, v := range m.rows {
		s.rows[k] = append([]ledger.GeneralLedgerEntry(nil), v...)
	}
	for k, v := range m.sequences {
		s.sequences[k] = v
	}
	for k, v := range m.closed {
		s.closed[k] = v
	}
	return s
}

func (m *Memory) restore(s memorySnapshot) {
	m.accounts = s.accounts
	m.entries = s.entries
	m.rows = s.rows
	m.sequences = s.sequences
	m.closed = s.closed
}

// txView routes repository calls back to the parent without re-locking.
// The parent holds its mutex for the duration of WithTx.
type txView struct {
	parent *Memory
}

func (tv *txView) Account(_ context.Context, id ledger.AccountID) (ledger.Account, error) {
	return tv.parent.accountLocked(id)
}

func (tv *txView) SaveAccount(_ context.Context, a ledger.Account) error {
	tv.parent.accounts[a.ID] = a
	return nil
}

func (tv *txView) Accounts(_ context.Context) ([]ledger.Account, error) {
	return tv.parent.accountsLocked(), nil
}

func (tv *txView) JournalEntry(_ context.Context, number ledger.EntryNumber) (ledger.JournalEntry, error) {
	e, ok := tv.parent.entries[number]
	if !ok {
		return ledger.JournalEntry{}, ledger.ErrEntryNotFound
	}
	return e, nil
}

func (tv *txView) SaveJournalEntry(_ context.Context, e ledger.JournalEntry) error {
	tv.parent.entries[e.Number] = e
	return nil
}

func (tv *txView) NextEntryNumber(_ context.Context, date time.Time) (ledger.EntryNumber, error) {
	return tv.parent.nextEntryNumberLocked(date), nil
}

func (tv *txView) AppendLedgerEntries(_ context.Context, rows []ledger.GeneralLedgerEntry) error {
	for _, row := range rows {
		tv.parent.rows[row.AccountID] = append(tv.parent.rows[row.AccountID], row)
	}
	return nil
}

func (tv *txView) LastLedgerEntry(_ context.Context, accountID ledger.AccountID) (ledger.GeneralLedgerEntry, bool, error) {
	rows := tv.parent.rows[accountID]
	if len(rows) == 0 {
		return ledger.GeneralLedgerEntry{}, false, nil
	}
	return rows[len(rows)-1], true, nil
}

func (tv *txView) LedgerEntries(_ context.Context, accountID ledger.AccountID, upTo time.Time) ([]ledger.GeneralLedgerEntry, error) {
	var out []ledger.GeneralLedgerEntry
	for _, row := range tv.parent.rows[accountID] {
		if upTo.IsZero() || !row.Date.After(upTo) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (tv *txView) PeriodClosed(_ context.Context, start, end time.Time) (bool, error) {
	_, ok := tv.parent.closed[periodKey(start, end)]
	return ok, nil
}

func (tv *txView) MarkPeriodClosed(_ context.Context, start, end time.Time, closedAt time.Time) error {
	tv.parent.closed[periodKey(start, end)] = closedAt
	return nil
}

func (tv *txView) WithTx(_ context.Context, fn func(ledger.LedgerRepository) error) error {
	// Already inside the parent's transaction scope.
	return fn(tv)
}
