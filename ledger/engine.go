/*
engine.go - Posting, reversal, and balance queries

PURPOSE:
  LedgerEngine is the stateless behavior layer over plain account/entry
  records and an injected LedgerRepository. It enforces the double-entry
  invariant at the posting boundary and maintains the running-balance
  projection.

CRITICAL INVARIANTS:
  1. BALANCED: An entry with debits != credits never reaches posted state
  2. ATOMIC: All lines post and all balances update, or none do
  3. APPEND-ONLY: Posted entries are immutable; undo = reversal entry
  4. SERIALIZED PER ACCOUNT: At most one in-flight balance-mutating post per
     account; posts to disjoint accounts proceed in parallel

CONCURRENCY:
  Running-balance computation is a read-then-append sequence vulnerable to
  lost updates. The engine takes a per-account lock for every account an
  entry touches, acquiring locks in sorted ID order so concurrent posts
  that share accounts cannot deadlock.

REVERSAL:
  The only sanctioned undo. A reversal is a new entry dated now with every
  line's debit/credit swapped; the original is marked reversed and both
  remain in the ledger. Net effect is a correction with full history.

SEE ALSO:
  - trial.go: Trial balance generation and period closing
  - repository.go: The persistence contract this engine drives
*/
package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// LEDGER ENGINE
// =============================================================================

type LedgerEngine struct {
	repo  LedgerRepository
	locks accountLocks

	// Injectable clock for deterministic tests.
	now func() time.Time
}

func NewEngine(repo LedgerRepository) *LedgerEngine {
	return &LedgerEngine{
		repo:  repo,
		locks: accountLocks{m: make(map[AccountID]*sync.Mutex)},
		now:   time.Now,
	}
}

// =============================================================================
// POSTING
// =============================================================================

// PostJournalEntry validates and posts an entry, appending one general
// ledger row per line and updating each account's cached balance.
//
// Failure modes:
//   - ErrNoLines / LineError:       malformed draft
//   - ErrAlreadyPosted:             re-posting
//   - ErrApprovalRequired:          approval-required entry not approved
//   - UnbalancedEntryError:         debits != credits (exact decimal equality)
//   - ErrSummaryAccountPosting:     line targets a non-detail account
//   - BackdatedEntryError:          entry dated before an account's last row
//
// Side effects are transactional: a failed post leaves no trace.
func (e *LedgerEngine) PostJournalEntry(ctx context.Context, entry JournalEntry) (JournalEntry, error) {
	if err := entry.Validate(); err != nil {
		return JournalEntry{}, err
	}
	if entry.IsPosted {
		return JournalEntry{}, ErrAlreadyPosted
	}
	if entry.RequiresApproval && !entry.IsApproved {
		return JournalEntry{}, ErrApprovalRequired
	}
	if !entry.IsBalanced() {
		return JournalEntry{}, &UnbalancedEntryError{
			Entry:   entry.Number,
			Debits:  entry.TotalDebits,
			Credits: entry.TotalCredits,
		}
	}

	unlock := e.locks.lockAll(entryAccounts(entry))
	defer unlock()

	err := e.repo.WithTx(ctx, func(r LedgerRepository) error {
		return e.post(ctx, r, &entry)
	})
	if err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// post performs the balance-mutating work. Callers hold the account locks
// and a repository transaction.
func (e *LedgerEngine) post(ctx context.Context, r LedgerRepository, entry *JournalEntry) error {
	// Resolve and vet every target account before writing anything.
	accounts := make(map[AccountID]Account)
	for _, l := range entry.Lines {
		if _, ok := accounts[l.AccountID]; ok {
			continue
		}
		acct, err := r.Account(ctx, l.AccountID)
		if err != nil {
			return err
		}
		if !acct.IsDetail {
			return ErrSummaryAccountPosting
		}
		if !acct.IsActive {
			return ErrInactiveAccount
		}
		accounts[l.AccountID] = acct
	}

	if entry.Number == "" {
		number, err := r.NextEntryNumber(ctx, entry.Date)
		if err != nil {
			return err
		}
		entry.Number = number
	}

	now := e.now()
	entry.IsPosted = true
	entry.PostedAt = &now
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	for i := range entry.Lines {
		if entry.Lines[i].ID == "" {
			entry.Lines[i].ID = uuid.NewString()
		}
	}
	if err := r.SaveJournalEntry(ctx, *entry); err != nil {
		return err
	}

	// Append one ledger row per line, threading the running balance through
	// repeated hits on the same account within this entry.
	type cursor struct {
		balance Money
		seq     int64
	}
	cursors := make(map[AccountID]*cursor)
	rows := make([]GeneralLedgerEntry, 0, len(entry.Lines))

	for _, l := range entry.Lines {
		cur, ok := cursors[l.AccountID]
		if !ok {
			last, found, err := r.LastLedgerEntry(ctx, l.AccountID)
			if err != nil {
				return err
			}
			cur = &cursor{balance: accounts[l.AccountID].OpeningBalance}
			if found {
				// Rows must stay date-ordered per account, or the running
				// balance stops agreeing with as-of balance queries.
				if entry.Date.Before(last.Date) {
					return &BackdatedEntryError{
						AccountID: l.AccountID,
						EntryDate: entry.Date,
						LastDate:  last.Date,
					}
				}
				cur.balance = last.RunningBalance
				cur.seq = last.Seq
			}
			cursors[l.AccountID] = cur
		}

		cur.balance = cur.balance.Add(normalDelta(accounts[l.AccountID].Type, l))
		cur.seq++

		rows = append(rows, GeneralLedgerEntry{
			ID:             NewLedgerEntryID(),
			AccountID:      l.AccountID,
			EntryNumber:    entry.Number,
			LineID:         l.ID,
			Date:           entry.Date,
			Description:    l.Description,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: cur.balance,
			Seq:            cur.seq,
			CreatedAt:      now,
		})
	}

	if err := r.AppendLedgerEntries(ctx, rows); err != nil {
		return err
	}

	// Refresh the cached projection on each touched account.
	for id, cur := range cursors {
		acct := accounts[id]
		acct.CurrentBalance = cur.balance
		if err := r.SaveAccount(ctx, acct); err != nil {
			return err
		}
	}
	return nil
}

// normalDelta signs a line's movement by the account's normal side:
// asset/expense accounts grow with debits, the rest with credits.
func normalDelta(t AccountType, l JournalEntryLine) Money {
	if t.NormalSide() == SideDebit {
		return l.Debit.Sub(l.Credit)
	}
	return l.Credit.Sub(l.Debit)
}

func entryAccounts(entry JournalEntry) []AccountID {
	seen := make(map[AccountID]bool, len(entry.Lines))
	var ids []AccountID
	for _, l := range entry.Lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}
	return ids
}

// =============================================================================
// REVERSAL
// =============================================================================

// ReverseJournalEntry posts a mirror entry (debits and credits swapped),
// dated now, and marks the original reversed. Returns the posted reversal.
func (e *LedgerEngine) ReverseJournalEntry(ctx context.Context, number EntryNumber, reason string) (JournalEntry, error) {
	original, err := e.repo.JournalEntry(ctx, number)
	if err != nil {
		return JournalEntry{}, err
	}
	if !original.IsPosted {
		return JournalEntry{}, ErrNotPosted
	}
	if original.IsReversed {
		return JournalEntry{}, ErrAlreadyReversed
	}

	description := "Reversal of " + string(number)
	if reason != "" {
		description += ": " + reason
	}
	reversal := JournalEntry{
		Date:        e.now(),
		Description: description,
		Type:        EntryTypeAdjustment,
		ReversalOf:  number,
		CreatedBy:   original.CreatedBy,
	}
	for _, l := range original.Lines {
		reversal.Lines = append(reversal.Lines, JournalEntryLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Credit,
			Credit:      l.Debit,
		})
	}

	unlock := e.locks.lockAll(entryAccounts(reversal))
	defer unlock()

	err = e.repo.WithTx(ctx, func(r LedgerRepository) error {
		if err := e.post(ctx, r, &reversal); err != nil {
			return err
		}
		original.IsReversed = true
		return r.SaveJournalEntry(ctx, original)
	})
	if err != nil {
		return JournalEntry{}, err
	}
	return reversal, nil
}

// =============================================================================
// BALANCE QUERIES
// =============================================================================

// AccountBalance computes the account's balance from posted ledger rows with
// Date <= asOf: opening balance plus debits minus credits for debit-normal
// accounts, roles swapped for credit-normal accounts.
//
// Consistency invariant: the result equals the running balance of the last
// ledger row at or before asOf. Posting rejects backdated entries
// (BackdatedEntryError), so rows are date-ordered per account.
func (e *LedgerEngine) AccountBalance(ctx context.Context, accountID AccountID, asOf time.Time) (Money, error) {
	acct, err := e.repo.Account(ctx, accountID)
	if err != nil {
		return Zero, err
	}
	rows, err := e.repo.LedgerEntries(ctx, accountID, asOf)
	if err != nil {
		return Zero, err
	}

	balance := acct.OpeningBalance
	for _, row := range rows {
		balance = balance.Add(normalDelta(acct.Type, JournalEntryLine{Debit: row.Debit, Credit: row.Credit}))
	}
	return balance, nil
}

// Ledger returns the account's general ledger rows with Date <= upTo, in
// append order, for report rendering.
func (e *LedgerEngine) Ledger(ctx context.Context, accountID AccountID, upTo time.Time) ([]GeneralLedgerEntry, error) {
	if _, err := e.repo.Account(ctx, accountID); err != nil {
		return nil, err
	}
	return e.repo.LedgerEntries(ctx, accountID, upTo)
}

// =============================================================================
// PER-ACCOUNT LOCKS
// =============================================================================

// accountLocks hands out one mutex per account ID. lockAll acquires in
// sorted order so overlapping entries cannot deadlock each other.
type accountLocks struct {
	mu sync.Mutex
	m  map[AccountID]*sync.Mutex
}

func (al *accountLocks) get(id AccountID) *sync.Mutex {
	al.mu.Lock()
	defer al.mu.Unlock()
	l, ok := al.m[id]
	if !ok {
		l = &sync.Mutex{}
		al.m[id] = l
	}
	return l
}

func (al *accountLocks) lockAll(ids []AccountID) (unlock func()) {
	sorted := append([]AccountID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	locked := make([]*sync.Mutex, 0, len(sorted))
	for _, id := range sorted {
		l := al.get(id)
		l.Lock()
		locked = append(locked, l)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}
