/*
trial.go - Trial balance generation and period closing

PURPOSE:
  A trial balance is a point-in-time snapshot for a period: for every
  active detail account, opening balance, period movement, and ending
  balance, presented in debit/credit columns. Because every posted entry
  balances, the ending columns must sum equal - the snapshot verifies the
  ledger and feeds the balance sheet and income statement.

COLUMN PLACEMENT:
  Balances are shown in the account's natural column (debit for
  asset/expense, credit for liability/equity/revenue). A negative natural
  balance flips to the opposite column, so totals remain comparable.

CLOSING:
  Closing a period emits closing entries that zero every revenue and
  expense account into retained earnings:
    - debit each revenue account for its credit balance,
      credit retained earnings for the sum
    - credit each expense account for its debit balance,
      debit retained earnings for the sum
  Net effect: retained earnings grows by exactly (revenue - expense).
  Closing an already-closed period is rejected, never re-executed. The
  closing entries and the closed-period mark commit in one transaction
  under the affected accounts' locks.

SEE ALSO:
  - engine.go: Closing entries post through the normal engine path
*/
package ledger

import (
	"context"
	"time"
)

// =============================================================================
// TRIAL BALANCE
// =============================================================================

// TrialBalanceEntry is one account's row in the snapshot.
type TrialBalanceEntry struct {
	AccountID     AccountID
	AccountNumber string
	AccountName   string
	Type          AccountType

	OpeningDebit  Money
	OpeningCredit Money
	PeriodDebits  Money
	PeriodCredits Money
	EndingDebit   Money
	EndingCredit  Money
}

// EndingNatural returns the ending balance signed in the account's normal side.
func (e TrialBalanceEntry) EndingNatural() Money {
	if e.Type.NormalSide() == SideDebit {
		return e.EndingDebit.Sub(e.EndingCredit)
	}
	return e.EndingCredit.Sub(e.EndingDebit)
}

type TrialBalance struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Entries     []TrialBalanceEntry

	// Sums of the ending columns across all entries.
	TotalDebits  Money
	TotalCredits Money

	// Net ending balance per account type, signed in the type's normal side.
	// Asset/liability/equity totals feed the balance sheet; revenue/expense
	// feed the income statement.
	TypeTotals map[AccountType]Money

	IsClosed    bool
	GeneratedAt time.Time
}

// IsBalanced reports whether the ending columns sum equal.
func (tb *TrialBalance) IsBalanced() bool {
	return tb.TotalDebits.Equal(tb.TotalCredits)
}

// NetIncome returns revenue minus expense for the period.
func (tb *TrialBalance) NetIncome() Money {
	return tb.TypeTotals[AccountRevenue].Sub(tb.TypeTotals[AccountExpense])
}

// =============================================================================
// GENERATION
// =============================================================================

// GenerateTrialBalance builds the snapshot for (periodStart, periodEnd]:
// opening balance as of periodStart, movement strictly after periodStart up
// to periodEnd, ending balance as of periodEnd. Only posted entries exist in
// the ledger, so only posted entries count.
func (e *LedgerEngine) GenerateTrialBalance(ctx context.Context, periodStart, periodEnd time.Time) (*TrialBalance, error) {
	if periodEnd.Before(periodStart) {
		return nil, ErrInvalidPeriod
	}

	accounts, err := e.repo.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	tb := &TrialBalance{
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		TypeTotals:  make(map[AccountType]Money),
		GeneratedAt: e.now(),
	}
	for _, t := range []AccountType{AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense} {
		tb.TypeTotals[t] = Zero
	}

	for _, acct := range accounts {
		if !acct.IsActive || !acct.IsDetail {
			continue
		}

		rows, err := e.repo.LedgerEntries(ctx, acct.ID, periodEnd)
		if err != nil {
			return nil, err
		}

		opening := acct.OpeningBalance
		periodDebits, periodCredits := Zero, Zero
		ending := acct.OpeningBalance
		for _, row := range rows {
			delta := normalDelta(acct.Type, JournalEntryLine{Debit: row.Debit, Credit: row.Credit})
			ending = ending.Add(delta)
			if row.Date.After(periodStart) {
				periodDebits = periodDebits.Add(row.Debit)
				periodCredits = periodCredits.Add(row.Credit)
			} else {
				opening = opening.Add(delta)
			}
		}

		entry := TrialBalanceEntry{
			AccountID:     acct.ID,
			AccountNumber: acct.Number,
			AccountName:   acct.Name,
			Type:          acct.Type,
			PeriodDebits:  periodDebits,
			PeriodCredits: periodCredits,
		}
		entry.OpeningDebit, entry.OpeningCredit = naturalColumns(acct.Type, opening)
		entry.EndingDebit, entry.EndingCredit = naturalColumns(acct.Type, ending)

		tb.Entries = append(tb.Entries, entry)
		tb.TotalDebits = tb.TotalDebits.Add(entry.EndingDebit)
		tb.TotalCredits = tb.TotalCredits.Add(entry.EndingCredit)
		tb.TypeTotals[acct.Type] = tb.TypeTotals[acct.Type].Add(ending)
	}

	return tb, nil
}

// naturalColumns places a natural-side balance into debit/credit columns.
// Negative naturals flip to the opposite column.
func naturalColumns(t AccountType, natural Money) (debit, credit Money) {
	if natural.IsNegative() {
		if t.NormalSide() == SideDebit {
			return Zero, natural.Abs()
		}
		return natural.Abs(), Zero
	}
	if t.NormalSide() == SideDebit {
		return natural, Zero
	}
	return Zero, natural
}

// =============================================================================
// PERIOD CLOSING
// =============================================================================

// ClosePeriod zeroes revenue and expense accounts into retained earnings.
//
// Preconditions: the trial balance is balanced, the period has not been
// closed before, and the snapshot still matches the ledger (a posting made
// into the period after GenerateTrialBalance fails the close with
// ErrStaleTrialBalance - the caller regenerates and retries). Emits at most
// two closing entries - one for revenue, one for expense - and marks the
// period closed. Entries and the closed-period mark commit in one
// transaction: a failed close leaves no trace, and two concurrent closes
// serialize on the account locks so exactly one wins.
func (e *LedgerEngine) ClosePeriod(ctx context.Context, tb *TrialBalance, retainedEarnings AccountID) ([]JournalEntry, error) {
	if tb.IsClosed {
		return nil, ErrPeriodClosed
	}
	if !tb.IsBalanced() {
		return nil, ErrUnbalancedTrialBalance
	}

	revenueEntry := closingEntry(tb, AccountRevenue, retainedEarnings,
		"Close revenue to retained earnings")
	expenseEntry := closingEntry(tb, AccountExpense, retainedEarnings,
		"Close expenses to retained earnings")

	var entries []*JournalEntry
	for _, entry := range []*JournalEntry{revenueEntry, expenseEntry} {
		if entry == nil {
			continue
		}
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		if !entry.IsBalanced() {
			return nil, &UnbalancedEntryError{
				Debits:  entry.TotalDebits,
				Credits: entry.TotalCredits,
			}
		}
		entries = append(entries, entry)
	}

	// Lock every account the close reads or writes before the closed-period
	// check, so a concurrent post or close cannot slip between the check and
	// the commit.
	unlock := e.locks.lockAll(closingAccounts(tb, retainedEarnings))
	defer unlock()

	var posted []JournalEntry
	err := e.repo.WithTx(ctx, func(r LedgerRepository) error {
		closed, err := r.PeriodClosed(ctx, tb.PeriodStart, tb.PeriodEnd)
		if err != nil {
			return err
		}
		if closed {
			return ErrPeriodClosed
		}

		re, err := r.Account(ctx, retainedEarnings)
		if err != nil {
			return err
		}
		if re.Type != AccountEquity {
			return &ChartError{AccountID: retainedEarnings, Reason: "retained earnings must be an equity account"}
		}

		if err := verifySnapshot(ctx, r, tb); err != nil {
			return err
		}

		for _, entry := range entries {
			if err := e.post(ctx, r, entry); err != nil {
				return err
			}
			posted = append(posted, *entry)
		}
		return r.MarkPeriodClosed(ctx, tb.PeriodStart, tb.PeriodEnd, e.now())
	})
	if err != nil {
		return nil, err
	}
	tb.IsClosed = true
	return posted, nil
}

// closingAccounts lists every account a close touches: all revenue and
// expense accounts in the snapshot (verified against the ledger even when
// their snapshot balance is zero) plus retained earnings.
func closingAccounts(tb *TrialBalance, retainedEarnings AccountID) []AccountID {
	ids := []AccountID{retainedEarnings}
	for _, row := range tb.Entries {
		if row.Type == AccountRevenue || row.Type == AccountExpense {
			ids = append(ids, row.AccountID)
		}
	}
	return ids
}

// verifySnapshot rechecks every revenue/expense row of the snapshot against
// the ledger as of period end. Any drift means postings landed after
// GenerateTrialBalance; closing from the stale snapshot would leave those
// accounts at nonzero balances.
func verifySnapshot(ctx context.Context, r LedgerRepository, tb *TrialBalance) error {
	for _, row := range tb.Entries {
		if row.Type != AccountRevenue && row.Type != AccountExpense {
			continue
		}
		acct, err := r.Account(ctx, row.AccountID)
		if err != nil {
			return err
		}
		ledgerRows, err := r.LedgerEntries(ctx, row.AccountID, tb.PeriodEnd)
		if err != nil {
			return err
		}
		ending := acct.OpeningBalance
		for _, lr := range ledgerRows {
			ending = ending.Add(normalDelta(acct.Type, JournalEntryLine{Debit: lr.Debit, Credit: lr.Credit}))
		}
		if !ending.Equal(row.EndingNatural()) {
			return ErrStaleTrialBalance
		}
	}
	return nil
}

// closingEntry builds the entry that zeroes every account of the given type
// into retained earnings. Returns nil when there is nothing to close.
//
// Revenue accounts hold credit balances, so each is debited for its balance
// and retained earnings is credited for the sum; expenses mirror this. An
// account with a contra (negative natural) balance gets a line on the
// opposite side so the entry still balances exactly.
func closingEntry(tb *TrialBalance, t AccountType, retainedEarnings AccountID, description string) *JournalEntry {
	var lines []JournalEntryLine
	total := Zero // signed in the type's natural side

	for _, row := range tb.Entries {
		if row.Type != t {
			continue
		}
		natural := row.EndingNatural()
		if natural.IsZero() {
			continue
		}
		total = total.Add(natural)

		line := JournalEntryLine{AccountID: row.AccountID, Description: description}
		closeOn := opposite(t.NormalSide())
		if natural.IsNegative() {
			closeOn = t.NormalSide()
		}
		if closeOn == SideDebit {
			line.Debit = natural.Abs()
		} else {
			line.Credit = natural.Abs()
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}

	// Balancing retained-earnings line: revenue closes as a credit to
	// retained earnings, expense as a debit; a negative total flips sides.
	reLine := JournalEntryLine{AccountID: retainedEarnings, Description: description}
	reSide := t.NormalSide()
	if total.IsNegative() {
		reSide = opposite(reSide)
	}
	if reSide == SideCredit {
		reLine.Credit = total.Abs()
	} else {
		reLine.Debit = total.Abs()
	}
	lines = append(lines, reLine)

	return &JournalEntry{
		Date:        tb.PeriodEnd,
		Description: description,
		Type:        EntryTypeClosing,
		Lines:       lines,
	}
}

func opposite(s Side) Side {
	if s == SideDebit {
		return SideCredit
	}
	return SideDebit
}
