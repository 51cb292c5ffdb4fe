/*
Package ledger provides the double-entry accounting core.

PURPOSE:
  This package contains the chart of accounts, journal entries, and the
  posting engine that keeps every financial transaction balanced. Payroll
  runs, severance payouts, and manual adjustments all flow through the same
  engine: a balanced journal entry is posted, the general ledger is appended,
  and running balances are updated.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: An exact fixed-point monetary amount (never a binary float)
  - Side: Debit or credit, the two columns of double-entry bookkeeping
  - EntryType: Classification of journal entries (general, closing, ...)
  - IDs: Type-safe identifiers for accounts and entries

DESIGN PRINCIPLES:
  1. Immutability: Posted entries are never modified, only reversed
  2. Precision: Uses decimal.Decimal end-to-end; rounding happens at a
     single point (Money.Round2), round-half-up to 2 places
  3. Type Safety: Strong typing for IDs prevents mixing account/entry IDs
  4. Auditability: Every ledger row is traceable to its journal line

USAGE:
  cash := ledger.MustMoney("1000.00")
  entry := ledger.JournalEntry{
      Date:        time.Now(),
      Description: "Payroll 2024-01",
      Type:        ledger.EntryTypeGeneral,
      Lines: []ledger.JournalEntryLine{
          {AccountID: "payroll-expense", Debit: cash},
          {AccountID: "cash", Credit: cash},
      },
  }

SEE ALSO:
  - account.go: Chart of accounts and normal-balance sides
  - entry.go: Journal entries and the balance invariant
  - engine.go: Posting, reversal, and balance queries
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Exact fixed-point monetary amount
// =============================================================================

// Money wraps decimal.Decimal for monetary values. All arithmetic is exact;
// Round2 is the single sanctioned rounding point (round-half-up, 2 places).
type Money struct {
	Value decimal.Decimal
}

var Zero = Money{Value: decimal.Zero}

// NewMoney parses a decimal string ("1234.56"). Returns Zero on parse failure.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Money{Value: d}, nil
}

// MustMoney parses a decimal string and panics on failure.
// For literals in code and tests only.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("ledger: invalid money literal: " + s)
	}
	return Money{Value: d}
}

func MoneyFromDecimal(d decimal.Decimal) Money { return Money{Value: d} }
func MoneyFromInt(n int64) Money               { return Money{Value: decimal.NewFromInt(n)} }

func (m Money) Add(o Money) Money              { return Money{Value: m.Value.Add(o.Value)} }
func (m Money) Sub(o Money) Money              { return Money{Value: m.Value.Sub(o.Value)} }
func (m Money) Mul(s decimal.Decimal) Money    { return Money{Value: m.Value.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money    { return Money{Value: m.Value.Div(s)} }
func (m Money) Neg() Money                     { return Money{Value: m.Value.Neg()} }
func (m Money) Abs() Money                     { return Money{Value: m.Value.Abs()} }
func (m Money) IsZero() bool                   { return m.Value.IsZero() }
func (m Money) IsNegative() bool               { return m.Value.IsNegative() }
func (m Money) IsPositive() bool               { return m.Value.IsPositive() }
func (m Money) Equal(o Money) bool             { return m.Value.Equal(o.Value) }
func (m Money) GreaterThan(o Money) bool       { return m.Value.GreaterThan(o.Value) }
func (m Money) LessThan(o Money) bool          { return m.Value.LessThan(o.Value) }

func (m Money) Min(o Money) Money {
	if m.LessThan(o) {
		return m
	}
	return o
}

func (m Money) Max(o Money) Money {
	if m.GreaterThan(o) {
		return m
	}
	return o
}

// Round2 rounds to 2 decimal places, half away from zero (round-half-up for
// the non-negative amounts this system deals in). The only rounding point.
func (m Money) Round2() Money { return Money{Value: m.Value.Round(2)} }

// HasCentPrecision reports whether the amount has at most 2 decimal places.
func (m Money) HasCentPrecision() bool {
	cents := m.Value.Mul(decimal.NewFromInt(100))
	return cents.Equal(cents.Floor())
}

// String renders with exactly 2 decimal places for display and storage.
func (m Money) String() string { return m.Value.StringFixed(2) }

// =============================================================================
// SIDES - The two columns of double-entry bookkeeping
// =============================================================================

type Side string

const (
	SideDebit  Side = "debit"
	SideCredit Side = "credit"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type AccountID string

// EntryNumber is the human-readable journal entry identifier,
// "JE-YYYY-MM-NNNN", monotonic within its month prefix.
type EntryNumber string

// =============================================================================
// ENTRY TYPES
// =============================================================================

type EntryType string

const (
	EntryTypeGeneral    EntryType = "general"
	EntryTypeSales      EntryType = "sales"
	EntryTypePurchase   EntryType = "purchase"
	EntryTypePayment    EntryType = "payment"
	EntryTypeReceipt    EntryType = "receipt"
	EntryTypeAdjustment EntryType = "adjustment"
	EntryTypeClosing    EntryType = "closing"
	EntryTypeOpening    EntryType = "opening"
	EntryTypeTransfer   EntryType = "transfer"
)
