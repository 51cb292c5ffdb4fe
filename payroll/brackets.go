/*
brackets.go - Progressive bracket tax

PURPOSE:
  Computes ISR-style withholding over an ordered, non-overlapping bracket
  table: find the bracket containing the taxable amount, then

      tax = bracket.fixed_quota + (amount - bracket.lower) * bracket.rate

EDGE CASES:
  - Amount below the lowest bracket (zero, negative): tax is zero, no error
  - Amount above the highest bracket's upper bound: the highest bracket
    applies (tables should ship with an open-ended top bracket)
  - Amount in a gap between brackets: ErrNoBracketForAmount - a fatal
    configuration error, never a silent zero

NUMERIC SEMANTICS:
  All arithmetic in exact decimal. Round-half-up to 2 places at the final
  result only, never intermediate steps.

PROPERTIES (tested):
  - Monotonic: a < b implies tax(a) <= tax(b)
  - tax(0) == 0
*/
package payroll

import (
	"time"

	"github.com/huntred/payroll-engine/ledger"
	"github.com/shopspring/decimal"
)

// =============================================================================
// BRACKET TABLE
// =============================================================================

// TaxBracket is one band of a progressive table. An open-ended top bracket
// has Upper == nil.
type TaxBracket struct {
	Lower      decimal.Decimal
	Upper      *decimal.Decimal
	FixedQuota decimal.Decimal
	Rate       decimal.Decimal
}

func (b TaxBracket) contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Lower) {
		return false
	}
	return b.Upper == nil || amount.LessThanOrEqual(*b.Upper)
}

// TaxBracketTable is an ordered sequence of brackets over a taxable base,
// immutable once loaded for a given effective date.
type TaxBracketTable struct {
	Name          string
	EffectiveFrom time.Time
	Brackets      []TaxBracket
}

// Validate checks ordering and non-overlap. Brackets must be sorted
// ascending by Lower, each closed bracket must end before the next begins,
// and only the last bracket may be open-ended.
func (t *TaxBracketTable) Validate() error {
	if len(t.Brackets) == 0 {
		return &BracketTableError{Index: 0, Reason: "table has no brackets"}
	}
	for i, b := range t.Brackets {
		if b.Rate.IsNegative() {
			return &BracketTableError{Index: i, Reason: "negative rate"}
		}
		if b.FixedQuota.IsNegative() {
			return &BracketTableError{Index: i, Reason: "negative fixed quota"}
		}
		if b.Upper != nil && b.Upper.LessThan(b.Lower) {
			return &BracketTableError{Index: i, Reason: "upper bound below lower bound"}
		}
		if b.Upper == nil && i != len(t.Brackets)-1 {
			return &BracketTableError{Index: i, Reason: "open-ended bracket before end of table"}
		}
		if i == 0 {
			continue
		}
		prev := t.Brackets[i-1]
		if !b.Lower.GreaterThan(*prev.Upper) {
			return &BracketTableError{Index: i, Reason: "overlaps previous bracket"}
		}
	}
	return nil
}

// =============================================================================
// COMPUTATION
// =============================================================================

// ComputeBracketTax computes the progressive tax on a taxable amount.
// See the file header for edge-case and rounding semantics.
func ComputeBracketTax(taxable ledger.Money, table *TaxBracketTable) (ledger.Money, error) {
	if table == nil || len(table.Brackets) == 0 {
		return ledger.Zero, ErrMissingBracketTable
	}

	amount := taxable.Value
	if amount.LessThan(table.Brackets[0].Lower) {
		return ledger.Zero, nil
	}

	bracket, ok := findBracket(table, amount)
	if !ok {
		return ledger.Zero, ErrNoBracketForAmount
	}

	tax := bracket.FixedQuota.Add(amount.Sub(bracket.Lower).Mul(bracket.Rate))
	return ledger.MoneyFromDecimal(tax).Round2(), nil
}

func findBracket(table *TaxBracketTable, amount decimal.Decimal) (TaxBracket, bool) {
	last := table.Brackets[len(table.Brackets)-1]
	// Above the table: the highest bracket applies.
	if last.Upper != nil && amount.GreaterThan(*last.Upper) {
		return last, true
	}
	for _, b := range table.Brackets {
		if b.contains(amount) {
			return b, true
		}
	}
	return TaxBracket{}, false
}
