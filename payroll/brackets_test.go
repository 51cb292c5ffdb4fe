package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntred/payroll-engine/factory"
	"github.com/huntred/payroll-engine/ledger"
	"github.com/huntred/payroll-engine/payroll"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// smallTable is a three-band table with round numbers so expectations are
// easy to verify by hand:
//
//	0.01 - 1000.00     quota 0,   rate 10%
//	1000.01 - 5000.00  quota 100, rate 20%
//	5000.01 -          quota 900, rate 30%
func smallTable() *payroll.TaxBracketTable {
	return &payroll.TaxBracketTable{
		Name:          "test",
		EffectiveFrom: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Brackets: []payroll.TaxBracket{
			{Lower: dec("0.01"), Upper: decPtr("1000.00"), FixedQuota: dec("0"), Rate: dec("0.10")},
			{Lower: dec("1000.01"), Upper: decPtr("5000.00"), FixedQuota: dec("100.00"), Rate: dec("0.20")},
			{Lower: dec("5000.01"), FixedQuota: dec("900.00"), Rate: dec("0.30")},
		},
	}
}

func taxOn(t *testing.T, amount string, table *payroll.TaxBracketTable) string {
	t.Helper()
	tax, err := payroll.ComputeBracketTax(ledger.MustMoney(amount), table)
	require.NoError(t, err)
	return tax.String()
}

// =============================================================================
// COMPUTATION
// =============================================================================

func TestBracketTax_QuotaPlusMarginalRate(t *testing.T) {
	// 2500.00 falls in band 2: 100 + (2500.00 - 1000.01) * 0.20 = 400.00
	assert.Equal(t, "400.00", taxOn(t, "2500.00", smallTable()))
}

func TestBracketTax_MexicoTable_KnownAmount(t *testing.T) {
	// 1000.00 against the 2024 SAT monthly table:
	// quota 14.32 + (1000.00 - 746.05) * 0.064 = 30.5728 -> 30.57
	table := factory.MexicoMonthly2024().ISRMonthly
	assert.Equal(t, "30.57", taxOn(t, "1000.00", table))
}

func TestBracketTax_BelowLowestBracket_Zero(t *testing.T) {
	table := smallTable()
	assert.Equal(t, "0.00", taxOn(t, "0.00", table))
	assert.Equal(t, "0.00", taxOn(t, "-50.00", table))
}

func TestBracketTax_OpenEndedTopBracket(t *testing.T) {
	// 100000.00 well above the last closed band:
	// 900 + (100000.00 - 5000.01) * 0.30 = 29400.00 (minus 0.003 rounding)
	assert.Equal(t, "29400.00", taxOn(t, "100000.00", smallTable()))
}

func TestBracketTax_AboveClosedTopBracket_TopBracketApplies(t *testing.T) {
	// A table whose last band is closed still taxes overflow at the top
	// band instead of failing.
	table := &payroll.TaxBracketTable{
		Name: "closed-top",
		Brackets: []payroll.TaxBracket{
			{Lower: dec("0.01"), Upper: decPtr("1000.00"), FixedQuota: dec("0"), Rate: dec("0.10")},
			{Lower: dec("1000.01"), Upper: decPtr("2000.00"), FixedQuota: dec("100.00"), Rate: dec("0.20")},
		},
	}
	// 100 + (3000.00 - 1000.01) * 0.20 = 500.00 (minus 0.002 rounding)
	assert.Equal(t, "500.00", taxOn(t, "3000.00", table))
}

func TestBracketTax_GapBetweenBrackets_Fatal(t *testing.T) {
	// A hole in the table is a configuration error, never a silent zero.
	gapped := &payroll.TaxBracketTable{
		Name: "gapped",
		Brackets: []payroll.TaxBracket{
			{Lower: dec("0.01"), Upper: decPtr("1000.00"), FixedQuota: dec("0"), Rate: dec("0.10")},
			{Lower: dec("2000.00"), Upper: decPtr("3000.00"), FixedQuota: dec("100.00"), Rate: dec("0.20")},
		},
	}
	_, err := payroll.ComputeBracketTax(ledger.MustMoney("1500.00"), gapped)
	assert.ErrorIs(t, err, payroll.ErrNoBracketForAmount)
	assert.True(t, payroll.IsConfigError(err))
}

func TestBracketTax_NilTable_Fatal(t *testing.T) {
	_, err := payroll.ComputeBracketTax(ledger.MustMoney("100.00"), nil)
	assert.ErrorIs(t, err, payroll.ErrMissingBracketTable)
}

func TestBracketTax_RoundHalfUp_FinalOnly(t *testing.T) {
	// (101.00 - 0.01) * 0.10 = 10.099 -> 10.10 under round-half-up.
	table := &payroll.TaxBracketTable{
		Name: "rounding",
		Brackets: []payroll.TaxBracket{
			{Lower: dec("0.01"), FixedQuota: dec("0"), Rate: dec("0.10")},
		},
	}
	assert.Equal(t, "10.10", taxOn(t, "101.00", table))
}

func TestBracketTax_MonotonicOverMexicoTable(t *testing.T) {
	// tax(a) <= tax(b) whenever a < b, across every bracket boundary.
	table := factory.MexicoMonthly2024().ISRMonthly

	previous := ledger.Zero
	for _, amount := range []string{
		"0.00", "746.04", "746.05", "1000.00", "6332.05", "6332.06",
		"11128.02", "15487.72", "31236.50", "49233.01", "93993.91",
		"125325.21", "375975.61", "375975.62", "500000.00",
	} {
		tax, err := payroll.ComputeBracketTax(ledger.MustMoney(amount), table)
		require.NoError(t, err, "amount %s", amount)
		assert.False(t, tax.LessThan(previous), "tax decreased at %s", amount)
		previous = tax
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestBracketTable_Validate(t *testing.T) {
	assert.NoError(t, smallTable().Validate())

	empty := &payroll.TaxBracketTable{Name: "empty"}
	assert.ErrorIs(t, empty.Validate(), payroll.ErrInvalidBracketTable)

	negativeRate := &payroll.TaxBracketTable{Brackets: []payroll.TaxBracket{
		{Lower: dec("0.01"), FixedQuota: dec("0"), Rate: dec("-0.10")},
	}}
	assert.ErrorIs(t, negativeRate.Validate(), payroll.ErrInvalidBracketTable)

	openInMiddle := &payroll.TaxBracketTable{Brackets: []payroll.TaxBracket{
		{Lower: dec("0.01"), FixedQuota: dec("0"), Rate: dec("0.10")},
		{Lower: dec("1000.01"), Upper: decPtr("2000.00"), FixedQuota: dec("100.00"), Rate: dec("0.20")},
	}}
	assert.ErrorIs(t, openInMiddle.Validate(), payroll.ErrInvalidBracketTable)

	overlapping := &payroll.TaxBracketTable{Brackets: []payroll.TaxBracket{
		{Lower: dec("0.01"), Upper: decPtr("1000.00"), FixedQuota: dec("0"), Rate: dec("0.10")},
		{Lower: dec("999.99"), Upper: decPtr("2000.00"), FixedQuota: dec("100.00"), Rate: dec("0.20")},
	}}
	var tableErr *payroll.BracketTableError
	require.ErrorAs(t, overlapping.Validate(), &tableErr)
	assert.Equal(t, 1, tableErr.Index)
}
