package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntred/payroll-engine/factory"
	"github.com/huntred/payroll-engine/ledger"
	"github.com/huntred/payroll-engine/ledger/store"
	"github.com/huntred/payroll-engine/payroll"
)

// =============================================================================
// PAYROLL COMPUTATION
// =============================================================================

func TestComputePayroll_MexicoTables_KnownFigures(t *testing.T) {
	// GIVEN a 30000/month employee paid their full salary
	calc := mexicoCalculator(t)
	january := date(2024, time.January, 1)

	// WHEN
	result, err := calc.ComputePayroll(fourYearEmployee(), ledger.MustMoney("30000.00"),
		january, date(2024, time.January, 31))
	require.NoError(t, err)

	// THEN withholding lands in the 15487.72 bracket:
	// 1640.18 + (30000 - 15487.72) * 0.2136 = 4740.00
	assert.Equal(t, "4740.00", result.Withholding.String())

	// AND the IMSS employee quota is 2.375% of gross, under the cap
	require.Len(t, result.Contributions, 1)
	assert.Equal(t, "imss_employee", result.Contributions[0].Code)
	assert.Equal(t, "712.50", result.Contributions[0].Amount.String())

	assert.Equal(t, "5452.50", result.TotalDeductions.String())
	assert.Equal(t, "24547.50", result.Net.String())
}

func TestComputePayroll_HighSalary_ContributionCapped(t *testing.T) {
	calc := mexicoCalculator(t)
	profile := fourYearEmployee()
	profile.MonthlySalary = ledger.MustMoney("100000.00")

	result, err := calc.ComputePayroll(profile, ledger.MustMoney("100000.00"),
		date(2024, time.January, 1), date(2024, time.January, 31))
	require.NoError(t, err)

	assert.Equal(t, "1959.71", result.Contributions[0].Amount.String())
}

func TestComputePayroll_NegativeGross_Rejected(t *testing.T) {
	calc := mexicoCalculator(t)

	_, err := calc.ComputePayroll(fourYearEmployee(), ledger.MustMoney("-1.00"),
		date(2024, time.January, 1), date(2024, time.January, 31))
	assert.ErrorIs(t, err, payroll.ErrNegativeGross)
	assert.True(t, payroll.IsClientError(err))
}

func TestComputePayroll_ZeroGross_AllZero(t *testing.T) {
	calc := mexicoCalculator(t)

	result, err := calc.ComputePayroll(fourYearEmployee(), ledger.Zero,
		date(2024, time.January, 1), date(2024, time.January, 31))
	require.NoError(t, err)

	assert.True(t, result.Withholding.IsZero())
	assert.True(t, result.Net.IsZero())
}

// =============================================================================
// JOURNAL ENTRY CONSTRUCTION
// =============================================================================

func TestBuildJournalEntry_BalancedByConstruction(t *testing.T) {
	// GIVEN a computed payroll result
	calc := mexicoCalculator(t)
	end := date(2024, time.January, 31)
	result, err := calc.ComputePayroll(fourYearEmployee(), ledger.MustMoney("30000.00"),
		date(2024, time.January, 1), end)
	require.NoError(t, err)

	// WHEN it is expressed as a journal entry
	entry, err := payroll.BuildJournalEntry(result, factory.DefaultPostingMap(), end)
	require.NoError(t, err)
	entry.CalculateTotals()

	// THEN the entry balances: one gross debit, three credits
	require.Len(t, entry.Lines, 4)
	assert.True(t, entry.IsBalanced())
	assert.Equal(t, "30000.00", entry.TotalDebits.String())

	assert.Equal(t, factory.AccountPayrollExpense, entry.Lines[0].AccountID)
	assert.Equal(t, "30000.00", entry.Lines[0].Debit.String())

	assert.Equal(t, factory.AccountISRWithholding, entry.Lines[1].AccountID)
	assert.Equal(t, "4740.00", entry.Lines[1].Credit.String())

	assert.Equal(t, factory.AccountIMSSPayable, entry.Lines[2].AccountID)
	assert.Equal(t, "712.50", entry.Lines[2].Credit.String())

	assert.Equal(t, factory.AccountSalariesPayable, entry.Lines[3].AccountID)
	assert.Equal(t, "24547.50", entry.Lines[3].Credit.String())

	assert.Contains(t, entry.Description, "Maria Lopez")
	assert.Contains(t, entry.Description, "2024-01")
}

func TestBuildJournalEntry_ZeroFiguresOmitted(t *testing.T) {
	// A zero-withholding, zero-contribution result produces just
	// expense-against-net.
	result := payroll.PayrollResult{
		EmployeeName: "Maria Lopez",
		PeriodEnd:    date(2024, time.January, 31),
		Gross:        ledger.MustMoney("100.00"),
		Net:          ledger.MustMoney("100.00"),
	}

	entry, err := payroll.BuildJournalEntry(result, factory.DefaultPostingMap(), result.PeriodEnd)
	require.NoError(t, err)

	require.Len(t, entry.Lines, 2)
	assert.Equal(t, factory.AccountPayrollExpense, entry.Lines[0].AccountID)
	assert.Equal(t, factory.AccountSalariesPayable, entry.Lines[1].AccountID)
}

func TestBuildJournalEntry_UnmappedContribution_Rejected(t *testing.T) {
	result := payroll.PayrollResult{
		EmployeeName: "Maria Lopez",
		PeriodEnd:    date(2024, time.January, 31),
		Gross:        ledger.MustMoney("1000.00"),
		Contributions: []payroll.ContributionAmount{
			{Code: "infonavit", Name: "INFONAVIT", Amount: ledger.MustMoney("50.00")},
		},
		Net: ledger.MustMoney("950.00"),
	}

	_, err := payroll.BuildJournalEntry(result, factory.DefaultPostingMap(), result.PeriodEnd)
	var missing *payroll.MissingAccountError
	require.ErrorAs(t, err, &missing)
	assert.Contains(t, missing.Figure, "infonavit")
}

func TestBuildJournalEntry_MissingExpenseAccount_Rejected(t *testing.T) {
	result := payroll.PayrollResult{Gross: ledger.MustMoney("1000.00")}

	_, err := payroll.BuildJournalEntry(result, payroll.PostingMap{Cash: factory.AccountCash}, date(2024, time.January, 31))
	var missing *payroll.MissingAccountError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "payroll expense", missing.Figure)
}

// =============================================================================
// END TO END - Payroll run posted through the ledger engine
// =============================================================================

func TestPayrollRun_PostedEntry_UpdatesAccountBalances(t *testing.T) {
	// GIVEN the default chart in a fresh store
	ctx := context.Background()
	repo := store.NewMemory()
	chart, err := factory.DefaultChart()
	require.NoError(t, err)
	for _, a := range chart.Accounts {
		require.NoError(t, repo.SaveAccount(ctx, *a))
	}
	engine := ledger.NewEngine(repo)
	calc := mexicoCalculator(t)
	end := date(2024, time.January, 31)

	// WHEN a payroll run is computed and posted
	result, err := calc.ComputePayroll(fourYearEmployee(), ledger.MustMoney("30000.00"),
		date(2024, time.January, 1), end)
	require.NoError(t, err)
	entry, err := payroll.BuildJournalEntry(result, factory.DefaultPostingMap(), end)
	require.NoError(t, err)
	posted, err := engine.PostJournalEntry(ctx, entry)
	require.NoError(t, err)
	assert.True(t, posted.IsPosted)

	// THEN every posting target carries its figure as a natural balance
	balance := func(id ledger.AccountID) string {
		b, err := engine.AccountBalance(ctx, id, time.Time{})
		require.NoError(t, err)
		return b.String()
	}
	assert.Equal(t, "30000.00", balance(factory.AccountPayrollExpense))
	assert.Equal(t, "4740.00", balance(factory.AccountISRWithholding))
	assert.Equal(t, "712.50", balance(factory.AccountIMSSPayable))
	assert.Equal(t, "24547.50", balance(factory.AccountSalariesPayable))
}
