package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntred/payroll-engine/factory"
	"github.com/huntred/payroll-engine/ledger"
)

func TestDefaultChart_ValidatesAndAssignsLevels(t *testing.T) {
	chart, err := factory.DefaultChart()
	require.NoError(t, err)

	// Summary roots at level 0, their detail accounts at level 1.
	assets, ok := chart.Accounts["assets"]
	require.True(t, ok)
	assert.Equal(t, 0, assets.Level)
	assert.False(t, assets.IsDetail)

	cash, ok := chart.Accounts[factory.AccountCash]
	require.True(t, ok)
	assert.Equal(t, 1, cash.Level)
	assert.True(t, cash.IsDetail)
	assert.True(t, cash.IsActive)
}

func TestDefaultChart_PayrollPostingTargetsPresent(t *testing.T) {
	chart, err := factory.DefaultChart()
	require.NoError(t, err)

	for _, id := range []ledger.AccountID{
		factory.AccountPayrollExpense,
		factory.AccountISRWithholding,
		factory.AccountIMSSPayable,
		factory.AccountSalariesPayable,
		factory.AccountRetainedEarnings,
	} {
		account, ok := chart.Accounts[id]
		require.True(t, ok, "missing %s", id)
		assert.True(t, account.IsDetail, "%s must accept postings", id)
	}

	// Retained earnings must be equity for period closing.
	assert.Equal(t, ledger.AccountEquity, chart.Accounts[factory.AccountRetainedEarnings].Type)
}

func TestDefaultPostingMap_CoversEveryPresetContribution(t *testing.T) {
	posting := factory.DefaultPostingMap()
	tables := factory.MexicoMonthly2024()

	assert.NotEmpty(t, posting.PayrollExpense)
	assert.NotEmpty(t, posting.Cash)
	assert.NotEmpty(t, posting.TaxWithholding)
	for _, rule := range tables.Contributions {
		_, ok := posting.ContributionLiabilities[rule.Code]
		assert.True(t, ok, "no liability account for %s", rule.Code)
	}
}
