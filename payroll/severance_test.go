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

func mexicoCalculator(t *testing.T) *payroll.Calculator {
	t.Helper()
	calc, err := payroll.NewCalculator(factory.MexicoMonthly2024())
	require.NoError(t, err)
	return calc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fourYearEmployee() payroll.EmployeeProfile {
	return payroll.EmployeeProfile{
		ID:            "emp-001",
		Name:          "Maria Lopez",
		HireDate:      date(2020, time.January, 1),
		MonthlySalary: ledger.MustMoney("30000.00"),
	}
}

// =============================================================================
// SENIORITY
// =============================================================================

func TestSeniority_ExactYears(t *testing.T) {
	s := payroll.SeniorityBetween(date(2020, time.January, 1), date(2024, time.January, 1))

	assert.Equal(t, 4, s.Years)
	assert.Equal(t, 0, s.Months)
	assert.Equal(t, 0, s.Days)
	assert.Equal(t, 1461, s.TotalDays) // 2020 was a leap year
}

func TestSeniority_BorrowsAcrossMonthAndYear(t *testing.T) {
	// Day-of-month borrows from February 2024 (29 days), month borrows
	// from the year.
	s := payroll.SeniorityBetween(date(2020, time.March, 15), date(2024, time.March, 10))

	assert.Equal(t, 3, s.Years)
	assert.Equal(t, 11, s.Months)
	assert.Equal(t, 24, s.Days)
}

// =============================================================================
// VACATION TIERS
// =============================================================================

func TestVacationDaysFor_TierBoundaries(t *testing.T) {
	policy := factory.MexicoMonthly2024().Severance

	assert.Equal(t, 0, policy.VacationDaysFor(0))
	assert.Equal(t, 12, policy.VacationDaysFor(1))
	assert.Equal(t, 22, policy.VacationDaysFor(10))
	assert.Equal(t, 24, policy.VacationDaysFor(11))
	assert.Equal(t, 30, policy.VacationDaysFor(30))
}

// =============================================================================
// SEVERANCE BREAKDOWN
// =============================================================================

func TestSeverance_Involuntary_FullBreakdown(t *testing.T) {
	// GIVEN a 4-year employee on 30000/month, dismissed on Jan 1
	calc := mexicoCalculator(t)

	// WHEN severance is computed for an involuntary termination
	b, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         fourYearEmployee(),
		TerminationDate: date(2024, time.January, 1),
		Type:            payroll.TerminationInvoluntary,
	})
	require.NoError(t, err)

	// THEN every figure matches the statutory arithmetic:
	// daily = 30000 / 30.4 = 986.8421...
	assert.Equal(t, "986.84", b.DailySalary.String())

	// Settlement: only the proportional aguinaldo accrues on Jan 1
	// (daily * 15 * 1/365 = 40.5551 -> 40.56).
	assert.Equal(t, "0.00", b.PendingSalary.String())
	assert.Equal(t, "0.00", b.VacationAmount.String())
	assert.Equal(t, "0.00", b.VacationBonus.String())
	assert.Equal(t, "40.56", b.ChristmasBonus.String())
	assert.Equal(t, "0.00", b.SavingsFund.String())
	assert.Equal(t, "40.56", b.GrossTotal.String())
	assert.Equal(t, "0.78", b.Withholding.String())
	assert.Equal(t, "39.78", b.NetAmount.String())

	// Indemnization: 12 days/year premium plus 90 + 20/year constitutional.
	assert.Equal(t, "47368.42", b.SeniorityPremium.String())
	assert.Equal(t, "167763.16", b.ConstitutionalPay.String())
	assert.Equal(t, "215131.58", b.IndemnizationTotal.String())

	assert.Equal(t, "215171.36", b.TotalToPay.String())
}

func TestSeverance_PendingSalaryAndVacation_Itemized(t *testing.T) {
	// GIVEN 5 pending salary days and 6.5 unused vacation days
	calc := mexicoCalculator(t)

	// WHEN
	b, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:            fourYearEmployee(),
		TerminationDate:    date(2024, time.January, 1),
		Type:               payroll.TerminationVoluntary,
		PendingSalaryDays:  5,
		UnusedVacationDays: decimal.RequireFromString("6.5"),
	})
	require.NoError(t, err)

	// THEN each item is daily-salary arithmetic rounded once:
	// pending = 986.8421 * 5 = 4934.21
	// vacation = 986.8421 * 6.5 = 6414.47; bonus = 25% of that = 1603.62
	assert.Equal(t, "4934.21", b.PendingSalary.String())
	assert.Equal(t, "6414.47", b.VacationAmount.String())
	assert.Equal(t, "1603.62", b.VacationBonus.String())
	assert.Equal(t, b.PendingSalary.Add(b.VacationAmount).Add(b.VacationBonus).Add(b.ChristmasBonus).String(),
		b.GrossTotal.String())
}

func TestSeverance_Voluntary_NoIndemnization(t *testing.T) {
	calc := mexicoCalculator(t)

	b, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         fourYearEmployee(),
		TerminationDate: date(2024, time.January, 1),
		Type:            payroll.TerminationVoluntary,
	})
	require.NoError(t, err)

	assert.Equal(t, "0.00", b.SeniorityPremium.String())
	assert.Equal(t, "0.00", b.ConstitutionalPay.String())
	assert.Equal(t, "0.00", b.IndemnizationTotal.String())
	assert.Equal(t, b.NetAmount.String(), b.TotalToPay.String())
}

func TestSeverance_Layoff_PremiumOnly(t *testing.T) {
	calc := mexicoCalculator(t)

	b, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         fourYearEmployee(),
		TerminationDate: date(2024, time.January, 1),
		Type:            payroll.TerminationLayoff,
	})
	require.NoError(t, err)

	assert.Equal(t, "47368.42", b.SeniorityPremium.String())
	assert.Equal(t, "0.00", b.ConstitutionalPay.String())
	assert.Equal(t, "47368.42", b.IndemnizationTotal.String())
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

func TestSeverance_TerminationBeforeHire_Rejected(t *testing.T) {
	calc := mexicoCalculator(t)

	_, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         fourYearEmployee(),
		TerminationDate: date(2019, time.June, 1),
		Type:            payroll.TerminationVoluntary,
	})
	assert.ErrorIs(t, err, payroll.ErrTerminationBeforeHire)
	assert.True(t, payroll.IsClientError(err))
}

func TestSeverance_NonPositiveSalary_Rejected(t *testing.T) {
	calc := mexicoCalculator(t)
	profile := fourYearEmployee()
	profile.MonthlySalary = ledger.Zero

	_, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         profile,
		TerminationDate: date(2024, time.January, 1),
		Type:            payroll.TerminationVoluntary,
	})
	assert.ErrorIs(t, err, payroll.ErrNonPositiveSalary)
}

func TestSeverance_UnknownTerminationType_Rejected(t *testing.T) {
	calc := mexicoCalculator(t)

	_, err := calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:         fourYearEmployee(),
		TerminationDate: date(2024, time.January, 1),
		Type:            payroll.TerminationType("mutual"),
	})
	assert.ErrorIs(t, err, payroll.ErrUnknownTerminationType)
}
