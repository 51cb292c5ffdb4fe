/*
severance.go - Termination pay (finiquito) under labor-law rules

PURPOSE:
  Computes everything owed to an employee on termination: pending salary,
  unused vacation and its bonus, proportional christmas bonus and savings
  fund, withholding, and - depending on the termination cause - statutory
  indemnization. The output is a fully itemized breakdown, not just a
  total, because the finiquito document downstream must show every figure.

COMPUTATION ORDER (matters for reproducibility):
  1. Seniority from hire to termination, calendar-aware
  2. daily_salary = monthly_salary / divisor (conventional 30.4)
  3. Proportional benefits, each a pure function of daily_salary + elapsed time
  4. gross_total, withholding (only income tax applies to severance pay in
     this jurisdiction model - no social-security withholding), net
  5. Indemnization by termination type:
       voluntary    -> none
       involuntary  -> seniority premium + constitutional indemnization
       layoff       -> seniority premium only
  6. total_to_pay = net + indemnization

SENIORITY:
  Calendar-aware date subtraction. The system this replaces divided total
  days by 365, which undercounts across leap years; severance is a legal
  computation, so true calendar arithmetic is used here.

ROUNDING:
  Each named figure in the breakdown is a final figure: computed exactly,
  then rounded half-up to 2 places. Totals are sums of the rounded figures
  so they match what the payslip prints.
*/
package payroll

import (
	"time"

	"github.com/huntred/payroll-engine/ledger"
	"github.com/shopspring/decimal"
)

// =============================================================================
// TERMINATION TYPES
// =============================================================================

type TerminationType string

const (
	TerminationVoluntary   TerminationType = "voluntary"
	TerminationInvoluntary TerminationType = "involuntary"
	TerminationLayoff      TerminationType = "layoff"
)

func (t TerminationType) Valid() bool {
	switch t {
	case TerminationVoluntary, TerminationInvoluntary, TerminationLayoff:
		return true
	}
	return false
}

// =============================================================================
// SENIORITY - Calendar-aware date arithmetic
// =============================================================================

type Seniority struct {
	Years  int
	Months int
	Days   int

	// TotalDays is the raw day count, kept for reporting.
	TotalDays int
}

// SeniorityBetween computes (years, months, days) from hire to termination
// using calendar subtraction with borrowing, not day-division.
func SeniorityBetween(hire, termination time.Time) Seniority {
	years := termination.Year() - hire.Year()
	months := int(termination.Month()) - int(hire.Month())
	days := termination.Day() - hire.Day()

	if days < 0 {
		months--
		// Day 0 of the termination month = last day of the previous month.
		prevMonthEnd := time.Date(termination.Year(), termination.Month(), 0, 0, 0, 0, 0, time.UTC)
		days += prevMonthEnd.Day()
	}
	if months < 0 {
		years--
		months += 12
	}

	return Seniority{
		Years:     years,
		Months:    months,
		Days:      days,
		TotalDays: int(termination.Sub(hire).Hours() / 24),
	}
}

// =============================================================================
// SEVERANCE POLICY
// =============================================================================

// VacationTier maps completed years of service to annual vacation days.
type VacationTier struct {
	MinYears int
	Days     int
}

// SeverancePolicy holds the labor-law constants for severance computation.
type SeverancePolicy struct {
	// VacationTable is ordered ascending by MinYears; the highest tier at or
	// below the employee's seniority applies.
	VacationTable []VacationTier

	// VacationBonusRate is the prima vacacional, e.g. 0.25.
	VacationBonusRate decimal.Decimal

	// ChristmasBonusDays is the aguinaldo entitlement, e.g. 15.
	ChristmasBonusDays int

	// SavingsFundRate is the fondo de ahorro rate over accrued salary;
	// zero disables the item.
	SavingsFundRate decimal.Decimal

	// Indemnization constants.
	SeniorityPremiumDaysPerYear int // e.g. 12
	ConstitutionalBaseDays      int // e.g. 90
	ConstitutionalDaysPerYear   int // e.g. 20

	// DailySalaryDivisor is the conventional monthly-to-daily divisor, 30.4.
	DailySalaryDivisor decimal.Decimal
}

func (p SeverancePolicy) Validate() error {
	if !p.DailySalaryDivisor.IsPositive() {
		return ErrInvalidSeverancePolicy
	}
	if p.VacationBonusRate.IsNegative() || p.SavingsFundRate.IsNegative() {
		return ErrInvalidSeverancePolicy
	}
	if p.ChristmasBonusDays < 0 || p.SeniorityPremiumDaysPerYear < 0 ||
		p.ConstitutionalBaseDays < 0 || p.ConstitutionalDaysPerYear < 0 {
		return ErrInvalidSeverancePolicy
	}
	for i := 1; i < len(p.VacationTable); i++ {
		if p.VacationTable[i].MinYears <= p.VacationTable[i-1].MinYears {
			return ErrInvalidSeverancePolicy
		}
	}
	return nil
}

// VacationDaysFor returns the annual vacation days for completed years of
// service: the highest tier at or below years, zero below the first tier.
func (p SeverancePolicy) VacationDaysFor(years int) int {
	days := 0
	for _, tier := range p.VacationTable {
		if years >= tier.MinYears {
			days = tier.Days
		}
	}
	return days
}

// =============================================================================
// SEVERANCE COMPUTATION
// =============================================================================

// SeveranceInput carries the termination facts. PendingSalaryDays and
// UnusedVacationDays come from the surrounding attendance system.
type SeveranceInput struct {
	Profile            EmployeeProfile
	TerminationDate    time.Time
	Type               TerminationType
	PendingSalaryDays  int
	UnusedVacationDays decimal.Decimal
}

// SeveranceBreakdown itemizes every figure of the finiquito.
type SeveranceBreakdown struct {
	Seniority   Seniority
	DailySalary ledger.Money

	// Settlement items (steps 3-4).
	PendingSalary  ledger.Money
	VacationAmount ledger.Money
	VacationBonus  ledger.Money
	ChristmasBonus ledger.Money
	SavingsFund    ledger.Money
	GrossTotal     ledger.Money
	Withholding    ledger.Money
	NetAmount      ledger.Money

	// Indemnization items (step 5).
	SeniorityPremium   ledger.Money
	ConstitutionalPay  ledger.Money
	IndemnizationTotal ledger.Money

	TotalToPay ledger.Money
}

// ComputeSeverance computes the full severance breakdown.
// Fails for termination before hire, non-positive salary, or an unknown
// termination type.
func (c *Calculator) ComputeSeverance(in SeveranceInput) (SeveranceBreakdown, error) {
	if in.TerminationDate.Before(in.Profile.HireDate) {
		return SeveranceBreakdown{}, ErrTerminationBeforeHire
	}
	if !in.Profile.MonthlySalary.IsPositive() {
		return SeveranceBreakdown{}, ErrNonPositiveSalary
	}
	if !in.Type.Valid() {
		return SeveranceBreakdown{}, ErrUnknownTerminationType
	}

	policy := c.Tables.Severance
	seniority := SeniorityBetween(in.Profile.HireDate, in.TerminationDate)

	// Exact daily salary; every figure below rounds once, at the end.
	daily := in.Profile.MonthlySalary.Value.Div(policy.DailySalaryDivisor)
	elapsedThisYear := decimal.NewFromInt(int64(in.TerminationDate.YearDay()))
	year := decimal.NewFromInt(365)

	b := SeveranceBreakdown{
		Seniority:   seniority,
		DailySalary: ledger.MoneyFromDecimal(daily).Round2(),
	}

	b.PendingSalary = round2(daily.Mul(decimal.NewFromInt(int64(in.PendingSalaryDays))))
	b.VacationAmount = round2(daily.Mul(in.UnusedVacationDays))
	b.VacationBonus = round2(b.VacationAmount.Value.Mul(policy.VacationBonusRate))
	b.ChristmasBonus = round2(daily.
		Mul(decimal.NewFromInt(int64(policy.ChristmasBonusDays))).
		Mul(elapsedThisYear).
		Div(year))
	b.SavingsFund = round2(daily.Mul(elapsedThisYear).Mul(policy.SavingsFundRate))

	b.GrossTotal = b.PendingSalary.
		Add(b.VacationAmount).
		Add(b.VacationBonus).
		Add(b.ChristmasBonus).
		Add(b.SavingsFund)

	// Only withholding tax applies to severance pay; no social-security
	// deduction on termination settlements.
	withholding, err := ComputeBracketTax(b.GrossTotal, c.Tables.ISRMonthly)
	if err != nil {
		return SeveranceBreakdown{}, err
	}
	b.Withholding = withholding
	b.NetAmount = b.GrossTotal.Sub(b.Withholding)

	years := decimal.NewFromInt(int64(seniority.Years))
	switch in.Type {
	case TerminationInvoluntary:
		b.SeniorityPremium = round2(daily.
			Mul(decimal.NewFromInt(int64(policy.SeniorityPremiumDaysPerYear))).
			Mul(years))
		constitutionalDays := decimal.NewFromInt(int64(policy.ConstitutionalBaseDays)).
			Add(decimal.NewFromInt(int64(policy.ConstitutionalDaysPerYear)).Mul(years))
		b.ConstitutionalPay = round2(daily.Mul(constitutionalDays))
	case TerminationLayoff:
		b.SeniorityPremium = round2(daily.
			Mul(decimal.NewFromInt(int64(policy.SeniorityPremiumDaysPerYear))).
			Mul(years))
	case TerminationVoluntary:
		// No indemnization on voluntary separation.
	}
	b.IndemnizationTotal = b.SeniorityPremium.Add(b.ConstitutionalPay)

	b.TotalToPay = b.NetAmount.Add(b.IndemnizationTotal)
	return b, nil
}

func round2(d decimal.Decimal) ledger.Money {
	return ledger.MoneyFromDecimal(d).Round2()
}
