/*
payrun.go - Payroll run computation and its journal entry

PURPOSE:
  Turns a gross taxable amount into the full deduction set and expresses
  the result as a balanced journal entry:

    debit   payroll expense        gross
    credit  income-tax withholding ISR
    credit  <each contribution liability>
    credit  cash / salaries payable  net

  The entry balances by construction: net = gross - sum(deductions), so
  the credits always sum back to the debit. The ledger engine still
  verifies this at posting time.

SEE ALSO:
  - brackets.go, contributions.go: The deduction computations
  - ledger/engine.go: Posts the entry produced here
*/
package payroll

import (
	"fmt"
	"time"

	"github.com/huntred/payroll-engine/ledger"
)

// =============================================================================
// PAYROLL RESULT
// =============================================================================

// PayrollResult is the computed outcome of one employee's payroll run.
type PayrollResult struct {
	EmployeeID   string
	EmployeeName string
	PeriodStart  time.Time
	PeriodEnd    time.Time

	Gross           ledger.Money
	Withholding     ledger.Money // ISR
	Contributions   []ContributionAmount
	TotalDeductions ledger.Money
	Net             ledger.Money
}

// ComputePayroll computes withholding and every configured contribution for
// a gross taxable amount. Deterministic given the same tables and inputs.
func (c *Calculator) ComputePayroll(profile EmployeeProfile, gross ledger.Money, periodStart, periodEnd time.Time) (PayrollResult, error) {
	if gross.IsNegative() {
		return PayrollResult{}, ErrNegativeGross
	}
	if !profile.MonthlySalary.IsPositive() {
		return PayrollResult{}, ErrNonPositiveSalary
	}

	withholding, err := ComputeBracketTax(gross, c.Tables.ISRMonthly)
	if err != nil {
		return PayrollResult{}, err
	}

	result := PayrollResult{
		EmployeeID:   profile.ID,
		EmployeeName: profile.Name,
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		Gross:        gross,
		Withholding:  withholding,
	}

	deductions := withholding
	for _, rule := range c.Tables.Contributions {
		amount := ComputeContribution(gross, rule)
		result.Contributions = append(result.Contributions, ContributionAmount{
			Code:   rule.Code,
			Name:   rule.Name,
			Base:   gross,
			Amount: amount,
		})
		deductions = deductions.Add(amount)
	}

	result.TotalDeductions = deductions
	result.Net = gross.Sub(deductions)
	return result, nil
}

// =============================================================================
// POSTING MAP - Which account each payroll figure lands on
// =============================================================================

// PostingMap names the chart accounts a payroll entry posts against.
// ContributionLiabilities is keyed by ContributionRule.Code; every
// configured rule needs a liability account.
type PostingMap struct {
	PayrollExpense          ledger.AccountID
	Cash                    ledger.AccountID
	TaxWithholding          ledger.AccountID
	ContributionLiabilities map[string]ledger.AccountID
}

// MissingAccountError reports a payroll figure with no account mapped.
type MissingAccountError struct {
	Figure string
}

func (e *MissingAccountError) Error() string {
	return fmt.Sprintf("posting map has no account for %s", e.Figure)
}

// =============================================================================
// JOURNAL ENTRY CONSTRUCTION
// =============================================================================

// BuildJournalEntry expresses a payroll result as a balanced journal entry,
// ready for the ledger engine to post. Zero-amount figures are omitted.
func BuildJournalEntry(result PayrollResult, posting PostingMap, date time.Time) (ledger.JournalEntry, error) {
	if posting.PayrollExpense == "" {
		return ledger.JournalEntry{}, &MissingAccountError{Figure: "payroll expense"}
	}
	if posting.Cash == "" {
		return ledger.JournalEntry{}, &MissingAccountError{Figure: "cash"}
	}

	description := fmt.Sprintf("Payroll %s (%s)", result.EmployeeName, result.PeriodEnd.Format("2006-01"))
	entry := ledger.JournalEntry{
		Date:        date,
		Description: description,
		Type:        ledger.EntryTypeGeneral,
	}

	entry.Lines = append(entry.Lines, ledger.JournalEntryLine{
		AccountID:   posting.PayrollExpense,
		Description: "Gross salary " + result.EmployeeName,
		Debit:       result.Gross,
	})

	if !result.Withholding.IsZero() {
		if posting.TaxWithholding == "" {
			return ledger.JournalEntry{}, &MissingAccountError{Figure: "tax withholding"}
		}
		entry.Lines = append(entry.Lines, ledger.JournalEntryLine{
			AccountID:   posting.TaxWithholding,
			Description: "ISR withholding " + result.EmployeeName,
			Credit:      result.Withholding,
		})
	}

	for _, contribution := range result.Contributions {
		if contribution.Amount.IsZero() {
			continue
		}
		accountID, ok := posting.ContributionLiabilities[contribution.Code]
		if !ok {
			return ledger.JournalEntry{}, &MissingAccountError{Figure: "contribution " + contribution.Code}
		}
		entry.Lines = append(entry.Lines, ledger.JournalEntryLine{
			AccountID:   accountID,
			Description: contribution.Name + " " + result.EmployeeName,
			Credit:      contribution.Amount,
		})
	}

	if !result.Net.IsZero() {
		entry.Lines = append(entry.Lines, ledger.JournalEntryLine{
			AccountID:   posting.Cash,
			Description: "Net pay " + result.EmployeeName,
			Credit:      result.Net,
		})
	}

	return entry, nil
}
