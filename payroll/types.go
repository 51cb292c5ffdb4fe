/*
Package payroll provides the statutory tax and severance calculation engine.

PURPOSE:
  Given a gross taxable amount and a country's compliance tables, this
  package computes withholding (ISR-style progressive brackets),
  capped contributions (IMSS/INFONAVIT-style), and severance/finiquito
  breakdowns under labor-law rules. A payroll run's result is expressed as
  a balanced journal entry for the ledger engine to post.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeProfile: The already-validated employee record this engine
    receives from the surrounding system
  - Tables: A country's compliance data (brackets, contribution rules,
    severance policy), loaded externally and passed in fresh
  - Calculator: The stateless engine bound to one Tables set

DESIGN PRINCIPLES:
  1. Purity: Every computation is a deterministic function of its inputs
  2. Precision: decimal.Decimal end-to-end; one rounding point per figure
  3. Itemization: Severance returns every intermediate figure by name,
     so the finiquito document downstream is auditable

SEE ALSO:
  - brackets.go: Progressive bracket tax
  - contributions.go: Percentage-of-base rules with floor/cap
  - severance.go: Termination pay under labor-law rules
  - payrun.go: Payroll run -> balanced journal entry
*/
package payroll

import (
	"time"

	"github.com/huntred/payroll-engine/ledger"
)

// =============================================================================
// EMPLOYEE PROFILE
// =============================================================================

// EmployeeProfile is the validated employee record a payroll run operates on.
type EmployeeProfile struct {
	ID            string
	Name          string
	HireDate      time.Time
	MonthlySalary ledger.Money
}

// =============================================================================
// COMPLIANCE TABLES
// =============================================================================

// Tables bundles one country's compliance data for an effective date.
// Loaded by the surrounding system (see factory package) and treated as
// immutable here.
type Tables struct {
	Country       string
	EffectiveFrom time.Time

	// ISRMonthly is the monthly withholding bracket table.
	ISRMonthly *TaxBracketTable

	// Contributions are the capped percentage-of-base deduction rules
	// (IMSS employee quota, savings fund, ...).
	Contributions []ContributionRule

	Severance SeverancePolicy
}

// Validate checks every table in the bundle.
func (t *Tables) Validate() error {
	if t.ISRMonthly == nil {
		return ErrMissingBracketTable
	}
	if err := t.ISRMonthly.Validate(); err != nil {
		return err
	}
	for _, rule := range t.Contributions {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	return t.Severance.Validate()
}

// =============================================================================
// CALCULATOR
// =============================================================================

// Calculator is the stateless payroll-tax engine bound to one Tables set.
type Calculator struct {
	Tables *Tables
}

func NewCalculator(tables *Tables) (*Calculator, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{Tables: tables}, nil
}
