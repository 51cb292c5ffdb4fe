/*
contributions.go - Capped percentage-of-base contributions

PURPOSE:
  IMSS/INFONAVIT-style deduction items: a percentage of a base amount,
  clamped to an optional [floor, cap]. The cap frequently applies - e.g.
  IMSS employee quotas are capped at a multiple of the statutory minimum
  unit, so high salaries all contribute the same peso amount.

  Pure, deterministic functions of their inputs. Rounded once, at the end.
*/
package payroll

import (
	"github.com/huntred/payroll-engine/ledger"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTRIBUTION RULE
// =============================================================================

// ContributionRule is a percentage-of-base rule with optional bounds.
type ContributionRule struct {
	Code  string // stable identifier, e.g. "imss_employee"
	Name  string
	Rate  decimal.Decimal
	Floor *ledger.Money // nil = no floor
	Cap   *ledger.Money // nil = no cap
}

func (r ContributionRule) Validate() error {
	if r.Code == "" {
		return ErrInvalidContributionRule
	}
	if r.Rate.IsNegative() {
		return ErrInvalidContributionRule
	}
	if r.Floor != nil && r.Cap != nil && r.Floor.GreaterThan(*r.Cap) {
		return ErrInvalidContributionRule
	}
	return nil
}

// =============================================================================
// COMPUTATION
// =============================================================================

// ComputeContribution applies the rule to a base amount:
// base * rate, clamped to [floor, cap] where configured, rounded to cents.
func ComputeContribution(base ledger.Money, rule ContributionRule) ledger.Money {
	amount := base.Mul(rule.Rate)
	if rule.Cap != nil {
		amount = amount.Min(*rule.Cap)
	}
	if rule.Floor != nil {
		amount = amount.Max(*rule.Floor)
	}
	return amount.Round2()
}

// ContributionAmount is one computed deduction item in a payroll result.
type ContributionAmount struct {
	Code   string
	Name   string
	Base   ledger.Money
	Amount ledger.Money
}
