/*
chart.go - Default chart of accounts

PURPOSE:
  Builds the standard chart a fresh installation starts from: summary
  accounts per type with the detail accounts payroll posting needs (cash,
  payroll expense, withholding and contribution liabilities, retained
  earnings). Numbers follow the conventional 1xxx assets / 2xxx
  liabilities / 3xxx equity / 4xxx revenue / 5xxx expenses layout.

  The chart is validated before it is returned, so callers can rely on
  levels being assigned and the tree being acyclic.
*/
package factory

import (
	"time"

	"github.com/huntred/payroll-engine/ledger"
	"github.com/huntred/payroll-engine/payroll"
)

// Well-known account IDs used by the default posting map.
const (
	AccountCash             = ledger.AccountID("cash")
	AccountPayrollExpense   = ledger.AccountID("payroll-expense")
	AccountISRWithholding   = ledger.AccountID("isr-withholding")
	AccountIMSSPayable      = ledger.AccountID("imss-payable")
	AccountSalariesPayable  = ledger.AccountID("salaries-payable")
	AccountRetainedEarnings = ledger.AccountID("retained-earnings")
	AccountServiceRevenue   = ledger.AccountID("service-revenue")
)

// DefaultChart builds and validates the standard chart of accounts.
func DefaultChart() (*ledger.ChartOfAccounts, error) {
	chart := ledger.NewChart("default", "Standard chart of accounts")
	now := time.Now()

	accounts := []*ledger.Account{
		// Assets
		{ID: "assets", Number: "1000", Name: "Assets", Type: ledger.AccountAsset, Category: ledger.CategoryCurrentAsset},
		{ID: AccountCash, Number: "1100", Name: "Cash and banks", Type: ledger.AccountAsset, Category: ledger.CategoryCurrentAsset, ParentID: "assets", IsDetail: true},
		{ID: "accounts-receivable", Number: "1200", Name: "Accounts receivable", Type: ledger.AccountAsset, Category: ledger.CategoryCurrentAsset, ParentID: "assets", IsDetail: true},

		// Liabilities
		{ID: "liabilities", Number: "2000", Name: "Liabilities", Type: ledger.AccountLiability, Category: ledger.CategoryCurrentLiability},
		{ID: AccountISRWithholding, Number: "2100", Name: "ISR withholding payable", Type: ledger.AccountLiability, Category: ledger.CategoryCurrentLiability, ParentID: "liabilities", IsDetail: true},
		{ID: AccountIMSSPayable, Number: "2200", Name: "IMSS contributions payable", Type: ledger.AccountLiability, Category: ledger.CategoryCurrentLiability, ParentID: "liabilities", IsDetail: true},
		{ID: AccountSalariesPayable, Number: "2300", Name: "Salaries payable", Type: ledger.AccountLiability, Category: ledger.CategoryCurrentLiability, ParentID: "liabilities", IsDetail: true},

		// Equity
		{ID: "equity", Number: "3000", Name: "Equity", Type: ledger.AccountEquity, Category: ledger.CategoryCapital},
		{ID: AccountRetainedEarnings, Number: "3100", Name: "Retained earnings", Type: ledger.AccountEquity, Category: ledger.CategoryCapital, ParentID: "equity", IsDetail: true},

		// Revenue
		{ID: "revenue", Number: "4000", Name: "Revenue", Type: ledger.AccountRevenue, Category: ledger.CategoryOperatingRevenue},
		{ID: AccountServiceRevenue, Number: "4100", Name: "Service revenue", Type: ledger.AccountRevenue, Category: ledger.CategoryOperatingRevenue, ParentID: "revenue", IsDetail: true},

		// Expenses
		{ID: "expenses", Number: "5000", Name: "Expenses", Type: ledger.AccountExpense, Category: ledger.CategoryOperatingExpense},
		{ID: AccountPayrollExpense, Number: "5100", Name: "Payroll expense", Type: ledger.AccountExpense, Category: ledger.CategoryPayrollExpense, ParentID: "expenses", IsDetail: true},
		{ID: "benefits-expense", Number: "5200", Name: "Benefits expense", Type: ledger.AccountExpense, Category: ledger.CategoryPayrollExpense, ParentID: "expenses", IsDetail: true},
	}

	for _, a := range accounts {
		a.IsActive = true
		a.OpeningBalance = ledger.Zero
		a.CurrentBalance = ledger.Zero
		a.CreatedAt = now
		if err := chart.Add(a); err != nil {
			return nil, err
		}
	}
	if err := chart.Validate(); err != nil {
		return nil, err
	}
	return chart, nil
}

// DefaultPostingMap maps the default chart onto payroll posting targets.
// Net pay is credited to salaries payable; the payment run against cash is
// a separate entry.
func DefaultPostingMap() payroll.PostingMap {
	return payroll.PostingMap{
		PayrollExpense: AccountPayrollExpense,
		Cash:           AccountSalariesPayable,
		TaxWithholding: AccountISRWithholding,
		ContributionLiabilities: map[string]ledger.AccountID{
			"imss_employee": AccountIMSSPayable,
		},
	}
}
