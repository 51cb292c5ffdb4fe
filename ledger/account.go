/*
account.go - Chart of accounts

PURPOSE:
  Defines accounts, their classification, and the tree-shaped chart that
  organizes them. The chart is modeled as an arena: a flat collection keyed
  by account ID with parents stored as optional ID references. The tree is
  never trusted to be acyclic by construction - Validate() detects cycles,
  dangling parents, and duplicate numbers, and assigns levels.

NORMAL-BALANCE SIDES:
  asset, expense     -> increase with debits
  liability, equity,
  revenue            -> increase with credits

  The posting engine uses NormalSide() to sign running-balance deltas.

DETAIL vs SUMMARY:
  Only detail (leaf) accounts receive direct postings. Summary accounts
  aggregate their children for reporting. The engine rejects lines that
  target a summary or inactive account.

BALANCES:
  Account.CurrentBalance is a cached projection maintained by the engine.
  The ground truth is always the general ledger; AccountBalance() recomputes
  from posted rows and must agree with the cache.

SEE ALSO:
  - engine.go: Uses NormalSide() and the detail/active checks
  - trial.go: Aggregates per-type totals from account classification
*/
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ACCOUNT CLASSIFICATION
// =============================================================================

type AccountType string

const (
	AccountAsset     AccountType = "asset"
	AccountLiability AccountType = "liability"
	AccountEquity    AccountType = "equity"
	AccountRevenue   AccountType = "revenue"
	AccountExpense   AccountType = "expense"
)

// NormalSide returns the side on which this account type increases.
func (t AccountType) NormalSide() Side {
	switch t {
	case AccountAsset, AccountExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountAsset, AccountLiability, AccountEquity, AccountRevenue, AccountExpense:
		return true
	}
	return false
}

// AccountCategory is a finer classification under the type, used for
// statement grouping. Free-form; common values below.
type AccountCategory string

const (
	CategoryCurrentAsset     AccountCategory = "current_asset"
	CategoryFixedAsset       AccountCategory = "fixed_asset"
	CategoryCurrentLiability AccountCategory = "current_liability"
	CategoryLongTermDebt     AccountCategory = "long_term_liability"
	CategoryCapital          AccountCategory = "capital"
	CategoryOperatingRevenue AccountCategory = "operating_revenue"
	CategoryOperatingExpense AccountCategory = "operating_expense"
	CategoryPayrollExpense   AccountCategory = "payroll_expense"
)

// =============================================================================
// ACCOUNT
// =============================================================================

// Account is a node in the chart of accounts.
//
// Level is assigned by ChartOfAccounts.Validate (root = 0,
// child = parent.Level + 1). CurrentBalance is the engine-maintained cache
// of the last running balance; the ledger remains the source of truth.
type Account struct {
	ID             AccountID
	Number         string // unique within the chart
	Name           string
	Type           AccountType
	Category       AccountCategory
	ParentID       AccountID // "" = root
	IsDetail       bool      // leaf usable for direct posting
	IsActive       bool
	OpeningBalance Money            // signed in the account's normal side
	TaxRate        *decimal.Decimal // optional
	Level          int
	CurrentBalance Money
	CreatedAt      time.Time
}

// =============================================================================
// CHART OF ACCOUNTS - Arena + index
// =============================================================================

// ChartOfAccounts is a flat collection of accounts keyed by ID, with the
// tree expressed through ParentID references.
type ChartOfAccounts struct {
	ID       string
	Name     string
	Accounts map[AccountID]*Account

	byNumber map[string]AccountID
}

func NewChart(id, name string) *ChartOfAccounts {
	return &ChartOfAccounts{
		ID:       id,
		Name:     name,
		Accounts: make(map[AccountID]*Account),
		byNumber: make(map[string]AccountID),
	}
}

// Add inserts an account, rejecting duplicate IDs and numbers.
func (c *ChartOfAccounts) Add(a *Account) error {
	if _, ok := c.Accounts[a.ID]; ok {
		return &ChartError{AccountID: a.ID, Reason: "duplicate account ID"}
	}
	if !a.Type.Valid() {
		return &ChartError{AccountID: a.ID, Reason: "unknown account type " + string(a.Type)}
	}
	if existing, ok := c.byNumber[a.Number]; ok {
		return &ChartError{AccountID: a.ID, Reason: "account number " + a.Number + " already used by " + string(existing)}
	}
	c.Accounts[a.ID] = a
	c.byNumber[a.Number] = a.ID
	return nil
}

// ByNumber looks up an account by its chart number.
func (c *ChartOfAccounts) ByNumber(number string) (*Account, bool) {
	id, ok := c.byNumber[number]
	if !ok {
		return nil, false
	}
	return c.Accounts[id], true
}

// Children returns the direct children of an account, ordered by number.
func (c *ChartOfAccounts) Children(id AccountID) []*Account {
	var out []*Account
	for _, a := range c.Accounts {
		if a.ParentID == id {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// DetailAccounts returns all leaf accounts, ordered by number.
func (c *ChartOfAccounts) DetailAccounts() []*Account {
	var out []*Account
	for _, a := range c.Accounts {
		if a.IsDetail {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Validate checks structural integrity and assigns levels.
//
// Checks, in order:
//  1. Every ParentID references an existing account
//  2. No parent chain forms a cycle
//  3. Children share their parent's account type
//
// Cycle detection walks each parent chain with a visited set; the tree is
// validated once here rather than trusted at every traversal.
func (c *ChartOfAccounts) Validate() error {
	for _, a := range c.Accounts {
		if a.ParentID == "" {
			continue
		}
		parent, ok := c.Accounts[a.ParentID]
		if !ok {
			return &ChartError{AccountID: a.ID, Reason: "parent " + string(a.ParentID) + " does not exist"}
		}
		if parent.Type != a.Type {
			return &ChartError{AccountID: a.ID, Reason: "type " + string(a.Type) + " differs from parent type " + string(parent.Type)}
		}
	}

	// Walk each chain to the root, detecting cycles and measuring depth.
	for _, a := range c.Accounts {
		visited := map[AccountID]bool{a.ID: true}
		level := 0
		cur := a
		for cur.ParentID != "" {
			next := c.Accounts[cur.ParentID]
			if visited[next.ID] {
				return &ChartError{AccountID: a.ID, Reason: "parent chain contains a cycle"}
			}
			visited[next.ID] = true
			level++
			cur = next
		}
		a.Level = level
	}
	return nil
}
