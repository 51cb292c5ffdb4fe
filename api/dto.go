/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

MONEY ON THE WIRE:
  All monetary amounts travel as decimal strings ("1234.56"), never JSON
  numbers. Float64 round-trips corrupt cents.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers and the domain packages, not in DTOs.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - ledger/entry.go, payroll/severance.go: Domain types behind them
*/
package api

// =============================================================================
// ACCOUNTS
// =============================================================================

// AccountDTO represents an account in API responses.
type AccountDTO struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Category       string `json:"category,omitempty"`
	ParentID       string `json:"parent_id,omitempty"`
	IsDetail       bool   `json:"is_detail"`
	IsActive       bool   `json:"is_active"`
	OpeningBalance string `json:"opening_balance"`
	Level          int    `json:"level"`
	Balance        string `json:"balance"`
}

// CreateAccountRequest is the request to create an account.
type CreateAccountRequest struct {
	ID             string `json:"id"`
	Number         string `json:"number"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	ParentID       string `json:"parent_id"`
	IsDetail       bool   `json:"is_detail"`
	OpeningBalance string `json:"opening_balance"`
	TaxRate        string `json:"tax_rate"`
}

// BalanceDTO is an account balance at a point in time.
type BalanceDTO struct {
	AccountID string `json:"account_id"`
	AsOf      string `json:"as_of,omitempty"`
	Balance   string `json:"balance"`
}

// LedgerRowDTO is one immutable general-ledger row.
type LedgerRowDTO struct {
	EntryNumber    string `json:"entry_number"`
	Date           string `json:"date"`
	Description    string `json:"description,omitempty"`
	Debit          string `json:"debit"`
	Credit         string `json:"credit"`
	RunningBalance string `json:"running_balance"`
	Seq            int64  `json:"seq"`
}

// =============================================================================
// JOURNAL ENTRIES
// =============================================================================

// JournalLineRequest is one line of an entry to post. Exactly one of
// debit/credit must be non-zero.
type JournalLineRequest struct {
	AccountID   string `json:"account_id"`
	Description string `json:"description"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// PostEntryRequest is the request to post a journal entry.
type PostEntryRequest struct {
	Date             string               `json:"date"`
	Description      string               `json:"description"`
	Type             string               `json:"type"`
	Lines            []JournalLineRequest `json:"lines"`
	CreatedBy        string               `json:"created_by"`
	RequiresApproval bool                 `json:"requires_approval"`
	IsApproved       bool                 `json:"is_approved"`
	ApprovedBy       string               `json:"approved_by"`
}

// ReverseEntryRequest is the request to reverse a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason"`
}

// JournalLineDTO is one line of an entry in responses.
type JournalLineDTO struct {
	AccountID   string `json:"account_id"`
	Description string `json:"description,omitempty"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// EntryDTO represents a journal entry in API responses.
type EntryDTO struct {
	Number       string           `json:"number"`
	Date         string           `json:"date"`
	Description  string           `json:"description,omitempty"`
	Type         string           `json:"type"`
	Lines        []JournalLineDTO `json:"lines"`
	TotalDebits  string           `json:"total_debits"`
	TotalCredits string           `json:"total_credits"`
	IsPosted     bool             `json:"is_posted"`
	PostedAt     string           `json:"posted_at,omitempty"`
	IsReversed   bool             `json:"is_reversed"`
	ReversalOf   string           `json:"reversal_of,omitempty"`
}

// =============================================================================
// TRIAL BALANCE
// =============================================================================

// TrialBalanceRowDTO is one account line of the trial balance.
type TrialBalanceRowDTO struct {
	AccountID     string `json:"account_id"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	Type          string `json:"type"`
	OpeningDebit  string `json:"opening_debit"`
	OpeningCredit string `json:"opening_credit"`
	PeriodDebits  string `json:"period_debits"`
	PeriodCredits string `json:"period_credits"`
	EndingDebit   string `json:"ending_debit"`
	EndingCredit  string `json:"ending_credit"`
}

// TrialBalanceDTO is the full trial balance report.
type TrialBalanceDTO struct {
	PeriodStart  string               `json:"period_start"`
	PeriodEnd    string               `json:"period_end"`
	Rows         []TrialBalanceRowDTO `json:"rows"`
	TotalDebits  string               `json:"total_debits"`
	TotalCredits string               `json:"total_credits"`
	NetIncome    string               `json:"net_income"`
	IsBalanced   bool                 `json:"is_balanced"`
	IsClosed     bool                 `json:"is_closed"`
}

// ClosePeriodRequest is the request to close an accounting period.
type ClosePeriodRequest struct {
	PeriodStart             string `json:"period_start"`
	PeriodEnd               string `json:"period_end"`
	RetainedEarningsAccount string `json:"retained_earnings_account"`
}

// ClosePeriodResponse returns the closing entries that were posted.
type ClosePeriodResponse struct {
	ClosingEntries []EntryDTO `json:"closing_entries"`
}

// =============================================================================
// PAYROLL
// =============================================================================

// EmployeeDTO carries the employee fields a calculation needs.
type EmployeeDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	HireDate      string `json:"hire_date"`
	MonthlySalary string `json:"monthly_salary"`
}

// PayrollRunRequest is the request to compute (and optionally post) a
// payroll run for one employee.
type PayrollRunRequest struct {
	Employee    EmployeeDTO `json:"employee"`
	Gross       string      `json:"gross"`
	PeriodStart string      `json:"period_start"`
	PeriodEnd   string      `json:"period_end"`

	// Post writes the run to the ledger as a balanced journal entry.
	Post bool `json:"post"`
}

// ContributionDTO is one computed contribution line.
type ContributionDTO struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Base   string `json:"base"`
	Amount string `json:"amount"`
}

// PayrollRunResponse itemizes the run. Entry is set when Post was true.
type PayrollRunResponse struct {
	EmployeeID      string            `json:"employee_id"`
	EmployeeName    string            `json:"employee_name"`
	PeriodStart     string            `json:"period_start"`
	PeriodEnd       string            `json:"period_end"`
	Gross           string            `json:"gross"`
	Withholding     string            `json:"withholding"`
	Contributions   []ContributionDTO `json:"contributions"`
	TotalDeductions string            `json:"total_deductions"`
	Net             string            `json:"net"`
	Entry           *EntryDTO         `json:"entry,omitempty"`
}

// SeveranceRequest is the request to compute a severance/finiquito.
type SeveranceRequest struct {
	Employee           EmployeeDTO `json:"employee"`
	TerminationDate    string      `json:"termination_date"`
	Type               string      `json:"type"`
	PendingSalaryDays  int         `json:"pending_salary_days"`
	UnusedVacationDays string      `json:"unused_vacation_days"`
}

// SeveranceResponse itemizes every figure of the finiquito.
type SeveranceResponse struct {
	SeniorityYears  int    `json:"seniority_years"`
	SeniorityMonths int    `json:"seniority_months"`
	SeniorityDays   int    `json:"seniority_days"`
	DailySalary     string `json:"daily_salary"`

	PendingSalary  string `json:"pending_salary"`
	VacationAmount string `json:"vacation_amount"`
	VacationBonus  string `json:"vacation_bonus"`
	ChristmasBonus string `json:"christmas_bonus"`
	SavingsFund    string `json:"savings_fund"`
	GrossTotal     string `json:"gross_total"`
	Withholding    string `json:"withholding"`
	NetAmount      string `json:"net_amount"`

	SeniorityPremium   string `json:"seniority_premium"`
	ConstitutionalPay  string `json:"constitutional_pay"`
	IndemnizationTotal string `json:"indemnization_total"`

	TotalToPay string `json:"total_to_pay"`
}

// BracketTaxRequest asks for the withholding on a taxable amount.
type BracketTaxRequest struct {
	Amount string `json:"amount"`
}

// BracketTaxResponse is the computed withholding.
type BracketTaxResponse struct {
	Amount string `json:"amount"`
	Tax    string `json:"tax"`
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
