/*
handlers.go - HTTP API handlers for the ledger and payroll engines

PURPOSE:
  Exposes the double-entry ledger and the payroll-tax engine via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Accounts:
    GET    /api/accounts                 List chart of accounts
    POST   /api/accounts                 Create account
    GET    /api/accounts/{id}            Get account details
    GET    /api/accounts/{id}/balance    Balance (optional ?as_of=YYYY-MM-DD)
    GET    /api/accounts/{id}/ledger     General-ledger rows

  Journal entries:
    POST   /api/entries                  Post a balanced entry
    GET    /api/entries/{number}         Get entry with lines
    POST   /api/entries/{number}/reverse Reverse a posted entry

  Periods:
    GET    /api/trial-balance            Generate (?period_start=&period_end=)
    POST   /api/trial-balance/close      Close the period

  Payroll:
    POST   /api/payroll/run              Compute (and optionally post) a run
    POST   /api/payroll/severance        Compute a severance breakdown
    POST   /api/tax/bracket              Progressive bracket tax lookup

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call domain logic (engine, calculator)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unbalanced entries, invalid input
  - 404: Account or entry not found
  - 409: Lifecycle conflicts (already posted, already reversed, closed period)
  - 500: Compliance-table configuration errors, internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/huntred/payroll-engine/ledger"
	"github.com/huntred/payroll-engine/payroll"
)

const dateLayout = "2006-01-02"

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Repo    ledger.LedgerRepository
	Engine  *ledger.LedgerEngine
	Calc    *payroll.Calculator
	Posting payroll.PostingMap
}

// NewHandler creates a handler around the given repository and calculator.
func NewHandler(repo ledger.LedgerRepository, calc *payroll.Calculator, posting payroll.PostingMap) *Handler {
	return &Handler{
		Repo:    repo,
		Engine:  ledger.NewEngine(repo),
		Calc:    calc,
		Posting: posting,
	}
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns the chart of accounts.
// GET /api/accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Repo.Accounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount creates a new account.
// POST /api/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ID == "" || req.Number == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "id, number and name are required", nil)
		return
	}
	accountType := ledger.AccountType(req.Type)
	if !accountType.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid account type", nil)
		return
	}

	// SaveAccount is an upsert; creation must not overwrite an existing
	// account or reuse its number.
	if _, err := h.Repo.Account(r.Context(), ledger.AccountID(req.ID)); err == nil {
		writeError(w, http.StatusConflict, "Account already exists", nil)
		return
	} else if !errors.Is(err, ledger.ErrAccountNotFound) {
		writeError(w, http.StatusInternalServerError, "Failed to check account", err)
		return
	}
	existing, err := h.Repo.Accounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to check account", err)
		return
	}
	for _, other := range existing {
		if other.Number == req.Number {
			writeError(w, http.StatusConflict, "Account number already in use", nil)
			return
		}
	}
	if req.ParentID != "" {
		parent, err := h.Repo.Account(r.Context(), ledger.AccountID(req.ParentID))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Parent account not found", err)
			return
		}
		if parent.Type != accountType {
			writeError(w, http.StatusBadRequest, "Account type must match parent type", nil)
			return
		}
	}

	opening := ledger.Zero
	if req.OpeningBalance != "" {
		var err error
		if opening, err = ledger.NewMoney(req.OpeningBalance); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid opening_balance", err)
			return
		}
	}
	a := ledger.Account{
		ID:             ledger.AccountID(req.ID),
		Number:         req.Number,
		Name:           req.Name,
		Type:           accountType,
		Category:       ledger.AccountCategory(req.Category),
		ParentID:       ledger.AccountID(req.ParentID),
		IsDetail:       req.IsDetail,
		IsActive:       true,
		OpeningBalance: opening,
		CurrentBalance: opening,
		CreatedAt:      time.Now(),
	}
	if req.TaxRate != "" {
		rate, err := decimal.NewFromString(req.TaxRate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid tax_rate", err)
			return
		}
		a.TaxRate = &rate
	}

	if err := h.Repo.SaveAccount(r.Context(), a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create account", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountDTO(a))
}

// GetAccount returns a single account.
// GET /api/accounts/{id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))
	a, err := h.Repo.Account(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get account", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(a))
}

// GetBalance returns the account balance, optionally as of a date.
// GET /api/accounts/{id}/balance?as_of=2024-01-31
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))

	var asOf time.Time
	if s := r.URL.Query().Get("as_of"); s != "" {
		var err error
		if asOf, err = time.Parse(dateLayout, s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid as_of date", err)
			return
		}
	}

	balance, err := h.Engine.AccountBalance(r.Context(), id, asOf)
	if err != nil {
		writeDomainError(w, "Failed to compute balance", err)
		return
	}

	dto := BalanceDTO{AccountID: string(id), Balance: balance.String()}
	if !asOf.IsZero() {
		dto.AsOf = asOf.Format(dateLayout)
	}
	writeJSON(w, http.StatusOK, dto)
}

// GetLedger returns the account's general-ledger rows in append order.
// GET /api/accounts/{id}/ledger?up_to=2024-01-31
func (h *Handler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := ledger.AccountID(chi.URLParam(r, "id"))

	var upTo time.Time
	if s := r.URL.Query().Get("up_to"); s != "" {
		var err error
		if upTo, err = time.Parse(dateLayout, s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid up_to date", err)
			return
		}
	}

	// 404 for unknown accounts rather than an empty ledger.
	if _, err := h.Repo.Account(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to get account", err)
		return
	}

	rows, err := h.Engine.Ledger(r.Context(), id, upTo)
	if err != nil {
		writeDomainError(w, "Failed to read ledger", err)
		return
	}

	dtos := make([]LedgerRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = LedgerRowDTO{
			EntryNumber:    string(row.EntryNumber),
			Date:           row.Date.Format(dateLayout),
			Description:    row.Description,
			Debit:          row.Debit.String(),
			Credit:         row.Credit.String(),
			RunningBalance: row.RunningBalance.String(),
			Seq:            row.Seq,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// JOURNAL ENTRY HANDLERS
// =============================================================================

// PostEntry validates and posts a journal entry.
// POST /api/entries
func (h *Handler) PostEntry(w http.ResponseWriter, r *http.Request) {
	var req PostEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	entry, err := entryFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry", err)
		return
	}

	posted, err := h.Engine.PostJournalEntry(r.Context(), entry)
	if err != nil {
		writeDomainError(w, "Failed to post entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(posted))
}

// GetEntry returns a journal entry with its lines.
// GET /api/entries/{number}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	number := ledger.EntryNumber(chi.URLParam(r, "number"))
	e, err := h.Repo.JournalEntry(r.Context(), number)
	if err != nil {
		writeDomainError(w, "Failed to get entry", err)
		return
	}
	writeJSON(w, http.StatusOK, toEntryDTO(e))
}

// ReverseEntry posts a mirror-image reversal of a posted entry.
// POST /api/entries/{number}/reverse
func (h *Handler) ReverseEntry(w http.ResponseWriter, r *http.Request) {
	number := ledger.EntryNumber(chi.URLParam(r, "number"))

	var req ReverseEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reversal, err := h.Engine.ReverseJournalEntry(r.Context(), number, req.Reason)
	if err != nil {
		writeDomainError(w, "Failed to reverse entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(reversal))
}

// =============================================================================
// TRIAL BALANCE HANDLERS
// =============================================================================

// GetTrialBalance generates the trial balance for a period.
// GET /api/trial-balance?period_start=2024-01-01&period_end=2024-01-31
func (h *Handler) GetTrialBalance(w http.ResponseWriter, r *http.Request) {
	start, end, err := parsePeriod(r.URL.Query().Get("period_start"), r.URL.Query().Get("period_end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	tb, err := h.Engine.GenerateTrialBalance(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, "Failed to generate trial balance", err)
		return
	}
	writeJSON(w, http.StatusOK, toTrialBalanceDTO(tb))
}

// ClosePeriod zeroes revenue and expense accounts into retained earnings.
// POST /api/trial-balance/close
func (h *Handler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	var req ClosePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	start, end, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	if req.RetainedEarningsAccount == "" {
		writeError(w, http.StatusBadRequest, "retained_earnings_account is required", nil)
		return
	}

	tb, err := h.Engine.GenerateTrialBalance(r.Context(), start, end)
	if err != nil {
		writeDomainError(w, "Failed to generate trial balance", err)
		return
	}

	closing, err := h.Engine.ClosePeriod(r.Context(), tb, ledger.AccountID(req.RetainedEarningsAccount))
	if err != nil {
		writeDomainError(w, "Failed to close period", err)
		return
	}

	resp := ClosePeriodResponse{ClosingEntries: make([]EntryDTO, len(closing))}
	for i, e := range closing {
		resp.ClosingEntries[i] = toEntryDTO(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// RunPayroll computes withholding and contributions for one employee,
// optionally posting the balanced journal entry.
// POST /api/payroll/run
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req PayrollRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile, err := profileFromDTO(req.Employee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}
	gross, err := ledger.NewMoney(req.Gross)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid gross amount", err)
		return
	}
	start, end, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}

	result, err := h.Calc.ComputePayroll(profile, gross, start, end)
	if err != nil {
		writeDomainError(w, "Failed to compute payroll", err)
		return
	}

	resp := toPayrollRunResponse(result)
	if req.Post {
		entry, err := payroll.BuildJournalEntry(result, h.Posting, end)
		if err != nil {
			writeDomainError(w, "Failed to build payroll entry", err)
			return
		}
		posted, err := h.Engine.PostJournalEntry(r.Context(), entry)
		if err != nil {
			writeDomainError(w, "Failed to post payroll entry", err)
			return
		}
		dto := toEntryDTO(posted)
		resp.Entry = &dto
	}
	writeJSON(w, http.StatusOK, resp)
}

// ComputeSeverance computes a full severance/finiquito breakdown.
// POST /api/payroll/severance
func (h *Handler) ComputeSeverance(w http.ResponseWriter, r *http.Request) {
	var req SeveranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	profile, err := profileFromDTO(req.Employee)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid employee", err)
		return
	}
	termination, err := time.Parse(dateLayout, req.TerminationDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid termination_date", err)
		return
	}
	unusedVacation := decimal.Zero
	if req.UnusedVacationDays != "" {
		if unusedVacation, err = decimal.NewFromString(req.UnusedVacationDays); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid unused_vacation_days", err)
			return
		}
	}

	breakdown, err := h.Calc.ComputeSeverance(payroll.SeveranceInput{
		Profile:            profile,
		TerminationDate:    termination,
		Type:               payroll.TerminationType(req.Type),
		PendingSalaryDays:  req.PendingSalaryDays,
		UnusedVacationDays: unusedVacation,
	})
	if err != nil {
		writeDomainError(w, "Failed to compute severance", err)
		return
	}

	writeJSON(w, http.StatusOK, SeveranceResponse{
		SeniorityYears:     breakdown.Seniority.Years,
		SeniorityMonths:    breakdown.Seniority.Months,
		SeniorityDays:      breakdown.Seniority.Days,
		DailySalary:        breakdown.DailySalary.String(),
		PendingSalary:      breakdown.PendingSalary.String(),
		VacationAmount:     breakdown.VacationAmount.String(),
		VacationBonus:      breakdown.VacationBonus.String(),
		ChristmasBonus:     breakdown.ChristmasBonus.String(),
		SavingsFund:        breakdown.SavingsFund.String(),
		GrossTotal:         breakdown.GrossTotal.String(),
		Withholding:        breakdown.Withholding.String(),
		NetAmount:          breakdown.NetAmount.String(),
		SeniorityPremium:   breakdown.SeniorityPremium.String(),
		ConstitutionalPay:  breakdown.ConstitutionalPay.String(),
		IndemnizationTotal: breakdown.IndemnizationTotal.String(),
		TotalToPay:         breakdown.TotalToPay.String(),
	})
}

// BracketTax returns the progressive withholding on a taxable amount.
// POST /api/tax/bracket
func (h *Handler) BracketTax(w http.ResponseWriter, r *http.Request) {
	var req BracketTaxRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	amount, err := ledger.NewMoney(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	tax, err := payroll.ComputeBracketTax(amount, h.Calc.Tables.ISRMonthly)
	if err != nil {
		writeDomainError(w, "Failed to compute tax", err)
		return
	}
	writeJSON(w, http.StatusOK, BracketTaxResponse{Amount: amount.String(), Tax: tax.String()})
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toAccountDTO(a ledger.Account) AccountDTO {
	return AccountDTO{
		ID:             string(a.ID),
		Number:         a.Number,
		Name:           a.Name,
		Type:           string(a.Type),
		Category:       string(a.Category),
		ParentID:       string(a.ParentID),
		IsDetail:       a.IsDetail,
		IsActive:       a.IsActive,
		OpeningBalance: a.OpeningBalance.String(),
		Level:          a.Level,
		Balance:        a.CurrentBalance.String(),
	}
}

func toEntryDTO(e ledger.JournalEntry) EntryDTO {
	dto := EntryDTO{
		Number:       string(e.Number),
		Date:         e.Date.Format(dateLayout),
		Description:  e.Description,
		Type:         string(e.Type),
		Lines:        make([]JournalLineDTO, len(e.Lines)),
		TotalDebits:  e.TotalDebits.String(),
		TotalCredits: e.TotalCredits.String(),
		IsPosted:     e.IsPosted,
		IsReversed:   e.IsReversed,
		ReversalOf:   string(e.ReversalOf),
	}
	if e.PostedAt != nil {
		dto.PostedAt = e.PostedAt.Format(time.RFC3339)
	}
	for i, l := range e.Lines {
		dto.Lines[i] = JournalLineDTO{
			AccountID:   string(l.AccountID),
			Description: l.Description,
			Debit:       l.Debit.String(),
			Credit:      l.Credit.String(),
		}
	}
	return dto
}

func toTrialBalanceDTO(tb *ledger.TrialBalance) TrialBalanceDTO {
	dto := TrialBalanceDTO{
		PeriodStart:  tb.PeriodStart.Format(dateLayout),
		PeriodEnd:    tb.PeriodEnd.Format(dateLayout),
		Rows:         make([]TrialBalanceRowDTO, len(tb.Entries)),
		TotalDebits:  tb.TotalDebits.String(),
		TotalCredits: tb.TotalCredits.String(),
		NetIncome:    tb.NetIncome().String(),
		IsBalanced:   tb.IsBalanced(),
		IsClosed:     tb.IsClosed,
	}
	for i, row := range tb.Entries {
		dto.Rows[i] = TrialBalanceRowDTO{
			AccountID:     string(row.AccountID),
			AccountNumber: row.AccountNumber,
			AccountName:   row.AccountName,
			Type:          string(row.Type),
			OpeningDebit:  row.OpeningDebit.String(),
			OpeningCredit: row.OpeningCredit.String(),
			PeriodDebits:  row.PeriodDebits.String(),
			PeriodCredits: row.PeriodCredits.String(),
			EndingDebit:   row.EndingDebit.String(),
			EndingCredit:  row.EndingCredit.String(),
		}
	}
	return dto
}

func toPayrollRunResponse(result payroll.PayrollResult) PayrollRunResponse {
	resp := PayrollRunResponse{
		EmployeeID:      result.EmployeeID,
		EmployeeName:    result.EmployeeName,
		PeriodStart:     result.PeriodStart.Format(dateLayout),
		PeriodEnd:       result.PeriodEnd.Format(dateLayout),
		Gross:           result.Gross.String(),
		Withholding:     result.Withholding.String(),
		Contributions:   make([]ContributionDTO, len(result.Contributions)),
		TotalDeductions: result.TotalDeductions.String(),
		Net:             result.Net.String(),
	}
	for i, c := range result.Contributions {
		resp.Contributions[i] = ContributionDTO{
			Code:   c.Code,
			Name:   c.Name,
			Base:   c.Base.String(),
			Amount: c.Amount.String(),
		}
	}
	return resp
}

func entryFromRequest(req PostEntryRequest) (ledger.JournalEntry, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return ledger.JournalEntry{}, err
	}

	entryType := ledger.EntryType(req.Type)
	if req.Type == "" {
		entryType = ledger.EntryTypeGeneral
	}

	e := ledger.JournalEntry{
		Date:             date,
		Description:      req.Description,
		Type:             entryType,
		Lines:            make([]ledger.JournalEntryLine, len(req.Lines)),
		RequiresApproval: req.RequiresApproval,
		IsApproved:       req.IsApproved,
		ApprovedBy:       req.ApprovedBy,
		CreatedBy:        req.CreatedBy,
		CreatedAt:        time.Now(),
	}
	for i, l := range req.Lines {
		debit, credit := ledger.Zero, ledger.Zero
		if l.Debit != "" {
			if debit, err = ledger.NewMoney(l.Debit); err != nil {
				return ledger.JournalEntry{}, err
			}
		}
		if l.Credit != "" {
			if credit, err = ledger.NewMoney(l.Credit); err != nil {
				return ledger.JournalEntry{}, err
			}
		}
		e.Lines[i] = ledger.JournalEntryLine{
			AccountID:   ledger.AccountID(l.AccountID),
			Description: l.Description,
			Debit:       debit,
			Credit:      credit,
		}
	}
	e.CalculateTotals()
	return e, nil
}

func profileFromDTO(dto EmployeeDTO) (payroll.EmployeeProfile, error) {
	hireDate, err := time.Parse(dateLayout, dto.HireDate)
	if err != nil {
		return payroll.EmployeeProfile{}, err
	}
	salary, err := ledger.NewMoney(dto.MonthlySalary)
	if err != nil {
		return payroll.EmployeeProfile{}, err
	}
	return payroll.EmployeeProfile{
		ID:            dto.ID,
		Name:          dto.Name,
		HireDate:      hireDate,
		MonthlySalary: salary,
	}, nil
}

func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case ledger.IsStateError(err):
		return http.StatusConflict
	case ledger.IsClientError(err) || payroll.IsClientError(err):
		return http.StatusBadRequest
	case payroll.IsConfigError(err):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, statusFor(err), message, err)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
