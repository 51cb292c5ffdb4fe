package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huntred/payroll-engine/api"
	"github.com/huntred/payroll-engine/factory"
	"github.com/huntred/payroll-engine/ledger/store"
	"github.com/huntred/payroll-engine/payroll"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

// newTestServer builds the full router over a fresh in-memory store seeded
// with the default chart and the Mexico 2024 tables.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo := store.NewMemory()
	chart, err := factory.DefaultChart()
	require.NoError(t, err)
	for _, a := range chart.Accounts {
		require.NoError(t, repo.SaveAccount(context.Background(), *a))
	}

	calc, err := payroll.NewCalculator(factory.MexicoMonthly2024())
	require.NoError(t, err)

	handler := api.NewHandler(repo, calc, factory.DefaultPostingMap())
	server := httptest.NewServer(api.NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func balancedEntry(amount string) api.PostEntryRequest {
	return api.PostEntryRequest{
		Date:        "2024-01-15",
		Description: "Client invoice",
		Lines: []api.JournalLineRequest{
			{AccountID: "cash", Debit: amount},
			{AccountID: "service-revenue", Credit: amount},
		},
	}
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func TestAPI_ListAccounts_ReturnsSeededChart(t *testing.T) {
	server := newTestServer(t)

	var accounts []api.AccountDTO
	status := doJSON(t, http.MethodGet, server.URL+"/api/accounts", nil, &accounts)

	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, accounts, 14)
}

func TestAPI_CreateAccount_ThenGet(t *testing.T) {
	server := newTestServer(t)

	var created api.AccountDTO
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts", api.CreateAccountRequest{
		ID:             "petty-cash",
		Number:         "1150",
		Name:           "Petty cash",
		Type:           "asset",
		ParentID:       "assets",
		IsDetail:       true,
		OpeningBalance: "500.00",
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "500.00", created.OpeningBalance)
	assert.True(t, created.IsActive)

	var fetched api.AccountDTO
	status = doJSON(t, http.MethodGet, server.URL+"/api/accounts/petty-cash", nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Petty cash", fetched.Name)
}

func TestAPI_CreateAccount_MissingFields_Rejected(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts",
		api.CreateAccountRequest{ID: "x"}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, errResp.Error)
}

func TestAPI_CreateAccount_ExistingID_409(t *testing.T) {
	// Creation must never overwrite an account that already exists.

	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts", api.CreateAccountRequest{
		ID:       "cash",
		Number:   "1199",
		Name:     "Shadow cash",
		Type:     "asset",
		IsDetail: true,
	}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, errResp.Error)

	var fetched api.AccountDTO
	status = doJSON(t, http.MethodGet, server.URL+"/api/accounts/cash", nil, &fetched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Cash and banks", fetched.Name)
	assert.Equal(t, "1100", fetched.Number)
}

func TestAPI_CreateAccount_DuplicateNumber_409(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts", api.CreateAccountRequest{
		ID:       "other-cash",
		Number:   "1100",
		Name:     "Other cash",
		Type:     "asset",
		IsDetail: true,
	}, &errResp)

	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, errResp.Error)
}

func TestAPI_CreateAccount_UnknownParent_400(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts", api.CreateAccountRequest{
		ID:       "petty-cash",
		Number:   "1150",
		Name:     "Petty cash",
		Type:     "asset",
		ParentID: "no-such-parent",
		IsDetail: true,
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_CreateAccount_ParentTypeMismatch_400(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/accounts", api.CreateAccountRequest{
		ID:       "petty-cash",
		Number:   "1150",
		Name:     "Petty cash",
		Type:     "asset",
		ParentID: "revenue",
		IsDetail: true,
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, errResp.Error)
}

func TestAPI_GetAccount_Unknown_404(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodGet, server.URL+"/api/accounts/no-such", nil, &errResp)

	assert.Equal(t, http.StatusNotFound, status)
}

// =============================================================================
// JOURNAL ENTRIES
// =============================================================================

func TestAPI_PostEntry_Balanced_201(t *testing.T) {
	server := newTestServer(t)

	var entry api.EntryDTO
	status := doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("1000.00"), &entry)

	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "JE-2024-01-0001", entry.Number)
	assert.True(t, entry.IsPosted)
	assert.Equal(t, "1000.00", entry.TotalDebits)
	assert.Equal(t, "1000.00", entry.TotalCredits)
	require.Len(t, entry.Lines, 2)
}

func TestAPI_PostEntry_Unbalanced_400(t *testing.T) {
	server := newTestServer(t)

	req := balancedEntry("1000.00")
	req.Lines[1].Credit = "999.99"

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/entries", req, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errResp.Details, "balance")
}

func TestAPI_GetEntry_RoundTrip(t *testing.T) {
	server := newTestServer(t)

	var posted api.EntryDTO
	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("250.00"), &posted)

	var fetched api.EntryDTO
	status := doJSON(t, http.MethodGet, server.URL+"/api/entries/"+posted.Number, nil, &fetched)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, posted.Number, fetched.Number)
	assert.Equal(t, "250.00", fetched.TotalDebits)
}

func TestAPI_ReverseEntry_ThenBalanceIsZero(t *testing.T) {
	server := newTestServer(t)

	var posted api.EntryDTO
	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("1000.00"), &posted)

	var reversal api.EntryDTO
	status := doJSON(t, http.MethodPost, server.URL+"/api/entries/"+posted.Number+"/reverse",
		api.ReverseEntryRequest{Reason: "duplicate"}, &reversal)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, posted.Number, reversal.ReversalOf)
	assert.Equal(t, "adjustment", reversal.Type)

	var balance api.BalanceDTO
	status = doJSON(t, http.MethodGet, server.URL+"/api/accounts/cash/balance", nil, &balance)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0.00", balance.Balance)
}

func TestAPI_ReverseEntry_Twice_409(t *testing.T) {
	server := newTestServer(t)

	var posted api.EntryDTO
	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("1000.00"), &posted)
	doJSON(t, http.MethodPost, server.URL+"/api/entries/"+posted.Number+"/reverse",
		api.ReverseEntryRequest{Reason: "duplicate"}, nil)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/entries/"+posted.Number+"/reverse",
		api.ReverseEntryRequest{Reason: "again"}, &errResp)

	assert.Equal(t, http.StatusConflict, status)
}

func TestAPI_Ledger_AppendOrderWithRunningBalance(t *testing.T) {
	server := newTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("100.00"), nil)
	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("50.00"), nil)

	var rows []api.LedgerRowDTO
	status := doJSON(t, http.MethodGet, server.URL+"/api/accounts/cash/ledger", nil, &rows)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 2)
	assert.Equal(t, "100.00", rows[0].RunningBalance)
	assert.Equal(t, "150.00", rows[1].RunningBalance)
	assert.Equal(t, int64(1), rows[0].Seq)
	assert.Equal(t, int64(2), rows[1].Seq)
}

// =============================================================================
// TRIAL BALANCE AND CLOSING
// =============================================================================

func TestAPI_TrialBalance_BalancedReport(t *testing.T) {
	server := newTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("1000.00"), nil)

	var tb api.TrialBalanceDTO
	status := doJSON(t, http.MethodGet,
		server.URL+"/api/trial-balance?period_start=2024-01-01&period_end=2024-01-31", nil, &tb)

	require.Equal(t, http.StatusOK, status)
	assert.True(t, tb.IsBalanced)
	assert.Equal(t, "1000.00", tb.NetIncome)
	assert.NotEmpty(t, tb.Rows)
}

func TestAPI_TrialBalance_MissingPeriod_400(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodGet, server.URL+"/api/trial-balance", nil, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_ClosePeriod_ThenReclose_409(t *testing.T) {
	server := newTestServer(t)

	doJSON(t, http.MethodPost, server.URL+"/api/entries", balancedEntry("1000.00"), nil)

	req := api.ClosePeriodRequest{
		PeriodStart:             "2024-01-01",
		PeriodEnd:               "2024-01-31",
		RetainedEarningsAccount: "retained-earnings",
	}
	var closed api.ClosePeriodResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/trial-balance/close", req, &closed)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, closed.ClosingEntries, 1) // revenue only, no expense activity
	assert.Equal(t, "closing", closed.ClosingEntries[0].Type)

	var errResp api.ErrorResponse
	status = doJSON(t, http.MethodPost, server.URL+"/api/trial-balance/close", req, &errResp)
	assert.Equal(t, http.StatusConflict, status)
}

// =============================================================================
// PAYROLL
// =============================================================================

func testEmployee() api.EmployeeDTO {
	return api.EmployeeDTO{
		ID:            "emp-001",
		Name:          "Maria Lopez",
		HireDate:      "2020-01-01",
		MonthlySalary: "30000.00",
	}
}

func TestAPI_RunPayroll_ComputeOnly(t *testing.T) {
	server := newTestServer(t)

	var resp api.PayrollRunResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/payroll/run", api.PayrollRunRequest{
		Employee:    testEmployee(),
		Gross:       "30000.00",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
	}, &resp)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "4740.00", resp.Withholding)
	assert.Equal(t, "24547.50", resp.Net)
	assert.Nil(t, resp.Entry)
}

func TestAPI_RunPayroll_PostedToLedger(t *testing.T) {
	server := newTestServer(t)

	var resp api.PayrollRunResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/payroll/run", api.PayrollRunRequest{
		Employee:    testEmployee(),
		Gross:       "30000.00",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
		Post:        true,
	}, &resp)

	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, resp.Entry)
	assert.True(t, resp.Entry.IsPosted)
	assert.Equal(t, "30000.00", resp.Entry.TotalDebits)

	var balance api.BalanceDTO
	doJSON(t, http.MethodGet, server.URL+"/api/accounts/salaries-payable/balance", nil, &balance)
	assert.Equal(t, "24547.50", balance.Balance)
}

func TestAPI_RunPayroll_NegativeGross_400(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/payroll/run", api.PayrollRunRequest{
		Employee:    testEmployee(),
		Gross:       "-100.00",
		PeriodStart: "2024-01-01",
		PeriodEnd:   "2024-01-31",
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_Severance_FullBreakdown(t *testing.T) {
	server := newTestServer(t)

	var resp api.SeveranceResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/payroll/severance", api.SeveranceRequest{
		Employee:        testEmployee(),
		TerminationDate: "2024-01-01",
		Type:            "involuntary",
	}, &resp)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 4, resp.SeniorityYears)
	assert.Equal(t, "986.84", resp.DailySalary)
	assert.Equal(t, "47368.42", resp.SeniorityPremium)
	assert.Equal(t, "167763.16", resp.ConstitutionalPay)
	assert.Equal(t, "215171.36", resp.TotalToPay)
}

func TestAPI_Severance_UnknownType_400(t *testing.T) {
	server := newTestServer(t)

	var errResp api.ErrorResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/payroll/severance", api.SeveranceRequest{
		Employee:        testEmployee(),
		TerminationDate: "2024-01-01",
		Type:            "mutual",
	}, &errResp)

	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_BracketTax(t *testing.T) {
	server := newTestServer(t)

	var resp api.BracketTaxResponse
	status := doJSON(t, http.MethodPost, server.URL+"/api/tax/bracket",
		api.BracketTaxRequest{Amount: "1000.00"}, &resp)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "30.57", resp.Tax)
}

func TestAPI_Health(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
