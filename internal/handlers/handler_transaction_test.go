package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finacct/general_ledger_app/internal/adapters/database/memory"
	"github.com/finacct/general_ledger_app/internal/core/domain"
	portsrepo "github.com/finacct/general_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finacct/general_ledger_app/internal/core/ports/services"
	"github.com/finacct/general_ledger_app/internal/core/services"
	"github.com/finacct/general_ledger_app/internal/dto"
	"github.com/finacct/general_ledger_app/internal/handlers"
	"github.com/finacct/general_ledger_app/internal/platform/config"
	"github.com/finacct/general_ledger_app/internal/utils"
)

const apiTestPassword = "ledger-api-test-pw"

type apiEnv struct {
	router   *gin.Engine
	services *portssvc.ServiceContainer
	year     *domain.FiscalYear
	period   *domain.FiscalPeriod
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repos := memory.NewRepositoryProvider()
	container := services.NewContainer(repos)

	seedAPIUser(t, ctx, repos, "user-admin", "alice.admin", domain.RoleAdmin)
	seedAPIUser(t, ctx, repos, "user-approver", "bob.approver", domain.RoleApprover)
	seedAPIUser(t, ctx, repos, "user-poster", "carol.poster", domain.RolePoster)
	seedAPIUser(t, ctx, repos, "user-clerk", "dave.clerk", domain.RoleClerk)

	memory.SeedAccount(repos, domain.Account{
		AccountID: "acc-cash", Code: "1010", Name: "Operating Cash",
		AccountType: domain.Asset, IsCashAccount: true, IsActive: true,
	})
	memory.SeedAccount(repos, domain.Account{
		AccountID: "acc-revenue", Code: "4000", Name: "Tuition Revenue",
		AccountType: domain.Revenue, IsActive: true,
	})

	year, err := container.Fiscal.CreateYear(ctx, dto.CreateFiscalYearRequest{
		Name:      "FY 2026",
		StartDate: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, "user-admin")
	require.NoError(t, err)

	period, err := container.Fiscal.CreatePeriod(ctx, dto.CreateFiscalPeriodRequest{
		FiscalYearID: year.FiscalYearID,
		PeriodNumber: 1,
		StartDate:    time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
	}, "user-admin")
	require.NoError(t, err)

	year, err = container.Fiscal.OpenYear(ctx, year.FiscalYearID, "user-admin")
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:         "unit-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "general-ledger-app",
	}

	router := gin.New()
	handlers.RegisterRoutes(router, cfg, container, nil)

	return &apiEnv{router: router, services: container, year: year, period: period}
}

func seedAPIUser(t *testing.T, ctx context.Context, repos *portsrepo.RepositoryProvider, userID, username string, role domain.UserRole) {
	t.Helper()
	hash, err := utils.HashPassword(apiTestPassword)
	require.NoError(t, err)
	require.NoError(t, repos.UserRepo.SaveUser(ctx, domain.User{
		UserID: userID, Username: username, PasswordHash: hash, Role: role, IsActive: true,
	}))
}

func (env *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *apiEnv) login(t *testing.T, username string) string {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": apiTestPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createBody(submit bool) gin.H {
	return gin.H{
		"transactionType":   "JOURNAL_ENTRY",
		"transactionDate":   "2026-01-15T00:00:00Z",
		"description":       "tuition receipt",
		"submitForApproval": submit,
		"entries": []gin.H{
			{"accountID": "acc-cash", "debitAmount": "100"},
			{"accountID": "acc-revenue", "creditAmount": "100"},
		},
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": "dave.clerk",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransactionsRequireAuthentication(t *testing.T) {
	env := newAPIEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/transactions", "", createBody(false))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/transactions", "not-a-token", createBody(false))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTransactionLifecycleOverHTTP(t *testing.T) {
	env := newAPIEnv(t)
	clerk := env.login(t, "dave.clerk")
	approver := env.login(t, "bob.approver")
	poster := env.login(t, "carol.poster")

	// Create, submitted directly for approval.
	w := env.do(t, http.MethodPost, "/api/v1/transactions", clerk, createBody(true))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "PENDING_APPROVAL", created.Status)
	assert.Equal(t, env.period.FiscalPeriodID, created.FiscalPeriodID)

	base := fmt.Sprintf("/api/v1/transactions/%s", created.TransactionID)

	// A clerk may not approve.
	w = env.do(t, http.MethodPost, base+"/approve", clerk, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodPost, base+"/approve", approver, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, base+"/post", poster, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var posted dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	assert.Equal(t, "POSTED", posted.Status)
	assert.NotNil(t, posted.PostedAt)

	// Balance is visible through the read API.
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/balances?accountID=acc-cash&fiscalYearID=%s&fiscalPeriodID=%s",
		env.year.FiscalYearID, env.period.FiscalPeriodID), clerk, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"currentBalance":"100"`)

	w = env.do(t, http.MethodPost, base+"/void", poster, gin.H{"reason": "duplicate receipt"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var voided dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voided))
	assert.Equal(t, "VOIDED", voided.Status)
	assert.Equal(t, "duplicate receipt", voided.VoidReason)
}

func TestCreateTransactionErrorMapping(t *testing.T) {
	env := newAPIEnv(t)
	clerk := env.login(t, "dave.clerk")

	unbalanced := createBody(false)
	unbalanced["entries"] = []gin.H{
		{"accountID": "acc-cash", "debitAmount": "100"},
		{"accountID": "acc-revenue", "creditAmount": "90"},
	}
	w := env.do(t, http.MethodPost, "/api/v1/transactions", clerk, unbalanced)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	unknownAccount := createBody(false)
	unknownAccount["entries"] = []gin.H{
		{"accountID": "acc-missing", "debitAmount": "100"},
		{"accountID": "acc-revenue", "creditAmount": "100"},
	}
	w = env.do(t, http.MethodPost, "/api/v1/transactions", clerk, unknownAccount)
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
}

func TestPostDraftConflictOverHTTP(t *testing.T) {
	env := newAPIEnv(t)
	clerk := env.login(t, "dave.clerk")
	poster := env.login(t, "carol.poster")

	w := env.do(t, http.MethodPost, "/api/v1/transactions", clerk, createBody(false))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created dto.TransactionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodPost, "/api/v1/transactions/"+created.TransactionID+"/post", poster, nil)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestListTransactionsRequiresFilter(t *testing.T) {
	env := newAPIEnv(t)
	clerk := env.login(t, "dave.clerk")

	w := env.do(t, http.MethodGet, "/api/v1/transactions", clerk, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/transactions?fiscalYearID="+env.year.FiscalYearID, clerk, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
