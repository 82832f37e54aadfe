package account_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starling/account"
	"starling/client"
	"starling/pkg/testutil"
)

const (
	accountUID      = "acc-0001"
	defaultCategory = "cat-0001"
)

// registerAccounts serves the /accounts document every test account starts
// from.
func registerAccounts(srv *testutil.Server) {
	srv.GetJSON("/accounts", func() any {
		return map[string]any{
			"accounts": []map[string]any{{
				"accountUid":      accountUID,
				"defaultCategory": defaultCategory,
				"currency":        "GBP",
				"createdAt":       "2019-06-01T08:15:00.000Z",
				"name":            "Personal",
			}},
		}
	})
}

func newTestAccount(t *testing.T, srv *testutil.Server) *account.Account {
	t.Helper()
	registerAccounts(srv)
	api := client.New(client.Config{AccessToken: "test-token", BaseURL: srv.URL})
	acct, err := account.New(context.Background(), api)
	require.NoError(t, err)
	return acct
}

func TestNewAdoptsFirstAccount(t *testing.T) {
	srv := testutil.NewServer(t)
	acct := newTestAccount(t, srv)

	assert.Equal(t, accountUID, acct.UID)
	assert.Equal(t, "Personal", acct.Name)
	assert.Equal(t, "GBP", acct.Currency)
	assert.Equal(t, "2019-06-01T08:15:00.000Z", acct.CreatedAt)
	assert.Empty(t, acct.SpendingSpaces)
	assert.Empty(t, acct.SavingsGoals)
}

func TestNewFailsWithoutAccounts(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.GetJSON("/accounts", func() any {
		return map[string]any{"accounts": []any{}}
	})

	api := client.New(client.Config{AccessToken: "test-token", BaseURL: srv.URL})
	_, err := account.New(context.Background(), api)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts")
}

func TestRefreshIdentifiers(t *testing.T) {
	srv := testutil.NewServer(t)
	acct := newTestAccount(t, srv)

	srv.GetJSON("/accounts/{accountUid}/identifiers", func() any {
		return map[string]any{
			"accountIdentifier": "12345678",
			"bankIdentifier":    "608371",
			"iban":              "GB63STRL60837112345678",
			"bic":               "SRLGGB2L",
		}
	})

	require.NoError(t, acct.RefreshIdentifiers(context.Background()))
	assert.Equal(t, "12345678", acct.AccountIdentifier)
	assert.Equal(t, "608371", acct.BankIdentifier)
	assert.Equal(t, "GB63STRL60837112345678", acct.IBAN)
	assert.Equal(t, "SRLGGB2L", acct.BIC)
}

func TestRefreshBalance(t *testing.T) {
	srv := testutil.NewServer(t)
	acct := newTestAccount(t, srv)

	srv.GetJSON("/accounts/{accountUid}/balance", func() any {
		return map[string]any{
			"clearedBalance":      map[string]any{"currency": "GBP", "minorUnits": 110000},
			"effectiveBalance":    map[string]any{"currency": "GBP", "minorUnits": 109500},
			"pendingTransactions": map[string]any{"currency": "GBP", "minorUnits": 500},
			"acceptedOverdraft":   map[string]any{"currency": "GBP", "minorUnits": 0},
		}
	})

	require.NoError(t, acct.RefreshBalance(context.Background()))
	assert.Equal(t, int64(110000), acct.ClearedBalance)
	assert.Equal(t, int64(109500), acct.EffectiveBalance)
	assert.Equal(t, int64(500), acct.PendingTransactions)
	assert.Equal(t, int64(0), acct.AcceptedOverdraft)
}

func TestRefreshBalanceTransportErrorLeavesState(t *testing.T) {
	srv := testutil.NewServer(t)
	acct := newTestAccount(t, srv)
	srv.GetStatus("/accounts/{accountUid}/balance", http.StatusBadGateway)

	acct.ClearedBalance = 42
	require.Error(t, acct.RefreshBalance(context.Background()))
	assert.Equal(t, int64(42), acct.ClearedBalance, "failed refresh must not touch prior state")
}
