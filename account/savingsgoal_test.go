package account_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starling/account"
	"starling/pkg/testutil"
)

// goalFixture builds an account holding one savings goal and returns it
// along with the mutable saved-total the fake backend reports.
func goalFixture(t *testing.T, srv *testutil.Server) (*account.Account, *int64) {
	t.Helper()

	saved := int64(50000)
	goalBody := func() map[string]any {
		return map[string]any{
			"savingsGoalUid":  "sg-a",
			"name":            "House",
			"target":          map[string]any{"currency": "GBP", "minorUnits": 100000},
			"totalSaved":      map[string]any{"currency": "GBP", "minorUnits": saved},
			"savedPercentage": int(saved / 1000),
			"sortOrder":       1,
			"state":           "ACTIVE",
		}
	}

	srv.GetJSON("/account/{accountUid}/spaces", func() any {
		return map[string]any{"savingsGoals": []map[string]any{goalBody()}}
	})
	srv.GetJSON("/account/{accountUid}/savings-goals/sg-a", func() any {
		return goalBody()
	})
	srv.GetStatus("/account/{accountUid}/savings-goals/{goalUid}/recurring-transfer", http.StatusNotFound)

	acct := newTestAccount(t, srv)
	require.NoError(t, acct.RefreshSpaces(context.Background()))
	return acct, &saved
}

func TestDepositSendsTransferAndRefreshes(t *testing.T) {
	srv := testutil.NewServer(t)
	acct, saved := goalFixture(t, srv)
	goal := acct.SavingsGoals["sg-a"]

	var transferUIDs []string
	srv.Handle(http.MethodPut, "/account/{accountUid}/savings-goals/sg-a/add-money/{transferUid}",
		func(w http.ResponseWriter, r *http.Request) {
			transferUIDs = append(transferUIDs, chi.URLParam(r, "transferUid"))

			var body struct {
				Amount account.Amount `json:"amount"`
			}
			testutil.DecodeJSONBody(t, r, &body)
			assert.Equal(t, "GBP", body.Amount.Currency)
			assert.Equal(t, int64(2500), body.Amount.MinorUnits)

			*saved += body.Amount.MinorUnits
			testutil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
		})

	require.NoError(t, goal.Deposit(context.Background(), 2500))
	assert.Equal(t, int64(52500), goal.TotalSaved.MinorUnits, "deposit re-fetches the goal")

	require.NoError(t, goal.Deposit(context.Background(), 2500))
	require.Len(t, transferUIDs, 2)
	assert.NotEqual(t, transferUIDs[0], transferUIDs[1], "each transfer gets a fresh UID")
	for _, id := range transferUIDs {
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
	}
}

func TestWithdrawSendsTransferAndRefreshes(t *testing.T) {
	srv := testutil.NewServer(t)
	acct, saved := goalFixture(t, srv)
	goal := acct.SavingsGoals["sg-a"]

	srv.Handle(http.MethodPut, "/account/{accountUid}/savings-goals/sg-a/withdraw-money/{transferUid}",
		func(w http.ResponseWriter, r *http.Request) {
			var body struct {
				Amount account.Amount `json:"amount"`
			}
			testutil.DecodeJSONBody(t, r, &body)
			*saved -= body.Amount.MinorUnits
			testutil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
		})

	require.NoError(t, goal.Withdraw(context.Background(), 10000))
	assert.Equal(t, int64(40000), goal.TotalSaved.MinorUnits)
}

func TestDepositFailureLeavesGoalUntouched(t *testing.T) {
	srv := testutil.NewServer(t)
	acct, _ := goalFixture(t, srv)
	goal := acct.SavingsGoals["sg-a"]

	srv.Handle(http.MethodPut, "/account/{accountUid}/savings-goals/sg-a/add-money/{transferUid}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

	require.Error(t, goal.Deposit(context.Background(), 2500))
	assert.Equal(t, int64(50000), goal.TotalSaved.MinorUnits)
}

func TestDownloadImageWritesDecodedBytes(t *testing.T) {
	srv := testutil.NewServer(t)
	acct, _ := goalFixture(t, srv)
	goal := acct.SavingsGoals["sg-a"]

	photo := []byte("\x89PNG fake image bytes")
	srv.GetJSON("/account/{accountUid}/savings-goals/sg-a/photo", func() any {
		return map[string]string{"base64EncodedPhoto": base64.StdEncoding.EncodeToString(photo)}
	})

	dest := filepath.Join(t.TempDir(), "goal.png")
	require.NoError(t, goal.DownloadImage(context.Background(), dest))

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, photo, written)
}
