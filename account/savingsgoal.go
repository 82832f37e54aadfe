package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"starling/client"
	"starling/pkg/sentinel"
)

// SavingsGoal is a composite resource: the spaces snapshot carries its flat
// fields, and a secondary fetch fills in the recurring transfer, if one is
// configured.
type SavingsGoal struct {
	api        *client.Client
	accountUID string

	UID             string
	Name            string
	Target          Amount
	TotalSaved      Amount
	SavedPercentage int
	SortOrder       int
	State           string

	// Zero value when no recurring transfer is configured.
	RecurringTransfer RecurringTransfer
}

// RecurringTransfer is the automatic top-up rule attached to a savings goal.
type RecurringTransfer struct {
	TransferUID     string
	NextPaymentDate string
	Amount          Amount
	TopUp           bool
	Rule            RecurrenceRule
}

// RecurrenceRule describes how a recurring payment repeats.
type RecurrenceRule struct {
	StartDate string   `json:"startDate"`
	Frequency string   `json:"frequency"`
	Interval  int      `json:"interval"`
	Count     int      `json:"count"`
	UntilDate string   `json:"untilDate"`
	WeekStart string   `json:"weekStart"`
	Days      []string `json:"days"`
	MonthDay  int      `json:"monthDay"`
	MonthWeek int      `json:"monthWeek"`
}

type savingsGoalRecord struct {
	SavingsGoalUID  string `json:"savingsGoalUid"`
	Name            string `json:"name"`
	Target          Amount `json:"target"`
	TotalSaved      Amount `json:"totalSaved"`
	SavedPercentage int    `json:"savedPercentage"`
	SortOrder       int    `json:"sortOrder"`
	State           string `json:"state"`
}

func (g *SavingsGoal) populate(ctx context.Context, rec savingsGoalRecord) error {
	g.Name = rec.Name
	g.Target = rec.Target
	g.TotalSaved = rec.TotalSaved
	g.SavedPercentage = rec.SavedPercentage
	g.SortOrder = rec.SortOrder
	g.State = rec.State
	return g.refreshRecurringTransfer(ctx)
}

// refreshRecurringTransfer fetches the goal's recurring transfer rule. A 404
// means no rule is configured: the transfer fields reset to their zero
// values, matching the eviction semantics of the keyed collections — a rule
// deleted between refreshes disappears rather than going stale.
func (g *SavingsGoal) refreshRecurringTransfer(ctx context.Context) error {
	endpoint := fmt.Sprintf("/account/%s/savings-goals/%s/recurring-transfer", g.accountUID, g.UID)

	var rec struct {
		TransferUID       string         `json:"transferUid"`
		NextPaymentDate   string         `json:"nextPaymentDate"`
		TopUp             bool           `json:"topUp"`
		RecurrenceRule    RecurrenceRule `json:"recurrenceRule"`
		CurrencyAndAmount Amount         `json:"currencyAndAmount"`
	}
	if err := g.api.Get(ctx, endpoint, nil, &rec); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			g.RecurringTransfer = RecurringTransfer{}
			return nil
		}
		return fmt.Errorf("fetch recurring transfer: %w", err)
	}

	g.RecurringTransfer = RecurringTransfer{
		TransferUID:     rec.TransferUID,
		NextPaymentDate: rec.NextPaymentDate,
		Amount:          rec.CurrencyAndAmount,
		TopUp:           rec.TopUp,
		Rule:            rec.RecurrenceRule,
	}
	return nil
}

// refresh re-fetches the goal's own record outside a spaces pass, used after
// a deposit or withdrawal so the saved totals reflect the transfer.
func (g *SavingsGoal) refresh(ctx context.Context) error {
	endpoint := fmt.Sprintf("/account/%s/savings-goals/%s", g.accountUID, g.UID)

	var rec savingsGoalRecord
	if err := g.api.Get(ctx, endpoint, nil, &rec); err != nil {
		return fmt.Errorf("fetch savings goal: %w", err)
	}
	return g.populate(ctx, rec)
}

// Deposit moves minorUnits into the goal from the main account balance. Each
// call uses a fresh transfer UID, so retrying a failed call cannot double
// apply on the backend.
func (g *SavingsGoal) Deposit(ctx context.Context, minorUnits int64) error {
	return g.transfer(ctx, "add-money", minorUnits)
}

// Withdraw moves minorUnits out of the goal back to the main account balance.
func (g *SavingsGoal) Withdraw(ctx context.Context, minorUnits int64) error {
	return g.transfer(ctx, "withdraw-money", minorUnits)
}

func (g *SavingsGoal) transfer(ctx context.Context, action string, minorUnits int64) error {
	endpoint := fmt.Sprintf("/account/%s/savings-goals/%s/%s/%s", g.accountUID, g.UID, action, uuid.NewString())

	body := map[string]any{
		"amount": Amount{
			Currency:   g.TotalSaved.Currency,
			MinorUnits: minorUnits,
		},
	}
	if err := g.api.Put(ctx, endpoint, body, nil); err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return g.refresh(ctx)
}

// DownloadImage writes the goal's photo to dest as decoded image bytes.
func (g *SavingsGoal) DownloadImage(ctx context.Context, dest string) error {
	endpoint := fmt.Sprintf("/account/%s/savings-goals/%s/photo", g.accountUID, g.UID)
	return downloadPhoto(ctx, g.api, endpoint, dest)
}
