package account

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"starling/client"
	"starling/reconcile"
)

// SpendingInsights is the spending breakdown for one calendar month. Unlike
// the balance endpoints, insight amounts are fractional major units, so they
// decode into decimals rather than minor-unit integers.
type SpendingInsights struct {
	api        *client.Client
	accountUID string

	Month string // upper-case month name, as the API expects it
	Year  int

	Period        string
	TotalSpent    decimal.Decimal
	TotalReceived decimal.Decimal
	NetSpend      decimal.Decimal

	// Keyed by spending category and counter-party UID respectively.
	Categories     map[string]*CategoryInsight
	CounterParties map[string]*CounterPartyInsight
}

// CategoryInsight is the month's totals for one spending category.
type CategoryInsight struct {
	Category         string
	TotalSpent       decimal.Decimal
	TotalReceived    decimal.Decimal
	NetSpend         decimal.Decimal
	NetDirection     string
	Currency         string
	Percentage       decimal.Decimal
	TransactionCount int
}

// CounterPartyInsight is the month's totals for one counter party.
type CounterPartyInsight struct {
	UID              string
	Type             string
	Name             string
	TotalSpent       decimal.Decimal
	TotalReceived    decimal.Decimal
	NetSpend         decimal.Decimal
	NetDirection     string
	Currency         string
	Percentage       decimal.Decimal
	TransactionCount int
}

type categoryInsightRecord struct {
	SpendingCategory string          `json:"spendingCategory"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TotalReceived    decimal.Decimal `json:"totalReceived"`
	NetSpend         decimal.Decimal `json:"netSpend"`
	NetDirection     string          `json:"netDirection"`
	Currency         string          `json:"currency"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

type counterPartyInsightRecord struct {
	CounterPartyUID  string          `json:"counterPartyUid"`
	CounterPartyType string          `json:"counterPartyType"`
	CounterPartyName string          `json:"counterPartyName"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TotalReceived    decimal.Decimal `json:"totalReceived"`
	NetSpend         decimal.Decimal `json:"netSpend"`
	NetDirection     string          `json:"netDirection"`
	Currency         string          `json:"currency"`
	Percentage       decimal.Decimal `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
}

// Insights fetches the spending breakdown for the given month. The returned
// object can be refreshed later to pick up late-settling transactions.
func (a *Account) Insights(ctx context.Context, month time.Month, year int) (*SpendingInsights, error) {
	si := &SpendingInsights{
		api:            a.api,
		accountUID:     a.UID,
		Month:          strings.ToUpper(month.String()),
		Year:           year,
		Categories:     make(map[string]*CategoryInsight),
		CounterParties: make(map[string]*CounterPartyInsight),
	}
	if err := si.Refresh(ctx); err != nil {
		return nil, err
	}
	return si, nil
}

// Refresh re-fetches both breakdowns and reconciles them against the held
// maps: categories and counter parties no longer reported for the month are
// dropped.
func (si *SpendingInsights) Refresh(ctx context.Context) error {
	if err := si.refreshCategories(ctx); err != nil {
		return err
	}
	return si.refreshCounterParties(ctx)
}

func (si *SpendingInsights) query() url.Values {
	return url.Values{
		"month": {si.Month},
		"year":  {strconv.Itoa(si.Year)},
	}
}

func (si *SpendingInsights) refreshCategories(ctx context.Context) error {
	endpoint := fmt.Sprintf("/accounts/%s/spending-insights/spending-category", si.accountUID)

	var rec struct {
		Period        string                  `json:"period"`
		TotalSpent    decimal.Decimal         `json:"totalSpent"`
		TotalReceived decimal.Decimal         `json:"totalReceived"`
		NetSpend      decimal.Decimal         `json:"netSpend"`
		Breakdown     []categoryInsightRecord `json:"breakdown"`
	}
	if err := si.api.Get(ctx, endpoint, si.query(), &rec); err != nil {
		return fmt.Errorf("fetch category insights: %w", err)
	}

	categories, err := reconcile.Sync(si.Categories, rec.Breakdown, reconcile.Funcs[categoryInsightRecord, *CategoryInsight]{
		Key: func(rec categoryInsightRecord) string { return rec.SpendingCategory },
		New: func(id string) *CategoryInsight { return &CategoryInsight{Category: id} },
		Populate: func(ci *CategoryInsight, rec categoryInsightRecord) error {
			ci.TotalSpent = rec.TotalSpent
			ci.TotalReceived = rec.TotalReceived
			ci.NetSpend = rec.NetSpend
			ci.NetDirection = rec.NetDirection
			ci.Currency = rec.Currency
			ci.Percentage = rec.Percentage
			ci.TransactionCount = rec.TransactionCount
			return nil
		},
	})
	if err != nil {
		return err
	}

	si.Period = rec.Period
	si.TotalSpent = rec.TotalSpent
	si.TotalReceived = rec.TotalReceived
	si.NetSpend = rec.NetSpend
	si.Categories = categories
	return nil
}

func (si *SpendingInsights) refreshCounterParties(ctx context.Context) error {
	endpoint := fmt.Sprintf("/accounts/%s/spending-insights/counter-party", si.accountUID)

	var rec struct {
		Breakdown []counterPartyInsightRecord `json:"breakdown"`
	}
	if err := si.api.Get(ctx, endpoint, si.query(), &rec); err != nil {
		return fmt.Errorf("fetch counter-party insights: %w", err)
	}

	parties, err := reconcile.Sync(si.CounterParties, rec.Breakdown, reconcile.Funcs[counterPartyInsightRecord, *CounterPartyInsight]{
		Key: func(rec counterPartyInsightRecord) string { return rec.CounterPartyUID },
		New: func(id string) *CounterPartyInsight { return &CounterPartyInsight{UID: id} },
		Populate: func(cp *CounterPartyInsight, rec counterPartyInsightRecord) error {
			cp.Type = rec.CounterPartyType
			cp.Name = rec.CounterPartyName
			cp.TotalSpent = rec.TotalSpent
			cp.TotalReceived = rec.TotalReceived
			cp.NetSpend = rec.NetSpend
			cp.NetDirection = rec.NetDirection
			cp.Currency = rec.Currency
			cp.Percentage = rec.Percentage
			cp.TransactionCount = rec.TransactionCount
			return nil
		},
	})
	if err != nil {
		return err
	}

	si.CounterParties = parties
	return nil
}
