package account

import (
	"context"
	"fmt"

	"starling/reconcile"
)

// StandingOrder is one payment order standing against the account's default
// category.
type StandingOrder struct {
	UID              string
	CategoryUID      string
	Amount           Amount
	Reference        string
	PayeeUID         string
	PayeeAccountUID  string
	Recurrence       RecurrenceRule
	NextDate         string
	UpdatedAt        string
	SpendingCategory string
}

type standingOrderRecord struct {
	PaymentOrderUID         string         `json:"paymentOrderUid"`
	CategoryUID             string         `json:"categoryUid"`
	Amount                  Amount         `json:"amount"`
	Reference               string         `json:"reference"`
	PayeeUID                string         `json:"payeeUid"`
	PayeeAccountUID         string         `json:"payeeAccountUid"`
	StandingOrderRecurrence RecurrenceRule `json:"standingOrderRecurrence"`
	NextDate                string         `json:"nextDate"`
	UpdatedAt               string         `json:"updatedAt"`
	SpendingCategory        string         `json:"spendingCategory"`
}

func (so *StandingOrder) populate(rec standingOrderRecord) {
	so.CategoryUID = rec.CategoryUID
	so.Amount = rec.Amount
	so.Reference = rec.Reference
	so.PayeeUID = rec.PayeeUID
	so.PayeeAccountUID = rec.PayeeAccountUID
	so.Recurrence = rec.StandingOrderRecurrence
	so.NextDate = rec.NextDate
	so.UpdatedAt = rec.UpdatedAt
	so.SpendingCategory = rec.SpendingCategory
}

// RefreshStandingOrders reconciles the standing order collection against the
// snapshot for the account's default category.
func (a *Account) RefreshStandingOrders(ctx context.Context) error {
	endpoint := fmt.Sprintf("/payments/local/account/%s/category/%s/standing-orders", a.UID, a.defaultCategory)

	var list struct {
		StandingOrders []standingOrderRecord `json:"standingOrders"`
	}
	if err := a.api.Get(ctx, endpoint, nil, &list); err != nil {
		return fmt.Errorf("fetch standing orders: %w", err)
	}

	orders, err := reconcile.Sync(a.StandingOrders, list.StandingOrders, reconcile.Funcs[standingOrderRecord, *StandingOrder]{
		Key: func(rec standingOrderRecord) string { return rec.PaymentOrderUID },
		New: func(id string) *StandingOrder { return &StandingOrder{UID: id} },
		Populate: func(so *StandingOrder, rec standingOrderRecord) error {
			so.populate(rec)
			return nil
		},
	})
	if err != nil {
		return err
	}

	a.StandingOrders = orders
	return nil
}
