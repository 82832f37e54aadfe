package account

import (
	"context"
	"fmt"

	"starling/reconcile"
)

// DirectDebit is one direct debit mandate against the account. LastPayment
// stays at its zero value until the mandate has collected at least once.
type DirectDebit struct {
	UID            string
	Reference      string
	Status         string
	Source         string
	Created        string
	Cancelled      string
	NextDate       string
	LastDate       string
	OriginatorName string
	OriginatorUID  string
	MerchantUID    string
	CategoryUID    string
	LastPayment    MandatePayment
}

// MandatePayment is the most recent collection under a mandate.
type MandatePayment struct {
	Date   string `json:"lastDate"`
	Amount Amount `json:"lastAmount"`
}

type mandateRecord struct {
	UID            string         `json:"uid"`
	Reference      string         `json:"reference"`
	Status         string         `json:"status"`
	Source         string         `json:"source"`
	Created        string         `json:"created"`
	Cancelled      string         `json:"cancelled"`
	NextDate       string         `json:"nextDate"`
	LastDate       string         `json:"lastDate"`
	OriginatorName string         `json:"originatorName"`
	OriginatorUID  string         `json:"originatorUid"`
	MerchantUID    string         `json:"merchantUid"`
	CategoryUID    string         `json:"categoryUid"`
	LastPayment    MandatePayment `json:"lastPayment"`
}

func (d *DirectDebit) populate(rec mandateRecord) {
	d.Reference = rec.Reference
	d.Status = rec.Status
	d.Source = rec.Source
	d.Created = rec.Created
	d.Cancelled = rec.Cancelled
	d.NextDate = rec.NextDate
	d.LastDate = rec.LastDate
	d.OriginatorName = rec.OriginatorName
	d.OriginatorUID = rec.OriginatorUID
	d.MerchantUID = rec.MerchantUID
	d.CategoryUID = rec.CategoryUID
	d.LastPayment = rec.LastPayment
}

// RefreshDirectDebits reconciles the mandate collection against the
// /direct-debit/mandates snapshot.
func (a *Account) RefreshDirectDebits(ctx context.Context) error {
	var list struct {
		Mandates []mandateRecord `json:"mandates"`
	}
	if err := a.api.Get(ctx, "/direct-debit/mandates", nil, &list); err != nil {
		return fmt.Errorf("fetch direct debit mandates: %w", err)
	}

	mandates, err := reconcile.Sync(a.DirectDebits, list.Mandates, reconcile.Funcs[mandateRecord, *DirectDebit]{
		Key: func(rec mandateRecord) string { return rec.UID },
		New: func(id string) *DirectDebit { return &DirectDebit{UID: id} },
		Populate: func(d *DirectDebit, rec mandateRecord) error {
			d.populate(rec)
			return nil
		},
	})
	if err != nil {
		return err
	}

	a.DirectDebits = mandates
	return nil
}
