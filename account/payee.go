package account

import (
	"context"
	"fmt"

	"starling/client"
	"starling/reconcile"
)

// Payee is the deepest composite resource: the payees snapshot carries each
// payee's fields and its accounts inline, and every payee account then
// fetches its payments and scheduled payments independently.
type Payee struct {
	api        *client.Client
	accountUID string

	UID          string
	Name         string
	PhoneNumber  string
	Type         string
	FirstName    string
	MiddleName   string
	LastName     string
	BusinessName string
	DateOfBirth  string

	Accounts map[string]*PayeeAccount
}

// PayeeAccount is one destination account belonging to a payee.
type PayeeAccount struct {
	api      *client.Client
	payeeUID string

	UID                string
	ChannelType        string
	Description        string
	DefaultAccount     bool
	CountryCode        string
	AccountIdentifier  string
	BankIdentifier     string
	BankIdentifierType string
	LastReferences     []string

	Payments          map[string]*Payment
	ScheduledPayments map[string]*ScheduledPayment
}

// Payment is one past payment made to a payee account.
type Payment struct {
	UID              string
	Amount           Amount
	Reference        string
	CreatedAt        string
	SpendingCategory string
}

// ScheduledPayment is one payment order standing against a payee account.
type ScheduledPayment struct {
	UID              string
	Amount           Amount
	Reference        string
	StartDate        string
	NextDate         string
	EndDate          string
	Recurrence       RecurrenceRule
	SpendingCategory string
	CategoryUID      string
}

type payeeRecord struct {
	PayeeUID     string               `json:"payeeUid"`
	PayeeName    string               `json:"payeeName"`
	PhoneNumber  string               `json:"phoneNumber"`
	PayeeType    string               `json:"payeeType"`
	FirstName    string               `json:"firstName"`
	MiddleName   string               `json:"middleName"`
	LastName     string               `json:"lastName"`
	BusinessName string               `json:"businessName"`
	DateOfBirth  string               `json:"dateOfBirth"`
	Accounts     []payeeAccountRecord `json:"accounts"`
}

type payeeAccountRecord struct {
	PayeeAccountUID    string   `json:"payeeAccountUid"`
	ChannelType        string   `json:"channelType"`
	Description        string   `json:"description"`
	DefaultAccount     bool     `json:"defaultAccount"`
	CountryCode        string   `json:"countryCode"`
	AccountIdentifier  string   `json:"accountIdentifier"`
	BankIdentifier     string   `json:"bankIdentifier"`
	BankIdentifierType string   `json:"bankIdentifierType"`
	LastReferences     []string `json:"lastReferences"`
}

type paymentRecord struct {
	PaymentUID       string `json:"paymentUid"`
	Amount           Amount `json:"amount"`
	Reference        string `json:"reference"`
	CreatedAt        string `json:"createdAt"`
	SpendingCategory string `json:"spendingCategory"`
}

type scheduledPaymentRecord struct {
	PaymentOrderUID  string         `json:"paymentOrderUid"`
	Amount           Amount         `json:"amount"`
	Reference        string         `json:"reference"`
	StartDate        string         `json:"startDate"`
	NextDate         string         `json:"nextDate"`
	EndDate          string         `json:"endDate"`
	RecurrenceRule   RecurrenceRule `json:"recurrenceRule"`
	SpendingCategory string         `json:"spendingCategory"`
	CategoryUID      string         `json:"categoryUid"`
}

// RefreshPayees reconciles the payee collection and, through each payee's
// populate, the nested account and payment collections. One failed nested
// fetch aborts the whole pass; the previous payee collection stays in place.
func (a *Account) RefreshPayees(ctx context.Context) error {
	var list struct {
		Payees []payeeRecord `json:"payees"`
	}
	if err := a.api.Get(ctx, "/payees", nil, &list); err != nil {
		return fmt.Errorf("fetch payees: %w", err)
	}

	payees, err := reconcile.Sync(a.Payees, list.Payees, reconcile.Funcs[payeeRecord, *Payee]{
		Key: func(rec payeeRecord) string { return rec.PayeeUID },
		New: func(id string) *Payee {
			return &Payee{api: a.api, accountUID: a.UID, UID: id, Accounts: make(map[string]*PayeeAccount)}
		},
		Populate: func(p *Payee, rec payeeRecord) error {
			return p.populate(ctx, rec)
		},
	})
	if err != nil {
		return err
	}

	a.Payees = payees
	return nil
}

func (p *Payee) populate(ctx context.Context, rec payeeRecord) error {
	p.Name = rec.PayeeName
	p.PhoneNumber = rec.PhoneNumber
	p.Type = rec.PayeeType
	p.FirstName = rec.FirstName
	p.MiddleName = rec.MiddleName
	p.LastName = rec.LastName
	p.BusinessName = rec.BusinessName
	p.DateOfBirth = rec.DateOfBirth

	accounts, err := reconcile.Sync(p.Accounts, rec.Accounts, reconcile.Funcs[payeeAccountRecord, *PayeeAccount]{
		Key: func(rec payeeAccountRecord) string { return rec.PayeeAccountUID },
		New: func(id string) *PayeeAccount {
			return &PayeeAccount{
				api:               p.api,
				payeeUID:          p.UID,
				UID:               id,
				Payments:          make(map[string]*Payment),
				ScheduledPayments: make(map[string]*ScheduledPayment),
			}
		},
		Populate: func(pa *PayeeAccount, rec payeeAccountRecord) error {
			return pa.populate(ctx, rec)
		},
	})
	if err != nil {
		return err
	}

	p.Accounts = accounts
	return nil
}

func (pa *PayeeAccount) populate(ctx context.Context, rec payeeAccountRecord) error {
	pa.ChannelType = rec.ChannelType
	pa.Description = rec.Description
	pa.DefaultAccount = rec.DefaultAccount
	pa.CountryCode = rec.CountryCode
	pa.AccountIdentifier = rec.AccountIdentifier
	pa.BankIdentifier = rec.BankIdentifier
	pa.BankIdentifierType = rec.BankIdentifierType
	pa.LastReferences = rec.LastReferences

	if err := pa.refreshPayments(ctx); err != nil {
		return err
	}
	return pa.refreshScheduledPayments(ctx)
}

func (pa *PayeeAccount) refreshPayments(ctx context.Context) error {
	endpoint := fmt.Sprintf("/payees/%s/account/%s/payments", pa.payeeUID, pa.UID)

	var list struct {
		Payments []paymentRecord `json:"payments"`
	}
	if err := pa.api.Get(ctx, endpoint, nil, &list); err != nil {
		return fmt.Errorf("fetch payments: %w", err)
	}

	payments, err := reconcile.Sync(pa.Payments, list.Payments, reconcile.Funcs[paymentRecord, *Payment]{
		Key: func(rec paymentRecord) string { return rec.PaymentUID },
		New: func(id string) *Payment { return &Payment{UID: id} },
		Populate: func(p *Payment, rec paymentRecord) error {
			p.Amount = rec.Amount
			p.Reference = rec.Reference
			p.CreatedAt = rec.CreatedAt
			p.SpendingCategory = rec.SpendingCategory
			return nil
		},
	})
	if err != nil {
		return err
	}

	pa.Payments = payments
	return nil
}

func (pa *PayeeAccount) refreshScheduledPayments(ctx context.Context) error {
	endpoint := fmt.Sprintf("/payees/%s/account/%s/scheduled-payments", pa.payeeUID, pa.UID)

	var list struct {
		ScheduledPayments []scheduledPaymentRecord `json:"scheduledPayments"`
	}
	if err := pa.api.Get(ctx, endpoint, nil, &list); err != nil {
		return fmt.Errorf("fetch scheduled payments: %w", err)
	}

	scheduled, err := reconcile.Sync(pa.ScheduledPayments, list.ScheduledPayments, reconcile.Funcs[scheduledPaymentRecord, *ScheduledPayment]{
		Key: func(rec scheduledPaymentRecord) string { return rec.PaymentOrderUID },
		New: func(id string) *ScheduledPayment { return &ScheduledPayment{UID: id} },
		Populate: func(sp *ScheduledPayment, rec scheduledPaymentRecord) error {
			sp.Amount = rec.Amount
			sp.Reference = rec.Reference
			sp.StartDate = rec.StartDate
			sp.NextDate = rec.NextDate
			sp.EndDate = rec.EndDate
			sp.Recurrence = rec.RecurrenceRule
			sp.SpendingCategory = rec.SpendingCategory
			sp.CategoryUID = rec.CategoryUID
			return nil
		},
	})
	if err != nil {
		return err
	}

	pa.ScheduledPayments = scheduled
	return nil
}
