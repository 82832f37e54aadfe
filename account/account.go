// Package account mirrors one Starling account as in-memory objects. The
// Account aggregate owns every keyed collection (spaces, savings goals,
// payees, cards, direct debit mandates, standing orders) and refreshes each
// one by fetching a snapshot and reconciling it against the local state.
//
// An Account is not safe for concurrent use; callers needing concurrent
// refreshes must serialize access themselves.
package account

import (
	"context"
	"errors"
	"fmt"

	"starling/client"
)

// Amount is a currency amount in minor units, as the API represents money.
type Amount struct {
	Currency   string `json:"currency"`
	MinorUnits int64  `json:"minorUnits"`
}

// Account is the aggregate root. Identity fields are set once at
// construction; everything else reflects the last successful refresh of its
// section. Collections are replaced wholesale by a successful reconciliation
// pass and are never partially updated — on a failed refresh the previous
// collection stays authoritative.
type Account struct {
	api *client.Client

	// Set at construction, immutable afterwards.
	UID             string
	Name            string
	Currency        string
	CreatedAt       string
	defaultCategory string

	// RefreshIdentifiers.
	AccountIdentifier string
	BankIdentifier    string
	IBAN              string
	BIC               string

	// RefreshBalance, minor units.
	ClearedBalance      int64
	EffectiveBalance    int64
	PendingTransactions int64
	AcceptedOverdraft   int64

	// Keyed collections. Read freely, never mutate: entries appear and
	// disappear only through refresh calls.
	SpendingSpaces map[string]*SpendingSpace
	SavingsGoals   map[string]*SavingsGoal
	Payees         map[string]*Payee
	Cards          map[string]*Card
	DirectDebits   map[string]*DirectDebit
	StandingOrders map[string]*StandingOrder
}

type accountRecord struct {
	AccountUID      string `json:"accountUid"`
	DefaultCategory string `json:"defaultCategory"`
	Currency        string `json:"currency"`
	CreatedAt       string `json:"createdAt"`
	Name            string `json:"name"`
}

// New fetches the token's account list and adopts the first entry. Personal
// access tokens expose exactly one account, so no selection is offered.
func New(ctx context.Context, api *client.Client) (*Account, error) {
	var list struct {
		Accounts []accountRecord `json:"accounts"`
	}
	if err := api.Get(ctx, "/accounts", nil, &list); err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	if len(list.Accounts) == 0 {
		return nil, errors.New("no accounts available for this token")
	}

	rec := list.Accounts[0]
	return &Account{
		api:             api,
		UID:             rec.AccountUID,
		Name:            rec.Name,
		Currency:        rec.Currency,
		CreatedAt:       rec.CreatedAt,
		defaultCategory: rec.DefaultCategory,
		SpendingSpaces:  make(map[string]*SpendingSpace),
		SavingsGoals:    make(map[string]*SavingsGoal),
		Payees:          make(map[string]*Payee),
		Cards:           make(map[string]*Card),
		DirectDebits:    make(map[string]*DirectDebit),
		StandingOrders:  make(map[string]*StandingOrder),
	}, nil
}

// RefreshIdentifiers updates the account's bank identifiers.
func (a *Account) RefreshIdentifiers(ctx context.Context) error {
	var rec struct {
		AccountIdentifier string `json:"accountIdentifier"`
		BankIdentifier    string `json:"bankIdentifier"`
		IBAN              string `json:"iban"`
		BIC               string `json:"bic"`
	}
	if err := a.api.Get(ctx, "/accounts/"+a.UID+"/identifiers", nil, &rec); err != nil {
		return fmt.Errorf("fetch identifiers: %w", err)
	}

	a.AccountIdentifier = rec.AccountIdentifier
	a.BankIdentifier = rec.BankIdentifier
	a.IBAN = rec.IBAN
	a.BIC = rec.BIC
	return nil
}

// RefreshBalance updates the account's balance figures.
func (a *Account) RefreshBalance(ctx context.Context) error {
	var rec struct {
		ClearedBalance      Amount `json:"clearedBalance"`
		EffectiveBalance    Amount `json:"effectiveBalance"`
		PendingTransactions Amount `json:"pendingTransactions"`
		AcceptedOverdraft   Amount `json:"acceptedOverdraft"`
	}
	if err := a.api.Get(ctx, "/accounts/"+a.UID+"/balance", nil, &rec); err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}

	a.ClearedBalance = rec.ClearedBalance.MinorUnits
	a.EffectiveBalance = rec.EffectiveBalance.MinorUnits
	a.PendingTransactions = rec.PendingTransactions.MinorUnits
	a.AcceptedOverdraft = rec.AcceptedOverdraft.MinorUnits
	return nil
}

// Refresh updates every section the aggregate owns, in a fixed order,
// stopping at the first error. Collections refresh independently: a failure
// leaves earlier sections updated and later ones untouched, which callers
// accept in exchange for per-collection atomicity.
func (a *Account) Refresh(ctx context.Context) error {
	steps := []func(context.Context) error{
		a.RefreshIdentifiers,
		a.RefreshBalance,
		a.RefreshSpaces,
		a.RefreshPayees,
		a.RefreshCards,
		a.RefreshDirectDebits,
		a.RefreshStandingOrders,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
