package account

import (
	"context"
	"fmt"

	"starling/reconcile"
)

// Card is a flat resource. CurrencyFlags maps a currency code to whether
// payments in that currency are enabled; it is rebuilt wholesale on every
// refresh rather than merged.
type Card struct {
	UID                       string
	PublicToken               string
	Enabled                   bool
	WalletNotificationEnabled bool
	POSEnabled                bool
	ATMEnabled                bool
	OnlineEnabled             bool
	MobileWalletEnabled       bool
	GamblingEnabled           bool
	MagStripeEnabled          bool
	Cancelled                 bool
	ActivationRequested       bool
	Activated                 bool
	EndOfCardNumber           string
	CardAssociationUID        string
	CurrencyFlags             map[string]bool
}

type cardRecord struct {
	CardUID                   string `json:"cardUid"`
	PublicToken               string `json:"publicToken"`
	Enabled                   bool   `json:"enabled"`
	WalletNotificationEnabled bool   `json:"walletNotificationEnabled"`
	POSEnabled                bool   `json:"posEnabled"`
	ATMEnabled                bool   `json:"atmEnabled"`
	OnlineEnabled             bool   `json:"onlineEnabled"`
	MobileWalletEnabled       bool   `json:"mobileWalletEnabled"`
	GamblingEnabled           bool   `json:"gamblingEnabled"`
	MagStripeEnabled          bool   `json:"magStripeEnabled"`
	Cancelled                 bool   `json:"cancelled"`
	ActivationRequested       bool   `json:"activationRequested"`
	Activated                 bool   `json:"activated"`
	EndOfCardNumber           string `json:"endOfCardNumber"`
	CardAssociationUID        string `json:"cardAssociationUid"`
	CurrencyFlags             []struct {
		Currency string `json:"currency"`
		Enabled  bool   `json:"enabled"`
	} `json:"currencyFlags"`
}

func (c *Card) populate(rec cardRecord) {
	c.PublicToken = rec.PublicToken
	c.Enabled = rec.Enabled
	c.WalletNotificationEnabled = rec.WalletNotificationEnabled
	c.POSEnabled = rec.POSEnabled
	c.ATMEnabled = rec.ATMEnabled
	c.OnlineEnabled = rec.OnlineEnabled
	c.MobileWalletEnabled = rec.MobileWalletEnabled
	c.GamblingEnabled = rec.GamblingEnabled
	c.MagStripeEnabled = rec.MagStripeEnabled
	c.Cancelled = rec.Cancelled
	c.ActivationRequested = rec.ActivationRequested
	c.Activated = rec.Activated
	c.EndOfCardNumber = rec.EndOfCardNumber
	c.CardAssociationUID = rec.CardAssociationUID

	c.CurrencyFlags = make(map[string]bool, len(rec.CurrencyFlags))
	for _, flag := range rec.CurrencyFlags {
		c.CurrencyFlags[flag.Currency] = flag.Enabled
	}
}

// RefreshCards reconciles the card collection against the /cards snapshot.
func (a *Account) RefreshCards(ctx context.Context) error {
	var list struct {
		Cards []cardRecord `json:"cards"`
	}
	if err := a.api.Get(ctx, "/cards", nil, &list); err != nil {
		return fmt.Errorf("fetch cards: %w", err)
	}

	cards, err := reconcile.Sync(a.Cards, list.Cards, reconcile.Funcs[cardRecord, *Card]{
		Key: func(rec cardRecord) string { return rec.CardUID },
		New: func(id string) *Card { return &Card{UID: id} },
		Populate: func(c *Card, rec cardRecord) error {
			c.populate(rec)
			return nil
		},
	})
	if err != nil {
		return err
	}

	a.Cards = cards
	return nil
}
