package account

import "context"

// Address is one postal address on file for the account holder.
type Address struct {
	Line1       string `json:"line1"`
	Line2       string `json:"line2"`
	Line3       string `json:"line3"`
	PostTown    string `json:"postTown"`
	PostCode    string `json:"postCode"`
	CountryCode string `json:"countryCode"`
}

// Addresses is the holder's current address plus any previous ones.
type Addresses struct {
	Current  Address   `json:"current"`
	Previous []Address `json:"previous"`
}

// Addresses fetches the account holder's addresses. Plain value data, read
// on demand; addresses carry no stable identifier to reconcile on.
func (a *Account) Addresses(ctx context.Context) (Addresses, error) {
	var rec Addresses
	if err := a.api.Get(ctx, "/addresses", nil, &rec); err != nil {
		return Addresses{}, err
	}
	return rec, nil
}
