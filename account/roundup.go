package account

import (
	"context"
	"fmt"
)

// RoundUp is the account's round-up configuration. Detail fields are zero
// when round-ups are inactive.
type RoundUp struct {
	Active             bool
	PrimaryCategoryUID string
	GoalUID            string
	Multiplier         int
	ActivatedAt        string
	ActivatedBy        string
}

// RoundUp fetches the current round-up state. It is read on demand rather
// than held by the aggregate: the backend reports it as a single object, not
// a keyed collection.
func (a *Account) RoundUp(ctx context.Context) (RoundUp, error) {
	var rec struct {
		Active  bool `json:"active"`
		Details struct {
			PrimaryCategoryUID string `json:"primaryCategoryUid"`
			RoundUpGoalUID     string `json:"roundUpGoalUid"`
			RoundUpMultiplier  int    `json:"roundUpMultiplier"`
			ActivatedAt        string `json:"activatedAt"`
			ActivatedBy        string `json:"activatedBy"`
		} `json:"roundUpGoalDetails"`
	}
	if err := a.api.Get(ctx, fmt.Sprintf("/feed/account/%s/round-up", a.UID), nil, &rec); err != nil {
		return RoundUp{}, fmt.Errorf("fetch round-up: %w", err)
	}

	if !rec.Active {
		return RoundUp{}, nil
	}
	return RoundUp{
		Active:             true,
		PrimaryCategoryUID: rec.Details.PrimaryCategoryUID,
		GoalUID:            rec.Details.RoundUpGoalUID,
		Multiplier:         rec.Details.RoundUpMultiplier,
		ActivatedAt:        rec.Details.ActivatedAt,
		ActivatedBy:        rec.Details.ActivatedBy,
	}, nil
}
