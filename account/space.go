package account

import (
	"context"
	"fmt"

	"starling/client"
	"starling/reconcile"
)

// SpendingSpace is a flat resource: one raw record populates every field and
// there is no secondary fetch.
type SpendingSpace struct {
	api        *client.Client
	accountUID string

	UID                string
	Name               string
	Balance            Amount
	CardAssociationUID string
	SortOrder          int
	Type               string
	State              string
}

type spendingSpaceRecord struct {
	SpaceUID           string `json:"spaceUid"`
	Name               string `json:"name"`
	Balance            Amount `json:"balance"`
	CardAssociationUID string `json:"cardAssociationUid"`
	SortOrder          int    `json:"sortOrder"`
	SpendingSpaceType  string `json:"spendingSpaceType"`
	State              string `json:"state"`
}

func (s *SpendingSpace) populate(rec spendingSpaceRecord) {
	s.Name = rec.Name
	s.Balance = rec.Balance
	s.CardAssociationUID = rec.CardAssociationUID
	s.SortOrder = rec.SortOrder
	s.Type = rec.SpendingSpaceType
	s.State = rec.State
}

// DownloadImage writes the space's photo to dest as decoded image bytes.
func (s *SpendingSpace) DownloadImage(ctx context.Context, dest string) error {
	endpoint := fmt.Sprintf("/account/%s/spaces/%s/photo", s.accountUID, s.UID)
	return downloadPhoto(ctx, s.api, endpoint, dest)
}

type spacesList struct {
	SpendingSpaces []spendingSpaceRecord `json:"spendingSpaces"`
	SavingsGoals   []savingsGoalRecord   `json:"savingsGoals"`
}

// RefreshSpaces fetches the account's spaces document once and reconciles
// both collections it carries: spending spaces and savings goals. Neither
// collection is installed unless both passes succeed, so a failure while
// populating savings goals leaves the spending spaces at their previous
// state as well.
func (a *Account) RefreshSpaces(ctx context.Context) error {
	var list spacesList
	if err := a.api.Get(ctx, fmt.Sprintf("/account/%s/spaces", a.UID), nil, &list); err != nil {
		return fmt.Errorf("fetch spaces: %w", err)
	}

	spending, err := reconcile.Sync(a.SpendingSpaces, list.SpendingSpaces, reconcile.Funcs[spendingSpaceRecord, *SpendingSpace]{
		Key: func(rec spendingSpaceRecord) string { return rec.SpaceUID },
		New: func(id string) *SpendingSpace {
			return &SpendingSpace{api: a.api, accountUID: a.UID, UID: id}
		},
		Populate: func(s *SpendingSpace, rec spendingSpaceRecord) error {
			s.populate(rec)
			return nil
		},
	})
	if err != nil {
		return err
	}

	goals, err := reconcile.Sync(a.SavingsGoals, list.SavingsGoals, reconcile.Funcs[savingsGoalRecord, *SavingsGoal]{
		Key: func(rec savingsGoalRecord) string { return rec.SavingsGoalUID },
		New: func(id string) *SavingsGoal {
			return &SavingsGoal{api: a.api, accountUID: a.UID, UID: id}
		},
		Populate: func(g *SavingsGoal, rec savingsGoalRecord) error {
			return g.populate(ctx, rec)
		},
	})
	if err != nil {
		return err
	}

	a.SpendingSpaces = spending
	a.SavingsGoals = goals
	return nil
}
