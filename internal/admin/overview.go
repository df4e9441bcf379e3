package admin

import (
	"context"
	"fmt"

	"github.com/tahmidr/matrimony-backend/internal/biodatas"
	pkgerrors "github.com/tahmidr/matrimony-backend/pkg/errors"
)

// Overview is the admin dashboard counter set.
type Overview struct {
	TotalBiodatas   int64 `json:"totalBiodatas"`
	MaleBiodatas    int64 `json:"maleBiodatas"`
	FemaleBiodatas  int64 `json:"femaleBiodatas"`
	PremiumBiodatas int64 `json:"premiumBiodatas"`
	TotalUsers      int64 `json:"totalUsers"`
	PendingPremium  int64 `json:"pendingPremium"`
	PendingContacts int64 `json:"pendingContacts"`
}

// OverviewService aggregates counters across the biodata, user, and contact
// request stores.
type OverviewService interface {
	Overview(ctx context.Context) (*Overview, error)
}

type biodataCounter interface {
	CountOverview(ctx context.Context) (*biodatas.OverviewCounts, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type contactCounter interface {
	CountPending(ctx context.Context) (int64, error)
}

type overviewService struct {
	biodatas biodataCounter
	users    userCounter
	contacts contactCounter
}

// OverviewParams bundles the stores the overview aggregates over.
type OverviewParams struct {
	Biodatas biodataCounter
	Users    userCounter
	Contacts contactCounter
}

// NewOverviewService constructs the admin dashboard aggregator.
func NewOverviewService(params OverviewParams) (OverviewService, error) {
	if params.Biodatas == nil {
		return nil, fmt.Errorf("biodata counter is required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user counter is required")
	}
	if params.Contacts == nil {
		return nil, fmt.Errorf("contact counter is required")
	}
	return &overviewService{
		biodatas: params.Biodatas,
		users:    params.Users,
		contacts: params.Contacts,
	}, nil
}

func (s *overviewService) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.biodatas.CountOverview(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count biodatas")
	}

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}

	pendingContacts, err := s.contacts.CountPending(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending contact requests")
	}

	return &Overview{
		TotalBiodatas:   counts.TotalBiodatas,
		MaleBiodatas:    counts.MaleBiodatas,
		FemaleBiodatas:  counts.FemaleBiodatas,
		PremiumBiodatas: counts.PremiumBiodatas,
		TotalUsers:      totalUsers,
		PendingPremium:  counts.PendingPremium,
		PendingContacts: pendingContacts,
	}, nil
}
