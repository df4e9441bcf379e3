package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmidr/matrimony-backend/internal/biodatas"
)

type stubBiodataCounter struct {
	counts *biodatas.OverviewCounts
	err    error
}

func (s stubBiodataCounter) CountOverview(ctx context.Context) (*biodatas.OverviewCounts, error) {
	return s.counts, s.err
}

type stubUserCounter struct {
	count int64
	err   error
}

func (s stubUserCounter) Count(ctx context.Context) (int64, error) {
	return s.count, s.err
}

type stubContactCounter struct {
	count int64
	err   error
}

func (s stubContactCounter) CountPending(ctx context.Context) (int64, error) {
	return s.count, s.err
}

func TestOverviewAggregatesCounters(t *testing.T) {
	svc, err := NewOverviewService(OverviewParams{
		Biodatas: stubBiodataCounter{counts: &biodatas.OverviewCounts{
			TotalBiodatas:   10,
			MaleBiodatas:    6,
			FemaleBiodatas:  4,
			PremiumBiodatas: 3,
			PendingPremium:  2,
		}},
		Users:    stubUserCounter{count: 25},
		Contacts: stubContactCounter{count: 5},
	})
	require.NoError(t, err)

	overview, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Overview{
		TotalBiodatas:   10,
		MaleBiodatas:    6,
		FemaleBiodatas:  4,
		PremiumBiodatas: 3,
		TotalUsers:      25,
		PendingPremium:  2,
		PendingContacts: 5,
	}, overview)
}

func TestOverviewPropagatesStoreFailure(t *testing.T) {
	svc, err := NewOverviewService(OverviewParams{
		Biodatas: stubBiodataCounter{err: errors.New("db down")},
		Users:    stubUserCounter{},
		Contacts: stubContactCounter{},
	})
	require.NoError(t, err)

	_, err = svc.Overview(context.Background())
	require.Error(t, err)
}

func TestNewOverviewServiceRequiresStores(t *testing.T) {
	_, err := NewOverviewService(OverviewParams{})
	require.Error(t, err)
}
