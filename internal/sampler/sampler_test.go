package sampler_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubreport/internal/model"
	"clubreport/internal/sampler"
)

func newSampler(t *testing.T, catalog model.Catalog, seed uint64, opts ...sampler.Option) *sampler.Sampler {
	t.Helper()

	s, err := sampler.New(catalog, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), opts...)
	require.NoError(t, err)
	return s
}

func TestParticipantsWithinRange(t *testing.T) {
	s := newSampler(t, model.MustDefaultCatalog(), 1)

	seen := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		n := s.Participants()
		require.GreaterOrEqual(t, n, 3)
		require.LessOrEqual(t, n, 14)
		seen[n] = true
	}
	assert.True(t, seen[3], "lower bound never drawn")
	assert.True(t, seen[14], "upper bound never drawn")
}

func TestActivitiesAreDistinctCatalogNames(t *testing.T) {
	catalog := model.MustDefaultCatalog()
	s := newSampler(t, catalog, 42)

	for i := 0; i < 2000; i++ {
		acts, err := s.Activities()
		require.NoError(t, err)
		require.Len(t, acts, 3)

		seen := make(map[string]struct{})
		for _, a := range acts {
			assert.True(t, catalog.Contains(a), "unknown activity %q", a)
			_, dup := seen[a]
			require.False(t, dup, "duplicate activity %q in %v", a, acts)
			seen[a] = struct{}{}
		}
	}
}

func TestFallbackWithExactlyThreeEntries(t *testing.T) {
	// 3項目で重みが偏っていると復元抽出はほぼ必ず重複するため非復元抽出に入る
	catalog, err := model.NewCatalog([]model.Activity{
		{Name: "a", Weight: 1000},
		{Name: "b", Weight: 1},
		{Name: "c", Weight: 1},
	})
	require.NoError(t, err)
	s := newSampler(t, catalog, 7)

	for i := 0; i < 200; i++ {
		acts, err := s.Activities()
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"a", "b", "c"}, acts)
	}
}

func TestHeavyWeightDominatesFirstDraw(t *testing.T) {
	catalog, err := model.NewCatalog([]model.Activity{
		{Name: "heavy", Weight: 1e6},
		{Name: "b", Weight: 1},
		{Name: "c", Weight: 1},
		{Name: "d", Weight: 1},
	})
	require.NoError(t, err)
	s := newSampler(t, catalog, 99)

	first := 0
	for i := 0; i < 500; i++ {
		acts, err := s.Activities()
		require.NoError(t, err)
		if acts[0] == "heavy" {
			first++
		}
	}
	assert.Greater(t, first, 490)
}

func TestInsufficientCatalogSize(t *testing.T) {
	catalog, err := model.NewCatalog([]model.Activity{
		{Name: "a", Weight: 1},
		{Name: "b", Weight: 1},
	})
	require.NoError(t, err)

	_, err = sampler.New(catalog, nil)
	require.ErrorIs(t, err, sampler.ErrInsufficientCatalogSize)
}

func TestInvalidParticipantRange(t *testing.T) {
	_, err := sampler.New(model.MustDefaultCatalog(), nil, sampler.WithParticipantRange(10, 2))
	require.ErrorIs(t, err, sampler.ErrInvalidRange)
}

func TestCustomPicksAndRange(t *testing.T) {
	s := newSampler(t, model.MustDefaultCatalog(), 5,
		sampler.WithPicks(5),
		sampler.WithParticipantRange(8, 8),
	)

	acts, err := s.Activities()
	require.NoError(t, err)
	assert.Len(t, acts, 5)
	assert.Equal(t, 8, s.Participants())
}

func TestBatchKeepsInputOrder(t *testing.T) {
	s := newSampler(t, model.MustDefaultCatalog(), 11)

	batch, err := s.Batch(model.Request{
		Period: model.Period{Year: 2025, Month: 3},
		Days: []model.DayInput{
			{Day: 5, Room: "02-264"},
			{Day: 19, Room: "A-0511"},
		},
	})
	require.NoError(t, err)
	require.Len(t, batch, 2)

	assert.Equal(t, "3/5", batch[0].Date)
	assert.Equal(t, "02-264", batch[0].Location)
	assert.Equal(t, "3/19", batch[1].Date)
	assert.Equal(t, "A-0511", batch[1].Location)
	for _, e := range batch {
		assert.Len(t, e.Activities, 3)
	}
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	a := newSampler(t, model.MustDefaultCatalog(), 2025)
	b := newSampler(t, model.MustDefaultCatalog(), 2025)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Participants(), b.Participants())
		actsA, err := a.Activities()
		require.NoError(t, err)
		actsB, err := b.Activities()
		require.NoError(t, err)
		assert.Equal(t, actsA, actsB)
	}
}
