package dfre

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonate/core/internal/types"
)

// fakeCache is a minimal in-memory stand-in for interfaces.Cache, used
// to exercise safetyExclusions and paginateAndCache without Redis.
type fakeCache struct {
	sets map[string][]string
	kv   map[string]any
}

func newFakeCache() *fakeCache {
	return &fakeCache{sets: map[string][]string{}, kv: map[string]any{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, out any) (bool, error) { return false, nil }
func (f *fakeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.kv[key] = value
	return nil
}
func (f *fakeCache) Delete(ctx context.Context, key string) error { delete(f.kv, key); return nil }
func (f *fakeCache) ScanDelete(ctx context.Context, pattern string) (int, error) { return 0, nil }
func (f *fakeCache) SAdd(ctx context.Context, key string, members ...string) error {
	f.sets[key] = append(f.sets[key], members...)
	return nil
}
func (f *fakeCache) SIsMember(ctx context.Context, key, member string) (bool, error) {
	for _, m := range f.sets[key] {
		if m == member {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeCache) SMembers(ctx context.Context, key string) ([]string, error) { return f.sets[key], nil }
func (f *fakeCache) Ping(ctx context.Context) error                              { return nil }

type fakeBlockReportRepo struct {
	records []*types.BlockReport
}

func (f *fakeBlockReportRepo) ListInvolving(ctx context.Context, userID string) ([]*types.BlockReport, error) {
	var out []*types.BlockReport
	for _, r := range f.records {
		if r.ReporterID == userID || r.ReportedID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeBlockReportRepo) IsBlocked(ctx context.Context, a, b string) (bool, error) {
	for _, r := range f.records {
		if r.ReporterID == a && r.ReportedID == b {
			return true, nil
		}
	}
	return false, nil
}

// TestSafetyExclusionsFiltersBlockedCandidate covers spec.md §8
// scenario 4: the viewer blocked X; the ANN candidate list of
// [X(0.9), Y(0.8), Z(0.7)] must come out of the safety stage as [Y, Z].
func TestSafetyExclusionsFiltersBlockedCandidate(t *testing.T) {
	cache := newFakeCache()
	require.NoError(t, cache.SAdd(context.Background(), blockedSetKey("viewer"), "userX"))

	s := &Service{Cache: cache, BlockReports: &fakeBlockReportRepo{}}
	excluded, err := s.safetyExclusions(context.Background(), "viewer")
	require.NoError(t, err)

	candidates := []Candidate{
		{UserID: "userX", VectorScore: 0.9},
		{UserID: "userY", VectorScore: 0.8},
		{UserID: "userZ", VectorScore: 0.7},
	}
	safe := filterSafe(candidates, excluded)

	require.Len(t, safe, 2)
	assert.Equal(t, "userY", safe[0].UserID)
	assert.Equal(t, "userZ", safe[1].UserID)
}

func TestSafetyExclusionsIncludesDatabaseBlocks(t *testing.T) {
	cache := newFakeCache()
	repo := &fakeBlockReportRepo{records: []*types.BlockReport{
		{ReporterID: "other", ReportedID: "viewer"},
	}}
	s := &Service{Cache: cache, BlockReports: repo}
	excluded, err := s.safetyExclusions(context.Background(), "viewer")
	require.NoError(t, err)

	candidates := []Candidate{{UserID: "other", VectorScore: 0.5}}
	safe := filterSafe(candidates, excluded)
	assert.Empty(t, safe)
}

func TestFreshnessTiers(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 1.0, freshness(now.Add(-30*time.Minute), now))
	assert.Equal(t, 0.9, freshness(now.Add(-12*time.Hour), now))
	assert.Equal(t, 0.7, freshness(now.Add(-48*time.Hour), now))
	assert.InDelta(t, 0.3, freshness(now.Add(-500*time.Hour), now), 0.001)
}

func TestGhostPenaltyCapsAtHalf(t *testing.T) {
	assert.InDelta(t, 0.35, ghostPenalty(0.5), 0.001)
	assert.Equal(t, 0.5, ghostPenalty(1.0))
}

func TestSubscriptionBoost(t *testing.T) {
	assert.Equal(t, boostPremium, subscriptionBoost(types.TierPremium))
	assert.Equal(t, boostPlus, subscriptionBoost(types.TierPlus))
	assert.Equal(t, 0.0, subscriptionBoost(types.TierFree))
}

func TestInjectDiversityPromotesNonDominantArchetype(t *testing.T) {
	slice := make([]Candidate, 0, 20)
	for i := 0; i < 16; i++ {
		slice = append(slice, Candidate{
			UserID:     "spark-user",
			Profile:    &types.ResonanceProfile{Archetype: types.ArchetypeSpark},
			FinalScore: float64(16 - i),
		})
	}
	for i := 0; i < 4; i++ {
		slice = append(slice, Candidate{
			UserID:     "storm-user",
			Profile:    &types.ResonanceProfile{Archetype: types.ArchetypeStorm},
			FinalScore: float64(10-i) + 0.5,
		})
	}

	limit := 10
	out := injectDiversity(slice, limit)

	nonDominant := 0
	for _, c := range out[:limit] {
		if c.Profile.Archetype != types.ArchetypeSpark {
			nonDominant++
		}
	}
	assert.GreaterOrEqual(t, nonDominant, 2)
}

func TestPaginateAndCacheSlicesAndSetsCursor(t *testing.T) {
	cache := newFakeCache()
	s := &Service{Cache: cache}
	ranked := make([]Candidate, 0, 35)
	for i := 0; i < 35; i++ {
		ranked = append(ranked, Candidate{UserID: "u"})
	}

	page, err := s.paginateAndCache(context.Background(), "viewer", ranked, 0, 30, DebugSummary{})
	require.NoError(t, err)
	assert.Len(t, page.Profiles, 30)
	require.NotNil(t, page.Cursor)
	assert.Equal(t, "1", *page.Cursor)
	assert.Equal(t, 35, page.Total)

	page2, err := s.paginateAndCache(context.Background(), "viewer", ranked, 1, 30, DebugSummary{})
	require.NoError(t, err)
	assert.Len(t, page2.Profiles, 5)
	assert.Nil(t, page2.Cursor)
}
