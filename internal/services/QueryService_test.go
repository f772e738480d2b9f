package services

import (
	"context"
	"resultsd/internal/models"
	"resultsd/internal/providers"
	"resultsd/internal/testutil"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type queryFixture struct {
	grouped *testutil.MemResultStore
	flat    *testutil.MemFlatStore
	cache   *testutil.MockCache
	keyring providers.CacheKeyringInterface
	clock   *clockwork.FakeClock
	service QueryServiceInterface
}

// 2025-10-15 01:20 PM
func newQueryFixture() *queryFixture {
	f := &queryFixture{
		grouped: testutil.NewMemResultStore(),
		flat:    testutil.NewMemFlatStore(),
		cache:   testutil.NewMockCache(),
		keyring: providers.NewCacheKeyring(),
		clock:   clockwork.NewFakeClockAt(time.Date(2025, 10, 15, 13, 20, 0, 0, time.UTC)),
	}
	f.service = NewQueryService(f.grouped, f.flat, f.cache, f.keyring, &testutil.MockLogger{}, f.clock, time.UTC)
	return f
}

func times(pairs ...string) []models.Reading {
	out := make([]models.Reading, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, models.Reading{Time: pairs[i], Number: models.NumberString(pairs[i+1])})
	}
	return out
}

func (f *queryFixture) seedMinidiswar() *models.Result {
	return f.grouped.Seed(&models.Result{
		CategoryName: "Minidiswar",
		Date:         "2025-10-15",
		Result: []models.DateGroup{
			{Date: "2025-09-30", Times: times("09:00 AM", "1")},
			{Date: "2025-10-14", Times: times("11:00 PM", "2", "09:00 AM", "3")},
			{Date: "2025-10-15", Times: times("01:30 PM", "4", "09:00 AM", "5", "01:15 PM", "6")},
		},
	})
}

func decodeResults(t *testing.T, raw json.RawMessage) []models.Result {
	t.Helper()
	var out []models.Result
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func groupTimes(g models.DateGroup) []string {
	out := make([]string, len(g.Times))
	for i, r := range g.Times {
		out[i] = r.Time
	}
	return out
}

func TestFetchToday_LatestFirst(t *testing.T) {
	f := newQueryFixture()
	f.seedMinidiswar()
	f.grouped.Seed(&models.Result{CategoryName: "Idle", Result: []models.DateGroup{{Date: "2025-10-14", Times: times("09:00 AM", "7")}}})

	raw, err := f.service.FetchToday(context.Background())
	require.NoError(t, err)

	docs := decodeResults(t, raw)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Result, 1)
	assert.Equal(t, "2025-10-15", docs[0].Result[0].Date)
	assert.Equal(t, []string{"01:30 PM", "01:15 PM", "09:00 AM"}, groupTimes(docs[0].Result[0]))
}

func TestFetchMonth_WithholdsFutureSlots(t *testing.T) {
	f := newQueryFixture()
	f.seedMinidiswar()
	f.flat.Seed(&models.ResultFlat{
		CategoryName: "Scraped",
		Result: []models.FlatEntry{
			{Date: "2025-10-15", Time: "01:45 PM", Number: "8"},
			{Date: "2025-10-15", Time: "01:00 PM", Number: "9"},
			{Date: "2025-09-01", Time: "01:00 PM", Number: "10"},
		},
	})

	raw, err := f.service.FetchMonth(context.Background())
	require.NoError(t, err)

	var combined []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &combined))
	require.Len(t, combined, 2)

	var grouped models.Result
	require.NoError(t, json.Unmarshal(combined[0], &grouped))
	require.Len(t, grouped.Result, 2)
	assert.Equal(t, "2025-10-14", grouped.Result[0].Date)
	assert.Equal(t, []string{"11:00 PM", "09:00 AM"}, groupTimes(grouped.Result[0]))
	assert.Equal(t, []string{"09:00 AM", "01:15 PM"}, groupTimes(grouped.Result[1]))

	var flat models.ResultFlat
	require.NoError(t, json.Unmarshal(combined[1], &flat))
	assert.Equal(t, []models.FlatEntry{{Date: "2025-10-15", Time: "01:00 PM", Number: "9"}}, flat.Result)
}

func TestFetchMonth_ServesCacheUntilWrite(t *testing.T) {
	f := newQueryFixture()
	ctx := context.Background()
	f.seedMinidiswar()

	first, err := f.service.FetchMonth(ctx)
	require.NoError(t, err)

	f.grouped.Seed(&models.Result{CategoryName: "Late", Result: []models.DateGroup{{Date: "2025-10-15", Times: times("09:00 AM", "1")}}})
	cached, err := f.service.FetchMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, cached)
	assert.Equal(t, 1, f.grouped.Calls["FindAll"])

	f.keyring.Invalidate("Late")
	fresh, err := f.service.FetchMonth(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first, fresh)
	assert.Equal(t, 2, f.grouped.Calls["FindAll"])
}

func TestFetchMonthWindow(t *testing.T) {
	f := newQueryFixture()
	f.seedMinidiswar()

	w, err := f.service.FetchMonthWindow(context.Background(), "14/10/25", "Minidiswar", "manual")
	require.NoError(t, err)

	assert.Equal(t, "2025-10-01", w.From)
	assert.Equal(t, "2025-10-14", w.To)
	docs := decodeResults(t, w.Data)
	require.Len(t, docs, 1)
	require.Len(t, docs[0].Result, 1)
	assert.Equal(t, "2025-10-14", docs[0].Result[0].Date)
}

func TestFetchMonthWindow_ScraperReadsFlat(t *testing.T) {
	f := newQueryFixture()
	f.seedMinidiswar()
	f.flat.Seed(&models.ResultFlat{
		CategoryName: "minidiswar",
		Result: []models.FlatEntry{
			{Date: "2025-10-02", Time: "09:00 AM", Number: "1"},
			{Date: "2025-10-15", Time: "11:00 PM", Number: "2"},
		},
	})

	w, err := f.service.FetchMonthWindow(context.Background(), "2025-10-15", "Minidiswar", ScraperMode)
	require.NoError(t, err)

	var docs []models.ResultFlat
	require.NoError(t, json.Unmarshal(w.Data, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, []models.FlatEntry{{Date: "2025-10-02", Time: "09:00 AM", Number: "1"}}, docs[0].Result)
}

func TestFetchMonthWindow_InvalidDate(t *testing.T) {
	f := newQueryFixture()
	_, err := f.service.FetchMonthWindow(context.Background(), "October", "Minidiswar", "")
	assert.ErrorIs(t, err, models.ErrInvalidDateFormat)
}

func TestFetchByDate(t *testing.T) {
	f := newQueryFixture()
	ctx := context.Background()
	f.seedMinidiswar()
	f.flat.Seed(&models.ResultFlat{CategoryName: "Minidiswar", Date: "2025-10-15", Result: []models.FlatEntry{{Date: "2025-10-15", Time: "09:00 AM", Number: "1"}}})
	f.flat.Seed(&models.ResultFlat{CategoryName: "Minidiswar", Date: "2025-10-14"})

	raw, err := f.service.FetchByDate(ctx, "Minidiswar", "2025-10-15", ScraperMode)
	require.NoError(t, err)
	var combined []json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &combined))
	assert.Len(t, combined, 2)

	raw, err = f.service.FetchByDate(ctx, "Minidiswar", "2025-10-15", "")
	require.NoError(t, err)
	docs := decodeResults(t, raw)
	require.Len(t, docs, 1)
	assert.Len(t, docs[0].Result, 3)
}

func TestFetchByID(t *testing.T) {
	f := newQueryFixture()
	ctx := context.Background()
	doc := f.seedMinidiswar()

	raw, err := f.service.FetchByID(ctx, doc.ID.Hex())
	require.NoError(t, err)
	var got models.Result
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, doc.ID, got.ID)

	_, err = f.service.FetchByID(ctx, "xyz")
	assert.ErrorIs(t, err, models.ErrInvalidID)

	_, err = f.service.FetchByID(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
