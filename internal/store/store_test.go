package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/deardiary/deardiary/backend/go-services/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := NewID()
	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.Len(t, id.String(), 24)

	for _, bad := range []string{"", "not-a-valid-id", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", id.String() + "0"} {
		_, err := ParseID(bad)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, "input %q", bad)
	}
}

func TestIDOrdersByAllocation(t *testing.T) {
	a, b := NewID(), NewID()
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
	require.False(t, a.Less(a))
}

func TestIDJSON(t *testing.T) {
	id := NewID()
	b, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(b))

	var back ID
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, id, back)
	require.ErrorIs(t, json.Unmarshal([]byte(`"nope"`), &back), ErrInvalidIdentifier)
}

func TestDocumentJSONIsFlat(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	d := &Document{ID: NewID(), CreatedAt: created, UpdatedAt: created, Fields: Fields{"title": "A", "tags": []any{"x"}}}

	b, err := json.Marshal(d)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, d.ID.String(), m["id"])
	require.Equal(t, "A", m["title"])
	require.Equal(t, "2024-01-02T03:04:05Z", m["created_at"])
	require.Equal(t, []any{"x"}, m["tags"])
}

func TestRoundTripNormalisesValues(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	f, err := roundTrip(Fields{
		"tags":   []string{"a"},
		"nested": map[string]string{"k": "v"},
		"when":   when,
		"pinned": true,
		"count":  int64(3),
	})
	require.NoError(t, err)
	require.Equal(t, []any{"a"}, f["tags"])
	require.Equal(t, map[string]any{"k": "v"}, f["nested"])
	require.Equal(t, when, f["when"])
	require.Equal(t, true, f["pinned"])
	require.Equal(t, int64(3), f["count"])
}

func TestUnavailableGateway(t *testing.T) {
	g := Unavailable(errors.New("DATABASE_URL not set"))
	ctx := context.Background()

	_, err := g.Create(ctx, "note", Fields{})
	require.ErrorIs(t, err, ErrStoreUnavailable)
	require.Contains(t, err.Error(), "DATABASE_URL not set")
	_, err = g.Get(ctx, "note", "not-a-valid-id")
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = g.List(ctx, "note", ListOptions{})
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = g.Update(ctx, "note", NewID().String(), Fields{})
	require.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = g.Delete(ctx, "note", NewID().String())
	require.ErrorIs(t, err, ErrStoreUnavailable)

	require.False(t, IsAvailable(g))
	require.False(t, IsAvailable(Instrumented(g)))
	require.True(t, IsAvailable(Instrumented(NewMemoryGateway(Options{}))))
}

func TestInstrumentedRecordsOutcomes(t *testing.T) {
	g := Instrumented(NewMemoryGateway(Options{}))
	ctx := context.Background()
	col := "instrumented_test"

	id, err := g.Create(ctx, col, Fields{"title": "A"})
	require.NoError(t, err)
	_, err = g.Get(ctx, col, id.String())
	require.NoError(t, err)
	_, err = g.Get(ctx, col, NewID().String())
	require.NoError(t, err)
	_, err = g.Get(ctx, col, "bad")
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(col, "create", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(col, "get", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(col, "get", "not_found")))
	require.Equal(t, 1.0, testutil.ToFloat64(metrics.StoreOperations.WithLabelValues(col, "get", "invalid_id")))

	names, err := g.(Inspector).Collections(ctx)
	require.NoError(t, err)
	require.Contains(t, names, col)
}

func TestParseCreatedAtPolicy(t *testing.T) {
	p, ok := ParseCreatedAtPolicy("stamp")
	require.True(t, ok)
	require.Equal(t, StampCreatedAt, p)
	p, ok = ParseCreatedAtPolicy("honor")
	require.True(t, ok)
	require.Equal(t, HonorCreatedAt, p)
	_, ok = ParseCreatedAtPolicy("sometimes")
	require.False(t, ok)
}

func TestEnsureIndexesSkipsStoresWithoutIndexes(t *testing.T) {
	ctx := context.Background()
	spec := []IndexSpec{{Collection: "note", Fields: []string{"-updated_at"}}}
	require.NoError(t, EnsureIndexes(ctx, NewMemoryGateway(Options{}), spec))
	require.NoError(t, EnsureIndexes(ctx, Instrumented(Unavailable(nil)), spec))
}
