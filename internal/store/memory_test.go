package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(docs []*Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.String("title"))
	}
	return out
}

func TestMemoryGatewayCRUD(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	id, err := g.Create(ctx, "note", Fields{"title": "t", "content": "hello", "tags": []string{"a", "b"}})
	require.NoError(t, err)
	require.False(t, id.IsZero())

	got, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, id, got.ID)
	require.Equal(t, "hello", got.String("content"))
	require.Equal(t, []string{"a", "b"}, got.Strings("tags"))
	require.False(t, got.CreatedAt.After(got.UpdatedAt))

	ok, err := g.Update(ctx, "note", id.String(), Fields{"content": "new"})
	require.NoError(t, err)
	require.True(t, ok)
	got2, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.Equal(t, "new", got2.String("content"))
	require.Equal(t, "t", got2.String("title"))
	require.Equal(t, got.CreatedAt, got2.CreatedAt)
	require.True(t, got2.UpdatedAt.After(got.UpdatedAt))

	ok, err = g.Delete(ctx, "note", id.String())
	require.NoError(t, err)
	require.True(t, ok)
	gone, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.Nil(t, gone)

	// deleting twice reports absence, not an error
	ok, err = g.Delete(ctx, "note", id.String())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryGateway_ListOrderFollowsUpdates(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	i1, err := g.Create(ctx, "note", Fields{"title": "A", "content": "x"})
	require.NoError(t, err)
	_, err = g.Create(ctx, "note", Fields{"title": "B"})
	require.NoError(t, err)

	list, err := g.List(ctx, "note", ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"B", "A"}, titles(list))

	ok, err := g.Update(ctx, "note", i1.String(), Fields{"content": "y"})
	require.NoError(t, err)
	require.True(t, ok)

	list, err = g.List(ctx, "note", ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, titles(list))
}

func TestMemoryGateway_FutureCreatedAtKeepsInvariant(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewMemoryGateway(Options{Clock: NewClock(func() time.Time { return fixed })})
	ctx := context.Background()

	future := fixed.Add(time.Hour)
	first, err := g.Create(ctx, "note", Fields{"title": "first", "created_at": future})
	require.NoError(t, err)
	second, err := g.Create(ctx, "note", Fields{"title": "second"})
	require.NoError(t, err)

	d, err := g.Get(ctx, "note", first.String())
	require.NoError(t, err)
	require.Equal(t, future, d.CreatedAt)
	require.Equal(t, future, d.UpdatedAt)

	other, err := g.Get(ctx, "note", second.String())
	require.NoError(t, err)
	require.True(t, other.CreatedAt.Before(future))

	// an update never moves updated_at below created_at
	_, err = g.Update(ctx, "note", first.String(), Fields{"title": "edited"})
	require.NoError(t, err)
	d, err = g.Get(ctx, "note", first.String())
	require.NoError(t, err)
	require.Equal(t, future, d.UpdatedAt)
	require.Equal(t, "edited", d.String("title"))
}

func TestMemoryGateway_FutureCreatedAtDoesNotLeak(t *testing.T) {
	g := NewMemoryGateway(Options{})
	ctx := context.Background()

	farFuture := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := g.Create(ctx, "note", Fields{"title": "letter to the future", "created_at": farFuture})
	require.NoError(t, err)

	id, err := g.Create(ctx, "folder", Fields{"name": "School"})
	require.NoError(t, err)
	d, err := g.Get(ctx, "folder", id.String())
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), d.CreatedAt, time.Minute)
	require.WithinDuration(t, time.Now(), d.UpdatedAt, time.Minute)
}

func TestMemoryGateway_CreatedAtFromString(t *testing.T) {
	g := NewMemoryGateway(Options{})
	ctx := context.Background()

	id, err := g.Create(ctx, "note", Fields{"title": "A", "created_at": "2023-04-05T06:07:08.009Z"})
	require.NoError(t, err)
	d, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 4, 5, 6, 7, 8, 9_000_000, time.UTC), d.CreatedAt)

	id, err = g.Create(ctx, "note", Fields{"title": "B", "created_at": "last tuesday"})
	require.NoError(t, err)
	d, err = g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), d.CreatedAt, time.Minute)
}

func TestMemoryGateway_ListFilterAndLimit(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	for i, folder := range []string{"f1", "f2", "f1", "f1"} {
		_, err := g.Create(ctx, "note", Fields{"title": string(rune('a' + i)), "folder_id": folder})
		require.NoError(t, err)
	}

	list, err := g.List(ctx, "note", ListOptions{Filter: Fields{"folder_id": "f1"}})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c", "a"}, titles(list))

	list, err = g.List(ctx, "note", ListOptions{Filter: Fields{"folder_id": "f1"}, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"d", "c"}, titles(list))

	list, err = g.List(ctx, "note", ListOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 4)

	empty, err := g.List(ctx, "note", ListOptions{Filter: Fields{"folder_id": "nope"}})
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	none, err := g.List(ctx, "folder", ListOptions{})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestMemoryGateway_EmptyUpdateAdvancesUpdatedAt(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	id, err := g.Create(ctx, "folder", Fields{"name": "School", "color": "pink"})
	require.NoError(t, err)
	before, err := g.Get(ctx, "folder", id.String())
	require.NoError(t, err)

	ok, err := g.Update(ctx, "folder", id.String(), Fields{})
	require.NoError(t, err)
	require.True(t, ok)

	after, err := g.Get(ctx, "folder", id.String())
	require.NoError(t, err)
	require.Equal(t, before.Fields, after.Fields)
	require.Equal(t, before.CreatedAt, after.CreatedAt)
	require.True(t, after.UpdatedAt.After(before.UpdatedAt))
}

func TestMemoryGateway_RepeatedGetIsStable(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	id, err := g.Create(ctx, "note", Fields{"title": "A", "meta": map[string]any{"mood": "calm"}})
	require.NoError(t, err)
	a, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)

	// mutating a returned document does not leak into the store
	a.Fields["meta"].(map[string]any)["mood"] = "stormy"

	b, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.Equal(t, "calm", b.Fields["meta"].(map[string]any)["mood"])
	require.Equal(t, a.UpdatedAt, b.UpdatedAt)
}

func TestMemoryGateway_ReservedFields(t *testing.T) {
	g := NewMemoryGateway(Options{Clock: NewClock(nil)})
	ctx := context.Background()

	stale := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	id, err := g.Create(ctx, "note", Fields{"title": "A", "id": "caller", "_id": "caller", "updated_at": stale})
	require.NoError(t, err)

	d, err := g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	assert.False(t, d.Has("id"))
	assert.False(t, d.Has("_id"))
	assert.True(t, d.UpdatedAt.After(stale))

	created := d.CreatedAt
	_, err = g.Update(ctx, "note", id.String(), Fields{"created_at": stale, "id": "x"})
	require.NoError(t, err)
	d, err = g.Get(ctx, "note", id.String())
	require.NoError(t, err)
	assert.Equal(t, created, d.CreatedAt)
	assert.False(t, d.Has("id"))
}

func TestMemoryGateway_CreatedAtPolicy(t *testing.T) {
	ctx := context.Background()
	supplied := time.Date(2020, 2, 2, 10, 0, 0, 0, time.UTC)

	honor := NewMemoryGateway(Options{CreatedAt: HonorCreatedAt, Clock: NewClock(nil)})
	id, err := honor.Create(ctx, "note", Fields{"title": "A", "created_at": supplied})
	require.NoError(t, err)
	d, err := honor.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.Equal(t, supplied, d.CreatedAt)
	require.True(t, d.UpdatedAt.After(supplied))

	stamp := NewMemoryGateway(Options{CreatedAt: StampCreatedAt, Clock: NewClock(nil)})
	id, err = stamp.Create(ctx, "note", Fields{"title": "A", "created_at": supplied})
	require.NoError(t, err)
	d, err = stamp.Get(ctx, "note", id.String())
	require.NoError(t, err)
	require.True(t, d.CreatedAt.After(supplied))
	require.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestMemoryGateway_InvalidIdentifier(t *testing.T) {
	g := NewMemoryGateway(Options{})
	ctx := context.Background()

	_, err := g.Get(ctx, "note", "not-a-valid-id")
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = g.Update(ctx, "note", "123", Fields{"title": "x"})
	require.ErrorIs(t, err, ErrInvalidIdentifier)
	_, err = g.Delete(ctx, "note", "")
	require.ErrorIs(t, err, ErrInvalidIdentifier)

	// well formed but unused
	d, err := g.Get(ctx, "note", NewID().String())
	require.NoError(t, err)
	require.Nil(t, d)
	ok, err := g.Update(ctx, "note", NewID().String(), Fields{"title": "x"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryGateway_EmptyCollection(t *testing.T) {
	g := NewMemoryGateway(Options{})
	_, err := g.Create(context.Background(), "", Fields{})
	require.ErrorIs(t, err, ErrInvalidCollection)
	_, err = g.List(context.Background(), "", ListOptions{})
	require.ErrorIs(t, err, ErrInvalidCollection)
}

func TestMemoryGateway_Collections(t *testing.T) {
	g := NewMemoryGateway(Options{})
	ctx := context.Background()
	_, err := g.Create(ctx, "note", Fields{"title": "A"})
	require.NoError(t, err)
	fid, err := g.Create(ctx, "folder", Fields{"name": "F"})
	require.NoError(t, err)

	names, err := g.Collections(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"folder", "note"}, names)

	_, err = g.Delete(ctx, "folder", fid.String())
	require.NoError(t, err)
	names, err = g.Collections(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"note"}, names)
}
