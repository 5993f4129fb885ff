package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/dairy-ledger/pkg/store"
	"github.com/tair/dairy-ledger/pkg/store/storetest"
)

type note struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"uniqueIndex"`
	Body      string
	Day       string
	Version   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (note) TableName() string { return "notes" }

func newGateway(t *testing.T) store.Gateway {
	return storetest.NewGateway(t, &note{})
}

func TestCreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	n := &note{Key: "a", Body: "first"}
	require.NoError(t, gw.Create(ctx, n))
	require.NotZero(t, n.ID)

	var got note
	require.NoError(t, gw.Get(ctx, n.ID, &got))
	assert.Equal(t, "first", got.Body)

	require.NoError(t, gw.Update(ctx, &note{}, n.ID, map[string]interface{}{"body": "second"}))
	require.NoError(t, gw.Get(ctx, n.ID, &got))
	assert.Equal(t, "second", got.Body)

	require.NoError(t, gw.Delete(ctx, &note{}, n.ID))
	assert.ErrorIs(t, gw.Get(ctx, n.ID, &got), store.ErrNotFound)
	assert.ErrorIs(t, gw.Delete(ctx, &note{}, n.ID), store.ErrNotFound)
	assert.ErrorIs(t, gw.Update(ctx, &note{}, n.ID, map[string]interface{}{"body": "x"}), store.ErrNotFound)
}

func TestDuplicateKey(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	require.NoError(t, gw.Create(ctx, &note{Key: "same"}))
	err := gw.Create(ctx, &note{Key: "same"})
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestQueryFiltersAreHalfOpen(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	for i, day := range []string{"2026-10-17", "2026-10-18", "2026-10-18", "2026-10-19"} {
		require.NoError(t, gw.Create(ctx, &note{Key: string(rune('a' + i)), Day: day}))
	}

	var notes []note
	q := store.Q().
		Where("day", store.Gte, "2026-10-18").
		Where("day", store.Lt, "2026-10-19").
		OrderBy("id", true)
	require.NoError(t, gw.Query(ctx, &notes, q))
	require.Len(t, notes, 2)
	assert.Greater(t, notes[0].ID, notes[1].ID)

	n, err := gw.Count(ctx, &note{}, q)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var first note
	require.NoError(t, gw.First(ctx, &first, store.Q().Where("day", store.Eq, "2026-10-19")))
	assert.Equal(t, "d", first.Key)
	assert.ErrorIs(t, gw.First(ctx, &first, store.Q().Where("day", store.Eq, "2030-01-01")), store.ErrNotFound)
}

func TestQueryRejectsUnsafeFields(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	var notes []note
	err := gw.Query(ctx, &notes, store.Q().Where("day; drop table notes", store.Eq, "x"))
	assert.ErrorIs(t, err, store.ErrInvalidFilter)

	err = gw.Query(ctx, &notes, store.Q().Where("day", store.Op("LIKE"), "x"))
	assert.ErrorIs(t, err, store.ErrInvalidFilter)
}

func TestCompareAndUpdate(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	n := &note{Key: "cas"}
	require.NoError(t, gw.Create(ctx, n))

	require.NoError(t, gw.CompareAndUpdate(ctx, &note{}, n.ID, 0, map[string]interface{}{"body": "v1"}))

	// A writer that read version 0 loses.
	err := gw.CompareAndUpdate(ctx, &note{}, n.ID, 0, map[string]interface{}{"body": "stale"})
	assert.ErrorIs(t, err, store.ErrConflict)

	var got note
	require.NoError(t, gw.Get(ctx, n.ID, &got))
	assert.Equal(t, "v1", got.Body)
	assert.EqualValues(t, 1, got.Version)

	err = gw.CompareAndUpdate(ctx, &note{}, 9999, 0, map[string]interface{}{"body": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	boom := errors.New("boom")

	err := gw.Transaction(ctx, func(tx store.Gateway) error {
		require.NoError(t, tx.Create(ctx, &note{Key: "rolled-back"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := gw.Count(ctx, &note{}, store.Q())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, gw.Transaction(ctx, func(tx store.Gateway) error {
		return tx.Create(ctx, &note{Key: "committed"})
	}))
	n, err = gw.Count(ctx, &note{}, store.Q())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRetryOnConflict(t *testing.T) {
	calls := 0
	err := store.RetryOnConflict(context.Background(), 3, func() error {
		calls++
		if calls < 3 {
			return store.ErrConflict
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = store.RetryOnConflict(context.Background(), 2, func() error {
		calls++
		return store.ErrConflict
	})
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Equal(t, 2, calls)
}
