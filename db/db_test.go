package db

import (
	"testing"
	"time"

	"comments-contract/types"

	"github.com/stretchr/testify/require"
)

func newTestDb(t *testing.T) *LDB {
	l, err := NewMemLdb(16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func collect(t *testing.T, s Store, start, limit string, reverse bool) []string {
	var keys []string
	err := s.Iterate(start, limit, reverse, func(key string, value []byte) (bool, error) {
		keys = append(keys, key+"="+string(value))
		return true, nil
	})
	require.NoError(t, err)
	return keys
}

func TestTxReadYourWrites(t *testing.T) {
	l := newTestDb(t)

	tx := l.Begin()
	tx.Put("a", []byte("1"))
	v, err := tx.Get("a")
	require.NoError(t, err)
	require.Equal(t, "1", string(v))

	committed, err := l.get("a")
	require.NoError(t, err)
	require.Nil(t, committed)

	require.NoError(t, tx.Commit())
	committed, err = l.get("a")
	require.NoError(t, err)
	require.Equal(t, "1", string(committed))
}

func TestTxSnapshotRestore(t *testing.T) {
	l := newTestDb(t)
	require.NoError(t, l.Transaction(func(tx *Tx) error {
		tx.Put("k", []byte("old"))
		return nil
	}))

	tx := l.Begin()
	snap := tx.Snapshot()
	tx.Put("k", []byte("new"))
	tx.Delete("k")
	tx.Put("other", []byte("x"))
	tx.Restore(snap)
	require.False(t, tx.Dirty())

	v, err := tx.Get("k")
	require.NoError(t, err)
	require.Equal(t, "old", string(v))
}

func TestTxCommitInvalidatesCache(t *testing.T) {
	l := newTestDb(t)
	require.NoError(t, l.Transaction(func(tx *Tx) error {
		tx.Put("k", []byte("1"))
		return nil
	}))
	_, err := l.get("k")
	require.NoError(t, err)

	require.NoError(t, l.Transaction(func(tx *Tx) error {
		tx.Put("k", []byte("2"))
		return nil
	}))
	v, err := l.get("k")
	require.NoError(t, err)
	require.Equal(t, "2", string(v))

	require.NoError(t, l.Transaction(func(tx *Tx) error {
		tx.Delete("k")
		return nil
	}))
	v, err = l.get("k")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestTxIterateMergesOverlay(t *testing.T) {
	l := newTestDb(t)
	require.NoError(t, l.Transaction(func(tx *Tx) error {
		tx.Put("p_1", []byte("a"))
		tx.Put("p_3", []byte("c"))
		tx.Put("p_5", []byte("e"))
		tx.Put("q_1", []byte("z"))
		return nil
	}))

	tx := l.Begin()
	tx.Put("p_2", []byte("b"))
	tx.Put("p_3", []byte("C"))
	tx.Delete("p_5")
	tx.Put("p_6", []byte("f"))

	require.Equal(t, []string{"p_1=a", "p_2=b", "p_3=C", "p_6=f"}, collect(t, tx, "p_", "", false))
	require.Equal(t, []string{"p_6=f", "p_3=C", "p_2=b", "p_1=a"}, collect(t, tx, "p_", "", true))
	require.Equal(t, []string{"p_2=b", "p_3=C"}, collect(t, tx, "p_2", "p_4", false))
}

func TestTxIterateStops(t *testing.T) {
	l := newTestDb(t)
	tx := l.Begin()
	for _, k := range []string{"x_1", "x_2", "x_3"} {
		tx.Put(k, []byte(k))
	}
	var seen []string
	require.NoError(t, tx.Iterate("x_", "", false, func(key string, value []byte) (bool, error) {
		seen = append(seen, key)
		return len(seen) < 2, nil
	}))
	require.Equal(t, []string{"x_1", "x_2"}, seen)
}

func TestStoreRecordAutoId(t *testing.T) {
	l := newTestDb(t)
	now := time.Date(2024, 6, 11, 10, 51, 1, 0, time.UTC)

	err := l.Transaction(func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			h := &types.RewardPoolHistory{RewardPoolId: 1, Symbol: "TKN", Balance: "1", Time: now}
			if err := StoreRecord(tx, h); err != nil {
				return err
			}
		}
		return StoreRecord(tx, &types.Chain{Name: "main", Height: 7})
	})
	require.NoError(t, err)

	records, total, err := l.GetAllRecordsWithAutoId(&types.RewardPoolHistory{RewardPoolId: 1}, 2, 0, false)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, records, 2)
	require.Equal(t, uint64(3), records[0].(*types.RewardPoolHistory).ID)
	require.Equal(t, uint64(2), records[1].(*types.RewardPoolHistory).ID)

	records, _, err = l.GetAllRecordsWithAutoId(&types.RewardPoolHistory{RewardPoolId: 1}, 10, 1, true)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, uint64(2), records[0].(*types.RewardPoolHistory).ID)

	chain := &types.Chain{Name: "main"}
	found, err := l.GetRecordByType(chain)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int64(7), chain.Height)
}

func TestCorruptCounterFails(t *testing.T) {
	l := newTestDb(t)
	h := &types.RewardPoolHistory{RewardPoolId: 1, Symbol: "TKN", Balance: "1"}
	err := l.Transaction(func(tx *Tx) error {
		tx.Put(autoIncrementKey(h.Prefix()), []byte{1, 2, 3})
		return StoreRecord(tx, h)
	})
	require.Error(t, err)

	id, err := BytesToUint64(Uint64ToBytes(42))
	require.NoError(t, err)
	require.Equal(t, uint64(42), id)
}
