package cornjob

import (
	"context"
	"testing"
	"time"

	"comments-contract/db"
	"comments-contract/service"
	"comments-contract/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveSnapshots(t *testing.T) {
	ldb, err := db.NewMemLdb(db.DefaultCacheSize)
	require.NoError(t, err)
	defer ldb.Close()

	require.NoError(t, ldb.Transaction(func(tx *db.Tx) error {
		for _, symbol := range []string{"AAA", "BBB"} {
			pool := &types.RewardPool{Symbol: symbol, Balance: "12.5", PendingClaims: "3.0000000000", Active: true}
			if err := db.StoreRecord(tx, pool); err != nil {
				return err
			}
		}
		return nil
	}))

	s := service.NewService(ldb, "hive")
	job := NewPoolSnapshotJob(ldb, s)
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return at }
	require.NoError(t, job.SaveSnapshots(context.Background()))
	require.NoError(t, job.SaveSnapshots(context.Background()))

	history, total, err := s.GetPoolHistory(2, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, history, 2)
	assert.Equal(t, "BBB", history[0].Symbol)
	assert.Equal(t, "12.5", history[0].Balance)
	assert.Equal(t, "3.0000000000", history[0].PendingClaims)
	assert.True(t, at.Equal(history[0].Time))
	assert.Equal(t, uint64(2), history[0].ID)
}
