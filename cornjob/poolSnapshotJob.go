package cornjob

import (
	"context"
	"time"

	"comments-contract/db"
	"comments-contract/logger"
	"comments-contract/service"
	"comments-contract/types"
	"comments-contract/util/cron"
)

type PoolSnapshotJob struct {
	ldb     *db.LDB
	service service.IService
	now     func() time.Time
}

// CronJobPoolSnapshotInit schedules the pool snapshot job and returns the
// running scheduler.
func CronJobPoolSnapshotInit(ldb *db.LDB, s service.IService, spec string) *cron.Cron {
	c := cron.NewCron()
	c.Register("Pool snapshot job", spec, NewPoolSnapshotJob(ldb, s).SaveSnapshots)
	c.Start()
	return c
}

func NewPoolSnapshotJob(ldb *db.LDB, s service.IService) *PoolSnapshotJob {
	return &PoolSnapshotJob{ldb: ldb, service: s, now: time.Now}
}

// SaveSnapshots records the balance and pending claims of every pool.
func (j *PoolSnapshotJob) SaveSnapshots(ctx context.Context) error {
	pools, err := j.service.GetRewardPools()
	if err != nil {
		return err
	}
	now := j.now()
	err = j.ldb.Transaction(func(tx *db.Tx) error {
		for _, pool := range pools {
			history := &types.RewardPoolHistory{
				RewardPoolId:  pool.ID,
				Symbol:        pool.Symbol,
				Balance:       pool.Balance,
				PendingClaims: pool.PendingClaims,
				Time:          now,
			}
			if err := db.StoreRecord(tx, history); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Logger.Errorf("corn job t.ldb.Transaction : %v", err)
	}
	return err
}
