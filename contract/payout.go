package contract

import (
	"comments-contract/db"
	"comments-contract/logger"
	"comments-contract/types"
)

// Maintain runs emission and due payouts for the pools whose turn it is.
func (c *Contract) Maintain(ctx *Context) error {
	params, err := c.loadParams(ctx)
	if err != nil {
		return err
	}
	pools, err := c.selectPools(ctx, params)
	if err != nil {
		return err
	}
	for _, pool := range pools {
		if err = c.maintainPool(ctx, pool, params); err != nil {
			return err
		}
	}
	return nil
}

// selectPools picks the active pools to maintain. With a per-block budget the
// pools are visited round robin, resuming after the last one processed, and no
// pool is visited twice within one block.
func (c *Contract) selectPools(ctx *Context, params *types.Params) ([]*types.RewardPool, error) {
	active, err := c.pools(ctx, true)
	if err != nil {
		return nil, err
	}
	budget := params.MaintenanceTokensPerBlock
	if budget <= 0 || int(budget) >= len(active) {
		return active, nil
	}

	cursor := *params
	if cursor.LastMaintenanceBlock != ctx.RefBlockNumber {
		cursor.LastMaintenanceBlock = ctx.RefBlockNumber
		cursor.PoolsProcessedInBlock = 0
	}
	n := int(budget)
	if left := len(active) - int(cursor.PoolsProcessedInBlock); left < n {
		n = left
	}
	if n <= 0 {
		return nil, nil
	}

	start := 0
	for i, pool := range active {
		if pool.ID > cursor.LastProcessedPoolId {
			start = i
			break
		}
	}
	selected := make([]*types.RewardPool, 0, n)
	for i := 0; i < n; i++ {
		selected = append(selected, active[(start+i)%len(active)])
	}
	cursor.LastProcessedPoolId = selected[len(selected)-1].ID
	cursor.PoolsProcessedInBlock += int64(n)
	return selected, c.saveParams(ctx, &cursor)
}

func (c *Contract) maintainPool(ctx *Context, pool *types.RewardPool, params *types.Params) error {
	if err := c.accrue(ctx, pool); err != nil {
		return err
	}
	if ctx.Timestamp <= pool.LastPostRewardTimestamp {
		return c.savePool(ctx, pool)
	}

	due, err := c.duePosts(ctx, pool, params.MaxPostsProcessedPerRound)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return c.savePool(ctx, pool)
	}

	token, err := ctx.Tokens.GetToken(pool.Symbol)
	if err != nil {
		return err
	}
	if token == nil {
		return errTokenMissing(pool.Symbol)
	}
	if err = decayClaims(pool, ctx.Timestamp); err != nil {
		return err
	}
	for _, post := range due {
		votes, err := c.postVotes(ctx, post, params.VoteQueryLimit)
		if err != nil {
			return err
		}
		claim, err := postContribution(pool, post)
		if err != nil {
			return err
		}
		if err = c.distribute(ctx, pool, token, post, votes, claim, amount(pool.PendingClaims)); err != nil {
			return err
		}
		if err = c.removePost(ctx, post); err != nil {
			return err
		}
		pool.PendingClaims = formatClaims(maxZero(amount(pool.PendingClaims).Sub(claim)))
	}
	logger.Logger.Debugf("reward pool %d (%s) paid %d posts, balance %s, pending claims %s",
		pool.ID, pool.Symbol, len(due), pool.Balance, pool.PendingClaims)
	pool.LastPostRewardTimestamp = ctx.Timestamp
	return c.savePool(ctx, pool)
}

// duePosts returns up to limit posts of the pool whose cashout time has passed, oldest first.
func (c *Contract) duePosts(ctx *Context, pool *types.RewardPool, limit int64) ([]*types.Post, error) {
	var posts []*types.Post
	start := types.PostCashoutPrefix(pool.ID)
	end := types.PostCashoutLimit(pool.ID, ctx.Timestamp)
	err := ctx.Store.Iterate(start, end, false, func(key string, value []byte) (bool, error) {
		idx := &types.PostCashout{}
		if err := db.Unmarshal(value, idx); err != nil {
			return false, err
		}
		post := &types.Post{RewardPoolId: pool.ID, Authorperm: idx.Authorperm}
		found, err := db.GetRecord(ctx.Store, post)
		if err != nil {
			return false, err
		}
		if found {
			posts = append(posts, post)
		}
		return int64(len(posts)) < limit, nil
	})
	return posts, err
}

func (c *Contract) postVotes(ctx *Context, post *types.Post, limit int64) ([]*types.Vote, error) {
	var votes []*types.Vote
	err := ctx.Store.Iterate(types.VotePrefix(post.RewardPoolId, post.Authorperm), "", false, func(key string, value []byte) (bool, error) {
		v := &types.Vote{}
		if err := db.Unmarshal(value, v); err != nil {
			return false, err
		}
		votes = append(votes, v)
		return int64(len(votes)) < limit, nil
	})
	return votes, err
}

// removePost drops a paid post with its indexes and votes and leaves a
// tombstone so it cannot be registered again.
func (c *Contract) removePost(ctx *Context, post *types.Post) error {
	var voteKeys []string
	err := ctx.Store.Iterate(types.VotePrefix(post.RewardPoolId, post.Authorperm), "", false, func(key string, value []byte) (bool, error) {
		voteKeys = append(voteKeys, key)
		return true, nil
	})
	if err != nil {
		return err
	}
	for _, key := range voteKeys {
		ctx.Store.Delete(key)
	}
	db.DeleteRecord(ctx.Store, post)
	db.DeleteRecord(ctx.Store, &types.PostCashout{RewardPoolId: post.RewardPoolId, CashoutTime: post.CashoutTime, Authorperm: post.Authorperm})
	db.DeleteRecord(ctx.Store, &types.PostAuthorperm{Authorperm: post.Authorperm, RewardPoolId: post.RewardPoolId})
	return db.PutRecord(ctx.Store, &types.PaidPost{RewardPoolId: post.RewardPoolId, Authorperm: post.Authorperm, PaidAt: ctx.Timestamp})
}
