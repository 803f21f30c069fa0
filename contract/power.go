package contract

import (
	"comments-contract/db"
	"comments-contract/types"

	sdkmath "cosmossdk.io/math"
)

var fullPower = sdkmath.NewInt(MaxPower)

// regenerate restores power linearly to full over regenDays.
func regenerate(stored, elapsedMs, regenDays int64) int64 {
	if elapsedMs <= 0 || regenDays <= 0 {
		return stored
	}
	gained := fullPower.MulRaw(elapsedMs).QuoRaw(regenDays * dayMs)
	power := sdkmath.NewInt(stored).Add(gained)
	return sdkmath.MinInt(power, fullPower).Int64()
}

// consumption is ceil(perVote * |weight| / 10000), at least one point.
func consumption(perVote, weight int64) int64 {
	if weight < 0 {
		weight = -weight
	}
	n := sdkmath.NewInt(perVote).MulRaw(weight).AddRaw(MaxWeight - 1).QuoRaw(MaxWeight).Int64()
	if n < 1 {
		n = 1
	}
	return n
}

func (c *Contract) getVotingPower(ctx *Context, pool *types.RewardPool, account string) (*types.VotingPower, error) {
	vp := &types.VotingPower{RewardPoolId: pool.ID, Account: account}
	found, err := db.GetRecord(ctx.Store, vp)
	if err != nil {
		return nil, err
	}
	if !found {
		vp.VotingPower = MaxPower
		vp.DownvotingPower = MaxPower
		vp.LastVoteTimestamp = ctx.Timestamp
	}
	return vp, nil
}

// CurrentPower is the regenerated view of vp at now, without consuming anything.
func CurrentPower(pool *types.RewardPool, vp *types.VotingPower, now int64) (up, down int64) {
	elapsed := now - vp.LastVoteTimestamp
	up = regenerate(vp.VotingPower, elapsed, pool.Config.VoteRegenerationDays)
	down = regenerate(vp.DownvotingPower, elapsed, pool.Config.DownvoteRegenerationDays)
	return up, down
}

// consumePower regenerates the voter's power, spends the share a vote of
// weight costs and returns the power level before spending. Zero weight
// leaves the record alone.
func (c *Contract) consumePower(ctx *Context, pool *types.RewardPool, account string, weight int64) (int64, error) {
	vp, err := c.getVotingPower(ctx, pool, account)
	if err != nil {
		return 0, err
	}
	up, down := CurrentPower(pool, vp, ctx.Timestamp)

	var applied int64
	switch {
	case weight > 0:
		applied = up
		up -= consumption(pool.Config.VotePowerConsumption, weight)
		if up < 0 {
			up = 0
		}
	case weight < 0:
		applied = down
		down -= consumption(pool.Config.DownvotePowerConsumption, weight)
		if down < 0 {
			down = 0
		}
	default:
		return up, nil
	}

	vp.VotingPower = up
	vp.DownvotingPower = down
	vp.LastVoteTimestamp = ctx.Timestamp
	return applied, db.PutRecord(ctx.Store, vp)
}
