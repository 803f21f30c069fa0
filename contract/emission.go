package contract

import (
	"comments-contract/types"

	"github.com/shopspring/decimal"
)

// accrue mints every whole reward interval elapsed since the last emission
// into the pool. Partial intervals carry over.
func (c *Contract) accrue(ctx *Context, pool *types.RewardPool) error {
	if !pool.Active {
		return nil
	}
	intervalMs := pool.Config.RewardIntervalSeconds * 1000
	if intervalMs <= 0 {
		return nil
	}
	intervals := (ctx.Timestamp - pool.LastRewardTimestamp) / intervalMs
	if intervals <= 0 {
		return nil
	}
	reward := amount(pool.Config.RewardPerInterval).Mul(decimal.NewFromInt(intervals))
	if reward.Sign() > 0 {
		token, err := ctx.Tokens.GetToken(pool.Symbol)
		if err != nil {
			return err
		}
		if token == nil {
			return errTokenMissing(pool.Symbol)
		}
		if err = ctx.Tokens.IssueToContract(c.settings.Name, pool.Symbol, reward); err != nil {
			return err
		}
		pool.Balance = quantity(amount(pool.Balance).Add(reward), token.Precision)
	}
	pool.LastRewardTimestamp += intervals * intervalMs
	return nil
}
