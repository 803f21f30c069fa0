package contract

import (
	"comments-contract/types"

	"github.com/shopspring/decimal"
)

type RewardEvent struct {
	RewardPoolId uint64 `json:"rewardPoolId"`
	Authorperm   string `json:"authorperm"`
	Symbol       string `json:"symbol"`
	Account      string `json:"account"`
	Quantity     string `json:"quantity"`
}

// payoutAmount is the post's share of the pool: balance * claim / pendingClaims.
func payoutAmount(balance, claim, pending decimal.Decimal, precision int32) decimal.Decimal {
	if claim.Sign() <= 0 || balance.Sign() <= 0 {
		return decimal.Zero
	}
	if pending.LessThanOrEqual(claim) {
		return balance
	}
	payout := divTrunc(balance.Mul(claim), pending, precision)
	if payout.GreaterThan(balance) {
		return balance
	}
	return payout
}

// distribute pays out one post from the pool balance. claim is the post's
// decayed contribution and pending the pool's decayed claims at this round.
// A declined payout still leaves the pool. Rounding residue of an accepted
// payout stays in the pool.
func (c *Contract) distribute(ctx *Context, pool *types.RewardPool, token *types.Token, post *types.Post, votes []*types.Vote, claim, pending decimal.Decimal) error {
	precision := token.Precision
	balance := amount(pool.Balance)
	payout := payoutAmount(balance, claim, pending, precision)

	if post.DeclinePayout {
		pool.Balance = quantity(balance.Sub(payout), precision)
		ctx.Logs.Emit(c.settings.Name, "authorReward", RewardEvent{
			RewardPoolId: pool.ID,
			Authorperm:   post.Authorperm,
			Symbol:       pool.Symbol,
			Account:      post.Author,
			Quantity:     "0",
		})
		return nil
	}
	if payout.Sign() <= 0 {
		return nil
	}

	totalWeight := decimal.Zero
	for _, v := range votes {
		totalWeight = totalWeight.Add(maxZero(amount(v.CurationWeight)))
	}
	// with no curator to receive it the curation share goes to the author side
	curationPool := decimal.Zero
	if totalWeight.Sign() > 0 {
		curationPool = divTrunc(payout.Mul(decimal.NewFromInt(pool.Config.CurationRewardPercentage)), hundred, precision)
	}
	authorPool := payout.Sub(curationPool)
	paid := decimal.Zero

	remaining := authorPool
	for _, b := range post.Beneficiaries {
		share := divTrunc(authorPool.Mul(decimal.NewFromInt(b.Weight)), maxBps, precision)
		if share.Sign() <= 0 {
			continue
		}
		if err := c.pay(ctx, pool, token, post, "beneficiaryReward", b.Account, share); err != nil {
			return err
		}
		remaining = remaining.Sub(share)
		paid = paid.Add(share)
	}
	if remaining.Sign() > 0 {
		if err := c.pay(ctx, pool, token, post, "authorReward", post.Author, remaining); err != nil {
			return err
		}
		paid = paid.Add(remaining)
	}

	for _, v := range votes {
		w := amount(v.CurationWeight)
		if w.Sign() <= 0 {
			continue
		}
		share := divTrunc(curationPool.Mul(w), totalWeight, precision)
		if share.Sign() <= 0 {
			continue
		}
		if err := c.pay(ctx, pool, token, post, "curationReward", v.Voter, share); err != nil {
			return err
		}
		paid = paid.Add(share)
	}

	pool.Balance = quantity(balance.Sub(paid), precision)
	return nil
}

// pay splits qty into a staked and a liquid part and moves both out of the contract.
func (c *Contract) pay(ctx *Context, pool *types.RewardPool, token *types.Token, post *types.Post, event, account string, qty decimal.Decimal) error {
	staked := divTrunc(qty.Mul(decimal.NewFromInt(pool.Config.StakedRewardPercentage)), hundred, token.Precision)
	liquid := qty.Sub(staked)
	if staked.Sign() > 0 {
		if err := ctx.Tokens.StakeFromContract(c.settings.Name, account, pool.Symbol, staked); err != nil {
			return err
		}
	}
	if liquid.Sign() > 0 {
		if err := ctx.Tokens.TransferFromContract(c.settings.Name, account, pool.Symbol, liquid); err != nil {
			return err
		}
	}
	ctx.Logs.Emit(c.settings.Name, event, RewardEvent{
		RewardPoolId: pool.ID,
		Authorperm:   post.Authorperm,
		Symbol:       pool.Symbol,
		Account:      account,
		Quantity:     quantity(qty, token.Precision),
	})
	return nil
}
