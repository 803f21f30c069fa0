package contract

import (
	"strings"

	"comments-contract/db"
	"comments-contract/types"

	"github.com/shopspring/decimal"
)

type VoteEvent struct {
	RewardPoolId uint64 `json:"rewardPoolId"`
	Symbol       string `json:"symbol"`
	Voter        string `json:"voter"`
	Authorperm   string `json:"authorperm"`
	Weight       int64  `json:"weight"`
	Rshares      string `json:"rshares"`
}

// vote applies the vote to the authorperm in every pool where it is open.
func (c *Contract) vote(ctx *Context) error {
	if !c.isRelay(ctx) {
		return nil
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	voter, ok := p.stringField("voter")
	if !ok || voter == "" || strings.Contains(voter, "|") {
		return validationf("invalid voter")
	}
	author, permlink, err := postIdentity(p)
	if err != nil {
		return err
	}
	weight, ok := p.intField("weight")
	if !ok || weight < -MaxWeight || weight > MaxWeight {
		return validationf("weight must be an integer from %d to %d", -MaxWeight, MaxWeight)
	}

	open, err := c.openPosts(ctx, authorperm(author, permlink))
	if err != nil {
		return err
	}
	for _, o := range open {
		if err = c.applyVote(ctx, o.pool, o.post, voter, weight); err != nil {
			return err
		}
		if err = c.savePool(ctx, o.pool); err != nil {
			return err
		}
	}
	return nil
}

// rshares is stake * weight/10000 * power/10000 truncated toward zero.
func rshares(stake decimal.Decimal, weight, power int64) decimal.Decimal {
	raw := stake.Mul(decimal.NewFromInt(weight)).Mul(decimal.NewFromInt(power))
	return divTrunc(raw, bpsSqrd, SmtPrecision)
}

// applyVote records a first vote or replaces an earlier one. Only a first
// upvote earns curation weight; a changed vote forfeits it.
func (c *Contract) applyVote(ctx *Context, pool *types.RewardPool, post *types.Post, voter string, weight int64) error {
	v := &types.Vote{RewardPoolId: pool.ID, Authorperm: post.Authorperm, Voter: voter}
	existing, err := db.GetRecord(ctx.Store, v)
	if err != nil {
		return err
	}

	stake, err := ctx.Tokens.EffectiveStake(voter, pool.Symbol)
	if err != nil {
		return err
	}
	power, err := c.consumePower(ctx, pool, voter, weight)
	if err != nil {
		return err
	}
	shares := rshares(stake, weight, power)

	oldPositive := amount(post.VotePositiveRshareSum)
	newPositive := oldPositive
	event := "newVote"
	curationWeight := decimal.Zero
	if existing {
		event = "updateVote"
		previous := amount(v.Rshares)
		newPositive = newPositive.Sub(maxZero(previous)).Add(maxZero(shares))
		post.VoteRshareSum = smt(amount(post.VoteRshareSum).Sub(previous).Add(shares))
	} else {
		newPositive = newPositive.Add(maxZero(shares))
		if shares.Sign() > 0 {
			after, err := curationClaim(pool, newPositive)
			if err != nil {
				return err
			}
			before, err := curationClaim(pool, oldPositive)
			if err != nil {
				return err
			}
			curationWeight = maxZero(after.Sub(before))
		}
		post.VoteRshareSum = smt(amount(post.VoteRshareSum).Add(shares))
	}
	post.VotePositiveRshareSum = smt(newPositive)

	v.Symbol = pool.Symbol
	v.Timestamp = ctx.Timestamp
	v.Weight = weight
	v.Rshares = smt(shares)
	v.CurationWeight = formatClaims(curationWeight)
	if !newPositive.Equal(oldPositive) {
		after, err := postClaim(pool, newPositive)
		if err != nil {
			return err
		}
		before, err := postClaim(pool, oldPositive)
		if err != nil {
			return err
		}
		if err = adjustClaims(pool, post, after.Sub(before), ctx.Timestamp); err != nil {
			return err
		}
	}
	if err = db.PutRecord(ctx.Store, v); err != nil {
		return err
	}
	if err = db.PutRecord(ctx.Store, post); err != nil {
		return err
	}

	ctx.Logs.Emit(c.settings.Name, event, VoteEvent{
		RewardPoolId: pool.ID,
		Symbol:       pool.Symbol,
		Voter:        voter,
		Authorperm:   post.Authorperm,
		Weight:       weight,
		Rshares:      v.Rshares,
	})
	return nil
}
