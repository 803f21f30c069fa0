package contract

import (
	"comments-contract/db"
	"comments-contract/types"
)

type PoolEvent struct {
	ID uint64 `json:"_id"`
}

type SetActiveEvent struct {
	ID     uint64 `json:"_id"`
	Active bool   `json:"active"`
}

func (c *Contract) getPool(ctx *Context, id uint64) (*types.RewardPool, error) {
	pool := &types.RewardPool{ID: id}
	found, err := db.GetRecord(ctx.Store, pool)
	if err != nil || !found {
		return nil, err
	}
	return pool, nil
}

func (c *Contract) savePool(ctx *Context, pool *types.RewardPool) error {
	return db.PutRecord(ctx.Store, pool)
}

// pools lists every pool in id order.
func (c *Contract) pools(ctx *Context, activeOnly bool) ([]*types.RewardPool, error) {
	var pools []*types.RewardPool
	err := ctx.Store.Iterate((&types.RewardPool{}).Prefix(), "", false, func(key string, value []byte) (bool, error) {
		pool := &types.RewardPool{}
		if err := db.Unmarshal(value, pool); err != nil {
			return false, err
		}
		if pool.Active || !activeOnly {
			pools = append(pools, pool)
		}
		return true, nil
	})
	return pools, err
}

// poolForIssuer loads the pool named by rewardPoolId and checks the sender issued its token.
func (c *Contract) poolForIssuer(ctx *Context, p payload) (*types.RewardPool, *types.Token, error) {
	id, ok := p.intField("rewardPoolId")
	if !ok || id <= 0 {
		return nil, nil, validationf("invalid rewardPoolId")
	}
	pool, err := c.getPool(ctx, uint64(id))
	if err != nil {
		return nil, nil, err
	}
	if pool == nil {
		return nil, nil, stateErr("reward pool not found")
	}
	token, err := ctx.Tokens.GetToken(pool.Symbol)
	if err != nil {
		return nil, nil, err
	}
	if token == nil {
		return nil, nil, errTokenMissing(pool.Symbol)
	}
	if token.Issuer != ctx.Sender {
		return nil, nil, unauthorized("must be issuer of token")
	}
	return pool, token, nil
}

func (c *Contract) createRewardPool(ctx *Context) error {
	if !ctx.Signed {
		return unauthorized("you must use a transaction signed with your active key")
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	symbol, ok := p.stringField("symbol")
	if !ok || symbol == "" {
		return validationf("invalid params")
	}
	cfgPayload, ok := p.objectField("config")
	if !ok {
		return validationf("config invalid")
	}

	token, err := ctx.Tokens.GetToken(symbol)
	if err != nil {
		return err
	}
	if token == nil {
		return stateErr("token not found")
	}
	if token.Issuer != ctx.Sender {
		return unauthorized("must be issuer of token")
	}
	if !token.StakingEnabled {
		return stateErr("token must have staking enabled")
	}
	cfg, err := parseConfig(cfgPayload, token.Precision)
	if err != nil {
		return err
	}

	index := &types.RewardPoolSymbol{Symbol: symbol}
	exists, err := db.GetRecord(ctx.Store, index)
	if err != nil {
		return err
	}
	if exists {
		return stateErr("cannot create multiple reward pools per token")
	}

	params, err := c.loadParams(ctx)
	if err != nil {
		return err
	}
	if err = c.chargeFee(ctx, params.SetupFee, "you must have enough tokens to cover the creation fee"); err != nil {
		return err
	}

	now := ctx.Timestamp
	pool := &types.RewardPool{
		Symbol:                  symbol,
		Balance:                 "0",
		LastRewardTimestamp:     now,
		LastPostRewardTimestamp: now,
		LastClaimDecayTimestamp: now,
		CreatedTimestamp:        now,
		Config:                  *cfg,
		PendingClaims:           "0",
		ClaimDecayClock:         "0",
		Active:                  true,
	}
	if err = db.StoreRecord(ctx.Store, pool); err != nil {
		return err
	}
	index.RewardPoolId = pool.ID
	if err = db.PutRecord(ctx.Store, index); err != nil {
		return err
	}
	ctx.Logs.Emit(c.settings.Name, "createRewardPool", PoolEvent{ID: pool.ID})
	return nil
}

// updateRewardPool settles emission and claim decay under the old config
// before the new one takes effect.
func (c *Contract) updateRewardPool(ctx *Context) error {
	if !ctx.Signed {
		return unauthorized("you must use a transaction signed with your active key")
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	cfgPayload, ok := p.objectField("config")
	if !ok {
		return validationf("config invalid")
	}
	pool, token, err := c.poolForIssuer(ctx, p)
	if err != nil {
		return err
	}
	if !token.StakingEnabled {
		return stateErr("token must have staking enabled")
	}
	cfg, err := parseConfig(cfgPayload, token.Precision)
	if err != nil {
		return err
	}
	params, err := c.loadParams(ctx)
	if err != nil {
		return err
	}
	if err = c.chargeFee(ctx, params.UpdateFee, "you must have enough tokens to cover the update fee"); err != nil {
		return err
	}

	if err = c.accrue(ctx, pool); err != nil {
		return err
	}
	if err = decayClaims(pool, ctx.Timestamp); err != nil {
		return err
	}
	pool.Config = *cfg
	if err = c.savePool(ctx, pool); err != nil {
		return err
	}
	ctx.Logs.Emit(c.settings.Name, "updateRewardPool", PoolEvent{ID: pool.ID})
	return nil
}

// setActive pauses or resumes a pool. A resumed pool starts emitting and
// decaying from now rather than catching up on the pause.
func (c *Contract) setActive(ctx *Context) error {
	if !ctx.Signed {
		return unauthorized("you must use a transaction signed with your active key")
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	active, ok := p.boolField("active")
	if !ok {
		return validationf("invalid params")
	}
	pool, _, err := c.poolForIssuer(ctx, p)
	if err != nil {
		return err
	}
	if active && !pool.Active {
		pool.LastRewardTimestamp = ctx.Timestamp
		pool.LastClaimDecayTimestamp = ctx.Timestamp
	}
	pool.Active = active
	if err = c.savePool(ctx, pool); err != nil {
		return err
	}
	ctx.Logs.Emit(c.settings.Name, "setActive", SetActiveEvent{ID: pool.ID, Active: active})
	return nil
}
