package contract

import (
	"comments-contract/db"
	"comments-contract/types"

	"github.com/shopspring/decimal"
)

func DefaultParams() *types.Params {
	return &types.Params{
		SetupFee:                  "1000",
		UpdateFee:                 "20",
		MaxPostsProcessedPerRound: 20,
		VoteQueryLimit:            100,
	}
}

func (c *Contract) loadParams(ctx *Context) (*types.Params, error) {
	if ctx.params != nil {
		return ctx.params, nil
	}
	params := &types.Params{}
	found, err := db.GetRecord(ctx.Store, params)
	if err != nil {
		return nil, err
	}
	if !found {
		params = DefaultParams()
	}
	ctx.params = params
	return params, nil
}

func (c *Contract) saveParams(ctx *Context, params *types.Params) error {
	ctx.params = params
	return db.PutRecord(ctx.Store, params)
}

// updateParams lets the contract owner change the contract-wide tunables.
func (c *Contract) updateParams(ctx *Context) error {
	if ctx.Sender != c.settings.Owner {
		return unauthorized("not authorized")
	}
	p, ok := parsePayload(ctx.Payload)
	if !ok {
		return validationf("invalid params")
	}
	params, err := c.loadParams(ctx)
	if err != nil {
		return err
	}
	updated := *params

	for _, fee := range []struct {
		key    string
		target *string
	}{
		{"setupFee", &updated.SetupFee},
		{"updateFee", &updated.UpdateFee},
	} {
		if !p.has(fee.key) {
			continue
		}
		s, ok := p.stringField(fee.key)
		if !ok {
			return validationf("invalid %s", fee.key)
		}
		d, err := decimal.NewFromString(s)
		if err != nil || d.Sign() < 0 {
			return validationf("invalid %s", fee.key)
		}
		*fee.target = s
	}

	for _, limit := range []struct {
		key    string
		min    int64
		target *int64
	}{
		{"maxPostsProcessedPerRound", 1, &updated.MaxPostsProcessedPerRound},
		{"voteQueryLimit", 1, &updated.VoteQueryLimit},
		{"maintenanceTokensPerBlock", 0, &updated.MaintenanceTokensPerBlock},
	} {
		if !p.has(limit.key) {
			continue
		}
		n, ok := p.intField(limit.key)
		if !ok || n < limit.min {
			return validationf("invalid %s", limit.key)
		}
		*limit.target = n
	}

	return c.saveParams(ctx, &updated)
}

// chargeFee burns fee of the fee token from the sender's liquid balance.
func (c *Contract) chargeFee(ctx *Context, fee string, msg string) error {
	amt := amount(fee)
	if amt.Sign() <= 0 {
		return nil
	}
	token, err := ctx.Tokens.GetToken(c.settings.FeeSymbol)
	if err != nil {
		return err
	}
	if token == nil {
		return economic(msg)
	}
	if amt = amt.Truncate(token.Precision); amt.Sign() <= 0 {
		return nil
	}
	balance, err := ctx.Tokens.GetBalance(ctx.Sender, c.settings.FeeSymbol)
	if err != nil {
		return err
	}
	if amount(balance.Balance).LessThan(amt) {
		return economic(msg)
	}
	return ctx.Tokens.Burn(ctx.Sender, c.settings.FeeSymbol, amt)
}
