package contract

import (
	"comments-contract/curve"
	"comments-contract/types"

	"github.com/shopspring/decimal"
)

const maxTags = 5

type intBound struct {
	key      string
	min, max int64
	target   *int64
}

type curveBound struct {
	kindKey, paramKey string
	min, max          decimal.Decimal
	kind, param       *string
}

// parseConfig validates a pool config payload. The first failing field wins.
func parseConfig(p payload, precision int32) (*types.RewardPoolConfig, error) {
	cfg := &types.RewardPoolConfig{}

	for _, b := range []curveBound{
		{"postRewardCurve", "postRewardCurveParameter", decimal.NewFromInt(1), decimal.NewFromInt(2), &cfg.PostRewardCurve, &cfg.PostRewardCurveParameter},
		{"curationRewardCurve", "curationRewardCurveParameter", decimal.RequireFromString("0.5"), decimal.NewFromInt(1), &cfg.CurationRewardCurve, &cfg.CurationRewardCurveParameter},
	} {
		kind, ok := p.stringField(b.kindKey)
		if !ok || curve.Kind(kind) != curve.Power {
			return nil, validationf("%s should be one of: %s", b.kindKey, curve.Power)
		}
		param, ok := p.stringField(b.paramKey)
		d, err := decimal.NewFromString(param)
		if !ok || err != nil || decimalPlaces(d) > 2 || d.LessThan(b.min) || d.GreaterThan(b.max) {
			return nil, validationf("%s should be between %s and %s with precision 2", b.paramKey, b.min, b.max)
		}
		*b.kind, *b.param = kind, param
	}

	bounds := []intBound{
		{"curationRewardPercentage", 0, 100, &cfg.CurationRewardPercentage},
		{"cashoutWindowDays", 1, 30, &cfg.CashoutWindowDays},
	}
	if err := checkInts(p, bounds); err != nil {
		return nil, err
	}

	reward, ok := p.stringField("rewardPerInterval")
	d, err := decimal.NewFromString(reward)
	if !ok || err != nil || d.Sign() <= 0 || decimalPlaces(d) > precision {
		return nil, validationf("rewardPerInterval invalid")
	}
	cfg.RewardPerInterval = reward

	bounds = []intBound{
		{"rewardIntervalSeconds", 3, 86400, &cfg.RewardIntervalSeconds},
		{"voteRegenerationDays", 1, 30, &cfg.VoteRegenerationDays},
		{"downvoteRegenerationDays", 1, 30, &cfg.DownvoteRegenerationDays},
		{"stakedRewardPercentage", 0, 100, &cfg.StakedRewardPercentage},
		{"votePowerConsumption", 1, MaxPower, &cfg.VotePowerConsumption},
		{"downvotePowerConsumption", 1, MaxPower, &cfg.DownvotePowerConsumption},
	}
	if err := checkInts(p, bounds); err != nil {
		return nil, err
	}

	tags, ok := p.arrayField("tags")
	if !ok || len(tags) == 0 || len(tags) > maxTags {
		return nil, validationf("tags should be a non-empty array of up to %d strings", maxTags)
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		tag, ok := asString(t)
		if !ok || tag == "" || seen[tag] {
			return nil, validationf("tags should be distinct non-empty strings")
		}
		seen[tag] = true
		cfg.Tags = append(cfg.Tags, tag)
	}
	return cfg, nil
}

func checkInts(p payload, bounds []intBound) error {
	for _, b := range bounds {
		n, ok := p.intField(b.key)
		if !ok || n < b.min || n > b.max {
			return validationf("%s should be an integer between %d and %d", b.key, b.min, b.max)
		}
		*b.target = n
	}
	return nil
}
