package contract

import (
	"comments-contract/curve"
	"comments-contract/types"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// clockPrecision is the scale of the decay clock, counted in half-lives.
	clockPrecision  = 18
	factorPrecision = 20
	// past this many half-lives a claim is below any stored precision
	maxHalfLives = 128
)

var half = decimal.New(5, -1)

// halfLives converts elapsed milliseconds into half-lives of the pool's
// claims. The half-life is the cashout window.
func halfLives(pool *types.RewardPool, elapsed int64) decimal.Decimal {
	window := pool.Config.CashoutWindowDays * dayMs
	if elapsed <= 0 || window <= 0 {
		return decimal.Zero
	}
	return divTrunc(decimal.NewFromInt(elapsed), decimal.NewFromInt(window), clockPrecision)
}

// decayFactor is 0.5^h.
func decayFactor(h decimal.Decimal) (decimal.Decimal, error) {
	if h.Sign() <= 0 {
		return decimal.New(1, 0), nil
	}
	if h.GreaterThanOrEqual(decimal.NewFromInt(maxHalfLives)) {
		return decimal.Zero, nil
	}
	f, err := half.PowWithPrecision(h, factorPrecision)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "decay factor for %s half-lives", h)
	}
	return f.Round(factorPrecision - 4), nil
}

func decay(claim, h decimal.Decimal) (decimal.Decimal, error) {
	if claim.Sign() <= 0 {
		return decimal.Zero, nil
	}
	f, err := decayFactor(h)
	if err != nil {
		return decimal.Zero, err
	}
	return claim.Mul(f).Truncate(SmtPrecision), nil
}

// DecayedClaims is the pool's pending claims decayed up to now. Claims halve
// every cashout window.
func DecayedClaims(pool *types.RewardPool, now int64) (decimal.Decimal, error) {
	return decay(amount(pool.PendingClaims), halfLives(pool, now-pool.LastClaimDecayTimestamp))
}

// decayClaims moves the pool's claims and decay clock forward to now.
func decayClaims(pool *types.RewardPool, now int64) error {
	if now <= pool.LastClaimDecayTimestamp {
		return nil
	}
	h := halfLives(pool, now-pool.LastClaimDecayTimestamp)
	pending, err := decay(amount(pool.PendingClaims), h)
	if err != nil {
		return err
	}
	pool.PendingClaims = formatClaims(pending)
	pool.ClaimDecayClock = amount(pool.ClaimDecayClock).Add(h).StringFixed(clockPrecision)
	pool.LastClaimDecayTimestamp = now
	return nil
}

// postContribution is what the post currently adds to the pool's pending
// claims. The pool must already be decayed to the current time.
func postContribution(pool *types.RewardPool, post *types.Post) (decimal.Decimal, error) {
	h := amount(pool.ClaimDecayClock).Sub(amount(post.ClaimDecayClock))
	return decay(amount(post.Claim), h)
}

// adjustClaims decays the pool's claims and the post's contribution to now,
// then adds delta to both, clamping at zero.
func adjustClaims(pool *types.RewardPool, post *types.Post, delta decimal.Decimal, now int64) error {
	if err := decayClaims(pool, now); err != nil {
		return err
	}
	contribution, err := postContribution(pool, post)
	if err != nil {
		return err
	}
	post.Claim = formatClaims(maxZero(contribution.Add(delta)))
	post.ClaimDecayClock = pool.ClaimDecayClock
	pool.PendingClaims = formatClaims(maxZero(amount(pool.PendingClaims).Add(delta)))
	return nil
}

func formatClaims(d decimal.Decimal) string {
	if d.Sign() == 0 {
		return "0"
	}
	return smt(d)
}

// postClaim is the post reward curve applied to a post's positive rshares.
func postClaim(pool *types.RewardPool, positiveRshares decimal.Decimal) (decimal.Decimal, error) {
	return evaluate(pool.Config.PostRewardCurve, pool.Config.PostRewardCurveParameter, positiveRshares)
}

func curationClaim(pool *types.RewardPool, positiveRshares decimal.Decimal) (decimal.Decimal, error) {
	return evaluate(pool.Config.CurationRewardCurve, pool.Config.CurationRewardCurveParameter, positiveRshares)
}

func evaluate(kind, parameter string, x decimal.Decimal) (decimal.Decimal, error) {
	cv, err := curve.Parse(kind, parameter)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "stored pool curve")
	}
	return cv.Evaluate(x), nil
}
