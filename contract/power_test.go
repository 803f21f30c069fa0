package contract

import (
	"testing"

	"comments-contract/types"

	"github.com/stretchr/testify/assert"
)

func TestConsumption(t *testing.T) {
	assert.Equal(t, int64(200), consumption(200, 10000))
	assert.Equal(t, int64(100), consumption(200, 5000))
	assert.Equal(t, int64(1), consumption(200, 1))
	assert.Equal(t, int64(1), consumption(1, 1))
	assert.Equal(t, int64(1000), consumption(2000, -5000))
	assert.Equal(t, int64(21), consumption(200, 1001))
}

func TestRegenerate(t *testing.T) {
	assert.Equal(t, int64(10000), regenerate(0, 5*dayMs, 5))
	assert.Equal(t, int64(2000), regenerate(0, dayMs, 5))
	assert.Equal(t, int64(10000), regenerate(9000, 10*dayMs, 5))
	assert.Equal(t, int64(9000), regenerate(9000, 0, 5))
	// 1ms of a 5 day window is below one point
	assert.Equal(t, int64(42), regenerate(42, 1, 5))
}

func TestCurrentPower(t *testing.T) {
	pool := &types.RewardPool{Config: types.RewardPoolConfig{VoteRegenerationDays: 5, DownvoteRegenerationDays: 10}}
	vp := &types.VotingPower{LastVoteTimestamp: 0, VotingPower: 5000, DownvotingPower: 5000}
	up, down := CurrentPower(pool, vp, dayMs)
	assert.Equal(t, int64(7000), up)
	assert.Equal(t, int64(6000), down)
}
