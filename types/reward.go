package types

import (
	"fmt"
)

// RewardPoolConfig holds the tunable economics of a pool. Curve parameters and
// rewardPerInterval are decimal strings; everything else is an integer.
type RewardPoolConfig struct {
	PostRewardCurve              string   `json:"postRewardCurve"`
	PostRewardCurveParameter     string   `json:"postRewardCurveParameter"`
	CurationRewardCurve          string   `json:"curationRewardCurve"`
	CurationRewardCurveParameter string   `json:"curationRewardCurveParameter"`
	CurationRewardPercentage     int64    `json:"curationRewardPercentage"`
	CashoutWindowDays            int64    `json:"cashoutWindowDays"`
	RewardPerInterval            string   `json:"rewardPerInterval"`
	RewardIntervalSeconds        int64    `json:"rewardIntervalSeconds"`
	VoteRegenerationDays         int64    `json:"voteRegenerationDays"`
	DownvoteRegenerationDays     int64    `json:"downvoteRegenerationDays"`
	StakedRewardPercentage       int64    `json:"stakedRewardPercentage"`
	VotePowerConsumption         int64    `json:"votePowerConsumption"`
	DownvotePowerConsumption     int64    `json:"downvotePowerConsumption"`
	Tags                         []string `json:"tags"`
}

type RewardPool struct {
	ID                      uint64           `json:"_id"`
	Symbol                  string           `json:"symbol"`
	Balance                 string           `json:"rewardPool"`
	LastRewardTimestamp     int64            `json:"lastRewardTimestamp"`
	LastPostRewardTimestamp int64            `json:"lastPostRewardTimestamp"`
	LastClaimDecayTimestamp int64            `json:"lastClaimDecayTimestamp"`
	CreatedTimestamp        int64            `json:"createdTimestamp"`
	Config                  RewardPoolConfig `json:"config"`
	PendingClaims           string           `json:"pendingClaims"`
	ClaimDecayClock         string           `json:"claimDecayClock"`
	Active                  bool             `json:"active"`
}

func (p *RewardPool) Key() string {
	return fmt.Sprintf("RewardPool_%s", IdKey(p.ID))
}

func (p *RewardPool) Prefix() string {
	return "RewardPool_"
}

func (p *RewardPool) SetId(id uint64) {
	p.ID = id
}

// HasTag reports whether any of tags is one of the pool's tags.
func (p *RewardPool) HasTag(tags []string) bool {
	for _, t := range tags {
		for _, pt := range p.Config.Tags {
			if t == pt {
				return true
			}
		}
	}
	return false
}

// RewardPoolSymbol indexes pools by token symbol.
type RewardPoolSymbol struct {
	Symbol       string
	RewardPoolId uint64
}

func (s *RewardPoolSymbol) Key() string {
	return fmt.Sprintf("RewardPoolSymbol_%s", s.Symbol)
}

type Beneficiary struct {
	Account string `json:"account"`
	Weight  int64  `json:"weight"`
}

type Post struct {
	RewardPoolId          uint64        `json:"rewardPoolId"`
	Symbol                string        `json:"symbol"`
	Authorperm            string        `json:"authorperm"`
	Author                string        `json:"author"`
	Created               int64         `json:"created"`
	CashoutTime           int64         `json:"cashoutTime"`
	VotePositiveRshareSum string        `json:"votePositiveRshareSum"`
	VoteRshareSum         string        `json:"voteRshareSum"`
	Beneficiaries         []Beneficiary `json:"beneficiaries,omitempty"`
	DeclinePayout         bool          `json:"declinePayout"`
	Claim                 string        `json:"claim"`
	ClaimDecayClock       string        `json:"claimDecayClock"`
}

func (p *Post) Key() string {
	return PostKey(p.RewardPoolId, p.Authorperm)
}

func PostKey(rewardPoolId uint64, authorperm string) string {
	return fmt.Sprintf("Post_%s_%s", IdKey(rewardPoolId), authorperm)
}

func PostPrefix(rewardPoolId uint64) string {
	return fmt.Sprintf("Post_%s_", IdKey(rewardPoolId))
}

// PostCashout orders a pool's pending posts by cashout time.
type PostCashout struct {
	RewardPoolId uint64
	CashoutTime  int64
	Authorperm   string
}

func (c *PostCashout) Key() string {
	return fmt.Sprintf("%s%s_%s", PostCashoutPrefix(c.RewardPoolId), IdKey(uint64(c.CashoutTime)), c.Authorperm)
}

func PostCashoutPrefix(rewardPoolId uint64) string {
	return fmt.Sprintf("PostCashout_%s_", IdKey(rewardPoolId))
}

// PostCashoutLimit is the exclusive upper bound of cashout keys due at timestamp.
func PostCashoutLimit(rewardPoolId uint64, timestamp int64) string {
	return fmt.Sprintf("%s%s`", PostCashoutPrefix(rewardPoolId), IdKey(uint64(timestamp)))
}

// PostAuthorperm lists the pools a given authorperm is registered in.
type PostAuthorperm struct {
	Authorperm   string
	RewardPoolId uint64
}

func (a *PostAuthorperm) Key() string {
	return fmt.Sprintf("%s%s", PostAuthorpermPrefix(a.Authorperm), IdKey(a.RewardPoolId))
}

func PostAuthorpermPrefix(authorperm string) string {
	return fmt.Sprintf("PostAuthorperm_%s|", authorperm)
}

// PaidPost marks a (pool, authorperm) that has already been paid out.
type PaidPost struct {
	RewardPoolId uint64
	Authorperm   string
	PaidAt       int64
}

func (p *PaidPost) Key() string {
	return fmt.Sprintf("PaidPost_%s_%s", IdKey(p.RewardPoolId), p.Authorperm)
}

type Vote struct {
	RewardPoolId   uint64 `json:"rewardPoolId"`
	Symbol         string `json:"symbol"`
	Authorperm     string `json:"authorperm"`
	Voter          string `json:"voter"`
	Timestamp      int64  `json:"timestamp"`
	Weight         int64  `json:"weight"`
	Rshares        string `json:"rshares"`
	CurationWeight string `json:"curationWeight"`
}

func (v *Vote) Key() string {
	return VotePrefix(v.RewardPoolId, v.Authorperm) + v.Voter
}

func VotePrefix(rewardPoolId uint64, authorperm string) string {
	return fmt.Sprintf("Vote_%s_%s|", IdKey(rewardPoolId), authorperm)
}

type VotingPower struct {
	RewardPoolId      uint64 `json:"rewardPoolId"`
	Account           string `json:"account"`
	LastVoteTimestamp int64  `json:"lastVoteTimestamp"`
	VotingPower       int64  `json:"votingPower"`
	DownvotingPower   int64  `json:"downvotingPower"`
}

func (v *VotingPower) Key() string {
	return fmt.Sprintf("VotingPower_%s_%s", IdKey(v.RewardPoolId), v.Account)
}

// Params are the contract-wide tunables plus the maintenance cursor.
type Params struct {
	SetupFee                  string `json:"setupFee"`
	UpdateFee                 string `json:"updateFee"`
	MaxPostsProcessedPerRound int64  `json:"maxPostsProcessedPerRound"`
	VoteQueryLimit            int64  `json:"voteQueryLimit"`
	MaintenanceTokensPerBlock int64  `json:"maintenanceTokensPerBlock"`
	LastMaintenanceBlock      int64  `json:"lastMaintenanceBlock"`
	LastProcessedPoolId       uint64 `json:"lastProcessedPoolId"`
	PoolsProcessedInBlock     int64  `json:"poolsProcessedInBlock"`
}

func (p *Params) Key() string {
	return "Params"
}
