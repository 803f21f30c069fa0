package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"comments-contract/config"
	"comments-contract/contract"
	"comments-contract/db"
	"comments-contract/filter"
	"comments-contract/types"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

var genesis = config.Genesis{
	Tokens: []config.GenesisToken{
		{Symbol: "BEE", Issuer: "hive-engine", Precision: 8},
		{Symbol: "TKN", Issuer: "issuer", Precision: 8, StakingEnabled: true},
	},
	Balances: []config.GenesisBalance{
		{Account: "issuer", Symbol: "BEE", Balance: "5000"},
		{Account: "bob", Symbol: "TKN", Stake: "10"},
	},
}

func poolConfig() map[string]interface{} {
	return map[string]interface{}{
		"postRewardCurve":              "power",
		"postRewardCurveParameter":     "1",
		"curationRewardCurve":          "power",
		"curationRewardCurveParameter": "0.5",
		"curationRewardPercentage":     50,
		"cashoutWindowDays":            7,
		"rewardPerInterval":            "1.5",
		"rewardIntervalSeconds":        3,
		"voteRegenerationDays":         5,
		"downvoteRegenerationDays":     5,
		"stakedRewardPercentage":       50,
		"votePowerConsumption":         200,
		"downvotePowerConsumption":     2000,
		"tags":                         []string{"scot"},
	}
}

func tx(id, sender, contractName, action string, payload interface{}, signed bool) *types.Transaction {
	raw, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return &types.Transaction{
		RefBlockNumber:        1000,
		TransactionId:         id,
		Sender:                sender,
		Contract:              contractName,
		Action:                action,
		Payload:               raw,
		IsSignedWithActiveKey: signed,
	}
}

func writeBlockLog(t *testing.T, blocks ...*types.Block) string {
	path := filepath.Join(t.TempDir(), "blocks.jsonl")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	for _, b := range blocks {
		line, err := json.Marshal(b)
		require.NoError(t, err)
		_, err = f.Write(append(line, '\n'))
		require.NoError(t, err)
	}
	return path
}

func newChainService(t *testing.T, blockLog string) (*ChainService, *db.LDB, *contract.Contract) {
	ldb, err := db.NewMemLdb(db.DefaultCacheSize)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ldb.Close() })

	c := contract.New(contract.Settings{Name: "comments", Owner: "hive-engine", RelayAccount: "null", FeeSymbol: "BEE", BurnAccount: "null"}, nil)
	s := NewChainService(ldb, &types.Chain{Name: "hive"}, c, blockLog)
	s.RegisterActionFilter(filter.ContractFilter("comments"))
	require.NoError(t, s.InitGenesis(genesis, "null"))
	return s, ldb, c
}

func testBlocks() []*types.Block {
	return []*types.Block{
		{BlockNumber: 1, Timestamp: t0, Transactions: []*types.Transaction{
			tx("a1", "issuer", "comments", "createRewardPool", map[string]interface{}{"symbol": "TKN", "config": poolConfig()}, true),
		}},
		{BlockNumber: 2, Timestamp: t0.Add(3 * time.Second), Transactions: []*types.Transaction{
			tx("b1", "null", "comments", "comment", map[string]interface{}{"author": "alice", "permlink": "post", "tags": []string{"scot"}}, false),
			tx("b2", "null", "comments", "vote", map[string]interface{}{"voter": "bob", "author": "alice", "permlink": "post", "weight": 10000}, false),
			tx("b3", "alice", "tokens", "transfer", map[string]interface{}{"to": "bob"}, true),
		}},
		{BlockNumber: 3, Timestamp: t0.Add(6 * time.Second), Transactions: []*types.Transaction{
			tx("c1", "mallory", "comments", "setActive", map[string]interface{}{"rewardPoolId": 1, "active": false}, true),
		}},
	}
}

func TestReplay(t *testing.T) {
	path := writeBlockLog(t, testBlocks()...)
	s, ldb, _ := newChainService(t, path)
	require.NoError(t, s.SyncToLatest(context.Background()))
	assert.Equal(t, int64(3), s.Height())

	q := NewService(ldb, "hive")
	height, err := q.GetChainHeight()
	require.NoError(t, err)
	assert.Equal(t, int64(3), height)

	pool, err := q.GetRewardPoolBySymbol("TKN")
	require.NoError(t, err)
	require.NotNil(t, pool)
	assert.True(t, pool.Active)
	assert.Equal(t, "10.0000000000", pool.PendingClaims)
	assert.Equal(t, "3.00000000", pool.Balance)

	votes, err := q.GetVotes(1, "@alice/post")
	require.NoError(t, err)
	require.Len(t, votes, 1)
	assert.Equal(t, "3.1622776601", votes[0].CurationWeight)

	posts, total, err := q.GetPosts(1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "@alice/post", posts[0].Authorperm)

	results, total, err := q.GetTxResults(10, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 4, total, "the tokens transfer is filtered out")
	assert.Equal(t, "a1", results[0].TransactionId)
	// maintenance still runs after a rejected action
	assert.Contains(t, results[3].Logs, `"errors":["must be issuer of token"]`)
	assert.Contains(t, results[3].Logs, `"event":"issueToContract"`)

	vp, err := q.GetVotingPower(1, "bob", t0.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), vp.VotingPower)

	// a second pass over the same log changes nothing
	require.NoError(t, s.SyncToLatest(context.Background()))
	_, total, err = q.GetTxResults(10, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestReplayDiscardsFailingBlock(t *testing.T) {
	blocks := testBlocks()[:1]
	blocks = append(blocks, &types.Block{BlockNumber: 2, Timestamp: t0.Add(time.Second), Transactions: []*types.Transaction{
		tx("b1", "null", "comments", "comment", map[string]interface{}{"author": "alice", "permlink": "post", "tags": []string{"scot"}}, false),
		tx("b2", "null", "comments", "explode", map[string]interface{}{}, false),
	}})
	path := writeBlockLog(t, blocks...)
	s, ldb, c := newChainService(t, path)
	c.RegisterHandler("explode", func(c *contract.Contract, ctx *contract.Context) error {
		return errors.New("disk on fire")
	})

	err := s.SyncToLatest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
	assert.Equal(t, int64(1), s.Height())

	q := NewService(ldb, "hive")
	post, err := q.GetPost(1, "@alice/post")
	require.NoError(t, err)
	assert.Nil(t, post)
	_, total, err := q.GetTxResults(10, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestInitGenesisOnce(t *testing.T) {
	s, ldb, _ := newChainService(t, "")
	require.NoError(t, s.InitGenesis(genesis, "null"))

	bob := &types.Balance{Account: "bob", Symbol: "TKN"}
	_, err := ldb.GetRecordByType(bob)
	require.NoError(t, err)
	assert.Equal(t, "10.00000000", bob.Stake)
	assert.Equal(t, "0.00000000", bob.Balance)
}
