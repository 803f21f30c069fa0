package service

import (
	"time"

	"comments-contract/contract"
	"comments-contract/db"
	"comments-contract/types"
)

type IService interface {
	GetChainHeight() (int64, error)
	GetRewardPools() ([]*types.RewardPool, error)
	GetRewardPoolBySymbol(symbol string) (*types.RewardPool, error)
	GetPosts(rewardPoolId uint64, limit, offset int) ([]*types.Post, int, error)
	GetPost(rewardPoolId uint64, authorperm string) (*types.Post, error)
	GetVotes(rewardPoolId uint64, authorperm string) ([]*types.Vote, error)
	GetVotingPower(rewardPoolId uint64, account string, now time.Time) (*types.VotingPower, error)
	GetTxResults(limit, offset int, asc bool) ([]*types.TxResult, int, error)
	GetPoolHistory(rewardPoolId uint64, limit, offset int) ([]*types.RewardPoolHistory, int, error)
}

type Service struct {
	ldb       *db.LDB
	chainName string
}

func NewService(ldb *db.LDB, chainName string) *Service {
	return &Service{ldb: ldb, chainName: chainName}
}

func (s *Service) GetChainHeight() (int64, error) {
	chain := &types.Chain{Name: s.chainName}
	if _, err := s.ldb.GetRecordByType(chain); err != nil {
		return 0, err
	}
	return chain.Height, nil
}

func (s *Service) GetRewardPools() ([]*types.RewardPool, error) {
	pools := []*types.RewardPool{}
	err := s.ldb.Begin().Iterate((&types.RewardPool{}).Prefix(), "", false, func(key string, value []byte) (bool, error) {
		pool := &types.RewardPool{}
		if err := db.Unmarshal(value, pool); err != nil {
			return false, err
		}
		pools = append(pools, pool)
		return true, nil
	})
	return pools, err
}

func (s *Service) GetRewardPoolBySymbol(symbol string) (*types.RewardPool, error) {
	index := &types.RewardPoolSymbol{Symbol: symbol}
	found, err := s.ldb.GetRecordByType(index)
	if err != nil || !found {
		return nil, err
	}
	pool := &types.RewardPool{ID: index.RewardPoolId}
	if found, err = s.ldb.GetRecordByType(pool); err != nil || !found {
		return nil, err
	}
	return pool, nil
}

func (s *Service) GetPosts(rewardPoolId uint64, limit, offset int) ([]*types.Post, int, error) {
	posts := []*types.Post{}
	total := 0
	err := s.ldb.Begin().Iterate(types.PostPrefix(rewardPoolId), "", false, func(key string, value []byte) (bool, error) {
		total++
		if total <= offset || len(posts) >= limit {
			return true, nil
		}
		post := &types.Post{}
		if err := db.Unmarshal(value, post); err != nil {
			return false, err
		}
		posts = append(posts, post)
		return true, nil
	})
	return posts, total, err
}

func (s *Service) GetPost(rewardPoolId uint64, authorperm string) (*types.Post, error) {
	post := &types.Post{RewardPoolId: rewardPoolId, Authorperm: authorperm}
	found, err := s.ldb.GetRecordByType(post)
	if err != nil || !found {
		return nil, err
	}
	return post, nil
}

func (s *Service) GetVotes(rewardPoolId uint64, authorperm string) ([]*types.Vote, error) {
	votes := []*types.Vote{}
	err := s.ldb.Begin().Iterate(types.VotePrefix(rewardPoolId, authorperm), "", false, func(key string, value []byte) (bool, error) {
		v := &types.Vote{}
		if err := db.Unmarshal(value, v); err != nil {
			return false, err
		}
		votes = append(votes, v)
		return true, nil
	})
	return votes, err
}

// GetVotingPower returns the account's power as it stands at now. Nothing is
// written back.
func (s *Service) GetVotingPower(rewardPoolId uint64, account string, now time.Time) (*types.VotingPower, error) {
	pool := &types.RewardPool{ID: rewardPoolId}
	found, err := s.ldb.GetRecordByType(pool)
	if err != nil || !found {
		return nil, err
	}
	vp := &types.VotingPower{RewardPoolId: rewardPoolId, Account: account}
	found, err = s.ldb.GetRecordByType(vp)
	if err != nil {
		return nil, err
	}
	if !found {
		vp.VotingPower = contract.MaxPower
		vp.DownvotingPower = contract.MaxPower
		vp.LastVoteTimestamp = now.UnixMilli()
		return vp, nil
	}
	vp.VotingPower, vp.DownvotingPower = contract.CurrentPower(pool, vp, now.UnixMilli())
	return vp, nil
}

func (s *Service) GetTxResults(limit, offset int, asc bool) ([]*types.TxResult, int, error) {
	recordsIFace, total, err := s.ldb.GetAllRecordsWithAutoId(&types.TxResult{}, limit, offset, asc)
	if err != nil {
		return nil, total, err
	}
	records := []*types.TxResult{}
	for _, record := range recordsIFace {
		if txResult, ok := record.(*types.TxResult); ok {
			records = append(records, txResult)
		}
	}
	return records, total, nil
}

func (s *Service) GetPoolHistory(rewardPoolId uint64, limit, offset int) ([]*types.RewardPoolHistory, int, error) {
	recordsIFace, total, err := s.ldb.GetAllRecordsWithAutoId(&types.RewardPoolHistory{RewardPoolId: rewardPoolId}, limit, offset, false)
	if err != nil {
		return nil, total, err
	}
	records := []*types.RewardPoolHistory{}
	for _, record := range recordsIFace {
		if history, ok := record.(*types.RewardPoolHistory); ok {
			records = append(records, history)
		}
	}
	return records, total, nil
}
