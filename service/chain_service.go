package service

import (
	"context"
	"io"
	"sync"
	"time"

	"comments-contract/config"
	"comments-contract/contract"
	"comments-contract/db"
	"comments-contract/filter"
	"comments-contract/logger"
	"comments-contract/metrics"
	"comments-contract/tokens"
	"comments-contract/types"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const SyncInterval = 3 * time.Second

type ChainService struct {
	ldb      *db.LDB
	chain    *types.Chain
	contract *contract.Contract
	blockLog string

	ActionFilters []filter.ActionFilter
}

func NewChainService(ldb *db.LDB, chain *types.Chain, c *contract.Contract, blockLog string) *ChainService {
	return &ChainService{
		ldb:      ldb,
		chain:    chain,
		contract: c,
		blockLog: blockLog,
	}
}

func (s *ChainService) RegisterActionFilter(f filter.ActionFilter) {
	s.ActionFilters = append(s.ActionFilters, f)
}

func (s *ChainService) Height() int64 {
	return s.chain.Height
}

// InitGenesis seeds tokens and balances into a database the contract has
// never been installed in. It is a no-op afterwards.
func (s *ChainService) InitGenesis(genesis config.Genesis, burnAccount string) error {
	return s.ldb.Transaction(func(tx *db.Tx) error {
		found, err := db.GetRecord(tx, &types.Params{})
		if err != nil || found {
			return err
		}
		ledger := tokens.New(tx, &types.Logs{}, burnAccount)
		for _, t := range genesis.Tokens {
			if err = ledger.CreateToken(t.Issuer, t.Symbol, t.Precision); err != nil {
				return errors.Wrapf(err, "genesis token %s", t.Symbol)
			}
			if t.StakingEnabled {
				if err = ledger.EnableStaking(t.Symbol); err != nil {
					return err
				}
			}
		}
		for _, b := range genesis.Balances {
			if err = seedBalance(ledger, b); err != nil {
				return errors.Wrapf(err, "genesis balance %s %s", b.Account, b.Symbol)
			}
		}
		logger.Logger.Infof("genesis: %d tokens, %d balances", len(genesis.Tokens), len(genesis.Balances))
		return s.contract.Install(tx)
	})
}

func seedBalance(ledger *tokens.Ledger, b config.GenesisBalance) error {
	liquid, stake := decimal.Zero, decimal.Zero
	var err error
	if b.Balance != "" {
		if liquid, err = decimal.NewFromString(b.Balance); err != nil {
			return err
		}
	}
	if b.Stake != "" {
		if stake, err = decimal.NewFromString(b.Stake); err != nil {
			return err
		}
	}
	if total := liquid.Add(stake); total.Sign() > 0 {
		if err = ledger.Issue(b.Account, b.Symbol, total); err != nil {
			return err
		}
	}
	if stake.Sign() > 0 {
		return ledger.Stake(b.Account, b.Symbol, stake)
	}
	return nil
}

// Start follows the block log until ctx is cancelled.
func (s *ChainService) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.syncBlockLoop(ctx)
	}()
}

func (s *ChainService) syncBlockLoop(ctx context.Context) {
	if err := s.SyncToLatest(ctx); err != nil {
		logger.Logger.Errorf("syncToLatest error %v", err)
		return
	}

	ticker := time.NewTicker(SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.SyncToLatest(ctx); err != nil {
				logger.Logger.Errorf("syncToLatest error %v", err)
				return
			}
		}
	}
}

// SyncToLatest replays every block of the log above the committed height.
func (s *ChainService) SyncToLatest(ctx context.Context) error {
	source, err := OpenBlockLog(s.blockLog)
	if err != nil {
		return err
	}
	defer source.Close()
	return s.Replay(ctx, source)
}

func (s *ChainService) Replay(ctx context.Context, source BlockSource) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		block, err := source.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if block.BlockNumber <= s.chain.Height {
			continue
		}
		if err = s.processBlock(block); err != nil {
			return errors.Wrapf(err, "block %d", block.BlockNumber)
		}
	}
}

// processBlock commits a block's transactions, their results and the new
// height in one batch. Nothing of a failing block is kept.
func (s *ChainService) processBlock(block *types.Block) error {
	start := time.Now()
	newChain := s.chain.Clone()
	processed := 0

	err := s.ldb.Transaction(func(tx *db.Tx) error {
		for _, t := range block.Transactions {
			if !s.shouldProcess(t) {
				metrics.Transactions.WithLabelValues(t.Action, metrics.StatusFiltered).Inc()
				continue
			}
			logs, err := s.contract.Execute(tx, t, block.Timestamp)
			if err != nil {
				return errors.Wrapf(err, "tx %s", t.TransactionId)
			}
			result := &types.TxResult{
				BlockNumber:    block.BlockNumber,
				RefBlockNumber: t.RefBlockNumber,
				TransactionId:  t.TransactionId,
				Sender:         t.Sender,
				Contract:       t.Contract,
				Action:         t.Action,
				Logs:           logs.String(),
			}
			if err = db.StoreRecord(tx, result); err != nil {
				return err
			}
			metrics.ObserveTx(t.Action, logs)
			processed++
		}

		newChain.Height = block.BlockNumber
		newChain.LastTimestamp = block.Timestamp.UnixMilli()
		return db.PutRecord(tx, newChain)
	})
	if err != nil {
		logger.Logger.Errorf("Failed to process block %d: %v", block.BlockNumber, err)
		return err
	}

	s.chain = newChain
	metrics.ReplayHeight.Set(float64(newChain.Height))
	metrics.BlockProcessingMs.Observe(float64(time.Since(start).Milliseconds()))
	logger.Logger.Infof("Finished replaying %d TXs from block %d", processed, block.BlockNumber)
	return nil
}

func (s *ChainService) shouldProcess(tx *types.Transaction) bool {
	for _, f := range s.ActionFilters {
		if !f.ShouldProcess(tx) {
			return false
		}
	}
	return true
}
