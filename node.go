package main

import (
	"comments-contract/config"
	"comments-contract/contract"
	"comments-contract/db"
	"comments-contract/filter"
	"comments-contract/logger"
	"comments-contract/service"
	"comments-contract/types"
	"comments-contract/util"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const chainName = "hive"

type node struct {
	cfg          *config.Conf
	ldb          *db.LDB
	chainService *service.ChainService
}

// openNode loads the configuration and prepares a chain service whose
// database has been seeded from genesis.
func openNode(cctx *cli.Context) (*node, error) {
	util.LoadConfig(cctx.String("config"), &config.Cfg)
	cfg := &config.Cfg
	util.ApplyEnv(cfg, cctx.String("env"))
	cfg.SetDefaults()
	logger.Init(cfg.Log.File, cfg.Log.Level)

	ldb, err := db.NewLdb(cfg.DbPath, cfg.DbTailFix, cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	chain := &types.Chain{Name: chainName}
	if _, err = ldb.GetRecordByType(chain); err != nil {
		ldb.Close()
		return nil, errors.Wrap(err, "load chain state")
	}

	c := contract.New(contract.Settings{
		Name:         cfg.Contract.Name,
		Owner:        cfg.Contract.Owner,
		RelayAccount: cfg.Contract.RelayAccount,
		FeeSymbol:    cfg.Contract.FeeSymbol,
		BurnAccount:  cfg.Contract.BurnAccount,
	}, nil)

	chainService := service.NewChainService(ldb, chain, c, cfg.BlockLog)
	chainService.RegisterActionFilter(filter.ContractFilter(cfg.Contract.Name))
	if err = chainService.InitGenesis(cfg.Genesis, cfg.Contract.BurnAccount); err != nil {
		ldb.Close()
		return nil, errors.Wrap(err, "init genesis")
	}
	logger.Logger.Infof("contract %s at height %d", cfg.Contract.Name, chainService.Height())

	return &node{cfg: cfg, ldb: ldb, chainService: chainService}, nil
}

func (n *node) Close() {
	if err := n.ldb.Close(); err != nil {
		logger.Logger.Errorf("close database: %v", err)
	}
}
