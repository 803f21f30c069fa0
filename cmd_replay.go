package main

import (
	"comments-contract/logger"

	"github.com/urfave/cli/v2"
)

var cmdReplay = &cli.Command{
	Name:  "replay",
	Usage: "replay the block log up to its last block and exit",
	Action: func(cctx *cli.Context) error {
		n, err := openNode(cctx)
		if err != nil {
			return err
		}
		defer n.Close()

		if err = n.chainService.SyncToLatest(cctx.Context); err != nil {
			return err
		}
		logger.Logger.Infof("replay finished at height %d", n.chainService.Height())
		return nil
	},
}
