package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"comments-contract/cornjob"
	"comments-contract/logger"
	"comments-contract/router"
	"comments-contract/service"

	"github.com/urfave/cli/v2"
)

var cmdRun = &cli.Command{
	Name:  "run",
	Usage: "follow the block log and serve the query api",
	Action: func(cctx *cli.Context) error {
		n, err := openNode(cctx)
		if err != nil {
			return err
		}
		defer n.Close()

		ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()

		newService := service.NewService(n.ldb, chainName)
		engine := router.Init(newService)
		addr := fmt.Sprintf("0.0.0.0:%d", n.cfg.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: engine,
		}

		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Logger.Fatalf("listen addr:%s,err:%v", addr, err)
			}
		}()

		snapshots := cornjob.CronJobPoolSnapshotInit(n.ldb, newService, n.cfg.SnapshotCron)
		defer snapshots.Stop()

		var wg sync.WaitGroup
		n.chainService.Start(ctx, &wg)
		go func() {
			wg.Wait()
			stop()
		}()

		<-ctx.Done()
		logger.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Logger.Errorf("http shutdown: %v", err)
		}
		wg.Wait()
		return nil
	},
}
