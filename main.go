package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "comments-contract",
		Usage:   "replay side-chain blocks through the comments reward contract",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "config file",
			},
			&cli.StringFlag{
				Name:  "env",
				Value: ".env",
				Usage: "optional env file overriding the config",
			},
		},
		Commands: []*cli.Command{
			cmdRun,
			cmdReplay,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
