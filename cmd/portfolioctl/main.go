package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "portfolioctl",
		Usage: "Inspect and reset the persisted works list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "driver",
				Usage:   "storage driver (memory, file, redis, mongo, sqlite); defaults to STORAGE_DRIVER",
				Aliases: []string{"d"},
			},
		},
		Commands: []*cli.Command{
			seedCommand(),
			worksCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("portfolioctl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
