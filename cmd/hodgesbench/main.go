// hodgesbench measures Hodges set false negative and false positive counts
// over a grid of slot counts and token sizes, and prints them as CSV.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-hodges/digests"
	"github.com/forestrie/go-hodges/sweep"
	cli "gopkg.in/urfave/cli.v1"
)

var digestsCommand = cli.Command{
	Action: listDigests,
	Name:   "digests",
	Usage:  "List the available digests",
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "hodgesbench"
	app.Usage = "measure Hodges set error rates across configurations"
	app.Action = bench
	app.Flags = sweepFlags
	app.Commands = []cli.Command{
		dumpConfigCommand,
		digestsCommand,
	}

	app.Before = func(ctx *cli.Context) error {
		logger.New(ctx.GlobalString(logLevelFlag.Name))
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		logger.OnExit()
		return nil
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bench is the default action: run the sweep and write CSV to the app writer.
func bench(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Sugar.WithServiceName(ctx.App.Name)
	results, err := sweep.Run(sigctx, log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	return sweep.WriteCSV(ctx.App.Writer, results, cfg.Baseline)
}

func listDigests(ctx *cli.Context) error {
	for _, name := range digests.Names() {
		d, err := digests.ByName(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s\t%d\n", name, d.HexLen())
	}
	return nil
}
