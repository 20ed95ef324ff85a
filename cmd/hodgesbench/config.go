package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/forestrie/go-hodges/sweep"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Description: `The dumpconfig command shows the effective sweep configuration as TOML.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "Random seed; the same seed reproduces the same results",
		Value: sweep.DefaultConfig.Seed,
	}
	digestFlag = cli.StringFlag{
		Name:  "digest",
		Usage: "Digest used for slot selection and tokens (see the digests command)",
		Value: sweep.DefaultConfig.Digest,
	}
	slotsFlag = cli.StringFlag{
		Name:  "slots",
		Usage: "Comma separated slot counts (powers of two)",
		Value: joinUints(sweep.DefaultConfig.SlotCounts),
	}
	valuesFlag = cli.StringFlag{
		Name:  "values",
		Usage: "Comma separated token sizes in hex characters",
		Value: joinUints(sweep.DefaultConfig.ValueSizes),
	}
	poolFlag = cli.IntFlag{
		Name:  "pool",
		Usage: "Number of random ids generated",
		Value: sweep.DefaultConfig.PoolSize,
	}
	membersFlag = cli.IntFlag{
		Name:  "members",
		Usage: "Number of ids inserted into each set",
		Value: sweep.DefaultConfig.Members,
	}
	samplesFlag = cli.IntFlag{
		Name:  "samples",
		Usage: "Number of members re-checked for false negatives",
		Value: sweep.DefaultConfig.Samples,
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Usage: "Configurations measured in parallel",
		Value: sweep.DefaultConfig.Workers,
	}
	baselineFlag = cli.BoolFlag{
		Name:  "baseline",
		Usage: "Also measure a Bloom filter with the same bit budget",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "Log level (DEBUG, INFO, NOOP)",
		Value: "INFO",
	}

	sweepFlags = []cli.Flag{
		configFileFlag,
		seedFlag,
		digestFlag,
		slotsFlag,
		valuesFlag,
		poolFlag,
		membersFlag,
		samplesFlag,
		workersFlag,
		baselineFlag,
		logLevelFlag,
	}
)

// makeConfig loads defaults, then the config file, then explicitly set flags.
func makeConfig(ctx *cli.Context) (sweep.Config, error) {
	cfg := sweep.NewConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := sweep.LoadConfig(file, &cfg); err != nil {
			return cfg, fmt.Errorf("loading config: %w", err)
		}
	}

	if ctx.GlobalIsSet(seedFlag.Name) {
		cfg.Seed = ctx.GlobalInt64(seedFlag.Name)
	}
	if ctx.GlobalIsSet(digestFlag.Name) {
		cfg.Digest = ctx.GlobalString(digestFlag.Name)
	}
	if ctx.GlobalIsSet(slotsFlag.Name) {
		slots, err := parseUints(ctx.GlobalString(slotsFlag.Name))
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", slotsFlag.Name, err)
		}
		cfg.SlotCounts = slots
	}
	if ctx.GlobalIsSet(valuesFlag.Name) {
		values, err := parseUints(ctx.GlobalString(valuesFlag.Name))
		if err != nil {
			return cfg, fmt.Errorf("--%s: %w", valuesFlag.Name, err)
		}
		cfg.ValueSizes = values
	}
	if ctx.GlobalIsSet(poolFlag.Name) {
		cfg.PoolSize = ctx.GlobalInt(poolFlag.Name)
	}
	if ctx.GlobalIsSet(membersFlag.Name) {
		cfg.Members = ctx.GlobalInt(membersFlag.Name)
	}
	if ctx.GlobalIsSet(samplesFlag.Name) {
		cfg.Samples = ctx.GlobalInt(samplesFlag.Name)
	}
	if ctx.GlobalIsSet(workersFlag.Name) {
		cfg.Workers = ctx.GlobalInt(workersFlag.Name)
	}
	if ctx.GlobalBool(baselineFlag.Name) {
		cfg.Baseline = true
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := sweep.MarshalConfig(cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}

func parseUints(s string) ([]uint64, error) {
	var out []uint64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func joinUints(vs []uint64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ",")
}
