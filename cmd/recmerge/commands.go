package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

const usageText = `recmerge - deduplicate JSON records sharing a key

Usage:
  recmerge by -key <key> [opts] [file]        Merge every record sharing a key
  recmerge linear -key <key> [opts] [file]    Merge adjacent records sharing a key

Input is a JSON array of objects (YAML with -yaml) read from file or stdin.

Examples:
  recmerge by -key id people.json
  recmerge by -key /user/id -path -pretty events.json
  recmerge linear -key id -strategy later < rows.json`

// Root returns the root command for recmerge.
func Root() *cli.Command {
	return cli.NewCommand("recmerge").
		WithSynopsis("recmerge - deduplicate JSON records sharing a key").
		WithDescription(usageText).
		WithSubs(
			ByCommand(),
			LinearCommand(),
		)
}

type byConfig struct {
	*cli.Command
	Key     string `cli:"name=key aliases=k desc='key member name, or path with -path'"`
	Path    bool   `cli:"name=path desc='treat key as a nested path (user.id or /user/id)'"`
	YAML    bool   `cli:"name=yaml aliases=y desc='read and write yaml'"`
	Pretty  bool   `cli:"name=pretty aliases=p desc='indent json output'"`
	Color   string `cli:"name=color desc='color json output: auto, always or never'"`
	Verbose bool   `cli:"name=v desc='log record counts'"`
	Trace   bool   `cli:"name=trace desc='print stage timings to stderr'"`
}

// ByCommand returns the by subcommand.
func ByCommand() *cli.Command {
	cfg := &byConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "by").
		WithSynopsis("by -key <key> [opts] [file] - merge every record sharing a key").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *byConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	o := options{
		Op:      opBy,
		Key:     cfg.Key,
		Path:    cfg.Path,
		YAML:    cfg.YAML,
		Pretty:  cfg.Pretty,
		Color:   cfg.Color,
		Verbose: cfg.Verbose,
		Trace:   cfg.Trace,
	}
	return execute(o, cc, args)
}

type linearConfig struct {
	*cli.Command
	Key      string `cli:"name=key aliases=k desc='key member name, or path with -path'"`
	Path     bool   `cli:"name=path desc='treat key as a nested path (user.id or /user/id)'"`
	Strategy string `cli:"name=strategy aliases=s desc='conflict rule: earlier, later or patch'"`
	YAML     bool   `cli:"name=yaml aliases=y desc='read and write yaml'"`
	Pretty   bool   `cli:"name=pretty aliases=p desc='indent json output'"`
	Color    string `cli:"name=color desc='color json output: auto, always or never'"`
	Verbose  bool   `cli:"name=v desc='log record counts'"`
	Trace    bool   `cli:"name=trace desc='print stage timings to stderr'"`
}

// LinearCommand returns the linear subcommand.
func LinearCommand() *cli.Command {
	cfg := &linearConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "linear").
		WithSynopsis("linear -key <key> [-strategy earlier|later|patch] [opts] [file] - merge adjacent records sharing a key").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *linearConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Parse(cc, args)
	if err != nil {
		return err
	}
	o := options{
		Op:       opLinear,
		Key:      cfg.Key,
		Path:     cfg.Path,
		Strategy: cfg.Strategy,
		YAML:     cfg.YAML,
		Pretty:   cfg.Pretty,
		Color:    cfg.Color,
		Verbose:  cfg.Verbose,
		Trace:    cfg.Trace,
	}
	return execute(o, cc, args)
}

func execute(o options, cc *cli.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one input file, got %v", cli.ErrUsage, args)
	}
	in := cc.In
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}
	err := run(cc.Go, o, in, cc.Out, cc.Err)
	if errors.Is(err, errUsage) {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	return err
}
