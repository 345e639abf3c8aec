package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/build"
	"github.com/fwojciec/docview/goldmark"
	"github.com/fwojciec/docview/koanf"
	dvslog "github.com/fwojciec/docview/slog"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	out := c.Out
	if out == "" {
		out = filepath.Join(c.Root, "reader")
	}
	configPath := c.Config
	if configPath == "" {
		configPath = filepath.Join(out, docview.ConfigFile)
	}

	cfg, err := koanf.NewConfigParser().LoadFile(configPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	logger := deps.logger()
	b := build.NewBuilder(dvslog.NewLoggingRenderer(goldmark.NewRenderer(), logger))
	b.Concurrency = c.Jobs
	b.Progress = deps.Stderr
	b.Logger = logger

	result, err := b.Build(deps.Ctx, c.Root, out, cfg)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docview.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Built %d documents from /%s/ into %s (%d converted, %d copied)\n",
		result.Converted+result.Copied, cfg.SourceDir, out, result.Converted, result.Copied)
	return nil
}
