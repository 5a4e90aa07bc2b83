package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/trivia-loader/internal/app"
	"github.com/heartmarshall/trivia-loader/internal/app/loader"
	"github.com/heartmarshall/trivia-loader/internal/config"
)

// env is the state shared by subcommands, filled in PersistentPreRunE.
type env struct {
	loaderConfigPath string
	dryRun           bool

	cfg       *config.Config
	loaderCfg *loader.Config
	log       *slog.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:           "trivia-loader",
		Short:         "Load trivia season files into a relational database",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return e.init()
		},
	}

	root.PersistentFlags().StringVar(&e.loaderConfigPath, "loader-config", "", "path to loader YAML config file")
	root.PersistentFlags().BoolVar(&e.dryRun, "dry-run", false, "parse and group without touching the database")

	root.AddCommand(newLoadCmd(e))
	root.AddCommand(newPurgeCmd(e))
	root.AddCommand(newVersionCmd())

	return root
}

func (e *env) init() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	e.cfg = cfg
	e.log = app.NewLogger(cfg.Log)

	loaderCfg, err := loader.LoadConfig(e.loaderConfigPath)
	if err != nil {
		return err
	}
	if e.dryRun {
		loaderCfg.DryRun = true
	}
	e.loaderCfg = loaderCfg
	return nil
}
