package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	knock "github.com/goliatone/go-knock"
	"github.com/goliatone/go-knock/internal/config"
	ik "github.com/goliatone/go-knock/internal/knock"
	"github.com/goliatone/go-knock/internal/logging"
	"github.com/goliatone/go-knock/pkg/renderers/tui"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded the configuration.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// driver and runner replace the terminal and the fwknop process in tests.
	driver tui.PromptDriver
	runner ik.Runner
}

func newRootCmd() *cobra.Command {
	return newRootCmdFor(&app{})
}

func newRootCmdFor(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "knock",
		Short:         knock.Product + " - send fwknop knocks from a browser or a terminal",
		Version:       knock.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to knock.yaml (default: ./knock.yaml, /etc/go-knock/knock.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging and verbose fwknop reports")

	root.AddCommand(
		newServeCmd(a),
		newSendCmd(a),
		newFillCmd(a),
		newOpenAPICmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, path, err := config.Load(config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Verbose = true
	}
	logger, _, err := logging.New(cfg.Log, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	if path != "" {
		logger.Debug("config loaded", zap.String("path", path))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "knock:", err)
		os.Exit(1)
	}
}
