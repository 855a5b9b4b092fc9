// Package cmd provides the command-line interface of pagesim.
package cmd

import (
	"log/slog"

	"github.com/sarchlab/pagesim/config"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// globalOptions are shared by every command.
type globalOptions struct {
	envFile  string
	logLevel string

	cfg    config.Config
	logger *slog.Logger
}

// newRootCmd creates the base command and all its subcommands.
func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "pagesim",
		Short: "pagesim compares page replacement policies.",
		Long: `pagesim feeds one reference string to the FIFO, LRU, Optimal, ` +
			`and Optimal with FIFO tie-break policies and prints the page ` +
			`faults and the frame contents of each.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env",
		"File to load environment variables from, if it exists")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"Log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newInteractiveCmd(opts),
		newServeCmd(opts),
	)

	return rootCmd
}

func (o *globalOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return err
	}

	if o.logLevel != "" {
		err = cfg.LogLevel.UnmarshalText([]byte(o.logLevel))
		if err != nil {
			return err
		}
	}

	o.cfg = cfg
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(o.logger)

	return nil
}

// Execute runs the command line. The process exits with status 1 on error.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

