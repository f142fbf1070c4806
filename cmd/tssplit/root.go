package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/tssplit/config"
	"github.com/viant/tssplit/logger"
	"github.com/viant/tssplit/notify"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	options := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "tssplit",
		Short: "Split TypeScript modules into one file per exported declaration",
		Long: `tssplit moves every exported function, class, type and interface of a module
into its own file together with the imports, local types and constants it needs,
and writes an index file re-exporting all of them.

Commands:
  migrate   Split a file or every source file of a directory
  inspect   Print extracted declarations and their dependencies`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	defaults := config.Default()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&options.configPath, "config", "c", "", "config file (default .tssplit.yaml in . or $HOME)")
	flags.String("log-format", defaults.Log.Format, "log format: console or json")
	flags.String("log-level", defaults.Log.Level, "log level")
	flags.Bool("no-color", false, "disable coloured output")

	rootCmd.AddCommand(newMigrateCommand(options))
	rootCmd.AddCommand(newInspectCommand(options))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

// setup loads configuration and creates the logger and notifier for a command
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, *zap.Logger, notify.Notifier, error) {
	cfg, err := config.Load(o.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, nil, err
	}
	log, err := logger.New(cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	var notifier notify.Notifier = notify.NewConsole(cmd.OutOrStdout(), cfg.NoColor)
	if cfg.Log.Format == logger.FormatJSON {
		// events are also recorded as structured log entries
		notifier = notify.Multi{notifier, notify.NewLogger(log)}
	}
	return cfg, log, notifier, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tssplit %s\n", Version)
		},
	}
}
