package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/viant/tssplit/config"
	"github.com/viant/tssplit/inspector/repository"
	"github.com/viant/tssplit/migrator"
	"github.com/viant/tssplit/notify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newMigrateCommand(options *rootOptions) *cobra.Command {
	var printReport bool
	cmd := &cobra.Command{
		Use:   "migrate <path>",
		Short: "Split a source file, or every source file directly inside a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, notifier, err := options.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			log.Debug("migrating", zap.String("location", args[0]), zap.Strings("extensions", cfg.Extensions))

			aMigrator := migrator.New(migrator.WithConfig(cfg), migrator.WithDetector(repository.New()))
			report, err := aMigrator.Migrate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if report.Project != nil {
				log.Debug("project detected", zap.String("name", report.Project.Name), zap.String("root", report.Project.RootPath))
				notify.Infof(notifier, "project %s (%s)", report.Project.Name, report.Project.Type)
			}
			notify.Publish(notifier, report.AllEvents()...)
			notifier.Info(report.Summary())
			if printReport {
				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent(2)
				if err = encoder.Encode(report); err != nil {
					return errors.Wrap(err, "failed to encode report")
				}
			}
			if failed := report.Count(migrator.StatusFailed); failed > 0 {
				return errors.Newf("migration failed for %d file(s)", failed)
			}
			return nil
		},
	}
	defaults := config.Default()
	flags := cmd.Flags()
	flags.StringSlice("extensions", defaults.Extensions, "source extensions picked up in directory mode")
	flags.Bool("skip-tests", defaults.SkipTests, "skip *.test.* and *.spec.* files in directory mode")
	flags.Bool("skip-declaration-files", defaults.SkipDeclarationFiles, "skip *.d.ts files in directory mode")
	flags.Bool("respect-gitignore", defaults.RespectGitignore, "skip files matched by the directory .gitignore")
	flags.String("index-name", defaults.IndexName, "base name of the generated re-export file")
	flags.Bool("overwrite", false, "rewrite generated files even when unchanged")
	flags.BoolVar(&printReport, "report", false, "print the migration report as YAML")
	return cmd
}
