package main

import (
	"path"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/viant/tssplit/inspector/graph"
	"github.com/viant/tssplit/inspector/typescript"
	"github.com/viant/tssplit/migrator"
	"gopkg.in/yaml.v3"
)

// inspection represents the extracted module table with the units it would produce
type inspection struct {
	Module *graph.File    `yaml:"module"`
	Units  []*graph.Unit  `yaml:"units,omitempty"`
	Source []*unitContent `yaml:"sources,omitempty"`
}

type unitContent struct {
	FileName string `yaml:"fileName"`
	Content  string `yaml:"content"`
}

func newInspectCommand(options *rootOptions) *cobra.Command {
	var withSource bool
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print extracted declarations, dependencies and planned units without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, _, err := options.setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			content, err := migrator.NewFileSystem().ReadFile(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", args[0])
			}
			aFile, err := typescript.NewInspector().Inspect(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}
			units, err := typescript.NewEmitter(path.Ext(args[0]), cfg.IndexName).Emit(aFile)
			if err != nil {
				return err
			}
			result := &inspection{Module: aFile, Units: units}
			if withSource {
				for _, unit := range units {
					result.Source = append(result.Source, &unitContent{FileName: unit.FileName, Content: string(unit.Content)})
				}
			}
			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)
			if err = encoder.Encode(result); err != nil {
				return errors.Wrap(err, "failed to encode inspection")
			}
			return encoder.Close()
		},
	}
	cmd.Flags().BoolVar(&withSource, "source", false, "include generated unit sources")
	cmd.Flags().String("index-name", "index", "base name of the generated re-export file")
	return cmd
}
