package main

import (
	"github.com/spf13/cobra"

	"farrdist/internal/catalog"
	"farrdist/internal/ops"
)

func newLocalesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "locales <output-directory>",
		Short: "Compile translation catalogs into a directory",
		Long: "Compile every per-language PO source into a binary catalog at\n" +
			"<output-directory>/<lang>/LC_MESSAGES/<program>.mo. Languages whose\n" +
			"source fails to parse are skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return ops.Wrap(ops.ErrUsage, "locales", "output directory argument required", nil)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			project, err := ctx.ensureProject()
			if err != nil {
				return err
			}
			builder := catalog.NewBuilder(cfg.ProjectPath(cfg.Project.PoDir), project.Ident, logger)
			_, err = builder.Build(args[0])
			return err
		},
	}
}
