package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"farrdist/internal/pot"
)

func newPotCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pot",
		Short: "Regenerate the translation template and merge it into PO files",
		RunE: func(cmd *cobra.Command, args []string) error {
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

			extractor := pot.NewExtractor(cfg.ProjectPath(cfg.Project.SourceDir), project, logger)
			templatePath := cfg.ProjectPath(cfg.Project.PoDir, project.Ident+".pot")
			template, err := extractor.WriteTemplate(templatePath)
			if err != nil {
				return err
			}

			report, err := pot.NewMerger(logger).MergeAll(template, cfg.ProjectPath(cfg.Project.PoDir))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", templatePath)
			fmt.Fprintf(out, "Merged into %d translation file(s)", len(report.Merged))
			if len(report.Failed) > 0 {
				fmt.Fprintf(out, ", %d failed", len(report.Failed))
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}
