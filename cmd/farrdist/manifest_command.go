package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"farrdist/internal/manifest"
)

func newManifestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Show the computed install destinations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			project, err := ctx.ensureProject()
			if err != nil {
				return err
			}

			man := manifest.Compute(cfg.Paths, project.Ident)
			rows := make([][]string, 0, 5)
			for _, entry := range man.Entries() {
				rows = append(rows, []string{entry.Name, entry.Path})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", project.Name, project.Version)
			if man.DestDir != "" {
				fmt.Fprintf(out, "Staged under %s\n", man.DestDir)
			}
			fmt.Fprintln(out, renderTable(out, []string{"Destination", "Path"}, rows))
			return nil
		},
	}
}
