package main

import (
	"github.com/spf13/cobra"
)

func newBuildCommands(ctx *commandContext) []*cobra.Command {
	build := &cobra.Command{
		Use:   "build",
		Short: "Run the packaging build hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Build(cmd.Context())
		},
	}

	inplace := &cobra.Command{
		Use:   "inplace",
		Short: "Build and compile locales for running from the source tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Inplace(cmd.Context())
		},
	}

	clean := &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts and in-tree compiled catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Clean(cmd.Context())
		},
	}

	distclean := &cobra.Command{
		Use:   "distclean",
		Short: "Clean and restore entry-point shebangs to the fallback",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Distclean(cmd.Context())
		},
	}

	return []*cobra.Command{build, inplace, clean, distclean}
}
