package main

import (
	"github.com/spf13/cobra"
)

func newInstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the project into the configured prefix",
		Long: "Install icons, the entry-point executable, the package, documentation,\n" +
			"the desktop entry, and compiled locale catalogs. DESTDIR stages the\n" +
			"whole tree under an alternative root.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Install(cmd.Context())
		},
	}
}

func newUninstallCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove an installed project from the configured prefix",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := ctx.newInstaller(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return inst.Uninstall(cmd.Context())
		},
	}
}
