package main

import (
	"github.com/spf13/cobra"

	"farrdist/internal/ops"
)

func newShebangCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shebang [reverse]",
		Short: "Rewrite entry-point interpreter directives",
		Long: "Forward mode (no argument) points the scripts at the versioned\n" +
			"interpreter found on PATH; when the interpreter is absent nothing is\n" +
			"rewritten. The literal argument \"reverse\" restores the fixed fallback\n" +
			"directive. Modified script names are printed to stdout.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reverse := false
			switch {
			case len(args) == 0:
			case len(args) == 1 && args[0] == "reverse":
				reverse = true
			default:
				return ops.Wrap(ops.ErrUsage, "shebang", "expected no argument or the literal \"reverse\"", nil)
			}

			fixer, err := ctx.newFixer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if reverse {
				return fixer.Reverse()
			}
			return fixer.Forward()
		},
	}
}
