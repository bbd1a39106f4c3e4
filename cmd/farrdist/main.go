package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"farrdist/internal/ops"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(ops.ExitCode(err))
	}
}
