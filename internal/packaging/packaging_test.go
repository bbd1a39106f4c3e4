package packaging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"farrdist/internal/logging"
	"farrdist/internal/ops"
)

func setHelperCommand(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string{name}, args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("PACKAGING_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestCLIRequiresCommand(t *testing.T) {
	cli := NewCLI("", logging.NewNop())
	err := cli.Build(context.Background())
	if !errors.Is(err, ops.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestCLIBuildArgs(t *testing.T) {
	var captured []string
	setHelperCommand(t, "success", &captured)

	cli := NewCLI("./setup", logging.NewNop(), WithDir(t.TempDir()))
	if err := cli.Build(context.Background()); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(captured) != 2 || captured[0] != "./setup" || captured[1] != "build" {
		t.Fatalf("unexpected invocation: %v", captured)
	}
}

func TestCLIInstallPassesPrefix(t *testing.T) {
	var captured []string
	setHelperCommand(t, "success", &captured)

	cli := NewCLI("./setup", logging.NewNop())
	if err := cli.Install(context.Background(), "/stage/usr/local"); err != nil {
		t.Fatalf("Install: %v", err)
	}
	want := []string{"./setup", "install", "--prefix=/stage/usr/local"}
	if len(captured) != len(want) {
		t.Fatalf("unexpected invocation: %v", captured)
	}
	for i := range want {
		if captured[i] != want[i] {
			t.Fatalf("arg %d: %q, want %q", i, captured[i], want[i])
		}
	}
}

func TestCLIRemoveFailureIsExternalToolError(t *testing.T) {
	setHelperCommand(t, "failure", nil)

	cli := NewCLI("./setup", logging.NewNop())
	err := cli.Remove(context.Background(), "/usr/local")
	if !errors.Is(err, ops.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestCLIRemoveSuccess(t *testing.T) {
	var captured []string
	setHelperCommand(t, "success", &captured)

	cli := NewCLI("./setup", logging.NewNop())
	if err := cli.Remove(context.Background(), "/usr/local"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if captured[len(captured)-1] != "--prefix=/usr/local" {
		t.Fatalf("prefix flag missing: %v", captured)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("PACKAGING_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "remove hook failed")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
