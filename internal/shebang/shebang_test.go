package shebang_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"farrdist/internal/logging"
	"farrdist/internal/shebang"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func found(path string) func(string) (string, error) {
	return func(string) (string, error) { return path, nil }
}

func notFound(string) (string, error) {
	return "", errors.New("executable file not found in $PATH")
}

func TestForwardRewritesAllScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "farragone", "#! /usr/bin/env python3\nimport farragone\n")
	writeScript(t, dir, "setup", "#! /usr/bin/env python3\nimport setuptools\n")

	var trace bytes.Buffer
	fixer := shebang.New(dir, []string{"farragone", "setup"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/opt/py/bin/python3")), shebang.WithTrace(&trace))

	if err := fixer.Forward(); err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}

	for _, name := range []string{"farragone", "setup"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		first := strings.SplitN(string(data), "\n", 2)[0]
		if first != "#! /opt/py/bin/python3" {
			t.Fatalf("%s first line = %q", name, first)
		}
	}
	if trace.String() != "farragone\nsetup\n" {
		t.Fatalf("unexpected trace: %q", trace.String())
	}
}

func TestForwardPreservesBody(t *testing.T) {
	dir := t.TempDir()
	body := "import sys\n\nif __name__ == '__main__':\n    sys.exit(0)\n"
	writeScript(t, dir, "farragone", "#! /usr/bin/env python3\n"+body)

	fixer := shebang.New(dir, []string{"farragone"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/usr/bin/python3")), shebang.WithTrace(new(bytes.Buffer)))
	if err := fixer.Forward(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "farragone"))
	if err != nil {
		t.Fatal(err)
	}
	want := "#! /usr/bin/python3\n" + body
	if string(data) != want {
		t.Fatalf("body not preserved:\n got %q\nwant %q", data, want)
	}
}

func TestForwardNoInterpreterIsSilentNoop(t *testing.T) {
	dir := t.TempDir()
	original := "#! /usr/bin/env python3\nprint('hi')\n"
	writeScript(t, dir, "farragone", original)

	var trace bytes.Buffer
	fixer := shebang.New(dir, []string{"farragone"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(notFound), shebang.WithTrace(&trace))

	if err := fixer.Forward(); err != nil {
		t.Fatalf("Forward should succeed when interpreter is absent: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "farragone"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("script modified: %q", data)
	}
	if trace.Len() != 0 {
		t.Fatalf("unexpected trace output: %q", trace.String())
	}
}

func TestReverseIgnoresEnvironment(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "farragone", "#! /opt/py/bin/python3\nmain()\n")
	writeScript(t, dir, "setup", "#! /opt/py/bin/python3\nsetup()\n")

	fixer := shebang.New(dir, []string{"farragone", "setup"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(notFound), shebang.WithTrace(new(bytes.Buffer)))
	if err := fixer.Reverse(); err != nil {
		t.Fatalf("Reverse returned error: %v", err)
	}

	for _, name := range []string{"farragone", "setup"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "#! /usr/bin/env python3\n") {
			t.Fatalf("%s not reverted: %q", name, data)
		}
	}
}

func TestNonShebangFirstLineUntouched(t *testing.T) {
	dir := t.TempDir()
	original := "# plain comment\nbody\n"
	writeScript(t, dir, "setup", original)

	var trace bytes.Buffer
	fixer := shebang.New(dir, []string{"setup"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/usr/bin/python3")), shebang.WithTrace(&trace))
	if err := fixer.Forward(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "setup"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Fatalf("file modified: %q", data)
	}
	if trace.Len() != 0 {
		t.Fatalf("unexpected trace: %q", trace.String())
	}
}

func TestMissingScriptIsAnError(t *testing.T) {
	fixer := shebang.New(t.TempDir(), []string{"farragone"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/usr/bin/python3")), shebang.WithTrace(new(bytes.Buffer)))
	if err := fixer.Forward(); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestForwardIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "farragone", "#! /usr/bin/env python3\nmain()\n")

	var trace bytes.Buffer
	fixer := shebang.New(dir, []string{"farragone"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/usr/bin/python3")), shebang.WithTrace(&trace))

	if err := fixer.Forward(); err != nil {
		t.Fatal(err)
	}
	if err := fixer.Forward(); err != nil {
		t.Fatal(err)
	}
	// Second run changes nothing, so only one trace line is expected.
	if trace.String() != "farragone\n" {
		t.Fatalf("unexpected trace: %q", trace.String())
	}
}

func TestFixFileRewritesCopy(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "installed", "#! /usr/bin/env python3\nmain()\n")

	fixer := shebang.New(dir, []string{"installed"}, "python3", "/usr/bin/env python3",
		logging.NewNop(), shebang.WithLookPath(found("/usr/bin/python3")), shebang.WithTrace(new(bytes.Buffer)))
	if err := fixer.FixFile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "#! /usr/bin/python3\n") {
		t.Fatalf("shebang not fixed: %q", data)
	}
}
