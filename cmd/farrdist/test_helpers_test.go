package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	projectRoot string
	configPath  string
}

const testPO = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Language: fr\n"

msgid "Rename"
msgstr "Renommer"
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	root := filepath.Join(base, "project")

	files := map[string]string{
		"README.md":         "Farragone 0.2.4.\n\nBatch renamer.\n",
		"run":               "#!/usr/bin/env python3\nmain()\n",
		"setup":             "#!/bin/sh\nexit 0\n",
		"po/fr.po":          testPO,
		"farragone/main.py": "title = _('Rename Files')\n",
		"farragone.desktop": "[Desktop Entry]\nName=Farragone\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	configPath := filepath.Join(base, "farrdist.toml")
	content := fmt.Sprintf("[project]\nroot = %q\n\n[logging]\nlevel = \"error\"\n", root)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Neutralize ambient prefix overrides so path expectations hold.
	for _, key := range []string{"PREFIX", "EXEC_PREFIX", "DATAROOTDIR"} {
		t.Setenv(key, "")
	}
	t.Setenv("DESTDIR", "")

	return &cliTestEnv{projectRoot: root, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
