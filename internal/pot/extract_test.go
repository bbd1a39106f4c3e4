package pot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"farrdist/internal/logging"
	"farrdist/internal/metadata"
)

func writeSource(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
}

func testProject() metadata.Project {
	return metadata.Project{Name: "Farragone", Ident: "farragone", Version: "0.2.4"}
}

func TestExtractFindsGettextCalls(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeSource(t, src, "ui.py", strings.Join([]string{
		`title = _('Rename Files')`,
		`label = gettext("Destination")`,
		`msg = ngettext('one file', 'many files', n)`,
		`again = _('Rename Files')`,
	}, "\n"))

	template, err := NewExtractor(src, testProject(), logging.NewNop()).Extract()
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	got := map[string]string{}
	for _, msg := range template.Messages {
		got[msg.MsgId] = msg.MsgIdPlural
	}
	want := map[string]string{
		"Rename Files": "",
		"Destination":  "",
		"one file":     "many files",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected message set: %v", got)
	}
	for id, plural := range want {
		if gotPlural, ok := got[id]; !ok || gotPlural != plural {
			t.Fatalf("message %q: plural %q, want %q (present=%v)", id, gotPlural, plural, ok)
		}
	}
}

func TestExtractRecordsReferences(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeSource(t, src, "a.py", "x = _('shared')\n")
	writeSource(t, src, "sub/b.py", "\n\ny = _('shared')\n")

	template, err := NewExtractor(src, testProject(), logging.NewNop()).Extract()
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(template.Messages) != 1 {
		t.Fatalf("expected one deduplicated message, got %d", len(template.Messages))
	}
	msg := template.Messages[0]
	if len(msg.Comment.ReferenceFile) != 2 || len(msg.Comment.ReferenceLine) != 2 {
		t.Fatalf("expected two references, got %v:%v",
			msg.Comment.ReferenceFile, msg.Comment.ReferenceLine)
	}
	for _, line := range msg.Comment.ReferenceLine {
		if line != 1 && line != 3 {
			t.Fatalf("unexpected reference line %d", line)
		}
	}
}

func TestExtractSkipsNonSourceFiles(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeSource(t, src, "notes.txt", "_('not code')\n")
	writeSource(t, src, "app.py", "_('real')\n")

	template, err := NewExtractor(src, testProject(), logging.NewNop()).Extract()
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(template.Messages) != 1 || template.Messages[0].MsgId != "real" {
		t.Fatalf("unexpected messages: %+v", template.Messages)
	}
}

func TestExtractDecodesEscapedLiterals(t *testing.T) {
	src := filepath.Join(t.TempDir(), "src")
	writeSource(t, src, "app.py", `x = _('it\'s here')`+"\n")

	template, err := NewExtractor(src, testProject(), logging.NewNop()).Extract()
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(template.Messages) != 1 || template.Messages[0].MsgId != "it's here" {
		t.Fatalf("unexpected messages: %+v", template.Messages)
	}
}

func TestWriteTemplateStampsHeader(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeSource(t, src, "app.py", "_('hello')\n")

	target := filepath.Join(dir, "po", "farragone.pot")
	template, err := NewExtractor(src, testProject(), logging.NewNop()).WriteTemplate(target)
	if err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}
	if template.MimeHeader.ProjectIdVersion != "Farragone 0.2.4" {
		t.Fatalf("header project: %q", template.MimeHeader.ProjectIdVersion)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if !strings.Contains(string(data), `msgid "hello"`) {
		t.Fatalf("template missing message: %s", data)
	}
	if !strings.Contains(string(data), "Farragone 0.2.4") {
		t.Fatalf("template missing project header: %s", data)
	}
}
