package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/gettext-go/mo"

	"farrdist/internal/logging"
)

const frenchPO = `msgid ""
msgstr ""
"Project-Id-Version: Farragone 0.2.4\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Language: fr\n"

msgid "Rename"
msgstr "Renommer"

msgid "untranslated"
msgstr ""

#, fuzzy
msgid "unsure"
msgstr "incertain"

#~ msgid "old"
#~ msgstr "vieux"
`

func writeTranslation(t *testing.T, poDir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(poDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(poDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write translation: %v", err)
	}
}

func TestLanguagesSorted(t *testing.T) {
	poDir := filepath.Join(t.TempDir(), "po")
	writeTranslation(t, poDir, "fr.po", frenchPO)
	writeTranslation(t, poDir, "de.po", frenchPO)

	langs, err := NewBuilder(poDir, "farragone", logging.NewNop()).Languages()
	if err != nil {
		t.Fatalf("Languages: %v", err)
	}
	if len(langs) != 2 || langs[0] != "de" || langs[1] != "fr" {
		t.Fatalf("unexpected languages: %v", langs)
	}
}

func TestBuildWritesCatalogPerLanguage(t *testing.T) {
	dir := t.TempDir()
	poDir := filepath.Join(dir, "po")
	writeTranslation(t, poDir, "fr.po", frenchPO)

	root := filepath.Join(dir, "locale")
	report, err := NewBuilder(poDir, "farragone", logging.NewNop()).Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(report.Built) != 1 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	want := filepath.Join(root, "fr", "LC_MESSAGES", "farragone.mo")
	if report.Built[0].Path != want {
		t.Fatalf("catalog path %q, want %q", report.Built[0].Path, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}

	compiled, err := mo.Load(data)
	if err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	translations := map[string]string{}
	for _, msg := range compiled.Messages {
		translations[msg.MsgId] = msg.MsgStr
	}
	if translations["Rename"] != "Renommer" {
		t.Fatalf("translated entry missing: %v", translations)
	}
	for _, excluded := range []string{"untranslated", "unsure", "old"} {
		if _, ok := translations[excluded]; ok {
			t.Fatalf("entry %q should not be compiled", excluded)
		}
	}
}

func TestBuildNoLanguagesIsNoOp(t *testing.T) {
	dir := t.TempDir()
	poDir := filepath.Join(dir, "po")
	if err := os.MkdirAll(poDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	root := filepath.Join(dir, "locale")
	report, err := NewBuilder(poDir, "farragone", logging.NewNop()).Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(report.Built) != 0 || len(report.Failed) != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Fatalf("locale root should not be created: %v", err)
	}
}

func TestBuildSkipsUnparsableSource(t *testing.T) {
	dir := t.TempDir()
	poDir := filepath.Join(dir, "po")
	writeTranslation(t, poDir, "de.po", "msgid not quoted\n")
	writeTranslation(t, poDir, "fr.po", frenchPO)

	report, err := NewBuilder(poDir, "farragone", logging.NewNop()).Build(filepath.Join(dir, "locale"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "de" {
		t.Fatalf("unexpected failed set: %v", report.Failed)
	}
	if len(report.Built) != 1 || report.Built[0].Language != "fr" {
		t.Fatalf("unexpected built set: %+v", report.Built)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	poDir := filepath.Join(dir, "po")
	writeTranslation(t, poDir, "fr.po", frenchPO)
	root := filepath.Join(dir, "locale")
	builder := NewBuilder(poDir, "farragone", logging.NewNop())

	if _, err := builder.Build(root); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, err := builder.Build(root); err != nil {
		t.Fatalf("second build: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "fr", "LC_MESSAGES", "farragone.mo")); err != nil {
		t.Fatalf("catalog missing after rebuild: %v", err)
	}
}
