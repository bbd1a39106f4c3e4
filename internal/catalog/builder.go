package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/gettext-go/mo"
	"github.com/chai2010/gettext-go/po"
	"golang.org/x/text/language"

	"farrdist/internal/fileutil"
	"farrdist/internal/logging"
	"farrdist/internal/pot"
)

// Builder compiles every per-language translation source in a po directory.
type Builder struct {
	poDir  string
	ident  string
	logger *slog.Logger
}

// NewBuilder constructs a builder. ident names the compiled catalogs
// (<ident>.mo) and is derived from the project metadata file.
func NewBuilder(poDir, ident string, logger *slog.Logger) *Builder {
	return &Builder{
		poDir:  poDir,
		ident:  ident,
		logger: logging.NewComponentLogger(logger, "catalog"),
	}
}

// Compiled describes one successfully built catalog.
type Compiled struct {
	Language string
	Path     string
}

// Report aggregates the outcome of one build pass.
type Report struct {
	Built  []Compiled
	Failed []string
}

// Languages lists the language tags with a translation source present,
// sorted. The template (<ident>.pot) is not a language.
func (b *Builder) Languages() ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(b.poDir, "*.po"))
	if err != nil {
		return nil, fmt.Errorf("scan po directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		langs = append(langs, strings.TrimSuffix(filepath.Base(entry), ".po"))
	}
	sort.Strings(langs)
	return langs, nil
}

// Build compiles all available languages into root. Zero languages is a
// successful no-op. A language whose source fails to parse is recorded in the
// report and skipped; directory or write failures abort the build.
func (b *Builder) Build(root string) (Report, error) {
	var report Report

	langs, err := b.Languages()
	if err != nil {
		return report, err
	}
	if len(langs) == 0 {
		b.logger.Debug("no translation sources present", logging.String("po_dir", b.poDir))
		return report, nil
	}

	for _, lang := range langs {
		if _, err := language.Parse(lang); err != nil {
			b.logger.Warn("unrecognized language tag, building anyway",
				logging.String(logging.FieldLanguage, lang))
		}

		data, err := b.compile(filepath.Join(b.poDir, lang+".po"))
		if err != nil {
			b.logger.Error("catalog compilation failed, skipping language",
				logging.String(logging.FieldLanguage, lang),
				logging.Error(err))
			report.Failed = append(report.Failed, lang)
			continue
		}

		dir := filepath.Join(root, lang, "LC_MESSAGES")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return report, fmt.Errorf("create catalog directory: %w", err)
		}
		dst := filepath.Join(dir, b.ident+".mo")
		if err := fileutil.WriteFileAtomic(dst, data, 0o644); err != nil {
			return report, fmt.Errorf("write catalog for %s: %w", lang, err)
		}

		b.logger.Info("compiled catalog",
			logging.String(logging.FieldLanguage, lang),
			logging.String("path", dst))
		report.Built = append(report.Built, Compiled{Language: lang, Path: dst})
	}
	return report, nil
}

// compile turns one PO source into MO binary data. Untranslated, fuzzy, and
// obsolete entries are excluded, following msgfmt.
func (b *Builder) compile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	live, _ := pot.SplitObsolete(raw)

	poFile, err := po.Load(live)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	moFile := &mo.File{
		MimeHeader: mo.Header{
			ProjectIdVersion:        poFile.MimeHeader.ProjectIdVersion,
			Language:                poFile.MimeHeader.Language,
			MimeVersion:             poFile.MimeHeader.MimeVersion,
			ContentType:             poFile.MimeHeader.ContentType,
			ContentTransferEncoding: poFile.MimeHeader.ContentTransferEncoding,
			PluralForms:             poFile.MimeHeader.PluralForms,
		},
	}
	for _, msg := range poFile.Messages {
		if msg.MsgId == "" {
			continue
		}
		if msg.MsgStr == "" && len(msg.MsgStrPlural) == 0 {
			continue
		}
		if isFuzzy(msg.Comment.Flags) {
			continue
		}
		moFile.Messages = append(moFile.Messages, mo.Message{
			MsgContext:   msg.MsgContext,
			MsgId:        msg.MsgId,
			MsgIdPlural:  msg.MsgIdPlural,
			MsgStr:       msg.MsgStr,
			MsgStrPlural: msg.MsgStrPlural,
		})
	}
	sort.Slice(moFile.Messages, func(i, j int) bool {
		return moFile.Messages[i].MsgId < moFile.Messages[j].MsgId
	})
	return moFile.Data(), nil
}

func isFuzzy(flags []string) bool {
	for _, flag := range flags {
		if flag == "fuzzy" {
			return true
		}
	}
	return false
}
