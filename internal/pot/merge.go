package pot

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chai2010/gettext-go/po"

	"farrdist/internal/fileutil"
	"farrdist/internal/logging"
)

// Merger folds a regenerated template into existing translation files.
type Merger struct {
	logger *slog.Logger
}

// NewMerger constructs a merger.
func NewMerger(logger *slog.Logger) *Merger {
	return &Merger{logger: logging.NewComponentLogger(logger, "pot")}
}

// Report aggregates the outcome of one merge pass.
type Report struct {
	Merged []string
	Failed []string
}

// MergeAll merges template into every *.po file under poDir. A failure on one
// file is logged and does not abort the remaining files; the file itself is
// never left half-written because each merge replaces it atomically.
func (m *Merger) MergeAll(template *po.File, poDir string) (Report, error) {
	var report Report

	paths, err := filepath.Glob(filepath.Join(poDir, "*.po"))
	if err != nil {
		return report, fmt.Errorf("scan po directory: %w", err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		name := filepath.Base(path)
		if err := m.Merge(template, path); err != nil {
			m.logger.Error("merge failed, skipping file",
				logging.String("file", name),
				logging.Error(err))
			report.Failed = append(report.Failed, name)
			continue
		}
		m.logger.Info("merged template", logging.String("file", name))
		report.Merged = append(report.Merged, name)
	}
	return report, nil
}

// Merge folds template into the PO file at path:
//
//   - IDs present in both keep the file's translation, flags, and translator
//     comments; references come from the template.
//   - IDs only in the template are added untranslated.
//   - IDs only in the file move to the obsolete block; already-obsolete
//     entries stay there until their ID returns, at which point the old
//     translation is resurrected.
//
// Merging the same template twice yields the same bytes as merging it once.
func (m *Merger) Merge(template *po.File, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read translation file: %w", err)
	}
	live, obsolete := SplitObsolete(raw)

	existing, err := po.Load(live)
	if err != nil {
		return fmt.Errorf("parse translation file: %w", err)
	}

	existingByID := make(map[string]po.Message, len(existing.Messages))
	for _, msg := range existing.Messages {
		if msg.MsgId != "" {
			existingByID[msg.MsgId] = msg
		}
	}
	obsoleteByID := make(map[string]ObsoleteEntry, len(obsolete))
	for _, entry := range obsolete {
		obsoleteByID[entry.ID] = entry
	}

	templateIDs := make(map[string]bool, len(template.Messages))
	merged := po.File{MimeHeader: existing.MimeHeader}
	merged.MimeHeader.ProjectIdVersion = template.MimeHeader.ProjectIdVersion

	messages := append([]po.Message(nil), template.Messages...)
	sort.Slice(messages, func(i, j int) bool { return messages[i].MsgId < messages[j].MsgId })

	for _, tmsg := range messages {
		if tmsg.MsgId == "" {
			continue
		}
		templateIDs[tmsg.MsgId] = true
		out := po.Message{
			Comment:     tmsg.Comment,
			MsgContext:  tmsg.MsgContext,
			MsgId:       tmsg.MsgId,
			MsgIdPlural: tmsg.MsgIdPlural,
		}
		if prev, ok := existingByID[tmsg.MsgId]; ok {
			out.MsgStr = prev.MsgStr
			out.MsgStrPlural = prev.MsgStrPlural
			out.Comment.TranslatorComment = prev.Comment.TranslatorComment
			out.Comment.Flags = prev.Comment.Flags
		} else if old, ok := obsoleteByID[tmsg.MsgId]; ok {
			out.MsgStr = old.Str
		}
		merged.Messages = append(merged.Messages, out)
	}

	// Newly obsolete: live entries whose ID left the template.
	var keptObsolete []ObsoleteEntry
	for _, entry := range obsolete {
		if !templateIDs[entry.ID] {
			keptObsolete = append(keptObsolete, entry)
		}
	}
	for _, msg := range existing.Messages {
		if msg.MsgId == "" || templateIDs[msg.MsgId] {
			continue
		}
		if _, already := obsoleteByID[msg.MsgId]; already {
			continue
		}
		keptObsolete = append(keptObsolete, ObsoleteEntry{ID: msg.MsgId, Str: msg.MsgStr})
	}
	sort.Slice(keptObsolete, func(i, j int) bool { return keptObsolete[i].ID < keptObsolete[j].ID })

	var out strings.Builder
	out.WriteString(merged.String())
	out.Write(formatObsolete(keptObsolete))

	if err := fileutil.WriteFileAtomic(path, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("replace translation file: %w", err)
	}
	return nil
}
