package pot

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/chai2010/gettext-go/po"

	"farrdist/internal/fileutil"
	"farrdist/internal/logging"
	"farrdist/internal/metadata"
)

// callPattern matches gettext-style calls in application source: _("..."),
// gettext("..."), and ngettext("singular", "plural", n), with either quote
// style for the string arguments.
var callPattern = regexp.MustCompile(
	`\b(_|gettext|ngettext)\(\s*("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')` +
		`(?:\s*,\s*("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'))?`)

// Extractor scrapes translatable strings out of the application source tree.
type Extractor struct {
	sourceDir string
	project   metadata.Project
	logger    *slog.Logger
}

// NewExtractor constructs an extractor over sourceDir. The project identity
// stamps the generated template header.
func NewExtractor(sourceDir string, project metadata.Project, logger *slog.Logger) *Extractor {
	return &Extractor{
		sourceDir: sourceDir,
		project:   project,
		logger:    logging.NewComponentLogger(logger, "pot"),
	}
}

type extracted struct {
	id     string
	plural string
	files  []string
	lines  []int
}

// Extract scans the source tree and builds the template in memory.
func (e *Extractor) Extract() (*po.File, error) {
	byID := map[string]*extracted{}
	var order []string

	err := filepath.WalkDir(e.sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			return nil
		}
		rel, err := filepath.Rel(filepath.Dir(e.sourceDir), path)
		if err != nil {
			rel = path
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", rel, err)
		}
		e.scan(string(data), filepath.ToSlash(rel), byID, &order)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan source tree: %w", err)
	}

	sort.Strings(order)
	template := &po.File{
		MimeHeader: po.Header{
			ProjectIdVersion:        e.project.Name + " " + e.project.Version,
			POTCreationDate:         time.Now().UTC().Format("2006-01-02 15:04-0700"),
			MimeVersion:             "1.0",
			ContentType:             "text/plain; charset=UTF-8",
			ContentTransferEncoding: "8bit",
		},
	}
	for _, id := range order {
		msg := byID[id]
		template.Messages = append(template.Messages, po.Message{
			Comment: po.Comment{
				ReferenceFile: msg.files,
				ReferenceLine: msg.lines,
			},
			MsgId:       msg.id,
			MsgIdPlural: msg.plural,
		})
	}

	e.logger.Info("extracted template",
		logging.Int("messages", len(template.Messages)),
		logging.String("source_dir", e.sourceDir))
	return template, nil
}

// WriteTemplate extracts and writes the template to path atomically.
func (e *Extractor) WriteTemplate(path string) (*po.File, error) {
	template, err := e.Extract()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create template directory: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, []byte(template.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}
	return template, nil
}

func (e *Extractor) scan(content, file string, byID map[string]*extracted, order *[]string) {
	for _, match := range callPattern.FindAllStringSubmatchIndex(content, -1) {
		fn := content[match[2]:match[3]]
		id := decodeEscapes(stripQuotes(content[match[4]:match[5]]))
		if id == "" {
			continue
		}
		plural := ""
		if fn == "ngettext" && match[6] >= 0 {
			plural = decodeEscapes(stripQuotes(content[match[6]:match[7]]))
		}
		line := 1 + strings.Count(content[:match[0]], "\n")

		msg, ok := byID[id]
		if !ok {
			msg = &extracted{id: id, plural: plural}
			byID[id] = msg
			*order = append(*order, id)
		} else if msg.plural == "" {
			msg.plural = plural
		}
		msg.files = append(msg.files, file)
		msg.lines = append(msg.lines, line)
	}
}

// stripQuotes removes the surrounding single or double quotes of a source
// string literal so decodeEscapes can resolve the escapes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
