package pot

import (
	"bytes"
	"strings"
)

// ObsoleteEntry is a message flagged out of the template but preserved in the
// PO file as a "#~" block.
type ObsoleteEntry struct {
	ID  string
	Str string
}

// SplitObsolete separates a PO file's live content from its obsolete ("#~")
// entries. The returned live bytes are safe to hand to a PO parser that does
// not understand obsolete markers; the entries keep enough information to be
// re-emitted or resurrected.
func SplitObsolete(data []byte) ([]byte, []ObsoleteEntry) {
	var live bytes.Buffer
	var obsoleteLines []string

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "#~") {
			obsoleteLines = append(obsoleteLines, strings.TrimSpace(strings.TrimPrefix(line, "#~")))
			continue
		}
		live.WriteString(line)
		live.WriteByte('\n')
	}

	return bytes.TrimRight(live.Bytes(), "\n"), parseObsolete(obsoleteLines)
}

// parseObsolete reads msgid/msgstr pairs from unprefixed obsolete lines.
// Plural forms inside obsolete blocks are folded to their first form.
func parseObsolete(lines []string) []ObsoleteEntry {
	var entries []ObsoleteEntry
	var current *ObsoleteEntry

	const (
		inNothing = iota
		inID
		inStr
		inSkip
	)
	state := inNothing

	flush := func() {
		if current != nil && current.ID != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "msgid_plural"):
			state = inSkip
		case strings.HasPrefix(line, "msgid "):
			flush()
			current = &ObsoleteEntry{ID: unquotePO(strings.TrimPrefix(line, "msgid "))}
			state = inID
		case strings.HasPrefix(line, "msgstr"):
			if current == nil {
				state = inSkip
				continue
			}
			_, value, found := strings.Cut(line, " ")
			if !found {
				state = inSkip
				continue
			}
			if strings.HasPrefix(line, "msgstr ") || strings.HasPrefix(line, "msgstr[0]") {
				current.Str += unquotePO(value)
				state = inStr
			} else {
				state = inSkip
			}
		case strings.HasPrefix(line, `"`):
			if current == nil {
				continue
			}
			switch state {
			case inID:
				current.ID += unquotePO(line)
			case inStr:
				current.Str += unquotePO(line)
			}
		}
	}
	flush()
	return entries
}

// formatObsolete renders entries as a "#~" block in PO syntax.
func formatObsolete(entries []ObsoleteEntry) []byte {
	if len(entries) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, entry := range entries {
		buf.WriteString("\n#~ msgid ")
		buf.WriteString(quotePO(entry.ID))
		buf.WriteString("\n#~ msgstr ")
		buf.WriteString(quotePO(entry.Str))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// quotePO renders s as a PO string literal: C-style escapes, raw UTF-8.
func quotePO(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
	return buf.String()
}

// unquotePO parses a PO string literal, tolerating a missing closing quote.
func unquotePO(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return decodeEscapes(s)
}

// decodeEscapes resolves C-style escapes in an unquoted string body.
func decodeEscapes(s string) string {
	var buf strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
				continue
			}
			buf.WriteRune(r)
			continue
		}
		escaped = false
		switch r {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
