// Package tomledit provides line-level editing of TOML documents that keeps
// user comments, ordering and whitespace intact.
//
// Both TOML libraries in wide use parse into a value tree, so a generic
// parse/mutate/serialize round trip would destroy everything the parser does
// not model. This package instead treats the document as a sequence of lines
// grouped into table blocks and limits mutation to whole-table replacement,
// which is all the MCP projector needs. pelletier/go-toml/v2 is still used to
// reject documents that do not parse; the editor refuses to touch a file it
// cannot understand.
package tomledit

import (
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/mpratt/provsync/internal/errors"
)

// Document is a TOML file held as raw lines plus the table structure
// recovered from its headers.
type Document struct {
	lines []string
}

// Parse validates data as TOML and wraps it into an editable Document.
// Invalid TOML is a hard error: guessing at a file the downstream tool
// depends on is worse than failing.
func Parse(data []byte) (*Document, error) {
	var probe map[string]any
	if err := toml.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "parsing TOML document")
	}

	text := strings.TrimSuffix(string(data), "\n")
	var lines []string
	if text != "" || len(data) > 0 {
		lines = strings.Split(text, "\n")
	}
	return &Document{lines: lines}, nil
}

// Bytes serializes the document back to its textual form.
func (d *Document) Bytes() []byte {
	if len(d.lines) == 0 {
		return []byte{}
	}
	return []byte(strings.Join(d.lines, "\n") + "\n")
}

// Unmarshal parses the current document content into v.
func (d *Document) Unmarshal(v any) error {
	return errors.Wrap(toml.Unmarshal(d.Bytes(), v), "decoding TOML document")
}

// HasTable reports whether any table header equals prefix or sits below it
// (e.g. prefix "mcp_servers" matches "[mcp_servers]" and "[mcp_servers.x]").
func (d *Document) HasTable(prefix string) bool {
	for _, line := range d.lines {
		if key, ok := headerKey(line); ok && matchesPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// RemoveTable deletes every table block whose header matches prefix,
// including sub-tables. It reports whether anything was removed.
func (d *Document) RemoveTable(prefix string) bool {
	kept, _, removed := d.splice(prefix)
	d.lines = kept
	return removed
}

// ReplaceTable removes every block matching prefix and inserts content in
// place of the first removed block, or appends it at the end of the document
// when no such block existed. Content is inserted verbatim; callers are
// expected to pass well-formed TOML for the given prefix.
func (d *Document) ReplaceTable(prefix string, content []byte) {
	insert := strings.Split(strings.TrimSuffix(strings.TrimSuffix(string(content), "\n"), "\r"), "\n")

	kept, at, removed := d.splice(prefix)
	if !removed {
		at = len(kept)
		// Separate from preceding content with a blank line.
		if at > 0 && strings.TrimSpace(kept[at-1]) != "" {
			kept = append(kept, "")
			at = len(kept)
		}
	}

	d.lines = append(kept[:at:at], append(insert, kept[at:]...)...)
}

// splice removes all blocks matching prefix and returns the surviving lines,
// the index where the first removed block started, and whether any block was
// removed.
func (d *Document) splice(prefix string) (kept []string, firstAt int, removed bool) {
	firstAt = -1

	inMatch := false
	for _, line := range d.lines {
		if key, ok := headerKey(line); ok {
			inMatch = matchesPrefix(key, prefix)
			if inMatch {
				removed = true
				if firstAt == -1 {
					firstAt = len(kept)
				}
				continue
			}
		}
		if inMatch {
			continue
		}
		kept = append(kept, line)
	}

	// Collapse a doubled blank line left where a block was cut out.
	if removed && firstAt > 0 && firstAt < len(kept) &&
		strings.TrimSpace(kept[firstAt-1]) == "" && strings.TrimSpace(kept[firstAt]) == "" {
		kept = append(kept[:firstAt], kept[firstAt+1:]...)
	}

	if firstAt > len(kept) {
		firstAt = len(kept)
	}
	return kept, firstAt, removed
}

// headerKey extracts the normalized dotted key from a table header line.
// It handles standard tables, array tables and quoted key segments.
func headerKey(line string) (string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "[") {
		return "", false
	}
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimPrefix(s, "[") // array-of-tables

	var (
		segments []string
		current  strings.Builder
		quote    rune
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '.':
			segments = append(segments, strings.TrimSpace(current.String()))
			current.Reset()
		case r == ']':
			segments = append(segments, strings.TrimSpace(current.String()))
			return strings.Join(segments, "."), true
		default:
			current.WriteRune(r)
		}
	}
	return "", false
}

func matchesPrefix(key, prefix string) bool {
	return key == prefix || strings.HasPrefix(key, prefix+".")
}
