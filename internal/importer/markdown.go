// Package importer converts Markdown notes into memories. Files may
// carry YAML frontmatter declaring the memory type, title and date;
// anything missing is derived from the file itself.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ourstory/ourstory/pkg/types"
)

// ParsedNote is the result of parsing a single Markdown file.
type ParsedNote struct {
	// Path is the file path as supplied by the caller.
	Path string

	// Type is the memory type from frontmatter, defaulting to NOTE.
	Type types.MemoryType

	// Title comes from frontmatter, then the first H1 heading, then
	// the file name.
	Title string

	// Content is the Markdown body with frontmatter stripped.
	Content string

	// Date is the normalized YYYY-MM-DD date from frontmatter, or ""
	// when absent or unparseable.
	Date string
}

// Memory converts the parsed note into a memory ready for storage.
func (n *ParsedNote) Memory() types.Memory {
	return types.Memory{
		Type:    n.Type,
		Title:   n.Title,
		Content: n.Content,
		Date:    n.Date,
	}
}

// ParseMarkdown parses one Markdown file's content into a note.
func ParseMarkdown(content []byte, path string) (*ParsedNote, error) {
	fm, body, err := splitFrontmatter(string(content))
	if err != nil {
		return nil, fmt.Errorf("frontmatter parse error in %s: %w", path, err)
	}

	body = strings.TrimSpace(body)

	title := extractString(fm, "title")
	if title == "" {
		title = extractH1(body)
	}
	if title == "" {
		title = titleFromPath(path)
	}

	return &ParsedNote{
		Path:    path,
		Type:    memoryType(fm),
		Title:   title,
		Content: body,
		Date:    extractDate(fm),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between --- delimiters)
// from the Markdown body. Returns an empty map and the full text when
// no frontmatter is found.
func splitFrontmatter(text string) (map[string]interface{}, string, error) {
	// The whole file is already in memory, so split directly. A line
	// scanner would cap line length and drop oversized content.
	lines := strings.Split(text, "\n")

	if strings.TrimSpace(lines[0]) != "---" {
		return map[string]interface{}{}, text, nil
	}

	closeIdx := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		// No closing delimiter, the whole file is body.
		return map[string]interface{}{}, text, nil
	}

	fmText := strings.Join(lines[1:closeIdx], "\n")
	fm := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(fmText), &fm); err != nil {
		return map[string]interface{}{}, text, fmt.Errorf("invalid YAML: %w", err)
	}

	body := strings.Join(lines[closeIdx+1:], "\n")
	return fm, body, nil
}

// memoryType reads the type field and maps it to a known memory type.
// Unknown or missing types become NOTE so an import never fails on a
// stray label.
func memoryType(fm map[string]interface{}) types.MemoryType {
	raw := strings.ToUpper(extractString(fm, "type"))
	if raw == "" {
		return types.TypeNote
	}
	candidate := types.MemoryType(strings.ReplaceAll(raw, "-", "_"))
	if candidate.Valid() {
		return candidate
	}
	return types.TypeNote
}

// extractDate reads a date field from frontmatter and normalizes it to
// YYYY-MM-DD, trying several common layouts.
func extractDate(fm map[string]interface{}) string {
	raw, ok := fm["date"]
	if !ok {
		return ""
	}

	var s string
	switch v := raw.(type) {
	case string:
		s = v
	case time.Time:
		return v.Format("2006-01-02")
	default:
		s = fmt.Sprintf("%v", v)
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"January 2, 2006",
		"Jan 2, 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// extractString pulls a string value from frontmatter by key.
func extractString(fm map[string]interface{}, key string) string {
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// extractH1 returns the text of the first ATX heading (# ...) in the body.
func extractH1(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

// titleFromPath derives a human-readable title from the file name.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}
