// Package parser extracts publish metadata from raw Markdown note content:
// the YAML frontmatter fields that drive navigation (title, nav_order,
// nav_exclude, sort_order, updated) and stub detection.
package parser

import (
	"bytes"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Result holds the publish metadata parsed from one Markdown file.
type Result struct {
	ID          string
	Title       string
	NavOrder    *float64
	NavExclude  bool
	ReverseSort bool
	Updated     time.Time // zero when the frontmatter carries no timestamp
	Stub        bool      // true when the note has no authored body
}

// Parse extracts publish metadata from raw Markdown bytes.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Title: deriveTitle(fm, body),
		Stub:  strings.TrimSpace(body) == "",
	}

	if fm == nil {
		return res, nil
	}

	if id, ok := fm["id"].(string); ok {
		res.ID = id
	}
	if v, ok := fm["nav_order"]; ok {
		if f, ok := asFloat(v); ok {
			res.NavOrder = &f
		}
	}
	if v, ok := fm["nav_exclude"].(bool); ok {
		res.NavExclude = v
	}
	if v, ok := fm["sort_order"].(string); ok {
		res.ReverseSort = strings.EqualFold(v, "reverse")
	}
	res.Updated = parseUpdated(fm["updated"])

	return res, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter, treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML falls back to body only, no error.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// TitleFromFname derives a display title from the last segment of a dotted
// fname: "release-notes" becomes "Release Notes".
func TitleFromFname(fname string) string {
	seg := fname
	if i := strings.LastIndex(fname, "."); i >= 0 {
		seg = fname[i+1:]
	}
	seg = strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	return cases.Title(language.English).String(strings.ToLower(seg))
}

// asFloat widens the numeric types yaml.v3 produces for scalar values.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// parseUpdated accepts epoch milliseconds (the common serialized form) or an
// RFC 3339 string.
func parseUpdated(v interface{}) time.Time {
	switch ts := v.(type) {
	case int:
		return time.UnixMilli(int64(ts))
	case int64:
		return time.UnixMilli(ts)
	case float64:
		return time.UnixMilli(int64(ts))
	case string:
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
