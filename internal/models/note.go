// Package models defines the domain types for Eihwaz.
package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Well-known fnames.
const (
	// RootFname is the path name of a vault's hierarchy root note.
	RootFname = "root"
	// TagsRoot is the path name of the note that parents all tag notes.
	// It receives special placement during sibling sorting.
	TagsRoot = "tags"
)

// Vault identifies a named partition of the note collection. Duplicate
// fnames may exist across vaults; never within one.
type Vault struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	FsPath string `json:"fsPath" yaml:"fsPath"`
}

// DisplayName returns the explicit vault name, falling back to the final
// element of the filesystem path.
func (v Vault) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return filepath.Base(v.FsPath)
}

// SchemaRef points at the schema a note is bound to.
type SchemaRef struct {
	ModuleID string `json:"moduleId" yaml:"moduleId"`
	SchemaID string `json:"schemaId" yaml:"schemaId"`
}

// CustomProps carries user-set frontmatter knobs honored during publishing.
type CustomProps struct {
	// NavOrder is an explicit menu position. nil means unset; unset and
	// zero are distinct.
	NavOrder *float64 `json:"nav_order,omitempty" yaml:"nav_order,omitempty"`
}

// Note represents a single hierarchically-named document. Path segments in
// Fname are dot-delimited (e.g. "guides.setup.linux").
type Note struct {
	ID       string      `json:"id" yaml:"id"`
	Fname    string      `json:"fname" yaml:"fname"`
	Title    string      `json:"title" yaml:"title"`
	Children []string    `json:"children,omitempty" yaml:"children,omitempty"`
	Vault    Vault       `json:"vault" yaml:"vault"`
	Stub     bool        `json:"stub,omitempty" yaml:"stub,omitempty"`
	Schema   *SchemaRef  `json:"schema,omitempty" yaml:"schema,omitempty"`
	Custom   CustomProps `json:"custom,omitempty" yaml:"custom,omitempty"`
	Updated  time.Time   `json:"updated" yaml:"updated"`

	// NavExclude marks a note that menus should hide.
	NavExclude bool `json:"nav_exclude,omitempty" yaml:"nav_exclude,omitempty"`
	// ReverseSort requests that this note's children appear in reverse of
	// their sorted order.
	ReverseSort bool `json:"reverse_sort,omitempty" yaml:"reverse_sort,omitempty"`
}

// NavOrder returns the explicit menu position and whether one is set.
func (n *Note) NavOrder() (float64, bool) {
	if n.Custom.NavOrder == nil {
		return 0, false
	}
	return *n.Custom.NavOrder, true
}

// PathSegments splits a dot-delimited fname into its segments.
func PathSegments(fname string) []string {
	return strings.Split(fname, ".")
}

// LeafSegment returns the last dot-delimited segment of fname.
func LeafSegment(fname string) string {
	if i := strings.LastIndex(fname, "."); i >= 0 {
		return fname[i+1:]
	}
	return fname
}

// ParentFname returns the fname one level up, or "" for a top-level fname.
func ParentFname(fname string) string {
	if i := strings.LastIndex(fname, "."); i >= 0 {
		return fname[:i]
	}
	return ""
}
