// Package vault loads note graphs from vault directories on disk.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/starford/eihwaz/internal/checksum"
	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/parser"
)

// Scanner reads every vault's markdown files into one note graph. Vaults
// use a flat layout: the file name is the dotted path, so a.b.c.md is the
// note a.b.c. The scanner never writes to any vault.
type Scanner struct {
	vaults []models.Vault
}

// NewScanner validates each vault directory up front. The directories must
// already exist.
func NewScanner(vaults ...models.Vault) (*Scanner, error) {
	if len(vaults) == 0 {
		return nil, fmt.Errorf("vault: no vaults configured")
	}
	resolved := make([]models.Vault, 0, len(vaults))
	for _, v := range vaults {
		abs, err := filepath.Abs(v.FsPath)
		if err != nil {
			return nil, fmt.Errorf("vault %q: resolve path: %w", v.DisplayName(), err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("vault %q: stat: %w", v.DisplayName(), err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("vault %q: not a directory: %s", v.DisplayName(), abs)
		}
		v.FsPath = abs
		resolved = append(resolved, v)
	}
	return &Scanner{vaults: resolved}, nil
}

// Scan reads all vaults into a single graph. Ancestors that exist only by
// implication (a.b.c on disk without a.b) are materialized as stubs, and
// every vault gets a root note even when none is authored. Note ids must
// be unique across vaults.
func (s *Scanner) Scan() (models.Graph, error) {
	graph := models.Graph{}
	for _, v := range s.vaults {
		notes, err := s.scanVault(v)
		if err != nil {
			return nil, err
		}
		for _, n := range notes {
			if _, dup := graph[n.ID]; dup {
				return nil, fmt.Errorf("vault %q: duplicate note id %q", v.DisplayName(), n.ID)
			}
			graph[n.ID] = n
		}
	}
	return graph, nil
}

func (s *Scanner) scanVault(v models.Vault) ([]*models.Note, error) {
	entries, err := os.ReadDir(v.FsPath)
	if err != nil {
		return nil, fmt.Errorf("vault %q: read dir: %w", v.DisplayName(), err)
	}

	byFname := map[string]*models.Note{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		n, err := s.readNote(v, e.Name())
		if err != nil {
			return nil, err
		}
		if prev, dup := byFname[n.Fname]; dup {
			return nil, fmt.Errorf("vault %q: notes %q and %q share fname %q", v.DisplayName(), prev.ID, n.ID, n.Fname)
		}
		byFname[n.Fname] = n
	}

	materialize(byFname, v)
	wireChildren(byFname)

	out := make([]*models.Note, 0, len(byFname))
	for _, n := range byFname {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fname < out[j].Fname })
	return out, nil
}

func (s *Scanner) readNote(v models.Vault, filename string) (*models.Note, error) {
	fname := strings.TrimSuffix(filename, ".md")
	data, err := os.ReadFile(filepath.Join(v.FsPath, filename))
	if err != nil {
		return nil, fmt.Errorf("vault %q: read %s: %w", v.DisplayName(), filename, err)
	}
	res, err := parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("vault %q: parse %s: %w", v.DisplayName(), filename, err)
	}

	id := res.ID
	if id == "" {
		id = deriveID(v, fname)
	}
	title := res.Title
	if title == "" {
		title = parser.TitleFromFname(models.LeafSegment(fname))
	}
	updated := res.Updated
	if updated.IsZero() {
		if info, err := os.Stat(filepath.Join(v.FsPath, filename)); err == nil {
			updated = info.ModTime()
		}
	}

	return &models.Note{
		ID:          id,
		Fname:       fname,
		Title:       title,
		Vault:       v,
		Stub:        res.Stub,
		Custom:      models.CustomProps{NavOrder: res.NavOrder},
		Updated:     updated,
		NavExclude:  res.NavExclude,
		ReverseSort: res.ReverseSort,
	}, nil
}

// materialize fills hierarchy gaps: a stub for every implied but missing
// ancestor, plus the vault root.
func materialize(byFname map[string]*models.Note, v models.Vault) {
	if _, ok := byFname[models.RootFname]; !ok {
		byFname[models.RootFname] = stub(v, models.RootFname)
	}
	fnames := make([]string, 0, len(byFname))
	for fname := range byFname {
		fnames = append(fnames, fname)
	}
	sort.Strings(fnames)
	for _, fname := range fnames {
		for parent := models.ParentFname(fname); parent != ""; parent = models.ParentFname(parent) {
			if _, ok := byFname[parent]; ok {
				break
			}
			byFname[parent] = stub(v, parent)
		}
	}
}

func stub(v models.Vault, fname string) *models.Note {
	return &models.Note{
		ID:    deriveID(v, fname),
		Fname: fname,
		Title: parser.TitleFromFname(models.LeafSegment(fname)),
		Vault: v,
		Stub:  true,
	}
}

// wireChildren links every note into its parent's child list, in fname
// order. Single segment notes hang off the vault root.
func wireChildren(byFname map[string]*models.Note) {
	fnames := make([]string, 0, len(byFname))
	for fname := range byFname {
		fnames = append(fnames, fname)
	}
	sort.Strings(fnames)
	for _, fname := range fnames {
		if fname == models.RootFname {
			continue
		}
		parent := models.ParentFname(fname)
		if parent == "" {
			parent = models.RootFname
		}
		if p, ok := byFname[parent]; ok {
			p.Children = append(p.Children, byFname[fname].ID)
		}
	}
}

// deriveID produces the stable id used when a note does not declare one.
func deriveID(v models.Vault, fname string) string {
	return checksum.Short([]byte(v.DisplayName() + "/" + fname))
}
