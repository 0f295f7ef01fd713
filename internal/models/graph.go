package models

import (
	"sort"
	"strings"
)

// Graph maps note ids to notes. It is a read-only snapshot: nothing in the
// core mutates a Graph or the notes it holds. Child ids that point at
// missing notes or back at their own note are tolerated and skipped by the
// lookup helpers.
type Graph map[string]*Note

// Get returns the note with the given id.
func (g Graph) Get(id string) (*Note, bool) {
	n, ok := g[id]
	return n, ok
}

// FindByFname returns every note whose fname matches, in deterministic
// order (vault display name, then id). Multiple matches mean the fname is
// duplicated across vaults.
func (g Graph) FindByFname(fname string) []*Note {
	var out []*Note
	for _, n := range g {
		if n.Fname == fname {
			out = append(out, n)
		}
	}
	sortNotes(out)
	return out
}

// TopLevel returns every note whose fname has exactly one segment and is
// not the root path, sorted by fname then vault.
func (g Graph) TopLevel() []*Note {
	var out []*Note
	for _, n := range g {
		if n.Fname == RootFname || strings.Contains(n.Fname, ".") {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fname != out[j].Fname {
			return out[i].Fname < out[j].Fname
		}
		return less(out[i], out[j])
	})
	return out
}

// ChildNotes resolves a note's child ids, preserving their recorded order.
// Dangling ids and self-references are skipped.
func (g Graph) ChildNotes(n *Note) []*Note {
	out := make([]*Note, 0, len(n.Children))
	for _, id := range n.Children {
		if id == n.ID {
			continue
		}
		child, ok := g[id]
		if !ok {
			continue
		}
		out = append(out, child)
	}
	return out
}

// Roots returns the root note of every vault, sorted by vault display name.
func (g Graph) Roots() []*Note {
	return g.FindByFname(RootFname)
}

// VaultFnames returns the sorted fnames of every note in the named vault.
func (g Graph) VaultFnames(vaultName string) []string {
	var out []string
	for _, n := range g {
		if n.Vault.DisplayName() == vaultName {
			out = append(out, n.Fname)
		}
	}
	sort.Strings(out)
	return out
}

func sortNotes(notes []*Note) {
	sort.Slice(notes, func(i, j int) bool { return less(notes[i], notes[j]) })
}

func less(a, b *Note) bool {
	av, bv := a.Vault.DisplayName(), b.Vault.DisplayName()
	if av != bv {
		return av < bv
	}
	return a.ID < b.ID
}
