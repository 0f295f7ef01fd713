package sidebar

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/starford/eihwaz/internal/apperr"
	"github.com/starford/eihwaz/internal/models"
)

// Sidebars maps sidebar names to their fully-resolved item lists.
type Sidebars map[string][]*Item

// Item is a resolved sidebar entry. Every ID references a note that exists
// in the graph the resolver was given, and autogenerated directives have
// been expanded away: only note and category variants remain.
type Item struct {
	Type  string  `json:"type" yaml:"type"`
	ID    string  `json:"id,omitempty" yaml:"id,omitempty"`
	Label string  `json:"label,omitempty" yaml:"label,omitempty"`
	Items []*Item `json:"items,omitempty" yaml:"items,omitempty"`
	Link  *Link   `json:"link,omitempty" yaml:"link,omitempty"`
}

// Link points a category at the note it represents.
type Link struct {
	Type string `json:"type" yaml:"type"`
	ID   string `json:"id" yaml:"id"`
}

// DuplicateNoteBehavior selects among notes sharing one fname across
// vaults. A nil behavior (or one whose payload matches no candidate) falls
// back to the first match in deterministic graph order.
type DuplicateNoteBehavior struct {
	Action  string       `yaml:"action"`
	Payload VaultPayload `yaml:"payload"`
}

// VaultPayload is an ordered vault-name preference list. Configuration may
// supply it as a single name or as a sequence.
type VaultPayload struct {
	Vaults []string
}

// UnmarshalYAML accepts either a scalar vault name or a list of names.
func (p *VaultPayload) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		if single != "" {
			p.Vaults = []string{single}
		}
		return nil
	case yaml.SequenceNode:
		return value.Decode(&p.Vaults)
	}
	return fmt.Errorf("duplicate-note payload must be a vault name or a list of names")
}

// ResolveOptions supplies the note graph and policies for one resolution.
type ResolveOptions struct {
	Notes                 models.Graph
	DuplicateNoteBehavior *DuplicateNoteBehavior
}

// Resolve validates cfg and resolves every sidebar in it against the
// supplied note graph: symbolic references become concrete note ids,
// autogenerated directives expand into items, and each level is ordered.
// The first error anywhere aborts the whole call; no partial result is
// returned. Panics during resolution are normalized into
// apperr.ErrInvalidConfig.
func Resolve(cfg Config, opts ResolveOptions) (_ Sidebars, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sidebar: %w: %v", apperr.ErrInvalidConfig, r)
		}
	}()

	if verr := cfg.Validate(); verr != nil {
		return nil, fmt.Errorf("sidebar: %w: %w", apperr.ErrInvalidConfig, verr)
	}

	r := &resolver{notes: opts.Notes, dup: opts.DuplicateNoteBehavior}
	out := make(Sidebars, len(cfg))
	for _, name := range sortedNames(cfg) {
		level, reverse, lerr := r.resolveLevel(cfg[name])
		if lerr != nil {
			return nil, fmt.Errorf("sidebar %q: %w", name, lerr)
		}
		out[name] = finalize(sortLevel(level, reverse))
	}
	return out, nil
}

type resolver struct {
	notes models.Graph
	dup   *DuplicateNoteBehavior
}

// hinted wraps a resolved item with the positional metadata consulted only
// while sorting. Hints never appear in the final output.
type hinted struct {
	item     *Item
	children []*hinted
	position *float64
	fname    string
	reverse  bool // reverse this item's children after sorting them
}

// resolveLevel resolves one sibling list. The returned flag reports whether
// an autogeneration anchor expanded at this level requested reverse order
// for it.
func (r *resolver) resolveLevel(items []*ItemConfig) ([]*hinted, bool, error) {
	level := make([]*hinted, 0, len(items))
	reverse := false

	for _, it := range items {
		switch it.Type {
		case TypeNote:
			note, err := r.findNote(it.ID)
			if err != nil {
				return nil, false, err
			}
			level = append(level, &hinted{
				item: &Item{Type: TypeNote, ID: note.ID, Label: it.Label},
			})

		case TypeCategory:
			children, childReverse, err := r.resolveLevel(it.Items)
			if err != nil {
				return nil, false, fmt.Errorf("category %q: %w", it.Label, err)
			}
			var link *Link
			if it.Link != nil {
				note, err := r.findNote(it.Link.ID)
				if err != nil {
					return nil, false, fmt.Errorf("category %q link: %w", it.Label, err)
				}
				link = &Link{Type: TypeNote, ID: note.ID}
			}
			level = append(level, &hinted{
				item:     &Item{Type: TypeCategory, Label: it.Label, Link: link},
				children: children,
				reverse:  childReverse,
			})

		case TypeAutogenerated:
			if it.ID == RootSentinel {
				for _, n := range r.notes.TopLevel() {
					level = append(level, r.generate(n))
				}
				continue
			}
			anchor, err := r.findNote(it.ID)
			if err != nil {
				return nil, false, err
			}
			reverse = reverse || anchor.ReverseSort
			for _, child := range r.notes.ChildNotes(anchor) {
				level = append(level, r.generate(child))
			}
		}
	}
	return level, reverse, nil
}

// generate expands one note of an autogenerated subtree: a leaf becomes a
// note item, a note with children becomes a category linking back to it.
// Positional hints are copied from the note.
func (r *resolver) generate(n *models.Note) *hinted {
	h := &hinted{
		position: n.Custom.NavOrder,
		fname:    n.Fname,
		reverse:  n.ReverseSort,
	}
	kids := r.notes.ChildNotes(n)
	if len(kids) == 0 {
		h.item = &Item{Type: TypeNote, ID: n.ID, Label: n.Title}
		return h
	}
	h.item = &Item{Type: TypeCategory, Label: n.Title, Link: &Link{Type: TypeNote, ID: n.ID}}
	h.children = make([]*hinted, 0, len(kids))
	for _, k := range kids {
		h.children = append(h.children, r.generate(k))
	}
	return h
}

// findNote resolves a symbolic reference: direct id lookup first, then a
// search by fname with the duplicate policy applied.
func (r *resolver) findNote(ref string) (*models.Note, error) {
	if n, ok := r.notes.Get(ref); ok {
		return n, nil
	}
	matches := r.notes.FindByFname(ref)
	if len(matches) == 0 {
		return nil, fmt.Errorf("reference %q: %w", ref, apperr.ErrNotFound)
	}
	return pickDuplicate(matches, r.dup), nil
}

// pickDuplicate applies the vault preference order to notes sharing an
// fname. An empty or unmatched preference list means "first match".
func pickDuplicate(matches []*models.Note, dup *DuplicateNoteBehavior) *models.Note {
	if dup != nil {
		for _, vault := range dup.Payload.Vaults {
			for _, n := range matches {
				if n.Vault.DisplayName() == vault {
					return n
				}
			}
		}
	}
	return matches[0]
}

// sortLevel orders one sibling list depth-first: children are sorted before
// their parents' level, explicit positions come first, the rest follow in
// fname order, and a requested reversal applies to the already-sorted list.
func sortLevel(level []*hinted, reverse bool) []*hinted {
	for _, h := range level {
		if len(h.children) > 0 {
			h.children = sortLevel(h.children, h.reverse)
		}
	}
	sort.SliceStable(level, func(i, j int) bool { return hintedLess(level[i], level[j]) })
	if reverse {
		for i, j := 0, len(level)-1; i < j; i, j = i+1, j-1 {
			level[i], level[j] = level[j], level[i]
		}
	}
	return level
}

// hintedLess orders by explicit position, then path name. Items missing a
// key sort after those carrying it, so manually-authored entries without
// hints trail expanded ones and keep their relative order.
func hintedLess(a, b *hinted) bool {
	if (a.position != nil) != (b.position != nil) {
		return a.position != nil
	}
	if a.position != nil && *a.position != *b.position {
		return *a.position < *b.position
	}
	if (a.fname != "") != (b.fname != "") {
		return a.fname != ""
	}
	return a.fname < b.fname
}

// finalize strips hints, materializing sorted children into their items.
func finalize(level []*hinted) []*Item {
	out := make([]*Item, 0, len(level))
	for _, h := range level {
		if len(h.children) > 0 || h.item.Type == TypeCategory {
			h.item.Items = finalize(h.children)
		}
		out = append(out, h.item)
	}
	return out
}
