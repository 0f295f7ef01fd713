// Package treemenu turns a resolved sidebar into a renderable tree of
// nodes plus the lookup indexes navigation UIs need: a child to parent map
// for breadcrumbs and a note id to label map.
package treemenu

import (
	"sort"
	"strings"

	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/sidebar"
)

// Icon marks how a node should be decorated when rendered.
type Icon string

const (
	IconNone   Icon = ""
	IconBook   Icon = "book"   // note is governed by a schema
	IconNumber Icon = "number" // note is the tags hierarchy root
	IconPlus   Icon = "plus"   // note is a stub without authored content
)

// Node is one entry of the rendered menu tree.
type Node struct {
	Key                    string  `json:"key"`
	Title                  string  `json:"title"`
	Icon                   Icon    `json:"icon,omitempty"`
	HasTitleNumberOutlined bool    `json:"hasTitleNumberOutlined"`
	VaultName              string  `json:"vaultName"`
	NavExclude             bool    `json:"navExclude"`
	Children               []*Node `json:"children"`
}

// Menu is the build output: the root nodes of the consumed sidebar plus
// the auxiliary indexes. ChildParent maps a note id to its parent's id,
// with the empty string marking a root; the first parent seen for an id
// wins. Labels maps note ids to the titles the menu displays.
type Menu struct {
	Roots       []*Node           `json:"roots"`
	ChildParent map[string]string `json:"childParent"`
	Labels      map[string]string `json:"labels"`
}

// Build renders the first sidebar (by name order) into a Menu. Items whose
// note is missing from the graph are dropped silently together with their
// subtrees; the sidebar and the graph being slightly out of sync must not
// fail the build. With no sidebars the Menu is empty but usable.
func Build(notes models.Graph, sidebars sidebar.Sidebars) *Menu {
	m := &Menu{
		Roots:       []*Node{},
		ChildParent: map[string]string{},
		Labels:      map[string]string{},
	}
	items := firstSidebar(sidebars)
	for _, it := range items {
		if node := m.walk(notes, it, ""); node != nil {
			m.Roots = append(m.Roots, node)
		}
	}
	return m
}

// walk builds the node for one resolved item, recursing into category
// children. It returns nil when the underlying note cannot be found.
func (m *Menu) walk(notes models.Graph, it *sidebar.Item, parent string) *Node {
	id := it.ID
	if it.Type == sidebar.TypeCategory {
		if it.Link == nil {
			return nil
		}
		id = it.Link.ID
	}
	note, ok := notes.Get(id)
	if !ok || note == nil {
		return nil
	}

	title := it.Label
	if title == "" {
		title = note.Title
	}
	node := &Node{
		Key:                    note.ID,
		Title:                  title,
		Icon:                   iconFor(note),
		HasTitleNumberOutlined: strings.HasPrefix(note.Fname, models.TagsRoot+"."),
		VaultName:              note.Vault.DisplayName(),
		NavExclude:             note.NavExclude,
		Children:               []*Node{},
	}

	m.Labels[note.ID] = title
	if _, seen := m.ChildParent[note.ID]; !seen {
		m.ChildParent[note.ID] = parent
	}

	for _, child := range it.Items {
		if cn := m.walk(notes, child, note.ID); cn != nil {
			node.Children = append(node.Children, cn)
		}
	}
	return node
}

func iconFor(n *models.Note) Icon {
	switch {
	case n.Schema != nil:
		return IconBook
	case n.Fname == models.TagsRoot:
		return IconNumber
	case n.Stub:
		return IconPlus
	}
	return IconNone
}

// firstSidebar picks the sidebar consumed downstream. Names are ordered so
// the choice is stable when a configuration defines several.
func firstSidebar(sidebars sidebar.Sidebars) []*sidebar.Item {
	if len(sidebars) == 0 {
		return nil
	}
	names := make([]string, 0, len(sidebars))
	for name := range sidebars {
		names = append(names, name)
	}
	sort.Strings(names)
	return sidebars[names[0]]
}

// AllParents returns the ancestor ids of a note, ordered root first, by
// walking childParent upward until a root marker. The id itself is not
// included. A cycle in the map terminates the walk instead of hanging.
func AllParents(childParent map[string]string, id string) []string {
	var chain []string
	visited := map[string]bool{id: true}
	cur := id
	for {
		parent, ok := childParent[cur]
		if !ok || parent == "" || visited[parent] {
			break
		}
		visited[parent] = true
		chain = append(chain, parent)
		cur = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
