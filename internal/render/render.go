// Package render prints menus and hierarchy trees as text for the CLI.
package render

import (
	"github.com/disiqueira/gotree/v3"

	"github.com/starford/eihwaz/internal/hierarchy"
	"github.com/starford/eihwaz/internal/treemenu"
)

// Menu renders a built menu as an indented text tree titled with the
// sidebar name. Icons become short ASCII markers so stubs, schema-bound
// notes and the tag root stay recognizable in terminal output.
func Menu(name string, m *treemenu.Menu) string {
	root := gotree.New(name)
	for _, n := range m.Roots {
		addMenuNode(root, n)
	}
	return root.Print()
}

func addMenuNode(parent gotree.Tree, n *treemenu.Node) {
	branch := parent.Add(menuLabel(n))
	for _, c := range n.Children {
		addMenuNode(branch, c)
	}
}

func menuLabel(n *treemenu.Node) string {
	label := n.Title
	switch n.Icon {
	case treemenu.IconBook:
		label = "* " + label
	case treemenu.IconNumber:
		label = "# " + label
	case treemenu.IconPlus:
		label = "+ " + label
	}
	if n.NavExclude {
		label += " (hidden)"
	}
	return label
}

// Hierarchy renders a plain tree of path segments.
func Hierarchy(node *hierarchy.TreeNode) string {
	root := gotree.New(node.Fname)
	for _, c := range node.Children {
		addTreeNode(root, c)
	}
	return root.Print()
}

func addTreeNode(parent gotree.Tree, n *hierarchy.TreeNode) {
	branch := parent.Add(n.Fname)
	for _, c := range n.Children {
		addTreeNode(branch, c)
	}
}
