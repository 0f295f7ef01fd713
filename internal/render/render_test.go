package render

import (
	"strings"
	"testing"

	"github.com/starford/eihwaz/internal/hierarchy"
	"github.com/starford/eihwaz/internal/treemenu"
)

func TestMenu(t *testing.T) {
	m := &treemenu.Menu{
		Roots: []*treemenu.Node{
			{
				Key:   "a",
				Title: "Alpha",
				Children: []*treemenu.Node{
					{Key: "a.x", Title: "Draft", Icon: treemenu.IconPlus},
				},
			},
			{Key: "tags", Title: "Tags", Icon: treemenu.IconNumber},
		},
	}

	out := Menu("defaultSidebar", m)
	for _, want := range []string{"defaultSidebar", "Alpha", "+ Draft", "# Tags"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Children are indented under their parent.
	if strings.Index(out, "Alpha") > strings.Index(out, "+ Draft") {
		t.Errorf("child rendered before parent:\n%s", out)
	}
}

func TestMenu_HiddenMarker(t *testing.T) {
	m := &treemenu.Menu{
		Roots: []*treemenu.Node{{Key: "h", Title: "Hidden", NavExclude: true}},
	}
	out := Menu("s", m)
	if !strings.Contains(out, "Hidden (hidden)") {
		t.Errorf("nav excluded note not marked:\n%s", out)
	}
}

func TestHierarchy(t *testing.T) {
	tree := &hierarchy.TreeNode{
		Fname: "root",
		Children: []*hierarchy.TreeNode{
			{Fname: "a", Children: []*hierarchy.TreeNode{{Fname: "b"}}},
			{Fname: "c"},
		},
	}

	out := Hierarchy(tree)
	for _, want := range []string{"root", "a", "b", "c"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
