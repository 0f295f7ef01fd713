// Package hierarchy builds plain parent/child trees over the note graph
// and compares them. Trees can be constructed from child pointers or from
// a flat list of dotted path names, which makes the two representations of
// one hierarchy checkable against each other.
package hierarchy

import (
	"fmt"
	"sort"

	"github.com/starford/eihwaz/internal/apperr"
	"github.com/starford/eihwaz/internal/models"
)

// TreeNode carries one path segment and its children. The Fname is the
// local segment, not the full dotted path.
type TreeNode struct {
	Fname    string      `json:"fname"`
	Children []*TreeNode `json:"children,omitempty"`
}

// FromGraph expands a note's child pointers into a TreeNode tree. Node
// names are the final dot segment of each note's path, and every sibling
// list is ordered by segment name. A missing root id is an error; missing
// child ids and self references are skipped.
func FromGraph(notes models.Graph, rootID string) (*TreeNode, error) {
	root, ok := notes.Get(rootID)
	if !ok || root == nil {
		return nil, fmt.Errorf("hierarchy: root %q: %w", rootID, apperr.ErrNotFound)
	}
	return fromNote(notes, root), nil
}

func fromNote(notes models.Graph, n *models.Note) *TreeNode {
	node := &TreeNode{Fname: models.LeafSegment(n.Fname)}
	children := notes.ChildNotes(n)
	sort.Slice(children, func(i, j int) bool {
		return models.LeafSegment(children[i].Fname) < models.LeafSegment(children[j].Fname)
	})
	for _, c := range children {
		node.Children = append(node.Children, fromNote(notes, c))
	}
	return node
}

// FromNames builds a TreeNode tree from dotted path names. Each name other
// than rootName is split into segments that are created or reused along the
// way down; a leading segment equal to rootName refers to the root itself
// and is not duplicated beneath it. The result is shape-comparable with
// FromGraph output when the names mirror the graph's paths.
func FromNames(names []string, rootName string) *TreeNode {
	root := &TreeNode{Fname: rootName}
	for _, name := range names {
		if name == rootName {
			continue
		}
		segments := models.PathSegments(name)
		if segments[0] == rootName {
			segments = segments[1:]
		}
		cur := root
		for _, segment := range segments {
			cur = cur.child(segment)
		}
	}
	return root
}

// child finds the named child, creating it if absent.
func (n *TreeNode) child(fname string) *TreeNode {
	for _, c := range n.Children {
		if c.Fname == fname {
			return c
		}
	}
	c := &TreeNode{Fname: fname}
	n.Children = append(n.Children, c)
	return c
}

// MismatchError reports the first structural divergence between two trees:
// either differing node names or differing child sets under one ancestor.
type MismatchError struct {
	Ancestor         string
	Expected         string
	Actual           string
	ExpectedChildren []string
	ActualChildren   []string
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	if e.ExpectedChildren != nil || e.ActualChildren != nil {
		return fmt.Sprintf("hierarchy: node %q: children differ: expected %v, actual %v",
			e.Ancestor, e.ExpectedChildren, e.ActualChildren)
	}
	return fmt.Sprintf("hierarchy: node %q: expected name %q, actual %q",
		e.Ancestor, e.Expected, e.Actual)
}

// Equal reports whether two trees are structurally identical, ignoring
// sibling order. It returns nil on a match and a *MismatchError locating
// the first divergence otherwise. Neither input tree is modified; ordering
// normalization happens on copies.
func Equal(expected, actual *TreeNode) error {
	return equalNodes(expected, actual, "")
}

func equalNodes(expected, actual *TreeNode, ancestor string) error {
	if expected.Fname != actual.Fname {
		return &MismatchError{Ancestor: ancestor, Expected: expected.Fname, Actual: actual.Fname}
	}
	ec, ac := sortedCopy(expected.Children), sortedCopy(actual.Children)
	if len(ec) != len(ac) {
		return &MismatchError{
			Ancestor:         expected.Fname,
			ExpectedChildren: childNames(ec),
			ActualChildren:   childNames(ac),
		}
	}
	for i := range ec {
		if err := equalNodes(ec[i], ac[i], expected.Fname); err != nil {
			return err
		}
	}
	return nil
}

// sortedCopy orders a sibling list by name without touching the original
// slice, so comparison never rearranges the caller's trees.
func sortedCopy(children []*TreeNode) []*TreeNode {
	out := make([]*TreeNode, len(children))
	copy(out, children)
	sort.Slice(out, func(i, j int) bool { return out[i].Fname < out[j].Fname })
	return out
}

func childNames(children []*TreeNode) []string {
	out := make([]string, 0, len(children))
	for _, c := range children {
		out = append(out, c.Fname)
	}
	return out
}
