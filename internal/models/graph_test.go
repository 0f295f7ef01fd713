package models

import (
	"reflect"
	"testing"
)

func TestVault_DisplayName(t *testing.T) {
	v := Vault{Name: "docs", FsPath: "/srv/vaults/primary"}
	if got := v.DisplayName(); got != "docs" {
		t.Errorf("DisplayName() = %q, want %q", got, "docs")
	}
	v = Vault{FsPath: "/srv/vaults/primary"}
	if got := v.DisplayName(); got != "primary" {
		t.Errorf("DisplayName() fallback = %q, want %q", got, "primary")
	}
}

func TestPathHelpers(t *testing.T) {
	if got := LeafSegment("a.b.c"); got != "c" {
		t.Errorf("LeafSegment(a.b.c) = %q, want %q", got, "c")
	}
	if got := LeafSegment("solo"); got != "solo" {
		t.Errorf("LeafSegment(solo) = %q, want %q", got, "solo")
	}
	if got := ParentFname("a.b.c"); got != "a.b" {
		t.Errorf("ParentFname(a.b.c) = %q, want %q", got, "a.b")
	}
	if got := ParentFname("solo"); got != "" {
		t.Errorf("ParentFname(solo) = %q, want empty", got)
	}
	if got := PathSegments("a.b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("PathSegments(a.b) = %v", got)
	}
}

func TestGraph_TopLevel(t *testing.T) {
	g := Graph{
		"r":  {ID: "r", Fname: "root"},
		"b":  {ID: "b", Fname: "beta"},
		"a":  {ID: "a", Fname: "alpha"},
		"ax": {ID: "ax", Fname: "alpha.x"},
	}
	top := g.TopLevel()
	if len(top) != 2 {
		t.Fatalf("len(TopLevel()) = %d, want 2", len(top))
	}
	if top[0].Fname != "alpha" || top[1].Fname != "beta" {
		t.Errorf("TopLevel order = [%s %s], want [alpha beta]", top[0].Fname, top[1].Fname)
	}
}

func TestGraph_FindByFname_Deterministic(t *testing.T) {
	g := Graph{
		"n2": {ID: "n2", Fname: "x", Vault: Vault{Name: "v2"}},
		"n1": {ID: "n1", Fname: "x", Vault: Vault{Name: "v1"}},
	}
	matches := g.FindByFname("x")
	if len(matches) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(matches))
	}
	if matches[0].ID != "n1" || matches[1].ID != "n2" {
		t.Errorf("matches = [%s %s], want [n1 n2]", matches[0].ID, matches[1].ID)
	}
}

func TestGraph_ChildNotes_SkipsDanglingAndSelf(t *testing.T) {
	parent := &Note{ID: "p", Fname: "p", Children: []string{"c", "p", "missing"}}
	g := Graph{
		"p": parent,
		"c": {ID: "c", Fname: "p.c"},
	}
	kids := g.ChildNotes(parent)
	if len(kids) != 1 || kids[0].ID != "c" {
		t.Errorf("ChildNotes = %v, want just c", kids)
	}
}
