package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starford/eihwaz/internal/models"
)

// LabelType selects which label SortSiblings compares when no explicit
// order is set.
type LabelType string

const (
	// LabelTitle compares note titles.
	LabelTitle LabelType = "title"
	// LabelFilename compares the final segment of the note path.
	LabelFilename LabelType = "filename"
)

// SortOptions tune one SortSiblings call. The zero value sorts ascending
// by title.
type SortOptions struct {
	Reverse   bool
	LabelType LabelType
}

// OmittedError lists ids that were requested for sorting but absent from
// the note graph. It is informational: the sorted remainder is usable.
type OmittedError struct {
	IDs []string
}

// Error implements the error interface.
func (e *OmittedError) Error() string {
	return fmt.Sprintf("hierarchy: omitted ids missing from note graph: %s", strings.Join(e.IDs, ", "))
}

// SortSiblings orders one sibling id list. Keys, in priority order: the
// explicit numeric position when set, then the lowercased label, then the
// update time. A tags hierarchy root without an explicit position is moved
// to the end after sorting, and a requested reversal flips the complete
// result including it. Ids missing from the graph are dropped and reported
// via a non-fatal *OmittedError next to the still-usable order.
func SortSiblings(ids []string, notes models.Graph, opts SortOptions) ([]string, *OmittedError) {
	present := make([]string, 0, len(ids))
	var omitted []string
	for _, id := range ids {
		if n, ok := notes.Get(id); ok && n != nil {
			present = append(present, id)
		} else {
			omitted = append(omitted, id)
		}
	}

	sort.SliceStable(present, func(i, j int) bool {
		return siblingLess(notes, present[i], present[j], opts.LabelType)
	})

	// The tags root sinks below its siblings unless the author pinned it.
	for i, id := range present {
		n, _ := notes.Get(id)
		if n.Fname != models.TagsRoot {
			continue
		}
		if _, pinned := n.NavOrder(); pinned {
			break
		}
		present = append(present[:i], present[i+1:]...)
		present = append(present, id)
		break
	}

	if opts.Reverse {
		for i, j := 0, len(present)-1; i < j; i, j = i+1, j-1 {
			present[i], present[j] = present[j], present[i]
		}
	}

	if len(omitted) > 0 {
		return present, &OmittedError{IDs: omitted}
	}
	return present, nil
}

func siblingLess(notes models.Graph, a, b string, labelType LabelType) bool {
	na, _ := notes.Get(a)
	nb, _ := notes.Get(b)

	oa, aSet := na.NavOrder()
	ob, bSet := nb.NavOrder()
	if aSet != bSet {
		return aSet
	}
	if aSet && oa != ob {
		return oa < ob
	}

	la, lb := sortLabel(na, labelType), sortLabel(nb, labelType)
	if la != lb {
		return la < lb
	}
	return na.Updated.Before(nb.Updated)
}

func sortLabel(n *models.Note, labelType LabelType) string {
	if labelType == LabelFilename {
		return strings.ToLower(models.LeafSegment(n.Fname))
	}
	return strings.ToLower(n.Title)
}
