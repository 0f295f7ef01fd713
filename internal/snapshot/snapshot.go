// Package snapshot loads note graph snapshots from files: a YAML document
// form and a read-only SQLite index form. A snapshot is the full input the
// resolver recomputes from; nothing here writes.
package snapshot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/starford/eihwaz/internal/models"
)

// document is the on-disk YAML shape: notes keyed by id.
type document struct {
	Notes map[string]*models.Note `yaml:"notes"`
}

// Load reads a YAML snapshot file into a note graph.
func Load(path string) (models.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}
	return g, nil
}

// Parse decodes a YAML snapshot document. Note ids live in the map keys;
// an id field inside a note entry must agree with its key when present.
func Parse(data []byte) (models.Graph, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	g := make(models.Graph, len(doc.Notes))
	for id, n := range doc.Notes {
		if n == nil {
			return nil, fmt.Errorf("note %q: empty entry", id)
		}
		if n.ID != "" && n.ID != id {
			return nil, fmt.Errorf("note %q: id field %q disagrees with key", id, n.ID)
		}
		n.ID = id
		g[id] = n
	}
	return g, nil
}
