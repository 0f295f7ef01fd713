// Package sidebar validates declarative sidebar configuration and resolves
// it against a note graph into fully-ordered navigation definitions.
package sidebar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/eihwaz/internal/apperr"
)

// Item variants accepted in sidebar configuration.
const (
	TypeNote          = "note"
	TypeCategory      = "category"
	TypeAutogenerated = "autogenerated"
)

// RootSentinel is the autogeneration anchor meaning "the whole hierarchy
// top", as opposed to a concrete note reference.
const RootSentinel = "*"

// DefaultSidebarName is the key used by the built-in configuration.
const DefaultSidebarName = "defaultSidebar"

// Config maps sidebar names to their configured item lists. This is the
// untrusted input form: references are symbolic and autogenerated
// directives are not yet expanded.
type Config map[string][]*ItemConfig

// ItemConfig is one entry of a configured sidebar: a concrete note
// reference, a category grouping further items, or an autogeneration
// directive. The variant is chosen by Type.
type ItemConfig struct {
	Type  string        `yaml:"type"`
	ID    string        `yaml:"id,omitempty"`    // note and autogenerated
	Label string        `yaml:"label,omitempty"` // category; optional override for note
	Items []*ItemConfig `yaml:"items,omitempty"` // category
	Link  *ItemConfig   `yaml:"link,omitempty"`  // category; must be a note reference
}

// Parse decodes and validates raw sidebar configuration. Decoding is
// strict: unknown fields are rejected. JSON input is accepted since YAML is
// a superset. Empty input yields an empty configuration (no sidebars).
func Parse(data []byte) (Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return nil, fmt.Errorf("sidebar: %w: %w", apperr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sidebar: %w: %w", apperr.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// DefaultConfig returns the built-in configuration: a single sidebar fully
// autogenerated from the hierarchy top.
func DefaultConfig() Config {
	return Config{
		DefaultSidebarName: {{Type: TypeAutogenerated, ID: RootSentinel}},
	}
}

// DisabledConfig returns a configuration that yields no sidebars at all.
func DisabledConfig() Config {
	return Config{}
}

// Validate checks the structural shape of every sidebar. It does not check
// that referenced notes exist; that happens during resolution. The first
// structural problem aborts validation.
func (c Config) Validate() error {
	for _, name := range sortedNames(c) {
		for i, item := range c[name] {
			if err := item.Validate(); err != nil {
				return fmt.Errorf("sidebar %q item %d: %w", name, i, err)
			}
		}
	}
	return nil
}

// Validate checks one item and, recursively, everything nested under it.
func (it *ItemConfig) Validate() error {
	if it == nil {
		return errors.New("item must not be null")
	}
	if err := validation.ValidateStruct(it,
		validation.Field(&it.Type, validation.Required, validation.In(TypeNote, TypeCategory, TypeAutogenerated)),
	); err != nil {
		return err
	}

	switch it.Type {
	case TypeNote, TypeAutogenerated:
		return validation.ValidateStruct(it,
			validation.Field(&it.ID, validation.Required),
		)
	case TypeCategory:
		if err := validation.ValidateStruct(it,
			validation.Field(&it.Label, validation.Required),
		); err != nil {
			return err
		}
		if len(it.Items) == 0 && it.Link == nil {
			return fmt.Errorf("category %q must have at least one item or a link", it.Label)
		}
		if it.Link != nil {
			if it.Link.Type != TypeNote {
				return fmt.Errorf("category %q link must reference a note, got type %q", it.Label, it.Link.Type)
			}
			if err := it.Link.Validate(); err != nil {
				return fmt.Errorf("category %q link: %w", it.Label, err)
			}
		}
		for i, sub := range it.Items {
			if err := sub.Validate(); err != nil {
				return fmt.Errorf("category %q item %d: %w", it.Label, i, err)
			}
		}
	}
	return nil
}

func sortedNames(c Config) []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
