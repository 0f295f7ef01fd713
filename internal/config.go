package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/sidebar"
)

// Note graph sources.
const (
	SourceVaults   = "vaults"
	SourceSnapshot = "snapshot"
	SourceSQLite   = "sqlite"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Source  SourceConfig      `yaml:"source"`
	Sidebar SidebarConfig     `yaml:"sidebar"`
	Output  OutputConfig      `yaml:"output"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return err
	}
	if err := c.Sidebar.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// SourceConfig selects where the note graph snapshot is loaded from.
//
// Kind controls the loader:
//   - "vaults": scan the configured vault directories for Markdown notes.
//   - "snapshot": read a YAML note graph document from Path.
//   - "sqlite": read a SQLite note index from Path.
type SourceConfig struct {
	Kind   string         `yaml:"kind"`
	Vaults []models.Vault `yaml:"vaults"`
	Path   string         `yaml:"path"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	// Normalise empty kind to "vaults" for the common case.
	if c.Kind == "" {
		c.Kind = SourceVaults
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Kind, validation.Required, validation.In(SourceVaults, SourceSnapshot, SourceSQLite)),
	); err != nil {
		return err
	}
	switch c.Kind {
	case SourceVaults:
		if len(c.Vaults) == 0 {
			return fmt.Errorf("source: kind is %q but no vaults are configured", SourceVaults)
		}
		for i, v := range c.Vaults {
			if v.FsPath == "" {
				return fmt.Errorf("source: vault %d: fsPath is empty", i)
			}
		}
	default:
		if c.Path == "" {
			return fmt.Errorf("source: kind is %q but path is empty", c.Kind)
		}
	}
	return nil
}

// SidebarConfig selects the sidebar definition to resolve. With no Path
// the built-in default (full autogeneration from the hierarchy top) is
// used; Disabled switches navigation off entirely.
type SidebarConfig struct {
	Path                  string                         `yaml:"path"`
	Disabled              bool                           `yaml:"disabled"`
	DuplicateNoteBehavior *sidebar.DuplicateNoteBehavior `yaml:"duplicate_note_behavior"`
}

// Validate validates the sidebar configuration.
func (c *SidebarConfig) Validate() error {
	if c.Disabled && c.Path != "" {
		return fmt.Errorf("sidebar: disabled but path %q is set", c.Path)
	}
	return nil
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	// Normalise empty format to text.
	if c.Format == "" {
		c.Format = FormatText
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.Required, validation.In(FormatText, FormatJSON)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Source: SourceConfig{
			Kind: SourceVaults,
			Vaults: []models.Vault{
				{Name: "main", FsPath: "./notes"},
			},
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}
