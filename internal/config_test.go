package internal

import (
	"strings"
	"testing"

	"github.com/starford/eihwaz/internal/models"
)

func TestSourceConfig_EmptyKindDefaultsVaults(t *testing.T) {
	cfg := SourceConfig{Vaults: []models.Vault{{Name: "main", FsPath: "./notes"}}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty kind should default to vaults: %v", err)
	}
	if cfg.Kind != SourceVaults {
		t.Errorf("kind = %q, want %q", cfg.Kind, SourceVaults)
	}
}

func TestSourceConfig_VaultsNeedEntries(t *testing.T) {
	cfg := SourceConfig{Kind: SourceVaults}
	if err := cfg.Validate(); err == nil {
		t.Fatal("vaults kind without vault entries should fail")
	}

	cfg = SourceConfig{Kind: SourceVaults, Vaults: []models.Vault{{Name: "main"}}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("vault without fsPath should fail")
	}
	if !strings.Contains(err.Error(), "fsPath") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSourceConfig_FileKindsNeedPath(t *testing.T) {
	for _, kind := range []string{SourceSnapshot, SourceSQLite} {
		cfg := SourceConfig{Kind: kind}
		if err := cfg.Validate(); err == nil {
			t.Errorf("kind %q without path should fail", kind)
		}
		cfg = SourceConfig{Kind: kind, Path: "notes.db"}
		if err := cfg.Validate(); err != nil {
			t.Errorf("kind %q with path should pass: %v", kind, err)
		}
	}
}

func TestSourceConfig_InvalidKind(t *testing.T) {
	cfg := SourceConfig{Kind: "carrier-pigeon"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid kind should fail validation")
	}
}

func TestSidebarConfig_DisabledWithPath(t *testing.T) {
	cfg := SidebarConfig{Disabled: true, Path: "sidebar.yml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("disabled with a path should fail")
	}
	cfg = SidebarConfig{Disabled: true}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled alone should pass: %v", err)
	}
}

func TestOutputConfig_EmptyFormatDefaultsText(t *testing.T) {
	cfg := OutputConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty format should default to text: %v", err)
	}
	if cfg.Format != FormatText {
		t.Errorf("format = %q, want %q", cfg.Format, FormatText)
	}
}

func TestOutputConfig_InvalidFormat(t *testing.T) {
	cfg := OutputConfig{Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid format should fail validation")
	}
}

func TestFullConfig_SourceValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Source.Kind = SourceSnapshot
	cfg.Source.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch source error")
	}
}

func TestNewDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}
