package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/starford/eihwaz/internal/checksum"
	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/sidebar"
	"github.com/starford/eihwaz/internal/testutil"
)

func vaultConfig(t *testing.T) *Config {
	t.Helper()
	v := testutil.TestVault(t, "main", map[string]string{
		"a.md":   "---\ntitle: Alpha\n---\nBody.\n",
		"a.b.md": "---\ntitle: Beta\n---\nBody.\n",
		"b.md":   "Just text.\n",
	})
	cfg := NewDefaultConfig()
	cfg.Source.Vaults = []models.Vault{v}
	return cfg
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRun_MenuText(t *testing.T) {
	cfg := vaultConfig(t)
	var out bytes.Buffer

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeMenu), WithStdout(&out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{"defaultSidebar", "Alpha", "Beta", "B"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_ResolveJSON(t *testing.T) {
	cfg := vaultConfig(t)
	cfg.Output.Format = FormatJSON
	var out bytes.Buffer

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeResolve), WithStdout(&out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resolved map[string][]map[string]any
	if err := json.Unmarshal(out.Bytes(), &resolved); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	items, ok := resolved["defaultSidebar"]
	if !ok {
		t.Fatalf("defaultSidebar missing in %v", resolved)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0]["type"] != "category" || items[0]["label"] != "Alpha" {
		t.Errorf("items[0] = %v", items[0])
	}
	if items[1]["type"] != "note" || items[1]["label"] != "B" {
		t.Errorf("items[1] = %v", items[1])
	}
}

func TestRun_SidebarFileAndDuplicatePolicy(t *testing.T) {
	one := testutil.TestVault(t, "one", map[string]string{"x.md": "from one\n"})
	two := testutil.TestVault(t, "two", map[string]string{"x.md": "from two\n"})

	cfg := NewDefaultConfig()
	cfg.Source.Vaults = []models.Vault{one, two}
	cfg.Sidebar.Path = testutil.TestFile(t, "sidebar.yml", "defaultSidebar:\n  - type: note\n    id: x\n")
	cfg.Sidebar.DuplicateNoteBehavior = &sidebar.DuplicateNoteBehavior{
		Action:  "useVault",
		Payload: sidebar.VaultPayload{Vaults: []string{"two"}},
	}
	cfg.Output.Format = FormatJSON
	var out bytes.Buffer

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeResolve), WithStdout(&out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var resolved map[string][]map[string]any
	if err := json.Unmarshal(out.Bytes(), &resolved); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	items := resolved["defaultSidebar"]
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	wantID := checksum.Short([]byte("two/x"))
	if items[0]["id"] != wantID {
		t.Errorf("id = %v, want the vault two note %s", items[0]["id"], wantID)
	}
}

func TestRun_TreeMode(t *testing.T) {
	cfg := vaultConfig(t)
	var out bytes.Buffer

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeTree), WithTreeRoot("a"), WithStdout(&out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(out.String(), "a") || !strings.Contains(out.String(), "b") {
		t.Errorf("tree output = %s", out.String())
	}
}

func TestRun_TreeModeMissingRoot(t *testing.T) {
	cfg := vaultConfig(t)
	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeTree), WithTreeRoot("ghost"), WithStdout(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected error for unknown tree root")
	}
}

func TestRun_VerifyConsistentVault(t *testing.T) {
	cfg := vaultConfig(t)
	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeVerify), WithStdout(&bytes.Buffer{}))
	if err != nil {
		t.Fatalf("verify should pass on a scanned vault: %v", err)
	}
}

func TestRun_VerifyCatchesDrift(t *testing.T) {
	// Child pointers say root has only x; the fnames imply a.b as well.
	snapshotYAML := `
notes:
  root:
    fname: root
    children: [x]
    vault: {name: main, fsPath: /v}
  x:
    fname: x
    vault: {name: main, fsPath: /v}
  stray:
    fname: a.b
    vault: {name: main, fsPath: /v}
`
	cfg := NewDefaultConfig()
	cfg.Source.Kind = SourceSnapshot
	cfg.Source.Path = testutil.TestFile(t, "notes.yml", snapshotYAML)

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeVerify), WithStdout(&bytes.Buffer{}))
	if err == nil {
		t.Fatal("expected verify to report the hierarchy drift")
	}
	if !strings.Contains(err.Error(), "main") {
		t.Errorf("error should name the vault: %v", err)
	}
}

func TestRun_DisabledSidebar(t *testing.T) {
	cfg := vaultConfig(t)
	cfg.Sidebar.Disabled = true
	cfg.Output.Format = FormatJSON
	var out bytes.Buffer

	err := Run(context.Background(), WithConfig(cfg), WithMode(ModeMenu), WithStdout(&out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	var menu map[string]any
	if err := json.Unmarshal(out.Bytes(), &menu); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if roots, ok := menu["roots"].([]any); !ok || len(roots) != 0 {
		t.Errorf("roots = %v, want empty", menu["roots"])
	}
}

func TestRun_DeterministicOutput(t *testing.T) {
	cfg := vaultConfig(t)
	cfg.Output.Format = FormatJSON

	var first, second bytes.Buffer
	if err := Run(context.Background(), WithConfig(cfg), WithMode(ModeResolve), WithStdout(&first)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(context.Background(), WithConfig(cfg), WithMode(ModeResolve), WithStdout(&second)); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("runs disagree:\n%s\nvs\n%s", first.String(), second.String())
	}
}

func TestRun_TreeAgreesAcrossSources(t *testing.T) {
	// A snapshot mirroring the scanned vault must imply the same
	// fname hierarchy.
	snapshotYAML := `
notes:
  root:
    fname: root
    children: [a1, b1]
    vault: {name: main, fsPath: /v}
  a1:
    fname: a
    children: [ab1]
    vault: {name: main, fsPath: /v}
  ab1:
    fname: a.b
    vault: {name: main, fsPath: /v}
  b1:
    fname: b
    vault: {name: main, fsPath: /v}
`
	scanned := vaultConfig(t)
	scanned.Output.Format = FormatJSON
	var fromScan bytes.Buffer
	if err := Run(context.Background(), WithConfig(scanned), WithMode(ModeTree), WithStdout(&fromScan)); err != nil {
		t.Fatalf("vault run: %v", err)
	}

	mirrored := NewDefaultConfig()
	mirrored.Source.Kind = SourceSnapshot
	mirrored.Source.Path = testutil.TestFile(t, "notes.yml", snapshotYAML)
	mirrored.Output.Format = FormatJSON
	var fromSnapshot bytes.Buffer
	if err := Run(context.Background(), WithConfig(mirrored), WithMode(ModeTree), WithStdout(&fromSnapshot)); err != nil {
		t.Fatalf("snapshot run: %v", err)
	}

	if !bytes.Equal(fromScan.Bytes(), fromSnapshot.Bytes()) {
		t.Errorf("hierarchies disagree:\n%s\nvs\n%s", fromScan.String(), fromSnapshot.String())
	}
}

func TestRun_UnknownMode(t *testing.T) {
	cfg := vaultConfig(t)
	err := Run(context.Background(), WithConfig(cfg), WithMode("teleport"), WithStdout(&bytes.Buffer{}))
	if err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Errorf("err = %v, want unknown mode", err)
	}
}
