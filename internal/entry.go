// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/starford/eihwaz/internal/apperr"
	"github.com/starford/eihwaz/internal/checksum"
	"github.com/starford/eihwaz/internal/hierarchy"
	"github.com/starford/eihwaz/internal/models"
	"github.com/starford/eihwaz/internal/render"
	"github.com/starford/eihwaz/internal/sidebar"
	"github.com/starford/eihwaz/internal/snapshot"
	"github.com/starford/eihwaz/internal/treemenu"
	"github.com/starford/eihwaz/internal/vault"
)

// Run modes.
const (
	// ModeResolve prints the fully resolved sidebars.
	ModeResolve = "resolve"
	// ModeMenu prints the rendered menu tree with its lookup indexes.
	ModeMenu = "menu"
	// ModeTree prints the plain hierarchy under one note.
	ModeTree = "tree"
	// ModeVerify checks, per vault, that the child-pointer hierarchy and
	// the fname-derived hierarchy agree.
	ModeVerify = "verify"
)

// Run executes one operation with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{mode: ModeMenu, stdout: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	// Structured JSON logs go to stderr; stdout carries results.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("mode", app.mode),
		slog.String("source_kind", cfg.Source.Kind),
		slog.String("output_format", cfg.Output.Format),
		slog.String("log_level", cfg.App.LogLevel.String()))

	notes, err := loadNotes(cfg.Source)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	logger.Info("Note graph loaded", slog.Int("notes", len(notes)))

	switch app.mode {
	case ModeResolve:
		resolved, err := resolveSidebars(cfg, notes)
		if err != nil {
			return err
		}
		fingerprint, err := checksum.SumJSON(resolved)
		if err != nil {
			return fmt.Errorf("fingerprint: %w", err)
		}
		logger.Info("Sidebars resolved",
			slog.Int("sidebars", len(resolved)),
			slog.String("fingerprint", fingerprint))
		if cfg.Output.Format == FormatJSON {
			return writeJSON(app.stdout, resolved)
		}
		return writeYAML(app.stdout, resolved)

	case ModeMenu:
		resolved, err := resolveSidebars(cfg, notes)
		if err != nil {
			return err
		}
		menu := treemenu.Build(notes, resolved)
		logger.Info("Menu built",
			slog.Int("roots", len(menu.Roots)),
			slog.Int("labels", len(menu.Labels)))
		if cfg.Output.Format == FormatJSON {
			return writeJSON(app.stdout, menu)
		}
		_, err = io.WriteString(app.stdout, render.Menu(menuName(resolved), menu))
		return err

	case ModeTree:
		root, err := findTreeRoot(notes, app.treeRoot)
		if err != nil {
			return err
		}
		tree, err := hierarchy.FromGraph(notes, root.ID)
		if err != nil {
			return err
		}
		logger.Info("Hierarchy built",
			slog.String("root", root.Fname),
			slog.String("vault", root.Vault.DisplayName()))
		if cfg.Output.Format == FormatJSON {
			return writeJSON(app.stdout, tree)
		}
		_, err = io.WriteString(app.stdout, render.Hierarchy(tree))
		return err

	case ModeVerify:
		return verify(ctx, notes, logger)
	}
	return fmt.Errorf("unknown mode %q", app.mode)
}

// loadNotes builds the note graph from the configured source.
func loadNotes(src SourceConfig) (models.Graph, error) {
	switch src.Kind {
	case SourceVaults:
		scanner, err := vault.NewScanner(src.Vaults...)
		if err != nil {
			return nil, err
		}
		return scanner.Scan()
	case SourceSnapshot:
		return snapshot.Load(src.Path)
	case SourceSQLite:
		return snapshot.LoadSQLite(src.Path)
	}
	return nil, fmt.Errorf("unknown source kind %q", src.Kind)
}

// resolveSidebars loads the configured sidebar definition and resolves it
// against the graph.
func resolveSidebars(cfg *Config, notes models.Graph) (sidebar.Sidebars, error) {
	sbCfg, err := sidebarConfig(cfg.Sidebar)
	if err != nil {
		return nil, err
	}
	resolved, err := sidebar.Resolve(sbCfg, sidebar.ResolveOptions{
		Notes:                 notes,
		DuplicateNoteBehavior: cfg.Sidebar.DuplicateNoteBehavior,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve sidebars: %w", err)
	}
	return resolved, nil
}

func sidebarConfig(c SidebarConfig) (sidebar.Config, error) {
	if c.Disabled {
		return sidebar.DisabledConfig(), nil
	}
	if c.Path == "" {
		return sidebar.DefaultConfig(), nil
	}
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("read sidebar config: %w", err)
	}
	return sidebar.Parse(data)
}

// findTreeRoot resolves the tree mode's starting note: by id, then by
// fname. An empty reference means the vault root.
func findTreeRoot(notes models.Graph, ref string) (*models.Note, error) {
	if ref == "" {
		ref = models.RootFname
	}
	if n, ok := notes.Get(ref); ok && n != nil {
		return n, nil
	}
	if matches := notes.FindByFname(ref); len(matches) > 0 {
		return matches[0], nil
	}
	return nil, fmt.Errorf("tree root %q: %w", ref, apperr.ErrNotFound)
}

// verify checks every vault's hierarchy both ways: the tree implied by
// child pointers must match the tree implied by the dotted fnames. Vaults
// are checked concurrently; the first mismatch fails the whole run.
func verify(ctx context.Context, notes models.Graph, logger *slog.Logger) error {
	roots := notes.Roots()
	if len(roots) == 0 {
		return fmt.Errorf("verify: no root notes in graph")
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, root := range roots {
		root := root // per-iteration copy; required while go.mod predates Go 1.22 loop semantics
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			vaultName := root.Vault.DisplayName()
			fromGraph, err := hierarchy.FromGraph(notes, root.ID)
			if err != nil {
				return fmt.Errorf("verify vault %q: %w", vaultName, err)
			}
			fnames := notes.VaultFnames(vaultName)
			fromNames := hierarchy.FromNames(fnames, models.RootFname)
			if err := hierarchy.Equal(fromNames, fromGraph); err != nil {
				return fmt.Errorf("verify vault %q: %w", vaultName, err)
			}
			logger.Info("Hierarchy verified",
				slog.String("vault", vaultName),
				slog.Int("notes", len(fnames)))
			return nil
		})
	}
	return g.Wait()
}

func menuName(resolved sidebar.Sidebars) string {
	if len(resolved) == 0 {
		return "sidebar"
	}
	names := make([]string, 0, len(resolved))
	for name := range resolved {
		names = append(names, name)
	}
	sort.Strings(names)
	return names[0]
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = w.Write(data)
	return err
}
