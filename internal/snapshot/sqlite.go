package snapshot

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/eihwaz/internal/models"
)

// schemaSQL is the index layout a SQLite snapshot is expected to carry.
// The loader never applies it; tests and external indexers do.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id            TEXT PRIMARY KEY,
	fname         TEXT NOT NULL,
	title         TEXT NOT NULL DEFAULT '',
	vault_name    TEXT NOT NULL DEFAULT '',
	vault_path    TEXT NOT NULL DEFAULT '',
	stub          INTEGER NOT NULL DEFAULT 0,
	nav_order     REAL,
	nav_exclude   INTEGER NOT NULL DEFAULT 0,
	reverse_sort  INTEGER NOT NULL DEFAULT 0,
	schema_module TEXT,
	schema_id     TEXT,
	updated       INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS note_children (
	parent_id TEXT NOT NULL,
	child_id  TEXT NOT NULL,
	position  INTEGER NOT NULL DEFAULT 0,
	UNIQUE(parent_id, child_id)
);

CREATE INDEX IF NOT EXISTS idx_children_parent ON note_children(parent_id);
`

// LoadSQLite reads a note graph from a SQLite index file. The database is
// opened read-only; a missing file is an error rather than an empty graph.
func LoadSQLite(path string) (models.Graph, error) {
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}
	defer conn.Close()
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("snapshot: ping %s: %w", path, err)
	}

	g, err := loadNotes(conn)
	if err != nil {
		return nil, err
	}
	if err := loadChildren(conn, g); err != nil {
		return nil, err
	}
	return g, nil
}

func loadNotes(conn *sql.DB) (models.Graph, error) {
	rows, err := conn.Query(`
		SELECT id, fname, title, vault_name, vault_path, stub,
		       nav_order, nav_exclude, reverse_sort,
		       schema_module, schema_id, updated
		FROM notes
	`)
	if err != nil {
		return nil, fmt.Errorf("snapshot: query notes: %w", err)
	}
	defer rows.Close()

	g := models.Graph{}
	for rows.Next() {
		var (
			n            models.Note
			navOrder     sql.NullFloat64
			schemaModule sql.NullString
			schemaID     sql.NullString
			updated      int64
		)
		err := rows.Scan(
			&n.ID, &n.Fname, &n.Title, &n.Vault.Name, &n.Vault.FsPath, &n.Stub,
			&navOrder, &n.NavExclude, &n.ReverseSort,
			&schemaModule, &schemaID, &updated,
		)
		if err != nil {
			return nil, fmt.Errorf("snapshot: scan note: %w", err)
		}
		if navOrder.Valid {
			v := navOrder.Float64
			n.Custom.NavOrder = &v
		}
		if schemaModule.Valid && schemaID.Valid {
			n.Schema = &models.SchemaRef{ModuleID: schemaModule.String, SchemaID: schemaID.String}
		}
		if updated > 0 {
			n.Updated = time.UnixMilli(updated)
		}
		g[n.ID] = &n
	}
	return g, rows.Err()
}

// loadChildren fills in child id lists in their recorded position order.
// Rows naming unknown parents are skipped, matching the graph's tolerance
// for dangling references.
func loadChildren(conn *sql.DB, g models.Graph) error {
	rows, err := conn.Query(`
		SELECT parent_id, child_id
		FROM note_children
		ORDER BY parent_id, position, child_id
	`)
	if err != nil {
		return fmt.Errorf("snapshot: query children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var parentID, childID string
		if err := rows.Scan(&parentID, &childID); err != nil {
			return fmt.Errorf("snapshot: scan child row: %w", err)
		}
		if parent, ok := g[parentID]; ok {
			parent.Children = append(parent.Children, childID)
		}
	}
	return rows.Err()
}
