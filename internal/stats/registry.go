package stats

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Registry is the SQLite catalog of ingested instruments. Ingestion
// writes one row per instrument; query-time code only reads.
type Registry struct {
	db *sql.DB
}

// Instrument is one registry row.
type Instrument struct {
	ID        string
	Title     string
	LawNumber string
	Type      string
	Year      int
	Source    string
	Revoked   bool
	Chunks    int
}

// Open creates or opens the registry database at the given path.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging registry: %w", err)
	}

	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

// OpenMemory creates an in-memory registry (useful for testing).
func OpenMemory() (*Registry, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory registry: %w", err)
	}
	r := &Registry{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

// Close releases the underlying database handle.
func (r *Registry) Close() error { return r.db.Close() }

func (r *Registry) migrate() error {
	_, err := r.db.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS instruments (
    id TEXT PRIMARY KEY,
    titulo TEXT NOT NULL,
    numero TEXT NOT NULL DEFAULT '',
    tipo TEXT NOT NULL DEFAULT 'lei',
    ano INTEGER NOT NULL DEFAULT 0,
    fonte TEXT NOT NULL DEFAULT 'legislacao',
    revogada INTEGER NOT NULL DEFAULT 0,
    trechos INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_instruments_tipo ON instruments(tipo);
CREATE INDEX IF NOT EXISTS idx_instruments_numero ON instruments(numero);
`

// Add upserts one instrument row.
func (r *Registry) Add(ctx context.Context, inst Instrument) error {
	revoked := 0
	if inst.Revoked {
		revoked = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO instruments (id, titulo, numero, tipo, ano, fonte, revogada, trechos)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			titulo = excluded.titulo,
			numero = excluded.numero,
			tipo = excluded.tipo,
			ano = excluded.ano,
			fonte = excluded.fonte,
			revogada = excluded.revogada,
			trechos = excluded.trechos`,
		inst.ID, inst.Title, inst.LawNumber, inst.Type, inst.Year, inst.Source, revoked, inst.Chunks)
	if err != nil {
		return fmt.Errorf("inserting instrument %s: %w", inst.ID, err)
	}
	return nil
}

// Snapshot aggregates the registry into corpus statistics.
func (r *Registry) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ByType: make(map[string]int)}

	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(trechos), 0),
		       COALESCE(MIN(ano) FILTER (WHERE ano > 0), 0),
		       COALESCE(MAX(ano), 0)
		FROM instruments`)
	if err := row.Scan(&snap.Instruments, &snap.Chunks, &snap.YearMin, &snap.YearMax); err != nil {
		return nil, fmt.Errorf("aggregating instruments: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT tipo, COUNT(*) FROM instruments GROUP BY tipo`)
	if err != nil {
		return nil, fmt.Errorf("counting by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tipo string
		var count int
		if err := rows.Scan(&tipo, &count); err != nil {
			return nil, fmt.Errorf("scanning type count: %w", err)
		}
		snap.ByType[tipo] = count
	}
	return snap, rows.Err()
}
