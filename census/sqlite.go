package census

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS census (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		sig  TEXT NOT NULL,
		name TEXT NOT NULL,
		blob BLOB
	)`,
	`CREATE INDEX IF NOT EXISTS census_sig ON census (sig, id)`,
}

// SQLiteSource is a read-only census database.
type SQLiteSource struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens the database at path for reading.
func OpenSQLite(path string) (*SQLiteSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, censusErrorf("OpenSQLite", ErrFile, "%v", err)
	}
	dsn := "file:" + (&url.URL{Path: path}).EscapedPath() + "?mode=ro"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, censusErrorf("OpenSQLite", ErrFile, "%s: %v", path, err)
	}
	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'census'`).Scan(&n)
	if err == nil && n == 0 {
		err = errors.New("no census table")
	}
	if err != nil {
		db.Close()
		return nil, censusErrorf("OpenSQLite", ErrFile, "%s: %v", path, err)
	}
	return &SQLiteSource{db: db, path: path}, nil
}

// Path returns the file the source reads.
func (s *SQLiteSource) Path() string { return s.path }

// Close releases the database.
func (s *SQLiteSource) Close() error { return s.db.Close() }

func (s *SQLiteSource) Lookup(ctx context.Context, sig string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT sig, name, blob FROM census WHERE sig = ? ORDER BY id`, sig)
	if err != nil {
		return nil, censusErrorf("Lookup", ErrFile, "%s: %v", s.path, err)
	}
	return scanEntries(rows, s.path)
}

// Len returns the number of entries.
func (s *SQLiteSource) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM census`).Scan(&n); err != nil {
		return 0, censusErrorf("Len", ErrFile, "%s: %v", s.path, err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows, path string) ([]Entry, error) {
	defer rows.Close()
	out := []Entry{}
	for rows.Next() {
		var e Entry
		var blob []byte
		if err := rows.Scan(&e.Sig, &e.Name, &blob); err != nil {
			return nil, censusErrorf("Lookup", ErrFile, "%s: %v", path, err)
		}
		if len(blob) > 0 {
			e.Blob = blob
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, censusErrorf("Lookup", ErrFile, "%s: %v", path, err)
	}
	return out, nil
}

// Writer fills a new database inside one transaction. Nothing is visible
// to readers until Close.
type Writer struct {
	db   *sql.DB
	tx   *sql.Tx
	ins  *sql.Stmt
	path string
	n    int
}

// CreateSQLite creates or extends the database at path.
func CreateSQLite(ctx context.Context, path string) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, censusErrorf("CreateSQLite", ErrFile, "%s: %v", path, err)
	}
	db.SetMaxOpenConns(1)
	w := &Writer{db: db, path: path}
	if err := w.begin(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) begin(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return censusErrorf("CreateSQLite", ErrFile, "%s: %v", w.path, err)
		}
	}
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return censusErrorf("CreateSQLite", ErrFile, "%s: %v", w.path, err)
	}
	ins, err := tx.PrepareContext(ctx, `INSERT INTO census (sig, name, blob) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return censusErrorf("CreateSQLite", ErrFile, "%s: %v", w.path, err)
	}
	w.tx, w.ins = tx, ins
	return nil
}

// Add appends one entry. The signature must be non-empty.
func (w *Writer) Add(ctx context.Context, e Entry) error {
	if e.Sig == "" {
		return censusErrorf("Add", ErrInvalidArgument, "empty signature for %q", e.Name)
	}
	var blob []byte
	if len(e.Blob) > 0 {
		blob = e.Blob
	}
	if _, err := w.ins.ExecContext(ctx, e.Sig, e.Name, blob); err != nil {
		return censusErrorf("Add", ErrFile, "%s: %v", w.path, err)
	}
	w.n++
	return nil
}

// Count returns the number of entries added so far.
func (w *Writer) Count() int { return w.n }

// Close commits the entries and closes the database.
func (w *Writer) Close() error {
	w.ins.Close()
	err := w.tx.Commit()
	if cerr := w.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return censusErrorf("Close", ErrFile, "%s: %v", w.path, err)
	}
	return nil
}

// Abort discards the entries and closes the database.
func (w *Writer) Abort() error {
	w.ins.Close()
	w.tx.Rollback()
	return w.db.Close()
}
