// Package store persists analyzed documents in a SQLite database keyed by
// content hash, so re-uploading the same file skips the analysis pipeline.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/paperlens/paperlens/internal/paper"
	_ "modernc.org/sqlite"
)

// Record is one stored analysis result.
type Record struct {
	DocID       string                        `json:"doc_id"`
	ContentHash string                        `json:"content_hash"`
	Title       string                        `json:"title"`
	Filename    string                        `json:"filename"`
	CreatedAt   time.Time                     `json:"created_at"`
	Document    *paper.StructuredDocument     `json:"document,omitempty"`
	Summaries   map[paper.SectionLabel]string `json:"summaries,omitempty"`
}

// ErrNotFound is returned when no record matches the requested key.
var ErrNotFound = errors.New("store: document not found")

// RetryableError wraps a transient database failure (busy or locked
// connection) so callers can decide to retry the write.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS documents (
			doc_id TEXT PRIMARY KEY,
			content_hash TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			filename TEXT,
			created_at INTEGER NOT NULL,
			document_json TEXT NOT NULL,
			summaries_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_documents_hash ON documents(content_hash);
	`
	_, err := db.Exec(schema)
	return err
}

// Put stores a record. A busy database surfaces as *RetryableError.
func (d *DB) Put(rec Record) error {
	if rec.DocID == "" || rec.ContentHash == "" {
		return errors.New("store: record needs doc_id and content_hash")
	}
	docJSON, err := json.Marshal(rec.Document)
	if err != nil {
		return fmt.Errorf("marshaling document %s: %w", rec.DocID, err)
	}
	var summariesJSON sql.NullString
	if len(rec.Summaries) > 0 {
		b, err := json.Marshal(rec.Summaries)
		if err != nil {
			return fmt.Errorf("marshaling summaries for %s: %w", rec.DocID, err)
		}
		summariesJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO documents (doc_id, content_hash, title, filename, created_at, document_json, summaries_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.DocID, rec.ContentHash, rec.Title, rec.Filename, rec.CreatedAt.Unix(), string(docJSON), summariesJSON)
	if err != nil {
		if isBusy(err) {
			return &RetryableError{Err: fmt.Errorf("inserting document %s: %w", rec.DocID, err)}
		}
		return fmt.Errorf("inserting document %s: %w", rec.DocID, err)
	}
	return nil
}

// Get retrieves a record by document id.
func (d *DB) Get(docID string) (*Record, error) {
	row := d.db.QueryRow(`
		SELECT doc_id, content_hash, title, filename, created_at, document_json, summaries_json
		FROM documents
		WHERE doc_id = ?
	`, docID)
	return scanRecord(row)
}

// GetByHash retrieves a record by content hash. Used for upload
// deduplication before any analysis work starts.
func (d *DB) GetByHash(contentHash string) (*Record, error) {
	row := d.db.QueryRow(`
		SELECT doc_id, content_hash, title, filename, created_at, document_json, summaries_json
		FROM documents
		WHERE content_hash = ?
	`, contentHash)
	return scanRecord(row)
}

// List returns stored records newest first, without the document payload.
func (d *DB) List(limit int) ([]Record, error) {
	query := `
		SELECT doc_id, content_hash, title, filename, created_at
		FROM documents
		ORDER BY created_at DESC, doc_id
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var filename sql.NullString
		var createdAt int64
		if err := rows.Scan(&rec.DocID, &rec.ContentHash, &rec.Title, &filename, &createdAt); err != nil {
			return nil, err
		}
		rec.Filename = filename.String
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Delete removes a record by document id. Deleting a missing id returns
// ErrNotFound.
func (d *DB) Delete(docID string) error {
	res, err := d.db.Exec("DELETE FROM documents WHERE doc_id = ?", docID)
	if err != nil {
		if isBusy(err) {
			return &RetryableError{Err: fmt.Errorf("deleting document %s: %w", docID, err)}
		}
		return fmt.Errorf("deleting document %s: %w", docID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of stored documents.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

func scanRecord(row *sql.Row) (*Record, error) {
	var rec Record
	var filename, summariesJSON sql.NullString
	var createdAt int64
	var docJSON string

	err := row.Scan(&rec.DocID, &rec.ContentHash, &rec.Title, &filename, &createdAt, &docJSON, &summariesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rec.Filename = filename.String
	rec.CreatedAt = time.Unix(createdAt, 0).UTC()
	if err := json.Unmarshal([]byte(docJSON), &rec.Document); err != nil {
		return nil, fmt.Errorf("parsing document JSON for %s: %w", rec.DocID, err)
	}
	if summariesJSON.Valid && summariesJSON.String != "" {
		if err := json.Unmarshal([]byte(summariesJSON.String), &rec.Summaries); err != nil {
			return nil, fmt.Errorf("parsing summaries JSON for %s: %w", rec.DocID, err)
		}
	}
	return &rec, nil
}

// isBusy reports whether err is a transient SQLite busy/locked condition.
func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
