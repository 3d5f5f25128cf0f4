package site

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the assembled collection in SQLite so the preview server
// can serve a site without re-reading the content tree. The markdown files
// stay the source of truth; the database is a derived artifact replaced
// wholesale on every publish.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL mode for concurrent read/write access, a busy timeout so writers
	// wait instead of returning SQLITE_BUSY, synchronous=NORMAL (safe with
	// WAL), and a larger cache to reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS documents (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    layout TEXT NOT NULL,
    series TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT ',,',
    summary TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    draft INTEGER NOT NULL DEFAULT 0
);
`)
	return err
}

// Publish replaces the stored collection with docs in a single transaction.
func (s *Store) Publish(docs []Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO documents (slug, title, date, layout, series, tags, summary, body, draft) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range docs {
		draft := 0
		if d.Draft {
			draft = 1
		}
		if _, err := stmt.Exec(d.Slug, d.Title, storeDate(d.Date), string(d.Layout), d.Series, joinTags(d.Tags), d.Summary, d.Body, draft); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListDocuments returns stored documents ordered by date descending, slug
// ascending. Drafts are included only when requested.
func (s *Store) ListDocuments(includeDrafts bool) ([]Document, error) {
	q := `SELECT slug, title, date, layout, series, tags, summary, body, draft FROM documents ORDER BY date DESC, slug ASC`
	if !includeDrafts {
		q = `SELECT slug, title, date, layout, series, tags, summary, body, draft FROM documents WHERE draft = 0 ORDER BY date DESC, slug ASC`
	}
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// GetDocument returns a stored document by slug. Drafts are only visible
// when includeDrafts is set.
func (s *Store) GetDocument(slug string, includeDrafts bool) (Document, error) {
	q := `SELECT slug, title, date, layout, series, tags, summary, body, draft FROM documents WHERE slug = ?`
	if !includeDrafts {
		q += ` AND draft = 0`
	}
	row := s.db.QueryRow(q, slug)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return Document{}, ErrNotFound
	}
	return d, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (Document, error) {
	var slug, title, date, layout, series, tags, summary, body string
	var draft int
	if err := r.Scan(&slug, &title, &date, &layout, &series, &tags, &summary, &body, &draft); err != nil {
		return Document{}, err
	}
	d := Document{
		Slug:    slug,
		Title:   title,
		Layout:  Layout(layout),
		Series:  series,
		Tags:    splitTags(tags),
		Summary: summary,
		Body:    body,
		Draft:   draft == 1,
	}
	if date != "" {
		if t, err := time.Parse(dateLayout, date); err == nil {
			d.Date = t
		}
	}
	return d, nil
}

func storeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// joinTags stores tags comma-bracketed (",go,web,") so lookups can match
// ",tag," without partial-word hits.
func joinTags(tags []string) string {
	normalized := make([]string, len(tags))
	for i, t := range tags {
		normalized[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return "," + strings.Join(normalized, ",") + ","
}

func splitTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
