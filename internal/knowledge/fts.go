package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// ftsStore mirrors the corpus into an SQLite FTS5 virtual table. It is
// rebuilt wholesale on every corpus reload.
type ftsStore struct {
	db *sql.DB
}

func openFTS(path string) (*ftsStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: opening FTS DB: %w", err)
	}
	_, err = db.Exec(`CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts
		USING fts5(id UNINDEXED, category UNINDEXED, title, content)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("knowledge: creating FTS table: %w", err)
	}
	return &ftsStore{db: db}, nil
}

func (f *ftsStore) close() error {
	if f == nil || f.db == nil {
		return nil
	}
	return f.db.Close()
}

// replaceAll swaps the indexed corpus in one transaction.
func (f *ftsStore) replaceAll(ctx context.Context, docs []*Document) error {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("knowledge: begin FTS tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM docs_fts`); err != nil {
		return fmt.Errorf("knowledge: clearing FTS: %w", err)
	}
	for _, d := range docs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO docs_fts (id, category, title, content) VALUES (?, ?, ?, ?)`,
			d.ID, d.Category, d.Title, d.Content)
		if err != nil {
			return fmt.Errorf("knowledge: inserting FTS doc: %w", err)
		}
	}
	return tx.Commit()
}

var ftsTokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// search runs an OR match over the query tokens ranked by bm25. Tokens
// are extracted and quoted so user punctuation cannot break the MATCH
// grammar.
func (f *ftsStore) search(ctx context.Context, query string, topK int) ([]Result, error) {
	tokens := ftsTokenRe.FindAllString(query, -1)
	if len(tokens) == 0 {
		return nil, nil
	}
	for i, t := range tokens {
		tokens[i] = `"` + t + `"`
	}
	match := strings.Join(tokens, " OR ")

	rows, err := f.db.QueryContext(ctx, `
		SELECT id, category, title, content, bm25(docs_fts)
		FROM docs_fts WHERE docs_fts MATCH ?
		ORDER BY bm25(docs_fts) LIMIT ?`, match, topK)
	if err != nil {
		return nil, fmt.Errorf("knowledge: FTS query: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var d Document
		var rank float64
		if err := rows.Scan(&d.ID, &d.Category, &d.Title, &d.Content, &rank); err != nil {
			return nil, err
		}
		// bm25 returns lower-is-better negative ranks; flip for callers.
		out = append(out, Result{Document: &d, Score: -rank})
	}
	return out, rows.Err()
}
