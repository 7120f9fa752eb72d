package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cassieopeanuts/scrabtopus"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ scrabtopus.Writer     = (*Store)(nil)
	_ scrabtopus.RunService = (*Store)(nil)
)

// Store persists crawls as runs and reads them back.
// Each Write creates a new run for the configured seed URL.
type Store struct {
	db        *DB
	lastRunID string

	// SeedURL and StartedAt are recorded on every run written.
	SeedURL   string
	StartedAt time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewStore creates a new Store for a crawl of seedURL starting now.
func NewStore(db *DB, seedURL string) *Store {
	return &Store{db: db, SeedURL: seedURL, StartedAt: time.Now().UTC(), Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// LastRunID returns the ID of the most recent run written by this store.
func (s *Store) LastRunID() string {
	return s.lastRunID
}

// Write stores data as a new run in a single transaction.
func (s *Store) Write(ctx context.Context, data *scrabtopus.ScrapedData) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID := uuid.New().String()
	finishedAt := s.now()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, page_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, s.SeedURL, data.Len(),
		s.StartedAt.UTC().Format(time.RFC3339), finishedAt.Format(time.RFC3339)); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "insert run: %v", err)
	}

	if data != nil {
		for i, page := range data.Pages {
			if err := insertPage(ctx, tx, runID, i, page); err != nil {
				return scrabtopus.Errorf(scrabtopus.EWRITE, "insert page %s: %v", page.URL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return scrabtopus.Errorf(scrabtopus.EWRITE, "commit run: %v", err)
	}
	s.lastRunID = runID

	return nil
}

func insertPage(ctx context.Context, tx *sql.Tx, runID string, position int, page *scrabtopus.Page) error {
	hash, err := ContentHash(page)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO pages (run_id, position, url, title, content_hash)
		VALUES (?, ?, ?, ?, ?)
	`, runID, position, page.URL, page.Title, hash)
	if err != nil {
		return err
	}
	pageID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i, section := range page.Sections {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sections (page_id, position, header) VALUES (?, ?, ?)
		`, pageID, i, section.Header)
		if err != nil {
			return err
		}
		sectionID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for j, block := range section.Content {
			var items string
			if block.Kind == scrabtopus.BlockList {
				b, err := json.Marshal(block.Items)
				if err != nil {
					return err
				}
				items = string(b)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO blocks (section_id, position, kind, text, items) VALUES (?, ?, ?, ?, ?)
			`, sectionID, j, block.Kind.String(), block.Text, items); err != nil {
				return err
			}
		}
	}

	return nil
}

// ContentHash returns a hex-encoded xxhash of the page's JSON encoding.
// Pages with identical content share a hash across runs.
func ContentHash(page *scrabtopus.Page) (string, error) {
	b, err := json.Marshal(page)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}

// FindRuns returns stored runs, most recent first.
func (s *Store) FindRuns(ctx context.Context, filter scrabtopus.RunFilter) ([]*scrabtopus.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, page_count, started_at, finished_at FROM runs ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*scrabtopus.Run
	for rows.Next() {
		var run scrabtopus.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.SeedURL, &run.PageCount, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// FindRunData rebuilds the scraped data of a run.
// Returns ENOTFOUND if the run does not exist.
func (s *Store) FindRunData(ctx context.Context, id string) (*scrabtopus.ScrapedData, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, id).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, scrabtopus.Errorf(scrabtopus.ENOTFOUND, "run %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.url, p.title, s.id, s.header, b.kind, b.text, b.items
		FROM pages p
		LEFT JOIN sections s ON s.page_id = p.id
		LEFT JOIN blocks b ON b.section_id = s.id
		WHERE p.run_id = ?
		ORDER BY p.position, s.position, b.position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := &scrabtopus.ScrapedData{Pages: []*scrabtopus.Page{}}
	var page *scrabtopus.Page
	var section *scrabtopus.Section
	var pageID, sectionID int64

	for rows.Next() {
		var (
			pID                int64
			url, title         string
			sID                sql.NullInt64
			header             sql.NullString
			kind, text, itemsJ sql.NullString
		)
		if err := rows.Scan(&pID, &url, &title, &sID, &header, &kind, &text, &itemsJ); err != nil {
			return nil, err
		}

		if page == nil || pID != pageID {
			page = &scrabtopus.Page{URL: url, Title: title, Sections: []*scrabtopus.Section{}}
			data.Pages = append(data.Pages, page)
			pageID, section = pID, nil
		}
		if !sID.Valid {
			continue
		}

		if section == nil || sID.Int64 != sectionID {
			section = &scrabtopus.Section{Header: header.String, Content: []scrabtopus.ContentBlock{}}
			page.Sections = append(page.Sections, section)
			sectionID = sID.Int64
		}
		if !kind.Valid {
			continue
		}

		block, err := scanBlock(kind.String, text.String, itemsJ.String)
		if err != nil {
			return nil, err
		}
		section.Content = append(section.Content, block)
	}

	return data, rows.Err()
}

func scanBlock(kind, text, items string) (scrabtopus.ContentBlock, error) {
	switch kind {
	case scrabtopus.BlockParagraph.String():
		return scrabtopus.Paragraph(text), nil
	case scrabtopus.BlockList.String():
		var list []string
		if err := json.Unmarshal([]byte(items), &list); err != nil {
			return scrabtopus.ContentBlock{}, fmt.Errorf("failed to parse items: %w", err)
		}
		return scrabtopus.List(list), nil
	default:
		return scrabtopus.ContentBlock{}, fmt.Errorf("unknown block kind %q", kind)
	}
}
