// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps a local SQLite snapshot of retrieved RePORTER
// projects so they can be queried and re-summarized offline.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

const defaultDBPath = "archive/reporter.db"

// Store manages the archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at cfg.DBPath and creates
// the schema if it does not exist.
func Open(cfg types.ArchiveConfig) (*Store, error) {
	path := cfg.DBPath
	if path == "" {
		path = defaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			criteria TEXT NOT NULL,
			max_projects INTEGER,
			records INTEGER,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS projects (
			project_num TEXT NOT NULL,
			fiscal_year TEXT NOT NULL,
			title TEXT,
			agency TEXT,
			activity_code TEXT,
			org_name TEXT,
			award_amount REAL,
			award_notice_date TEXT,
			record TEXT NOT NULL,
			run_id INTEGER REFERENCES runs(id),
			PRIMARY KEY (project_num, fiscal_year)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_agency ON projects(agency)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_fiscal_year ON projects(fiscal_year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveSummary holds counts from one archive run.
type SaveSummary struct {
	RunID    int64
	Inserted int
	Updated  int
	Skipped  int
}

// Total returns the number of records processed.
func (s SaveSummary) Total() int {
	return s.Inserted + s.Updated + s.Skipped
}

// Save upserts records keyed by project number and fiscal year, recording
// the run's criteria. Records without a project number are skipped.
func (s *Store) Save(ctx context.Context, criteria any, maxProjects int, records []types.Project, w io.Writer) (SaveSummary, error) {
	if w == nil {
		w = io.Discard
	}
	criteriaJSON, err := json.Marshal(criteria)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("encoding criteria: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (criteria, max_projects, records, created_at) VALUES (?, ?, ?, ?)`,
		string(criteriaJSON), maxProjects, len(records), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("recording run: %w", err)
	}
	summary := SaveSummary{}
	if summary.RunID, err = res.LastInsertId(); err != nil {
		return SaveSummary{}, fmt.Errorf("reading run id: %w", err)
	}

	exists, err := tx.PrepareContext(ctx,
		`SELECT count(*) FROM projects WHERE project_num = ? AND fiscal_year = ?`)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO projects (project_num, fiscal_year, title, agency, activity_code, org_name,
			award_amount, award_notice_date, record, run_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_num, fiscal_year) DO UPDATE SET
			title=excluded.title, agency=excluded.agency, activity_code=excluded.activity_code,
			org_name=excluded.org_name, award_amount=excluded.award_amount,
			award_notice_date=excluded.award_notice_date, record=excluded.record,
			run_id=excluded.run_id`)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer upsert.Close()

	for _, p := range records {
		if p.ProjectNum == "" {
			summary.Skipped++
			continue
		}
		year := p.FiscalYear.Key()

		var n int
		if err := exists.QueryRowContext(ctx, p.ProjectNum, year).Scan(&n); err != nil {
			return SaveSummary{}, fmt.Errorf("looking up %s: %w", p.ProjectNum, err)
		}

		record, err := json.Marshal(p)
		if err != nil {
			return SaveSummary{}, fmt.Errorf("encoding %s: %w", p.ProjectNum, err)
		}
		_, err = upsert.ExecContext(ctx,
			p.ProjectNum, year, p.ProjectTitle, p.AgencyKey(), p.ActivityKey(), p.OrgKey(),
			p.AwardAmount, p.AwardNoticeDate, string(record), summary.RunID,
		)
		if err != nil {
			return SaveSummary{}, fmt.Errorf("upserting %s: %w", p.ProjectNum, err)
		}

		if n > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveSummary{}, fmt.Errorf("committing: %w", err)
	}

	fmt.Fprintf(w, "run %d: inserted: %d, updated: %d, skipped: %d\n",
		summary.RunID, summary.Inserted, summary.Updated, summary.Skipped)
	return summary, nil
}

// QueryOptions filters archived projects. Zero values match everything.
type QueryOptions struct {
	Agency     string
	FiscalYear string
	OrgName    string
	Limit      int
}

// Projects returns archived projects matching opts, most recent award
// notice first.
func (s *Store) Projects(ctx context.Context, opts QueryOptions) ([]types.Project, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT record FROM projects WHERE 1=1`)
	if opts.Agency != "" {
		qb.WriteString(` AND agency = ?`)
		args = append(args, opts.Agency)
	}
	if opts.FiscalYear != "" {
		qb.WriteString(` AND fiscal_year = ?`)
		args = append(args, opts.FiscalYear)
	}
	if opts.OrgName != "" {
		qb.WriteString(` AND org_name = ?`)
		args = append(args, opts.OrgName)
	}
	qb.WriteString(` ORDER BY award_notice_date DESC, project_num`)
	if opts.Limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var out []types.Project
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		var p types.Project
		if err := json.Unmarshal([]byte(record), &p); err != nil {
			return nil, fmt.Errorf("decoding project: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AgencyTotals returns per-agency counts and funding, highest funding first.
func (s *Store) AgencyTotals(ctx context.Context) (types.Groups, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT agency, count(*), COALESCE(sum(award_amount), 0)
		 FROM projects GROUP BY agency ORDER BY 3 DESC, agency`)
	if err != nil {
		return nil, fmt.Errorf("querying agency totals: %w", err)
	}
	defer rows.Close()

	out := types.Groups{}
	for rows.Next() {
		var g types.GroupStat
		if err := rows.Scan(&g.Key, &g.Count, &g.Funding); err != nil {
			return nil, fmt.Errorf("scanning agency totals: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Count returns the number of archived projects.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}
