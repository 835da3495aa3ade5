package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"

	"github.com/cer4sco/freesscan/internal/types"
)

// PostgresSink writes findings into the scanner database created by the
// web API: severity_levels, findings and scans.
type PostgresSink struct {
	db *sql.DB
}

// OpenPostgres connects with lib/pq and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresSink, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPostgresSink(db), nil
}

func NewPostgresSink(db *sql.DB) *PostgresSink { return &PostgresSink{db: db} }

const (
	selectSeverities = `SELECT id, name FROM severity_levels`
	insertFinding    = `INSERT INTO findings (
		scan_id, severity_id, finding_type, title,
		description, location, line_number, matched_content, remediation
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	completeScan = `UPDATE scans
		SET findings_count = $1, status = 'completed', completed_at = NOW()
		WHERE id = $2`
)

// Save inserts every finding and marks the scan completed in a single
// transaction. scanID must be the integer id of an existing scans row.
func (s *PostgresSink) Save(ctx context.Context, scanID string, findings []types.Finding) error {
	id, err := strconv.ParseInt(scanID, 10, 64)
	if err != nil {
		return fmt.Errorf("postgres store needs an integer scan id, got %q", scanID)
	}
	sevIDs, err := s.severityIDs(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range findings {
		sev, ok := sevIDs[string(f.Severity)]
		if !ok {
			sev = sevIDs[string(types.SevInfo)]
		}
		var line sql.NullInt64
		if f.Line > 0 {
			line = sql.NullInt64{Int64: int64(f.Line), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertFinding,
			id, sev, f.Kind, f.Description,
			f.Description, f.Location, line, f.Evidence, f.Remediation,
		); err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, completeScan, len(findings), id); err != nil {
		return fmt.Errorf("update scan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *PostgresSink) severityIDs(ctx context.Context) (map[string]sql.NullInt64, error) {
	rows, err := s.db.QueryContext(ctx, selectSeverities)
	if err != nil {
		return nil, fmt.Errorf("load severity levels: %w", err)
	}
	defer rows.Close()
	out := map[string]sql.NullInt64{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan severity level: %w", err)
		}
		out[name] = sql.NullInt64{Int64: id, Valid: true}
	}
	return out, rows.Err()
}

func (s *PostgresSink) Close() error { return s.db.Close() }
