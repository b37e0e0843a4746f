package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vradovic/fakebench/internal/bench/report"
	"github.com/vradovic/fakebench/pkg/pagination"
)

var ErrRunNotFound = errors.New("run not found")

// RunSummary is the list-view projection of a stored run.
type RunSummary struct {
	ID        uuid.UUID `json:"id"`
	SpecName  string    `json:"spec_name"`
	CreatedAt time.Time `json:"created_at"`
	JobCount  int       `json:"job_count"`
	RowCount  int       `json:"row_count"`
}

// StoredRun is a full run: metadata plus every summary row in report order.
type StoredRun struct {
	ID        uuid.UUID           `json:"id"`
	SpecName  string              `json:"spec_name"`
	CreatedAt time.Time           `json:"created_at"`
	Config    report.ReportConfig `json:"config"`
	Rows      []report.SummaryRow `json:"rows"`
}

type RunStore struct {
	db *pgxpool.Pool
}

func NewRunStore(pool *ConnectionPool) *RunStore {
	return &RunStore{db: pool.conn}
}

// SaveRun persists the run header and bulk-copies its summary rows. Row
// position is stored so report order survives the round trip.
func (s *RunStore) SaveRun(ctx context.Context, r *report.Report) error {
	configJSON, err := json.Marshal(r.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal run config: %w", err)
	}
	envJSON, err := json.Marshal(r.Meta.Environment)
	if err != nil {
		return fmt.Errorf("failed to marshal environment: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmd := `
        INSERT INTO eval_runs (id, spec_name, version, created_at, config, environment)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err = tx.Exec(ctx, cmd,
		r.Meta.RunID,
		r.Meta.SpecName,
		r.Meta.Version,
		r.Meta.Timestamp,
		configJSON,
		envJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	var rows [][]interface{}
	position := 0
	for _, job := range r.Jobs {
		for _, row := range job.Rows {
			latencyJSON, err := json.Marshal(row.Latency)
			if err != nil {
				return fmt.Errorf("failed to marshal latency stats: %w", err)
			}
			rows = append(rows, []interface{}{
				r.Meta.RunID, position,
				row.JobName, row.ModelName, row.Mode,
				row.Threshold, row.Accuracy, row.Precision, row.Recall, row.F1, row.AUC,
				row.TP, row.FP, row.TN, row.FN, row.Samples,
				latencyJSON, row.Error,
			})
			position++
		}
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"eval_rows"},
		[]string{
			"run_id", "position",
			"job_name", "model_name", "mode",
			"threshold", "accuracy", "precision", "recall", "f1", "auc",
			"tp", "fp", "tn", "fn", "samples",
			"latency", "error",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert rows: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *RunStore) ListRuns(ctx context.Context, page *pagination.OffsetRequest) (*pagination.OffsetResult[RunSummary], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM eval_runs`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	listSQL := `
		SELECT r.id, r.spec_name, r.created_at,
			COUNT(DISTINCT e.job_name), COUNT(e.run_id)
		FROM eval_runs r
		LEFT JOIN eval_rows e ON e.run_id = r.id
		GROUP BY r.id, r.spec_name, r.created_at
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $1 OFFSET $2
	`
	offset := (page.Page - 1) * page.Size
	rows, err := s.db.Query(ctx, listSQL, page.Size, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var rs RunSummary
		if err := rows.Scan(&rs.ID, &rs.SpecName, &rs.CreatedAt, &rs.JobCount, &rs.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		summaries = append(summaries, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return pagination.NewOffsetResult(summaries, total, page.Page, page.Size), nil
}

func (s *RunStore) GetRun(ctx context.Context, id uuid.UUID) (*StoredRun, error) {
	var (
		run        StoredRun
		configJSON []byte
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, spec_name, created_at, config
		FROM eval_runs WHERE id = $1
	`, id).Scan(&run.ID, &run.SpecName, &run.CreatedAt, &configJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	if err := json.Unmarshal(configJSON, &run.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run config: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT job_name, model_name, mode,
			threshold, accuracy, "precision", recall, f1, auc,
			tp, fp, tn, fn, samples, latency, error
		FROM eval_rows
		WHERE run_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run rows: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row         report.SummaryRow
			latencyJSON []byte
		)
		if err := rows.Scan(
			&row.JobName, &row.ModelName, &row.Mode,
			&row.Threshold, &row.Accuracy, &row.Precision, &row.Recall, &row.F1, &row.AUC,
			&row.TP, &row.FP, &row.TN, &row.FN, &row.Samples,
			&latencyJSON, &row.Error,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if err := json.Unmarshal(latencyJSON, &row.Latency); err != nil {
			return nil, fmt.Errorf("failed to unmarshal latency stats: %w", err)
		}
		run.Rows = append(run.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return &run, nil
}
