package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/ports"
)

// SelectionRepositoryImpl implements SelectionRepository for PostgreSQL
type SelectionRepositoryImpl struct {
	db *sqlx.DB
}

// NewSelectionRepository creates a new PostgreSQL selection repository
func NewSelectionRepository(db *sqlx.DB) *SelectionRepositoryImpl {
	return &SelectionRepositoryImpl{db: db}
}

var _ ports.SelectionRepository = (*SelectionRepositoryImpl)(nil)

// EnsureSchema creates the selections table when it does not exist yet.
func (r *SelectionRepositoryImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS selections (
			search_id    TEXT PRIMARY KEY,
			groups       JSONB NOT NULL,
			reports      JSONB NOT NULL,
			rounds       INT NOT NULL,
			worker_index INT NOT NULL,
			attempts     INT NOT NULL,
			accepted_at  TIMESTAMPTZ NOT NULL
		)`)
	return err
}

// Save persists an accepted selection and its per-constraint statistics
func (r *SelectionRepositoryImpl) Save(ctx context.Context, record ports.SelectionRecord) error {
	groupsJSON, err := json.Marshal(record.Selection.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode groups: %w", err)
	}
	reportsJSON, err := json.Marshal(record.Reports)
	if err != nil {
		return fmt.Errorf("failed to encode reports: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO selections (
			search_id, groups, reports, rounds, worker_index, attempts, accepted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (search_id) DO UPDATE SET
			groups = EXCLUDED.groups,
			reports = EXCLUDED.reports,
			rounds = EXCLUDED.rounds,
			worker_index = EXCLUDED.worker_index,
			attempts = EXCLUDED.attempts,
			accepted_at = EXCLUDED.accepted_at`,
		record.Selection.SearchID.String(), groupsJSON, reportsJSON,
		record.Selection.Rounds, record.Selection.WorkerIndex, record.Selection.Attempts,
		record.Selection.AcceptedAt.Time())
	return err
}

// Get retrieves a selection by search ID
func (r *SelectionRepositoryImpl) Get(ctx context.Context, id core.SearchID) (*ports.SelectionRecord, error) {
	var row struct {
		SearchID    string       `db:"search_id"`
		Groups      []byte       `db:"groups"`
		Reports     []byte       `db:"reports"`
		Rounds      int          `db:"rounds"`
		WorkerIndex int          `db:"worker_index"`
		Attempts    int          `db:"attempts"`
		AcceptedAt  sql.NullTime `db:"accepted_at"`
	}

	err := r.db.GetContext(ctx, &row, `
		SELECT search_id, groups, reports, rounds, worker_index, attempts, accepted_at
		FROM selections WHERE search_id = $1`, id.String())
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("selection %s not found", id)
	}
	if err != nil {
		return nil, err
	}

	record := &ports.SelectionRecord{
		Selection: sampling.Selection{
			SearchID:    core.SearchID(row.SearchID),
			Rounds:      row.Rounds,
			WorkerIndex: row.WorkerIndex,
			Attempts:    row.Attempts,
		},
	}
	if row.AcceptedAt.Valid {
		record.Selection.AcceptedAt = core.NewTimestamp(row.AcceptedAt.Time)
	}
	if err := json.Unmarshal(row.Groups, &record.Selection.Groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	if err := json.Unmarshal(row.Reports, &record.Reports); err != nil {
		return nil, fmt.Errorf("failed to decode reports: %w", err)
	}
	return record, nil
}
