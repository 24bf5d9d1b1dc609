package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteActionRepo implements ActionRepo using a SQLite database.
type SQLiteActionRepo struct {
	db db.DBTX
}

// NewSQLiteActionRepo creates a new SQLiteActionRepo.
func NewSQLiteActionRepo(conn db.DBTX) *SQLiteActionRepo {
	return &SQLiteActionRepo{db: conn}
}

const actionColumns = `id, strategy_id, project_id, title, status, due_date, is_archived, created_at`

func (r *SQLiteActionRepo) Create(ctx context.Context, a *domain.Action) error {
	projectID, _ := a.Project.ID()
	query := `INSERT INTO actions (` + actionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.StrategyID,
		nullableString(projectID),
		a.Title,
		string(a.Status),
		nullableDate(a.DueDate),
		boolToInt(a.IsArchived),
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting action: %w", err)
	}
	return nil
}

func (r *SQLiteActionRepo) GetByID(ctx context.Context, id string) (*domain.Action, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+actionColumns+` FROM actions WHERE id = ?`, id)
	a, err := scanAction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("action %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return a, nil
}

func (r *SQLiteActionRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Action, error) {
	if includeArchived {
		return r.query(ctx, `SELECT `+actionColumns+` FROM actions ORDER BY created_at, id`)
	}
	return r.query(ctx, `SELECT `+actionColumns+` FROM actions WHERE is_archived = 0 ORDER BY created_at, id`)
}

func (r *SQLiteActionRepo) ListByStrategy(ctx context.Context, strategyID string, includeArchived bool) ([]*domain.Action, error) {
	if includeArchived {
		return r.query(ctx, `SELECT `+actionColumns+` FROM actions WHERE strategy_id = ? ORDER BY created_at, id`, strategyID)
	}
	return r.query(ctx, `SELECT `+actionColumns+` FROM actions WHERE strategy_id = ? AND is_archived = 0
		ORDER BY created_at, id`, strategyID)
}

func (r *SQLiteActionRepo) UpdateStatus(ctx context.Context, id string, status domain.ActionStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE actions SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating action status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating action status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteActionRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Action, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing actions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actions: %w", err)
	}
	return out, nil
}

func scanAction(row rowScanner) (*domain.Action, error) {
	var a domain.Action
	var status, created string
	var projectID, due sql.NullString
	var archived int
	err := row.Scan(&a.ID, &a.StrategyID, &projectID, &a.Title, &status, &due, &archived, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning action: %w", err)
	}
	a.Project = domain.Unlinked()
	if projectID.Valid {
		a.Project = domain.Linked(projectID.String)
	}
	a.Status = domain.ActionStatus(status)
	a.DueDate = parseNullableDate(due)
	a.IsArchived = intToBool(archived)
	a.CreatedAt = parseTimestamp(created)
	return &a, nil
}
