package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, strategy_id, title, status, start_date, due_date, progress, created_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.StrategyID,
		p.Title,
		string(p.Status),
		nullableDate(p.StartDate),
		nullableDate(p.DueDate),
		domain.ClampPercent(p.Progress),
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, id`)
}

func (r *SQLiteProjectRepo) ListByStrategy(ctx context.Context, strategyID string) ([]*domain.Project, error) {
	return r.query(ctx, `SELECT `+projectColumns+` FROM projects WHERE strategy_id = ? ORDER BY created_at, id`, strategyID)
}

func (r *SQLiteProjectRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var out []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return out, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status, created string
	var start, due sql.NullString
	err := row.Scan(&p.ID, &p.StrategyID, &p.Title, &status, &start, &due, &p.Progress, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Status = domain.ProjectStatus(status)
	p.StartDate = parseNullableDate(start)
	p.DueDate = parseNullableDate(due)
	p.CreatedAt = parseTimestamp(created)
	return &p, nil
}
