package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteStrategyRepo implements StrategyRepo using a SQLite database.
type SQLiteStrategyRepo struct {
	db db.DBTX
}

// NewSQLiteStrategyRepo creates a new SQLiteStrategyRepo.
func NewSQLiteStrategyRepo(conn db.DBTX) *SQLiteStrategyRepo {
	return &SQLiteStrategyRepo{db: conn}
}

const strategyColumns = `id, title, color_code, status, start_date, target_date, completion_date, progress, created_at`

func (r *SQLiteStrategyRepo) Create(ctx context.Context, s *domain.Strategy) error {
	query := `INSERT INTO strategies (` + strategyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Title,
		s.ColorCode,
		string(s.Status),
		formatDate(s.StartDate),
		formatDate(s.TargetDate),
		nullableDate(s.CompletionDate),
		domain.ClampPercent(s.Progress),
		formatTimestamp(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting strategy: %w", err)
	}
	return nil
}

func (r *SQLiteStrategyRepo) GetByID(ctx context.Context, id string) (*domain.Strategy, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+strategyColumns+` FROM strategies WHERE id = ?`, id)
	s, err := scanStrategy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("strategy %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStrategyRepo) List(ctx context.Context) ([]*domain.Strategy, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+strategyColumns+` FROM strategies ORDER BY start_date, title, id`)
	if err != nil {
		return nil, fmt.Errorf("listing strategies: %w", err)
	}
	defer rows.Close()

	var out []*domain.Strategy
	for rows.Next() {
		s, err := scanStrategy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating strategies: %w", err)
	}
	return out, nil
}

func (r *SQLiteStrategyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM strategies`); err != nil {
		return fmt.Errorf("deleting strategies: %w", err)
	}
	return nil
}

func scanStrategy(row rowScanner) (*domain.Strategy, error) {
	var s domain.Strategy
	var status, start, target, created string
	var completion sql.NullString
	err := row.Scan(&s.ID, &s.Title, &s.ColorCode, &status, &start, &target, &completion, &s.Progress, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning strategy: %w", err)
	}
	s.Status = domain.StrategyStatus(status)
	if s.StartDate, err = parseDate(start); err != nil {
		return nil, fmt.Errorf("parsing start_date for strategy %s: %w", s.ID, err)
	}
	if s.TargetDate, err = parseDate(target); err != nil {
		return nil, fmt.Errorf("parsing target_date for strategy %s: %w", s.ID, err)
	}
	s.CompletionDate = parseNullableDate(completion)
	s.CreatedAt = parseTimestamp(created)
	return &s, nil
}
