package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteSyncStateRepo implements SyncStateRepo using a SQLite database.
type SQLiteSyncStateRepo struct {
	db db.DBTX
}

// NewSQLiteSyncStateRepo creates a new SQLiteSyncStateRepo.
func NewSQLiteSyncStateRepo(conn db.DBTX) *SQLiteSyncStateRepo {
	return &SQLiteSyncStateRepo{db: conn}
}

func (r *SQLiteSyncStateRepo) Get(ctx context.Context) (*domain.SyncState, error) {
	row := r.db.QueryRowContext(ctx, `SELECT source, synced_at, strategies, projects, actions
		FROM sync_state WHERE id = 'default'`)

	var s domain.SyncState
	var syncedAt string
	if err := row.Scan(&s.Source, &syncedAt, &s.Strategies, &s.Projects, &s.Actions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sync state: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning sync state: %w", err)
	}
	s.SyncedAt = parseTimestamp(syncedAt)
	return &s, nil
}

func (r *SQLiteSyncStateRepo) Put(ctx context.Context, s *domain.SyncState) error {
	query := `INSERT OR REPLACE INTO sync_state (id, source, synced_at, strategies, projects, actions)
		VALUES ('default', ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.Source, formatTimestamp(s.SyncedAt), s.Strategies, s.Projects, s.Actions)
	if err != nil {
		return fmt.Errorf("writing sync state: %w", err)
	}
	return nil
}
