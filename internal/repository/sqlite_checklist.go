package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteChecklistRepo implements ChecklistRepo using a SQLite database.
type SQLiteChecklistRepo struct {
	db db.DBTX
}

// NewSQLiteChecklistRepo creates a new SQLiteChecklistRepo.
func NewSQLiteChecklistRepo(conn db.DBTX) *SQLiteChecklistRepo {
	return &SQLiteChecklistRepo{db: conn}
}

const checklistColumns = `id, action_id, title, is_done, order_index, created_at`

func (r *SQLiteChecklistRepo) Create(ctx context.Context, c *domain.ChecklistItem) error {
	query := `INSERT INTO checklist_items (` + checklistColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ActionID,
		c.Title,
		boolToInt(c.Done),
		c.OrderIndex,
		formatTimestamp(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting checklist item: %w", err)
	}
	return nil
}

func (r *SQLiteChecklistRepo) List(ctx context.Context) ([]*domain.ChecklistItem, error) {
	return r.query(ctx, `SELECT `+checklistColumns+` FROM checklist_items
		ORDER BY action_id, order_index, created_at, id`)
}

func (r *SQLiteChecklistRepo) ListByAction(ctx context.Context, actionID string) ([]*domain.ChecklistItem, error) {
	return r.query(ctx, `SELECT `+checklistColumns+` FROM checklist_items WHERE action_id = ?
		ORDER BY order_index, created_at, id`, actionID)
}

func (r *SQLiteChecklistRepo) query(ctx context.Context, query string, args ...any) ([]*domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChecklistItem
	for rows.Next() {
		var c domain.ChecklistItem
		var done int
		var created string
		if err := rows.Scan(&c.ID, &c.ActionID, &c.Title, &done, &c.OrderIndex, &created); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}
		c.Done = intToBool(done)
		c.CreatedAt = parseTimestamp(created)
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return out, nil
}
