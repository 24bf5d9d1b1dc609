package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
// The table holds one row keyed 'default'; the remote user id lives in
// user_id.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT user_id, display_name, email, timezone, role FROM user_profile WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultProfileID)

	var p domain.UserProfile
	var role string
	err := row.Scan(&p.ID, &p.DisplayName, &p.Email, &p.Timezone, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.Role = domain.NormalizeRole(role)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	query := `INSERT OR REPLACE INTO user_profile (id, user_id, display_name, email, timezone, role)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		domain.DefaultProfileID,
		p.ID,
		p.DisplayName,
		p.Email,
		p.Timezone,
		string(domain.NormalizeRole(string(p.Role))),
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}

// SetTimezone changes only the timezone, creating a viewer profile when
// none has been synced yet.
func (r *SQLiteUserProfileRepo) SetTimezone(ctx context.Context, tz string) error {
	query := `INSERT INTO user_profile (id, timezone) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET timezone = excluded.timezone`
	if _, err := r.db.ExecContext(ctx, query, domain.DefaultProfileID, tz); err != nil {
		return fmt.Errorf("setting profile timezone: %w", err)
	}
	return nil
}
