package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dayanisma-dernegi/portal/internal/data/pgxutil"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// SettingRepo provides database operations for the site settings store.
type SettingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingRepo creates a new SettingRepo with real time provider.
func NewSettingRepo(db *sql.DB) *SettingRepo {
	return &SettingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const settingColumns = `key, value, public, updated_at`

// Upsert creates or replaces the setting document stored under key.
func (r *SettingRepo) Upsert(ctx context.Context, key string, req *model.UpsertSettingRequest) (*model.Setting, error) {
	if req == nil {
		return nil, errors.New("upsert setting request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	public := false
	if req.Public != nil {
		public = *req.Public
	}

	var out model.Setting
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO settings (key, value, public, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, public = EXCLUDED.public, updated_at = EXCLUDED.updated_at
			RETURNING `+settingColumns,
			key,
			[]byte(req.Value),
			public,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return &out, nil
}

// Get retrieves a setting by key.
func (r *SettingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var s model.Setting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+settingColumns+` FROM settings WHERE key = $1`, key)
		if err != nil {
			return err
		}
		defer rows.Close()
		s, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Setting])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &s, nil
}

// List retrieves every setting ordered by key.
func (r *SettingRepo) List(ctx context.Context) ([]*model.Setting, error) {
	return r.list(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY key`)
}

// ListPublic retrieves only settings flagged as public.
func (r *SettingRepo) ListPublic(ctx context.Context) ([]*model.Setting, error) {
	return r.list(ctx, `SELECT `+settingColumns+` FROM settings WHERE public ORDER BY key`)
}

func (r *SettingRepo) list(ctx context.Context, query string) ([]*model.Setting, error) {
	var rowsOut []model.Setting
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Setting])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}

	res := make([]*model.Setting, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete removes a setting by key.
func (r *SettingRepo) Delete(ctx context.Context, key string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM settings WHERE key = $1`, key)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete setting: %w", err)
	}
	return rows > 0, nil
}
