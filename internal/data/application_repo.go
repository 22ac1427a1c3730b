package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dayanisma-dernegi/portal/internal/data/pgxutil"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// ApplicationRepo provides database operations for scholarship and
// membership applications.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const applicationColumns = `id, type, status, full_name, email, phone, city, message, created_at, updated_at`

// Create inserts a new application in pending status.
func (r *ApplicationRepo) Create(ctx context.Context, req *model.CreateApplicationRequest) (*model.Application, error) {
	if req == nil {
		return nil, errors.New("create application request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO applications (id, type, status, full_name, email, phone, city, message, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+applicationColumns,
			uuid.NewString(),
			req.Type,
			model.ApplicationStatusPending,
			strings.TrimSpace(req.FullName),
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.Phone),
			strings.TrimSpace(req.City),
			req.Message,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an application by ID.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		app, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to get application by ID: %w", err)
	}
	return &app, nil
}

// List retrieves applications with optional type/status filters.
func (r *ApplicationRepo) List(ctx context.Context, opts model.ApplicationListOptions) ([]*model.Application, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.Type != nil {
		args = append(args, *opts.Type)
		where = append(where, "type = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != nil {
		args = append(args, *opts.Status)
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + applicationColumns + ` FROM applications`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Application
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Application])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	res := make([]*model.Application, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus moves an application through review.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, req model.UpdateApplicationStatusRequest) (*model.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE applications SET status = $1, updated_at = $2
			WHERE id = $3
			RETURNING `+applicationColumns,
			req.Status, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &out, nil
}

// Delete deletes an application by ID.
func (r *ApplicationRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete application: %w", err)
	}
	return rows > 0, nil
}
