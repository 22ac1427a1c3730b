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

// AnnouncementRepo provides database operations for announcements.
type AnnouncementRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAnnouncementRepo creates a new AnnouncementRepo with real time provider.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const announcementColumns = `id, title, body, published, created_at, updated_at`

// Create inserts a new announcement. Published defaults to false.
func (r *AnnouncementRepo) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	if req == nil {
		return nil, errors.New("create announcement request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	now := r.timeProvider.Now().UTC()
	var out model.Announcement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO announcements (id, title, body, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5)
			RETURNING `+announcementColumns,
			uuid.NewString(),
			strings.TrimSpace(req.Title),
			req.Body,
			published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an announcement by ID.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var ann model.Announcement
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		ann, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement by ID: %w", err)
	}
	return &ann, nil
}

// List retrieves announcements, newest first, optionally filtered by published.
func (r *AnnouncementRepo) List(ctx context.Context, opts model.AnnouncementListOptions) ([]*model.Announcement, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	args := make([]any, 0, 3)
	query := `SELECT ` + announcementColumns + ` FROM announcements`
	if opts.Published != nil {
		args = append(args, *opts.Published)
		query += " WHERE published = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Announcement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Announcement])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	res := make([]*model.Announcement, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an announcement.
func (r *AnnouncementRepo) Update(ctx context.Context, id string, req model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE announcements SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + announcementColumns

	var out model.Announcement
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return &out, nil
}

// Delete deletes an announcement by ID.
func (r *AnnouncementRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete announcement: %w", err)
	}
	return rows > 0, nil
}
