package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dayanisma-dernegi/portal/internal/data/pgxutil"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// EventRepo provides database operations for events.
type EventRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewEventRepo creates a new EventRepo with real time provider.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const eventColumns = `id, title, slug, summary, body, location, starts_at, ends_at, published, created_at, updated_at`

// Create inserts a new event. Published defaults to false.
func (r *EventRepo) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if req == nil {
		return nil, errors.New("create event request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	published := false
	if req.Published != nil {
		published = *req.Published
	}

	now := r.timeProvider.Now().UTC()
	var out model.Event
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO events (id, title, slug, summary, body, location, starts_at, ends_at, published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
			RETURNING `+eventColumns,
			uuid.NewString(),
			strings.TrimSpace(req.Title),
			req.Slug,
			strings.TrimSpace(req.Summary),
			req.Body,
			strings.TrimSpace(req.Location),
			req.StartsAt.UTC(),
			utcOrNil(req.EndsAt),
			published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an event by ID.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return r.getByQuery(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, "failed to get event by ID", id)
}

// GetBySlug retrieves an event by slug.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return r.getByQuery(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = $1`, "failed to get event by slug", slug)
}

// List retrieves events with optional published/upcoming filters, soonest first.
func (r *EventRepo) List(ctx context.Context, opts model.EventListOptions) ([]*model.Event, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if opts.Published != nil {
		args = append(args, *opts.Published)
		where = append(where, "published = $"+strconv.Itoa(len(args)))
	}
	if opts.Upcoming {
		args = append(args, r.timeProvider.Now().UTC())
		where = append(where, "starts_at >= $"+strconv.Itoa(len(args)))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit)
	query += " ORDER BY starts_at ASC LIMIT $" + strconv.Itoa(len(args))
	args = append(args, offset)
	query += " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Event
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Event])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	res := make([]*model.Event, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an event.
func (r *EventRepo) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts, args := r.buildUpdateClause(req)
	args = append(args, id)
	query := "UPDATE events SET " + setParts +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + eventColumns

	var out model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an event.
func (r *EventRepo) buildUpdateClause(req model.UpdateEventRequest) (string, []any) {
	setParts := make([]string, 0, 9)
	args := make([]any, 0, 10)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Slug != nil {
		setParts = append(setParts, fmt.Sprintf("slug = $%d", nextIdx()))
		args = append(args, *req.Slug)
	}
	if req.Summary != nil {
		setParts = append(setParts, fmt.Sprintf("summary = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Summary))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.Location != nil {
		setParts = append(setParts, fmt.Sprintf("location = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Location))
	}
	if req.StartsAt != nil {
		setParts = append(setParts, fmt.Sprintf("starts_at = $%d", nextIdx()))
		args = append(args, req.StartsAt.UTC())
	}
	if req.EndsAt != nil {
		setParts = append(setParts, fmt.Sprintf("ends_at = $%d", nextIdx()))
		args = append(args, req.EndsAt.UTC())
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	return strings.Join(setParts, ", "), args
}

// Delete deletes an event by ID.
func (r *EventRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	return rows > 0, nil
}

func (r *EventRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Event, error) {
	var ev model.Event
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		ev, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Event])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &ev, nil
}

func (r *EventRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrEventNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEventSlugExists
	}
	return err
}
