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

// AdminUserRepo provides database operations for administrative accounts.
// It is the authoritative store the session refresh policy reconciles
// cached claims against.
type AdminUserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminUserRepo creates a new AdminUserRepo with real time provider.
func NewAdminUserRepo(db *sql.DB) *AdminUserRepo {
	return &AdminUserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const adminUserColumns = `id, email, name, role, password_hash, is_active, created_at, updated_at`

const (
	adminUserGetByIDQuery = `
		SELECT ` + adminUserColumns + `
		FROM admin_users
		WHERE id = $1`

	adminUserGetByEmailQuery = `
		SELECT ` + adminUserColumns + `
		FROM admin_users
		WHERE lower(email) = lower($1)`

	adminUserListQuery = `
		SELECT ` + adminUserColumns + `
		FROM admin_users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// CreateAdminUserParams carries the validated fields plus the precomputed
// password hash; hashing is the service layer's concern.
type CreateAdminUserParams struct {
	Req          *model.CreateAdminUserRequest
	PasswordHash string
}

// Create inserts a new admin account.
func (r *AdminUserRepo) Create(ctx context.Context, p CreateAdminUserParams) (*model.AdminUser, error) {
	if p.Req == nil {
		return nil, errors.New("create admin user request is required")
	}
	if err := p.Req.Validate(); err != nil {
		return nil, err
	}
	if p.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO admin_users (id, email, name, role, password_hash, is_active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
			RETURNING `+adminUserColumns,
			uuid.NewString(),
			strings.ToLower(strings.TrimSpace(p.Req.Email)),
			strings.TrimSpace(p.Req.Name),
			p.Req.Role,
			p.PasswordHash,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an admin account by ID.
func (r *AdminUserRepo) GetByID(ctx context.Context, id string) (*model.AdminUser, error) {
	return r.getByQuery(ctx, adminUserGetByIDQuery, "failed to get admin user by ID", id)
}

// GetByEmail retrieves an admin account by email (case-insensitive).
func (r *AdminUserRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return r.getByQuery(ctx, adminUserGetByEmailQuery, "failed to get admin user by email", email)
}

// List retrieves admin accounts with pagination.
func (r *AdminUserRepo) List(ctx context.Context, limit, offset int) ([]*model.AdminUser, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, adminUserListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}

	res := make([]*model.AdminUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an admin account.
func (r *AdminUserRepo) Update(ctx context.Context, id string, req model.UpdateAdminUserRequest) (*model.AdminUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	setParts := make([]string, 0, 4)
	args := make([]any, 0, 5)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, *req.Role)
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", nextIdx()))
		args = append(args, *req.IsActive)
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())

	args = append(args, id)
	query := "UPDATE admin_users SET " + strings.Join(setParts, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args)) + " RETURNING " + adminUserColumns

	var out model.AdminUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// SetPassword replaces the account's password hash.
func (r *AdminUserRepo) SetPassword(ctx context.Context, id, passwordHash string) error {
	if passwordHash == "" {
		return errors.New("password hash is required")
	}
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`UPDATE admin_users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
			passwordHash, r.timeProvider.Now().UTC(), id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if rows == 0 {
		return ErrAdminUserNotFound
	}
	return nil
}

// Delete deletes an admin account by ID.
func (r *AdminUserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete admin user: %w", err)
	}
	return rows > 0, nil
}

// getByQuery executes a query and returns a single admin account.
func (r *AdminUserRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.AdminUser, error) {
	var user model.AdminUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *AdminUserRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrAdminUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAdminEmailExists
	}
	return err
}
