package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dayanisma-dernegi/portal/internal/data/pgxutil"
	"github.com/dayanisma-dernegi/portal/internal/domain/model"
)

// DonationRepo provides database operations for donation intents.
type DonationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewDonationRepo creates a new DonationRepo with real time provider.
func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const donationColumns = `id, donor_name, email, amount_kurus, currency, note, created_at`

// donationCurrency is the only currency accepted for now.
const donationCurrency = "TRY"

// Create records a donation intent.
func (r *DonationRepo) Create(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error) {
	if req == nil {
		return nil, errors.New("create donation request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Donation
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO donations (id, donor_name, email, amount_kurus, currency, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+donationColumns,
			uuid.NewString(),
			strings.TrimSpace(req.DonorName),
			strings.ToLower(strings.TrimSpace(req.Email)),
			req.AmountKurus,
			donationCurrency,
			req.Note,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Donation])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a donation by ID.
func (r *DonationRepo) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	var d model.Donation
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		d, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Donation])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, fmt.Errorf("failed to get donation by ID: %w", err)
	}
	return &d, nil
}

// List retrieves donations, newest first.
func (r *DonationRepo) List(ctx context.Context, opts model.DonationListOptions) ([]*model.Donation, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	var rowsOut []model.Donation
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx,
			`SELECT `+donationColumns+` FROM donations ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Donation])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}

	res := make([]*model.Donation, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes a donation record by ID.
func (r *DonationRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM donations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete donation: %w", err)
	}
	return rows > 0, nil
}
