package postgres

import (
	"context"
	"errors"
	"fmt"
	"parcels/internal/domain"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultLockTimeout = 5 * time.Second

const parcelColumns = `p.id, p.registration_id, p.name, p.weight, p.value, p.parcel_type_id,
	p.delivery_cost, p.transport_company_id, p.user_id, p.created_at`

type ParcelRepository struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// Create is idempotent on RegistrationID: a repeated call returns the row stored by the first one.
func (r *ParcelRepository) Create(ctx context.Context, np domain.NewParcel, userID string) (domain.Parcel, error) {
	const q = `
		insert into parcels as p (registration_id, name, weight, value, parcel_type_id, user_id)
		values ($1, $2, $3, $4, $5, $6)
		on conflict (registration_id) do update
		  set registration_id = excluded.registration_id -- no-op, just to return the row
		returning ` + parcelColumns

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := scanParcel(tx.QueryRow(ctx, q, np.RegistrationID, np.Name, np.Weight, np.Value, np.ParcelTypeID, userID))
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to insert parcel %q: %w", np.Name, classify(err))
	}
	if err = tx.Commit(ctx); err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return p, nil
}

func (r *ParcelRepository) ListFiltered(ctx context.Context, userID string, filter domain.ListFilter) ([]domain.ParcelView, int, error) {
	var where strings.Builder
	args := []any{userID}
	where.WriteString(`where p.user_id = $1`)
	if filter.ParcelTypeID != nil {
		args = append(args, *filter.ParcelTypeID)
		where.WriteString(` and p.parcel_type_id = $` + strconv.Itoa(len(args)))
	}
	if filter.HasDeliveryCost != nil {
		if *filter.HasDeliveryCost {
			where.WriteString(` and p.delivery_cost is not null`)
		} else {
			where.WriteString(` and p.delivery_cost is null`)
		}
	}

	countQ := `select count(*) from parcels p ` + where.String()
	pageQ := `
		select ` + parcelColumns + `, pt.name
		from parcels p join parcel_types pt on pt.id = p.parcel_type_id
		` + where.String() + `
		order by p.id
		offset $` + strconv.Itoa(len(args)+1) + ` limit $` + strconv.Itoa(len(args)+2)

	// count and page must see the same snapshot
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var total int
	if err = tx.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count parcels: %w", err)
	}

	rows, err := tx.Query(ctx, pageQ, append(args, filter.Skip, filter.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query parcels: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ParcelView, 0, filter.Limit)
	for rows.Next() {
		v, scanErr := scanParcelView(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("failed to scan parcel: %w", scanErr)
		}
		items = append(items, v)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating parcels: %w", err)
	}
	return items, total, nil
}

// GetByID does not distinguish a foreign parcel from a missing one.
func (r *ParcelRepository) GetByID(ctx context.Context, id int64, userID string) (domain.ParcelView, error) {
	const q = `
		select ` + parcelColumns + `, pt.name
		from parcels p join parcel_types pt on pt.id = p.parcel_type_id
		where p.id = $1 and p.user_id = $2`

	v, err := scanParcelView(r.pool.QueryRow(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ParcelView{}, domain.ErrParcelNotFound
		}
		return domain.ParcelView{}, fmt.Errorf("failed to select parcel %d: %w", id, err)
	}
	return v, nil
}

// AssignCompany holds a row lock across the check-and-set so that only one of
// several concurrent assignments can succeed.
func (r *ParcelRepository) AssignCompany(ctx context.Context, parcelID, companyID int64, userID string) (domain.Parcel, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// set local does not take bind parameters
	lockQ := fmt.Sprintf(`set local lock_timeout = '%dms'`, r.lockTimeout.Milliseconds())
	if _, err = tx.Exec(ctx, lockQ); err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to set lock timeout: %w", err)
	}

	var current *int64
	err = tx.QueryRow(ctx,
		`select transport_company_id from parcels where id = $1 and user_id = $2 for update`,
		parcelID, userID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Parcel{}, domain.ErrParcelNotFound
		}
		return domain.Parcel{}, fmt.Errorf("failed to lock parcel %d: %w", parcelID, classify(err))
	}
	if current != nil {
		return domain.Parcel{}, domain.ErrAlreadyAssigned
	}

	const q = `
		update parcels p set transport_company_id = $2
		where p.id = $1
		returning ` + parcelColumns

	p, err := scanParcel(tx.QueryRow(ctx, q, parcelID, companyID))
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to assign company %d to parcel %d: %w", companyID, parcelID, classify(err))
	}
	if err = tx.Commit(ctx); err != nil {
		return domain.Parcel{}, fmt.Errorf("failed to commit transaction: %w", classify(err))
	}
	return p, nil
}

// SetDeliveryCost only writes a cost that was never set; repeating it is a no-op.
func (r *ParcelRepository) SetDeliveryCost(ctx context.Context, parcelID int64, cost float64) error {
	const q = `update parcels set delivery_cost = $2 where id = $1 and delivery_cost is null`

	tag, err := r.pool.Exec(ctx, q, parcelID, cost)
	if err != nil {
		return fmt.Errorf("failed to set delivery cost for parcel %d: %w", parcelID, classify(err))
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err = r.pool.QueryRow(ctx, `select exists(select 1 from parcels where id = $1)`, parcelID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check parcel %d: %w", parcelID, err)
	}
	if !exists {
		return domain.ErrParcelNotFound
	}
	return nil
}

func scanParcel(row pgx.Row) (domain.Parcel, error) {
	var p domain.Parcel
	err := row.Scan(
		&p.ID,
		&p.RegistrationID,
		&p.Name,
		&p.Weight,
		&p.Value,
		&p.ParcelTypeID,
		&p.DeliveryCost,
		&p.TransportCompanyID,
		&p.UserID,
		&p.CreatedAt,
	)
	return p, err
}

func scanParcelView(row pgx.Row) (domain.ParcelView, error) {
	var v domain.ParcelView
	err := row.Scan(
		&v.ID,
		&v.RegistrationID,
		&v.Name,
		&v.Weight,
		&v.Value,
		&v.ParcelTypeID,
		&v.DeliveryCost,
		&v.TransportCompanyID,
		&v.UserID,
		&v.CreatedAt,
		// -----
		&v.ParcelTypeName,
	)
	return v, err
}

func NewParcelRepository(pool *pgxpool.Pool, lockTimeout time.Duration) *ParcelRepository {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &ParcelRepository{pool: pool, lockTimeout: lockTimeout}
}
