package postgres

import (
	"context"
	"fmt"
	"parcels/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReferenceRepository reads the static catalogs seeded by migrations.
type ReferenceRepository struct {
	pool *pgxpool.Pool
}

func (r *ReferenceRepository) ListParcelTypes(ctx context.Context) ([]domain.ParcelType, error) {
	rows, err := r.pool.Query(ctx, `select id, name from parcel_types order by id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parcel types: %w", err)
	}
	defer rows.Close()

	types := make([]domain.ParcelType, 0, 8)
	for rows.Next() {
		var pt domain.ParcelType
		if err = rows.Scan(&pt.ID, &pt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan parcel type: %w", err)
		}
		types = append(types, pt)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parcel types: %w", err)
	}
	return types, nil
}

func (r *ReferenceRepository) ListTransportCompanies(ctx context.Context) ([]domain.TransportCompany, error) {
	rows, err := r.pool.Query(ctx, `select id, name from transport_companies order by id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transport companies: %w", err)
	}
	defer rows.Close()

	companies := make([]domain.TransportCompany, 0, 8)
	for rows.Next() {
		var tc domain.TransportCompany
		if err = rows.Scan(&tc.ID, &tc.Name); err != nil {
			return nil, fmt.Errorf("failed to scan transport company: %w", err)
		}
		companies = append(companies, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transport companies: %w", err)
	}
	return companies, nil
}

func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{pool: pool}
}
