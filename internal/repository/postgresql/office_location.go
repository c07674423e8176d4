package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/office"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
)

type officeLocationRepository struct {
	db *database.DB
}

func NewOfficeLocationRepository(db *database.DB) office.Repository {
	return &officeLocationRepository{db: db}
}

const officeLocationColumns = `
	id, name, latitude, longitude, radius_meters, is_active, created_at, updated_at
`

func scanOfficeLocation(row pgx.Row) (office.Location, error) {
	var loc office.Location
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.RadiusMeters,
		&loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	return loc, err
}

// GetActive implements office.Repository.
func (o *officeLocationRepository) GetActive(ctx context.Context) (office.Location, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + officeLocationColumns + `
		FROM office_locations
		WHERE is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	loc, err := scanOfficeLocation(q.QueryRow(ctx, query))
	if err != nil {
		if err == pgx.ErrNoRows {
			return office.Location{}, office.ErrLocationNotFound
		}
		return office.Location{}, fmt.Errorf("failed to get active office location: %w", err)
	}

	return loc, nil
}

// GetByID implements office.Repository.
func (o *officeLocationRepository) GetByID(ctx context.Context, id string) (office.Location, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + officeLocationColumns + ` FROM office_locations WHERE id = $1`

	loc, err := scanOfficeLocation(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return office.Location{}, office.ErrLocationNotFound
		}
		return office.Location{}, fmt.Errorf("failed to get office location by id: %w", err)
	}

	return loc, nil
}

// Upsert implements office.Repository.
func (o *officeLocationRepository) Upsert(ctx context.Context, loc office.Location) (office.Location, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		INSERT INTO office_locations (name, latitude, longitude, radius_meters, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			radius_meters = EXCLUDED.radius_meters,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + officeLocationColumns + `
	`

	updated, err := scanOfficeLocation(q.QueryRow(ctx, query,
		loc.Name, loc.Latitude, loc.Longitude, loc.RadiusMeters, loc.IsActive,
	))
	if err != nil {
		return office.Location{}, fmt.Errorf("failed to upsert office location: %w", err)
	}

	return updated, nil
}
