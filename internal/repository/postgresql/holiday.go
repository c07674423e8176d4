package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/holiday"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepository{db: db}
}

// IsHoliday implements holiday.Calendar.
func (h *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `SELECT name FROM holidays WHERE date = $1`

	var name string
	err := q.QueryRow(ctx, query, date).Scan(&name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return holiday.Holiday{}, nil
		}
		return holiday.Holiday{}, fmt.Errorf("failed to look up holiday: %w", err)
	}

	return holiday.Holiday{IsHoliday: true, Name: &name}, nil
}

// Create implements holiday.Repository.
func (h *holidayRepository) Create(ctx context.Context, date time.Time, name string) (holiday.Entry, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		INSERT INTO holidays (date, name)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, date, name, created_at
	`

	var entry holiday.Entry
	if err := q.QueryRow(ctx, query, date, name).Scan(
		&entry.ID, &entry.Date, &entry.Name, &entry.CreatedAt,
	); err != nil {
		return holiday.Entry{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return entry, nil
}

// ListByYear implements holiday.Repository.
func (h *holidayRepository) ListByYear(ctx context.Context, year int) ([]holiday.Entry, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var entries []holiday.Entry
	for rows.Next() {
		var entry holiday.Entry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Name, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return entries, nil
}
