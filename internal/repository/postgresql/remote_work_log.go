package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/timegrid-hq/attendance-backend-go/internal/domain/remotework"
	"github.com/timegrid-hq/attendance-backend-go/internal/pkg/database"
)

type remoteWorkLogRepository struct {
	db *database.DB
}

func NewRemoteWorkLogRepository(db *database.DB) remotework.Repository {
	return &remoteWorkLogRepository{db: db}
}

const remoteWorkLogColumns = `
	id, user_id, leave_request_id, log_date, activity_description, evidence_ref,
	latitude, longitude, status, admin_notes, decided_by, decided_at,
	created_at, updated_at
`

func scanRemoteWorkLog(row pgx.Row) (remotework.Log, error) {
	var log remotework.Log
	err := row.Scan(
		&log.ID, &log.UserID, &log.LeaveRequestID, &log.LogDate, &log.ActivityDescription, &log.EvidenceRef,
		&log.Latitude, &log.Longitude, &log.Status, &log.AdminNotes, &log.DecidedBy, &log.DecidedAt,
		&log.CreatedAt, &log.UpdatedAt,
	)
	return log, err
}

// Create implements remotework.Repository.
func (r *remoteWorkLogRepository) Create(ctx context.Context, log remotework.Log) (remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remote_work_logs (
			user_id, leave_request_id, log_date, activity_description, evidence_ref,
			latitude, longitude, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		log.UserID,
		log.LeaveRequestID,
		log.LogDate,
		log.ActivityDescription,
		log.EvidenceRef,
		log.Latitude,
		log.Longitude,
		log.Status,
	).Scan(&log.ID, &log.CreatedAt, &log.UpdatedAt)

	if err != nil {
		return remotework.Log{}, fmt.Errorf("failed to create remote work log: %w", err)
	}

	return log, nil
}

// GetByID implements remotework.Repository.
func (r *remoteWorkLogRepository) GetByID(ctx context.Context, id string) (remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + remoteWorkLogColumns + ` FROM remote_work_logs WHERE id = $1`

	log, err := scanRemoteWorkLog(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return remotework.Log{}, remotework.ErrLogNotFound
		}
		return remotework.Log{}, fmt.Errorf("failed to get remote work log by id: %w", err)
	}

	return log, nil
}

// GetActiveByUserAndDate implements remotework.Repository.
func (r *remoteWorkLogRepository) GetActiveByUserAndDate(ctx context.Context, userID string, date time.Time) (*remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + remoteWorkLogColumns + `
		FROM remote_work_logs
		WHERE user_id = $1
		  AND log_date = $2
		  AND status IN ('PENDING', 'APPROVED')
		LIMIT 1
	`

	log, err := scanRemoteWorkLog(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active remote work log: %w", err)
	}

	return &log, nil
}

// Update implements remotework.Repository.
func (r *remoteWorkLogRepository) Update(ctx context.Context, log remotework.Log) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE remote_work_logs
		SET status = $2,
			admin_notes = $3,
			decided_by = $4,
			decided_at = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, log.ID, log.Status, log.AdminNotes, log.DecidedBy, log.DecidedAt)
	if err != nil {
		return fmt.Errorf("failed to update remote work log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return remotework.ErrLogNotFound
	}

	return nil
}

// ListByUser implements remotework.Repository.
func (r *remoteWorkLogRepository) ListByUser(ctx context.Context, userID string) ([]remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + remoteWorkLogColumns + `
		FROM remote_work_logs
		WHERE user_id = $1
		ORDER BY log_date DESC
	`

	return r.queryLogs(ctx, q, query, userID)
}

// ListPending implements remotework.Repository.
func (r *remoteWorkLogRepository) ListPending(ctx context.Context) ([]remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rwl.id, rwl.user_id, rwl.leave_request_id, rwl.log_date, rwl.activity_description,
			   rwl.evidence_ref, rwl.latitude, rwl.longitude, rwl.status, rwl.admin_notes,
			   rwl.decided_by, rwl.decided_at, rwl.created_at, rwl.updated_at,
			   u.full_name
		FROM remote_work_logs rwl
		JOIN users u ON u.id = rwl.user_id
		WHERE rwl.status = 'PENDING'
		ORDER BY rwl.log_date ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending remote work logs: %w", err)
	}
	defer rows.Close()

	var logs []remotework.Log
	for rows.Next() {
		var log remotework.Log
		if err := rows.Scan(
			&log.ID, &log.UserID, &log.LeaveRequestID, &log.LogDate, &log.ActivityDescription,
			&log.EvidenceRef, &log.Latitude, &log.Longitude, &log.Status, &log.AdminNotes,
			&log.DecidedBy, &log.DecidedAt, &log.CreatedAt, &log.UpdatedAt,
			&log.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan remote work log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remote work logs: %w", err)
	}

	return logs, nil
}

// ListExpiredPending implements remotework.Repository.
func (r *remoteWorkLogRepository) ListExpiredPending(ctx context.Context, startOfDay time.Time) ([]remotework.Log, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + remoteWorkLogColumns + `
		FROM remote_work_logs
		WHERE status = 'PENDING'
		  AND log_date < $1
		ORDER BY log_date ASC
	`

	return r.queryLogs(ctx, q, query, startOfDay)
}

// CountStats implements remotework.Repository.
func (r *remoteWorkLogRepository) CountStats(ctx context.Context, startOfDay time.Time, recentSince time.Time) (remotework.PendingStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'PENDING' AND log_date < $1),
			COUNT(*) FILTER (WHERE created_at >= $2)
		FROM remote_work_logs
	`

	var stats remotework.PendingStats
	if err := q.QueryRow(ctx, query, startOfDay, recentSince).Scan(
		&stats.Pending, &stats.OverduePending, &stats.RecentRequests,
	); err != nil {
		return remotework.PendingStats{}, fmt.Errorf("failed to count remote work stats: %w", err)
	}

	return stats, nil
}

func (r *remoteWorkLogRepository) queryLogs(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]remotework.Log, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query remote work logs: %w", err)
	}
	defer rows.Close()

	var logs []remotework.Log
	for rows.Next() {
		log, err := scanRemoteWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remote work log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remote work logs: %w", err)
	}

	return logs, nil
}
