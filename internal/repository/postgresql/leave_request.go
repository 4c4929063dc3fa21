package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.RequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.employee_id, lr.leave_type, lr.status, lr.from_date, lr.to_date, lr.reason,
	lr.consumed_casual, lr.consumed_privileged, lr.consumed_lwp,
	lr.requested_at, lr.approved_by, lr.approved_at, lr.rejected_by, lr.rejected_at
`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.Type,
		&lr.Status,
		&lr.FromDate,
		&lr.ToDate,
		&lr.Reason,
		&lr.Consumed.Casual,
		&lr.Consumed.Privileged,
		&lr.Consumed.LWP,
		&lr.RequestedAt,
		&lr.ApprovedBy,
		&lr.ApprovedAt,
		&lr.RejectedBy,
		&lr.RejectedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type, status, from_date, to_date, reason,
			consumed_casual, consumed_privileged, consumed_lwp,
			requested_at, approved_by, approved_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			NOW(), $10, $11
		) RETURNING id, requested_at
	`

	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.Type, req.Status, req.FromDate, req.ToDate, req.Reason,
		req.Consumed.Casual, req.Consumed.Privileged, req.Consumed.LWP,
		req.ApprovedBy, req.ApprovedAt,
	).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		return leave.Request{}, err
	}

	return req, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests lr WHERE lr.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Request{}, leave.ErrRequestNotFound
		}
		return leave.Request{}, err
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		ORDER BY lr.requested_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListPendingByEmployees(ctx context.Context, employeeIDs []string) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name
		FROM leave_requests lr
		INNER JOIN employees e ON e.id = lr.employee_id
		WHERE lr.status = 'PENDING' AND lr.employee_id = ANY($1)
		ORDER BY lr.requested_at
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		var lr leave.Request
		err := rows.Scan(
			&lr.ID,
			&lr.EmployeeID,
			&lr.Type,
			&lr.Status,
			&lr.FromDate,
			&lr.ToDate,
			&lr.Reason,
			&lr.Consumed.Casual,
			&lr.Consumed.Privileged,
			&lr.Consumed.LWP,
			&lr.RequestedAt,
			&lr.ApprovedBy,
			&lr.ApprovedAt,
			&lr.RejectedBy,
			&lr.RejectedAt,
			&lr.EmployeeName,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) ApprovedCasualConsumedInMonth(ctx context.Context, employeeID string, year int, month time.Month) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(consumed_casual), 0)
		FROM leave_requests
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND EXTRACT(YEAR FROM from_date) = $2
		  AND EXTRACT(MONTH FROM from_date) = $3
	`

	var total int
	if err := q.QueryRow(ctx, query, employeeID, year, int(month)).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *leaveRequestRepositoryImpl) HasEnclosing(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('APPROVED', 'PENDING')
			  AND from_date <= $2 AND to_date >= $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) HasActiveCovering(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status <> 'REJECTED'
			  AND from_date <= $2 AND to_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests lr
		WHERE lr.employee_id = $1
		  AND lr.status = 'APPROVED'
		  AND lr.from_date <= $3 AND lr.to_date >= $2
		ORDER BY lr.from_date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, req leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejected_by = $5, rejected_at = $6
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, req.ID, req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectedBy, req.RejectedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.Request, error) {
	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}
