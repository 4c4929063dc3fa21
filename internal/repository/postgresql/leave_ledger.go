package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type leaveLedgerRepositoryImpl struct {
	db *database.DB
}

func NewLeaveLedgerRepository(db *database.DB) leave.LedgerRepository {
	return &leaveLedgerRepositoryImpl{db: db}
}

func (r *leaveLedgerRepositoryImpl) Create(ctx context.Context, ledger leave.Ledger) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_ledgers (
			id, employee_id, casual_count, privileged_count, lwp_count,
			accrual_marker, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ledger.EmployeeID, ledger.CasualCount, ledger.PrivilegedCount, ledger.LWPCount, ledger.AccrualMarker,
	).Scan(&ledger.ID, &ledger.CreatedAt, &ledger.UpdatedAt)
	if err != nil {
		return leave.Ledger{}, err
	}

	return ledger, nil
}

func (r *leaveLedgerRepositoryImpl) GetByEmployee(ctx context.Context, employeeID string) (leave.Ledger, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, casual_count, privileged_count, lwp_count,
			   accrual_marker, created_at, updated_at
		FROM leave_ledgers
		WHERE employee_id = $1
	`

	var l leave.Ledger
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&l.ID,
		&l.EmployeeID,
		&l.CasualCount,
		&l.PrivilegedCount,
		&l.LWPCount,
		&l.AccrualMarker,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Ledger{}, leave.ErrLedgerNotFound
		}
		return leave.Ledger{}, err
	}
	return l, nil
}

// AdjustBalances is a single conditional UPDATE so the balance check and
// the write cannot race; zero rows affected means a counter would have
// gone negative.
func (r *leaveLedgerRepositoryImpl) AdjustBalances(ctx context.Context, employeeID string, dCasual, dPrivileged, dLWP int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers
		SET casual_count = casual_count + $2,
			privileged_count = privileged_count + $3,
			lwp_count = lwp_count + $4,
			updated_at = NOW()
		WHERE employee_id = $1
		  AND casual_count + $2 >= 0
		  AND privileged_count + $3 >= 0
		  AND lwp_count + $4 >= 0
	`

	tag, err := q.Exec(ctx, query, employeeID, dCasual, dPrivileged, dLWP)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

func (r *leaveLedgerRepositoryImpl) AdvanceAccrualMarker(ctx context.Context, employeeID string, marker time.Time, privilegedDelta int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_ledgers
		SET accrual_marker = $2, privileged_count = privileged_count + $3, updated_at = NOW()
		WHERE employee_id = $1 AND accrual_marker < $2
	`

	tag, err := q.Exec(ctx, query, employeeID, marker, privilegedDelta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLedgerNotFound
	}
	return nil
}

func (r *leaveLedgerRepositoryImpl) ResetYearly(ctx context.Context, casual int, marker time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE leave_ledgers
		SET casual_count = $1, accrual_marker = $2, updated_at = NOW()
	`, casual, marker)
	return err
}
