package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_code, full_name, email, password_hash, phone, role,
	parent_id, headquarter_id, joining_date, archived_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeCode,
		&e.FullName,
		&e.Email,
		&e.PasswordHash,
		&e.Phone,
		&e.Role,
		&e.ParentID,
		&e.HeadquarterID,
		&e.JoiningDate,
		&e.ArchivedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			id, employee_code, full_name, email, password_hash, phone, role,
			parent_id, headquarter_id, joining_date, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, $6,
			$7, $8, $9, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.PasswordHash, emp.Phone, emp.Role,
		emp.ParentID, emp.HeadquarterID, emp.JoiningDate,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "employees_employee_code_key":
				return employee.Employee{}, employee.ErrEmployeeCodeExists
			case "employees_email_key":
				return employee.Employee{}, employee.ErrEmailExists
			}
		}
		return employee.Employee{}, err
	}

	return emp, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) GetByIdentifier(ctx context.Context, identifier string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 OR employee_code = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $2, email = $3, phone = $4, role = $5,
			parent_id = $6, headquarter_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID, emp.FullName, emp.Email, emp.Phone, emp.Role, emp.ParentID, emp.HeadquarterID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) Archive(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET archived_at = $2, updated_at = NOW() WHERE id = $1 AND archived_at IS NULL`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE archived_at IS NULL ORDER BY full_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) ListChildren(ctx context.Context, parentID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE parent_id = $1 AND archived_at IS NULL ORDER BY full_name`

	rows, err := q.Query(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// ListDownline expands the whole subtree in one recursive query instead of
// one round trip per level.
func (r *employeeRepositoryImpl) ListDownline(ctx context.Context, rootID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE downline AS (
			SELECT e.* FROM employees e WHERE e.id = $1
			UNION ALL
			SELECT e.* FROM employees e
			INNER JOIN downline d ON e.parent_id = d.id
			WHERE e.archived_at IS NULL
		)
		SELECT ` + employeeColumns + ` FROM downline ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, rootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEmployees(rows)
}

func (r *employeeRepositoryImpl) IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE downline AS (
			SELECT id FROM employees WHERE parent_id = $1
			UNION ALL
			SELECT e.id FROM employees e
			INNER JOIN downline d ON e.parent_id = d.id
		)
		SELECT EXISTS (SELECT 1 FROM downline WHERE id = $2)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, ancestorID, candidateID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// AncestorByRole fetches the full parent chain once and picks the first
// matching ancestor by depth. ADMIN terminates the walk regardless of the
// requested role.
func (r *employeeRepositoryImpl) AncestorByRole(ctx context.Context, startID string, role employee.Role) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH RECURSIVE chain AS (
			SELECT e.*, 0 AS depth FROM employees e WHERE e.id = $1
			UNION ALL
			SELECT p.*, c.depth + 1 FROM employees p
			INNER JOIN chain c ON p.id = c.parent_id
		)
		SELECT ` + employeeColumns + ` FROM chain
		WHERE depth > 0 AND (role = $2 OR role = 'ADMIN')
		ORDER BY depth
		LIMIT 1
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, startID, role))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrNoEligibleAncestor
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}
