package employee

import (
	"context"
	"time"
)

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// GetByIdentifier looks an employee up by email or employee code.
	GetByIdentifier(ctx context.Context, identifier string) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Archive(ctx context.Context, id string, at time.Time) error
	ListActive(ctx context.Context) ([]Employee, error)
	ListChildren(ctx context.Context, parentID string) ([]Employee, error)
	// ListDownline returns the employee plus their transitive downline,
	// resolved in a single recursive query.
	ListDownline(ctx context.Context, rootID string) ([]Employee, error)
	// IsDescendant reports whether candidate sits anywhere below ancestor.
	IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error)
	// AncestorByRole walks the parent chain upward and returns the first
	// ancestor matching the role. An ADMIN ancestor terminates the walk
	// and is returned regardless of the requested role.
	AncestorByRole(ctx context.Context, startID string, role Role) (Employee, error)
}
