package employee

import (
	"context"
	"testing"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTx struct {
	calls int
}

func (r *recordingTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	byID        map[string]employee.Employee
	descendants map[string]bool

	updated *employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error) {
	return f.descendants[ancestorID+"/"+candidateID], nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, emp employee.Employee) error {
	f.updated = &emp
	return nil
}

func TestUpdateReparent(t *testing.T) {
	t.Parallel()

	strPtr := func(s string) *string { return &s }
	newRepo := func() *fakeEmployeeRepo {
		return &fakeEmployeeRepo{
			byID: map[string]employee.Employee{
				"mgr":  {ID: "mgr", Role: employee.RoleZBM},
				"abm":  {ID: "abm", Role: employee.RoleABM, ParentID: strPtr("mgr")},
				"tbm":  {ID: "tbm", Role: employee.RoleTBM, ParentID: strPtr("abm")},
				"peer": {ID: "peer", Role: employee.RoleABM, ParentID: strPtr("mgr")},
			},
			descendants: map[string]bool{"abm/tbm": true},
		}
	}

	t.Run("rejects the employee as their own parent", func(t *testing.T) {
		t.Parallel()
		svc := &EmployeeServiceImpl{tx: &recordingTx{}, EmployeeRepository: newRepo(), now: time.Now}

		_, err := svc.Update(context.Background(), "abm", employee.UpdateEmployeeRequest{ParentID: strPtr("abm")})
		assert.ErrorIs(t, err, employee.ErrReparentCycle)
	})

	t.Run("rejects a parent from the employee's own downline", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		svc := &EmployeeServiceImpl{tx: &recordingTx{}, EmployeeRepository: repo, now: time.Now}

		_, err := svc.Update(context.Background(), "abm", employee.UpdateEmployeeRequest{ParentID: strPtr("tbm")})
		assert.ErrorIs(t, err, employee.ErrReparentCycle)
		assert.Nil(t, repo.updated)
	})

	t.Run("rejects an unknown parent", func(t *testing.T) {
		t.Parallel()
		svc := &EmployeeServiceImpl{tx: &recordingTx{}, EmployeeRepository: newRepo(), now: time.Now}

		_, err := svc.Update(context.Background(), "tbm", employee.UpdateEmployeeRequest{ParentID: strPtr("ghost")})
		assert.ErrorIs(t, err, employee.ErrParentNotFound)
	})

	t.Run("re-points inside a single transaction", func(t *testing.T) {
		t.Parallel()
		repo := newRepo()
		tx := &recordingTx{}
		svc := &EmployeeServiceImpl{tx: tx, EmployeeRepository: repo, now: time.Now}

		updated, err := svc.Update(context.Background(), "tbm", employee.UpdateEmployeeRequest{ParentID: strPtr("peer")})
		require.NoError(t, err)

		require.NotNil(t, updated.ParentID)
		assert.Equal(t, "peer", *updated.ParentID)
		require.NotNil(t, repo.updated)
		assert.Equal(t, "peer", *repo.updated.ParentID)
		assert.Equal(t, 1, tx.calls)
	})
}

func TestTourPlanTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Month
	}{
		{"early in the month stays put", date(2026, time.August, 5), time.August},
		{"the twentieth still stays put", date(2026, time.August, 20), time.August},
		{"past the twentieth rolls forward", date(2026, time.August, 21), time.September},
		{"december rolls into january", date(2026, time.December, 28), time.January},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tourPlanTarget(tt.now).Month())
		})
	}
}

func TestProRatedCasual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		joining time.Time
		want    int
	}{
		{"fiscal year start gets the full grant", date(2026, time.April, 1), 14},
		{"mid year is halved", date(2026, time.October, 15), 7},
		{"september rounds up", date(2026, time.September, 3), 8},
		{"january spans three fiscal months", date(2026, time.January, 20), 4},
		{"last fiscal month gets one day", date(2026, time.March, 2), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, proRatedCasual(tt.joining))
		})
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
