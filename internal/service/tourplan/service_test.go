package tourplan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/tourplan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTourPlanRepo struct {
	tourplan.TourPlanRepository
	hasMonth   map[string]bool
	flags      tourplan.Flags
	approved   map[string]bool
	approveErr map[string]error

	created  []tourplan.Entry
	setFlags []tourplan.Flags
}

func (f *fakeTourPlanRepo) HasMonth(ctx context.Context, employeeID string, year int, month int) (bool, error) {
	return f.hasMonth[employeeID], nil
}

func (f *fakeTourPlanRepo) BulkCreate(ctx context.Context, entries []tourplan.Entry) error {
	f.created = append(f.created, entries...)
	return nil
}

func (f *fakeTourPlanRepo) ListMonth(ctx context.Context, employeeID string, year int, month int) ([]tourplan.Entry, error) {
	return f.created, nil
}

func (f *fakeTourPlanRepo) GetFlags(ctx context.Context, employeeID string) (tourplan.Flags, error) {
	return f.flags, nil
}

func (f *fakeTourPlanRepo) SetFlags(ctx context.Context, flags tourplan.Flags) error {
	f.flags = flags
	f.setFlags = append(f.setFlags, flags)
	return nil
}

func (f *fakeTourPlanRepo) ApproveDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	key := date.Format("2006-01-02")
	if err := f.approveErr[key]; err != nil {
		return false, err
	}
	if f.approved[key] {
		return false, nil
	}
	if f.approved == nil {
		f.approved = map[string]bool{}
	}
	f.approved[key] = true
	return true, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	children   []employee.Employee
	descendant bool
}

func (f *fakeEmployeeRepo) ListChildren(ctx context.Context, parentID string) ([]employee.Employee, error) {
	return f.children, nil
}

func (f *fakeEmployeeRepo) IsDescendant(ctx context.Context, ancestorID, candidateID string) (bool, error) {
	return f.descendant, nil
}

// fixedNow pins the clock to a day of the current month so window
// arithmetic stays deterministic.
func fixedNow(day int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.August, day, 10, 0, 0, 0, time.UTC)
	}
}

func newTestService(repo *fakeTourPlanRepo, employees *fakeEmployeeRepo, day int) *TourPlanServiceImpl {
	if employees == nil {
		employees = &fakeEmployeeRepo{}
	}
	return &TourPlanServiceImpl{
		TourPlanRepository: repo,
		employees:          employees,
		now:                fixedNow(day),
	}
}

func validRequest() tourplan.CreatePlanRequest {
	return tourplan.CreatePlanRequest{Entries: []tourplan.PlanEntryInput{
		{Date: "2026-09-01", Place: "Pune HQ"},
		{Date: "2026-09-02", Place: "Satara"},
	}}
}

func TestCreateOutsideWindow(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeTourPlanRepo{}, nil, 19)
	viewer := employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}

	_, err := svc.Create(context.Background(), viewer, validRequest())
	assert.ErrorIs(t, err, tourplan.ErrOutsideWindow)
}

func TestCreateWindowClosesEarlierForTBM(t *testing.T) {
	t.Parallel()

	// Day 26 is inside the manager window but past the TBM close.
	repo := &fakeTourPlanRepo{}
	svc := newTestService(repo, nil, 26)

	_, err := svc.Create(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, validRequest())
	assert.ErrorIs(t, err, tourplan.ErrOutsideWindow)

	abm := employee.Employee{ID: "abm-1", Role: employee.RoleABM}
	_, err = svc.Create(context.Background(), abm, validRequest())
	require.NoError(t, err)
	assert.Len(t, repo.created, 2)
}

func TestCreateOverrideFlagIsConsumed(t *testing.T) {
	t.Parallel()

	repo := &fakeTourPlanRepo{flags: tourplan.Flags{EmployeeID: "tbm-1", ExtraDayForCreate: true}}
	svc := newTestService(repo, nil, 28)

	_, err := svc.Create(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, validRequest())
	require.NoError(t, err)

	assert.False(t, repo.flags.ExtraDayForCreate, "the one-shot override must not survive the write")
}

func TestCreateRejectsDuplicatePlan(t *testing.T) {
	t.Parallel()

	repo := &fakeTourPlanRepo{hasMonth: map[string]bool{"tbm-1": true}}
	svc := newTestService(repo, nil, 22)

	_, err := svc.Create(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, validRequest())
	assert.ErrorIs(t, err, tourplan.ErrPlanExists)
}

func TestCreateManagerBlockedByMissingDownline(t *testing.T) {
	t.Parallel()

	employees := &fakeEmployeeRepo{children: []employee.Employee{
		{ID: "tbm-1", FullName: "Asha Kulkarni"},
		{ID: "tbm-2", FullName: "Ravi Deshmukh"},
	}}
	repo := &fakeTourPlanRepo{hasMonth: map[string]bool{"tbm-1": true}}
	svc := newTestService(repo, employees, 22)

	_, err := svc.Create(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, validRequest())

	var missingErr *tourplan.DownlineMissingError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"Ravi Deshmukh"}, missingErr.Missing)
	assert.ErrorIs(t, err, tourplan.ErrDownlineMissing)
}

func TestCreateRejectsDateOutsideTargetMonth(t *testing.T) {
	t.Parallel()

	svc := newTestService(&fakeTourPlanRepo{}, nil, 22)
	req := tourplan.CreatePlanRequest{Entries: []tourplan.PlanEntryInput{
		{Date: "2026-10-01", Place: "Pune HQ"},
	}}

	_, err := svc.Create(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, req)
	assert.ErrorIs(t, err, tourplan.ErrDateOutsideMonth)
}

func TestApproveDates(t *testing.T) {
	t.Parallel()

	t.Run("tbm may not approve", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(&fakeTourPlanRepo{}, nil, 22)

		_, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, tourplan.ApproveDatesRequest{EmployeeID: "tbm-2", Dates: []string{"2026-09-01"}})
		assert.ErrorIs(t, err, tourplan.ErrApprovalNotAllowed)
	})

	t.Run("manager may only approve the downline", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(&fakeTourPlanRepo{}, &fakeEmployeeRepo{descendant: false}, 22)

		_, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, tourplan.ApproveDatesRequest{EmployeeID: "tbm-9", Dates: []string{"2026-09-01"}})
		assert.ErrorIs(t, err, tourplan.ErrApprovalNotAllowed)
	})

	t.Run("counts only fresh approvals", func(t *testing.T) {
		t.Parallel()
		repo := &fakeTourPlanRepo{approved: map[string]bool{"2026-09-01": true}}
		svc := newTestService(repo, &fakeEmployeeRepo{descendant: true}, 22)

		flipped, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, tourplan.ApproveDatesRequest{
			EmployeeID: "tbm-1",
			Dates:      []string{"2026-09-01", "2026-09-02"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, flipped)
	})

	t.Run("admin skips window and hierarchy checks", func(t *testing.T) {
		t.Parallel()
		repo := &fakeTourPlanRepo{}
		svc := newTestService(repo, &fakeEmployeeRepo{descendant: false}, 5)

		flipped, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "admin-1", Role: employee.RoleAdmin}, tourplan.ApproveDatesRequest{
			EmployeeID: "tbm-1",
			Dates:      []string{"2026-09-01"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, flipped)
	})

	t.Run("manager outside window needs the override", func(t *testing.T) {
		t.Parallel()
		repo := &fakeTourPlanRepo{}
		svc := newTestService(repo, &fakeEmployeeRepo{descendant: true}, 5)

		_, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, tourplan.ApproveDatesRequest{EmployeeID: "tbm-1", Dates: []string{"2026-09-01"}})
		assert.ErrorIs(t, err, tourplan.ErrOutsideWindow)

		repo.flags = tourplan.Flags{EmployeeID: "abm-1", ExtraDayForApprove: true}
		flipped, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, tourplan.ApproveDatesRequest{EmployeeID: "tbm-1", Dates: []string{"2026-09-02"}})
		require.NoError(t, err)
		assert.Equal(t, 1, flipped)
		assert.False(t, repo.flags.ExtraDayForApprove)
	})

	t.Run("a failed batch keeps the override", func(t *testing.T) {
		t.Parallel()
		repo := &fakeTourPlanRepo{
			flags:      tourplan.Flags{EmployeeID: "abm-1", ExtraDayForApprove: true},
			approveErr: map[string]error{"2026-09-02": errors.New("connection reset")},
		}
		svc := newTestService(repo, &fakeEmployeeRepo{descendant: true}, 5)

		flipped, err := svc.ApproveDates(context.Background(), employee.Employee{ID: "abm-1", Role: employee.RoleABM}, tourplan.ApproveDatesRequest{
			EmployeeID: "tbm-1",
			Dates:      []string{"2026-09-01", "2026-09-02"},
		})
		require.Error(t, err)
		assert.Equal(t, 1, flipped)
		assert.True(t, repo.flags.ExtraDayForApprove, "the override stays for the retry")
		assert.Empty(t, repo.setFlags)
	})
}

func TestUpdatePlaceChangeVoidsApproval(t *testing.T) {
	t.Parallel()

	entry := tourplan.Entry{EmployeeID: "tbm-1", Date: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), Place: "Pune HQ", Approved: true}
	repo := &updateCapableRepo{
		fakeTourPlanRepo: fakeTourPlanRepo{hasMonth: map[string]bool{"tbm-1": true}},
		entry:            entry,
	}
	svc := &TourPlanServiceImpl{TourPlanRepository: repo, employees: &fakeEmployeeRepo{}, now: fixedNow(22)}

	_, err := svc.Update(context.Background(), employee.Employee{ID: "tbm-1", Role: employee.RoleTBM}, tourplan.CreatePlanRequest{
		Entries: []tourplan.PlanEntryInput{{Date: "2026-09-01", Place: "Satara"}},
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, "Satara", repo.updated.Place)
	assert.False(t, repo.updated.Approved, "a place change must void the approval")
}

type updateCapableRepo struct {
	fakeTourPlanRepo
	entry   tourplan.Entry
	updated *tourplan.Entry
}

func (r *updateCapableRepo) GetByDate(ctx context.Context, employeeID string, date time.Time) (tourplan.Entry, error) {
	return r.entry, nil
}

func (r *updateCapableRepo) UpdateEntry(ctx context.Context, entry tourplan.Entry) error {
	r.updated = &entry
	return nil
}
