package automation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
)

type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	active []employee.Employee
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return f.active, nil
}

type fakeReportRepo struct {
	dcr.ReportRepository

	reports map[string]dcr.Report
	sealed  []string
}

func (f *fakeReportRepo) GetByDate(_ context.Context, employeeID string, _ time.Time) (dcr.Report, error) {
	report, ok := f.reports[employeeID]
	if !ok {
		return dcr.Report{}, dcr.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) UpdateStatus(_ context.Context, id string, status dcr.ReportStatus) error {
	f.sealed = append(f.sealed, id)
	for key, report := range f.reports {
		if report.ID == id {
			report.Status = status
			f.reports[key] = report
		}
	}
	return nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	entries map[string]attendance.Entry
	marked  []attendance.Entry
}

func (f *fakeAttendanceRepo) Get(_ context.Context, employeeID string, _ time.Time) (attendance.Entry, error) {
	entry, ok := f.entries[employeeID]
	if !ok {
		return attendance.Entry{}, attendance.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeAttendanceRepo) Mark(_ context.Context, entry attendance.Entry) (bool, error) {
	f.marked = append(f.marked, entry)
	return true, nil
}

type fakeRequestRepo struct {
	leave.RequestRepository

	covering map[string]bool
	created  []leave.Request
}

func (f *fakeRequestRepo) HasActiveCovering(_ context.Context, employeeID string, _ time.Time) (bool, error) {
	return f.covering[employeeID], nil
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.Request) (leave.Request, error) {
	f.created = append(f.created, req)
	return req, nil
}

type fakeLedgerRepo struct {
	leave.LedgerRepository

	resetCasual int
	resetMarker time.Time
	lwpDeltas   []int
}

func (f *fakeLedgerRepo) AdjustBalances(_ context.Context, employeeID string, casualDelta, privilegedDelta, lwpDelta int) error {
	f.lwpDeltas = append(f.lwpDeltas, lwpDelta)
	return nil
}

func (f *fakeLedgerRepo) ResetYearly(_ context.Context, casual int, marker time.Time) error {
	f.resetCasual = casual
	f.resetMarker = marker
	return nil
}

func newTestService(employees *fakeEmployeeRepo, reports *fakeReportRepo, attendances *fakeAttendanceRepo, requests *fakeRequestRepo, ledgers *fakeLedgerRepo) *AutomationServiceImpl {
	if ledgers == nil {
		ledgers = &fakeLedgerRepo{}
	}
	return &AutomationServiceImpl{
		tx:          passThroughTx{},
		employees:   employees,
		attendances: attendances,
		reports:     reports,
		requests:    requests,
		ledgers:     ledgers,
		now: func() time.Time {
			return time.Date(2026, time.September, 4, 0, 30, 0, 0, time.UTC)
		},
	}
}

func TestSweepYesterday(t *testing.T) {
	t.Parallel()

	t.Run("skips admins entirely", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(
			&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-admin", Role: employee.RoleAdmin}}},
			&fakeReportRepo{reports: map[string]dcr.Report{}},
			&fakeAttendanceRepo{entries: map[string]attendance.Entry{}},
			&fakeRequestRepo{covering: map[string]bool{}},
			nil,
		)

		result, err := svc.SweepYesterday(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "2026-09-03", result.Date)
		assert.Zero(t, result.Swept)
		assert.Zero(t, result.MarkedLWP)
	})

	t.Run("seals a pending report before checking cover", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{
			"emp-1": {ID: "rep-1", EmployeeID: "emp-1", Status: dcr.ReportPending},
		}}
		svc := newTestService(
			&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", Role: employee.RoleTBM}}},
			reports,
			// An attendance entry already covers the day, so the sweep
			// stops after sealing.
			&fakeAttendanceRepo{entries: map[string]attendance.Entry{
				"emp-1": {EmployeeID: "emp-1", Title: attendance.TitleWeekOff},
			}},
			&fakeRequestRepo{covering: map[string]bool{}},
			nil,
		)

		result, err := svc.SweepYesterday(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []string{"rep-1"}, reports.sealed)
		assert.Equal(t, dcr.ReportIncomplete, reports.reports["emp-1"].Status)
		assert.Equal(t, 1, result.Swept)
		assert.Zero(t, result.MarkedLWP)
		assert.Zero(t, result.Failed)
	})

	t.Run("a completed report needs no settling", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{
			"emp-1": {ID: "rep-1", EmployeeID: "emp-1", Status: dcr.ReportComplete},
		}}
		svc := newTestService(
			&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", Role: employee.RoleTBM}}},
			reports,
			&fakeAttendanceRepo{entries: map[string]attendance.Entry{}},
			&fakeRequestRepo{covering: map[string]bool{}},
			nil,
		)

		result, err := svc.SweepYesterday(context.Background())
		require.NoError(t, err)

		assert.Empty(t, reports.sealed)
		assert.Zero(t, result.MarkedLWP)
	})

	t.Run("an uncovered day earns absent plus leave without pay", func(t *testing.T) {
		t.Parallel()

		attendances := &fakeAttendanceRepo{entries: map[string]attendance.Entry{}}
		requests := &fakeRequestRepo{covering: map[string]bool{}}
		ledgers := &fakeLedgerRepo{}
		svc := newTestService(
			&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", Role: employee.RoleTBM}}},
			&fakeReportRepo{reports: map[string]dcr.Report{}},
			attendances,
			requests,
			ledgers,
		)

		result, err := svc.SweepYesterday(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, result.MarkedLWP)
		assert.Zero(t, result.Failed)

		yesterday := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
		require.Len(t, attendances.marked, 1)
		assert.Equal(t, "emp-1", attendances.marked[0].EmployeeID)
		assert.Equal(t, attendance.TitleAbsent, attendances.marked[0].Title)
		assert.Equal(t, yesterday, attendances.marked[0].Date)

		require.Len(t, requests.created, 1)
		created := requests.created[0]
		assert.Equal(t, leave.TypeLWP, created.Type)
		assert.Equal(t, leave.StatusApproved, created.Status)
		assert.Equal(t, "no report filed", created.Reason)
		assert.Equal(t, leave.Consumption{LWP: 1}, created.Consumed)
		assert.Equal(t, yesterday, created.FromDate)
		assert.Equal(t, yesterday, created.ToDate)

		assert.Equal(t, []int{1}, ledgers.lwpDeltas)
	})

	t.Run("approved leave covers an absent day", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(
			&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", Role: employee.RoleTBM}}},
			&fakeReportRepo{reports: map[string]dcr.Report{}},
			&fakeAttendanceRepo{entries: map[string]attendance.Entry{}},
			&fakeRequestRepo{covering: map[string]bool{"emp-1": true}},
			nil,
		)

		result, err := svc.SweepYesterday(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, result.Swept)
		assert.Zero(t, result.MarkedLWP)
		assert.Zero(t, result.Failed)
	})
}

func TestResetLeaveYear(t *testing.T) {
	t.Parallel()

	ledgers := &fakeLedgerRepo{}
	svc := newTestService(
		&fakeEmployeeRepo{},
		&fakeReportRepo{reports: map[string]dcr.Report{}},
		&fakeAttendanceRepo{entries: map[string]attendance.Entry{}},
		&fakeRequestRepo{covering: map[string]bool{}},
		ledgers,
	)

	require.NoError(t, svc.ResetLeaveYear(context.Background()))
	assert.Equal(t, yearlyResetCasual, ledgers.resetCasual)
	assert.Equal(t, time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC), ledgers.resetMarker)
}
