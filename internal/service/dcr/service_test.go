package dcr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
	"github.com/medirep/sfa-backend-go/internal/pkg/geo"
)

type passThroughTx struct{}

func (passThroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReportRepo struct {
	dcr.ReportRepository

	reports map[string]dcr.Report
	byDate  map[string]dcr.Report
	created []dcr.Report
	updated *dcr.Report
	deleted []string
}

func (f *fakeReportRepo) GetByID(_ context.Context, id string) (dcr.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return dcr.Report{}, dcr.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) GetByDate(_ context.Context, employeeID string, _ time.Time) (dcr.Report, error) {
	report, ok := f.byDate[employeeID]
	if !ok {
		return dcr.Report{}, dcr.ErrReportNotFound
	}
	return report, nil
}

func (f *fakeReportRepo) Create(_ context.Context, report dcr.Report) (dcr.Report, error) {
	report.ID = "rep-new"
	f.created = append(f.created, report)
	f.reports[report.ID] = report
	return report, nil
}

func (f *fakeReportRepo) Update(_ context.Context, report dcr.Report) error {
	f.updated = &report
	f.reports[report.ID] = report
	return nil
}

func (f *fakeReportRepo) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeVisitRepo struct {
	dcr.VisitRepository

	doctorVisits map[string]dcr.DoctorVisit
	csVisits     map[string]dcr.CSVisit
	added        []dcr.DoctorVisit
	openCount    int
	visitCount   int
	points       []dcr.VisitPoint

	updatedDoctor *dcr.DoctorVisit
	updatedCS     *dcr.CSVisit
	deletedDoctor []string
	deletedCS     []string
}

func (f *fakeVisitRepo) AddDoctorVisit(_ context.Context, visit dcr.DoctorVisit) (dcr.DoctorVisit, error) {
	visit.ID = "dv-new"
	f.added = append(f.added, visit)
	return visit, nil
}

func (f *fakeVisitRepo) GetDoctorVisit(_ context.Context, id string) (dcr.DoctorVisit, error) {
	visit, ok := f.doctorVisits[id]
	if !ok {
		return dcr.DoctorVisit{}, dcr.ErrVisitNotFound
	}
	return visit, nil
}

func (f *fakeVisitRepo) GetCSVisit(_ context.Context, id string) (dcr.CSVisit, error) {
	visit, ok := f.csVisits[id]
	if !ok {
		return dcr.CSVisit{}, dcr.ErrVisitNotFound
	}
	return visit, nil
}

func (f *fakeVisitRepo) GetDoctorVisitPairCopy(_ context.Context, pairKey, excludeReportID string) (dcr.DoctorVisit, error) {
	for _, visit := range f.doctorVisits {
		if visit.PairKey == pairKey && visit.ReportID != excludeReportID {
			return visit, nil
		}
	}
	return dcr.DoctorVisit{}, dcr.ErrVisitNotFound
}

func (f *fakeVisitRepo) GetCSVisitPairCopy(_ context.Context, pairKey, excludeReportID string) (dcr.CSVisit, error) {
	for _, visit := range f.csVisits {
		if visit.PairKey == pairKey && visit.ReportID != excludeReportID {
			return visit, nil
		}
	}
	return dcr.CSVisit{}, dcr.ErrVisitNotFound
}

func (f *fakeVisitRepo) UpdateDoctorVisit(_ context.Context, visit dcr.DoctorVisit) error {
	f.updatedDoctor = &visit
	f.doctorVisits[visit.ID] = visit
	return nil
}

func (f *fakeVisitRepo) UpdateCSVisit(_ context.Context, visit dcr.CSVisit) error {
	f.updatedCS = &visit
	f.csVisits[visit.ID] = visit
	return nil
}

func (f *fakeVisitRepo) DeleteDoctorVisit(_ context.Context, id string) error {
	if _, ok := f.doctorVisits[id]; !ok {
		return dcr.ErrVisitNotFound
	}
	delete(f.doctorVisits, id)
	f.deletedDoctor = append(f.deletedDoctor, id)
	return nil
}

func (f *fakeVisitRepo) DeleteCSVisit(_ context.Context, id string) error {
	if _, ok := f.csVisits[id]; !ok {
		return dcr.ErrVisitNotFound
	}
	delete(f.csVisits, id)
	f.deletedCS = append(f.deletedCS, id)
	return nil
}

func (f *fakeVisitRepo) CountVisits(_ context.Context, _ string) (int, error) {
	return f.visitCount, nil
}

func (f *fakeVisitRepo) CountOpenVisits(_ context.Context, _ string) (int, error) {
	return f.openCount, nil
}

func (f *fakeVisitRepo) ListCompletedPoints(_ context.Context, _ string) ([]dcr.VisitPoint, error) {
	return f.points, nil
}

type fakeDoctorRepo struct {
	dvl.DoctorRepository

	doctors  map[string]dvl.Doctor
	pinnedID string
}

func (f *fakeDoctorRepo) GetByID(_ context.Context, id string) (dvl.Doctor, error) {
	doctor, ok := f.doctors[id]
	if !ok {
		return dvl.Doctor{}, dvl.ErrDoctorNotFound
	}
	return doctor, nil
}

func (f *fakeDoctorRepo) SetLocationIfEmpty(_ context.Context, id string, _, _ float64) error {
	f.pinnedID = id
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository

	ancestor    employee.Employee
	ancestorErr error
}

func (f *fakeEmployeeRepo) AncestorByRole(_ context.Context, _ string, _ employee.Role) (employee.Employee, error) {
	if f.ancestorErr != nil {
		return employee.Employee{}, f.ancestorErr
	}
	return f.ancestor, nil
}

type fakeLeaveRequestRepo struct {
	leave.RequestRepository

	onLeave bool
}

func (f *fakeLeaveRequestRepo) HasActiveCovering(_ context.Context, _ string, _ time.Time) (bool, error) {
	return f.onLeave, nil
}

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository

	entries  map[string]attendance.Entry
	conflict bool
	marked   []attendance.Entry
}

func (f *fakeAttendanceRepo) Get(_ context.Context, employeeID string, _ time.Time) (attendance.Entry, error) {
	entry, ok := f.entries[employeeID]
	if !ok {
		return attendance.Entry{}, attendance.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeAttendanceRepo) Mark(_ context.Context, entry attendance.Entry) (bool, error) {
	if f.conflict {
		return false, nil
	}
	f.marked = append(f.marked, entry)
	return true, nil
}

type fakeLeaveService struct {
	leave.LeaveService

	accrualFor []string
}

func (f *fakeLeaveService) CheckPrivilegedAccrual(_ context.Context, employeeID string) error {
	f.accrualFor = append(f.accrualFor, employeeID)
	return nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository

	dates map[string]holiday.Holiday
}

func (f *fakeHolidayRepo) GetByDate(_ context.Context, date time.Time) (holiday.Holiday, error) {
	h, ok := f.dates[date.Format("2006-01-02")]
	if !ok {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

type fakeGeocoder struct{ place string }

func (f fakeGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (string, error) {
	return f.place, nil
}

// fakeDistance returns a fixed number of meters per leg so route totals
// reduce to counting legs.
type fakeDistance struct{ meters float64 }

func (f fakeDistance) Distance(_ context.Context, _, _ geo.Point) (float64, error) {
	return f.meters, nil
}

type dcrFixtures struct {
	reports     *fakeReportRepo
	visits      *fakeVisitRepo
	doctors     *fakeDoctorRepo
	employees   *fakeEmployeeRepo
	requests    *fakeLeaveRequestRepo
	attendances *fakeAttendanceRepo
	leaves      *fakeLeaveService
	holidays    *fakeHolidayRepo
}

func newTestService(f dcrFixtures) *DCRServiceImpl {
	if f.reports == nil {
		f.reports = &fakeReportRepo{reports: map[string]dcr.Report{}}
	}
	if f.visits == nil {
		f.visits = &fakeVisitRepo{doctorVisits: map[string]dcr.DoctorVisit{}, csVisits: map[string]dcr.CSVisit{}}
	}
	if f.doctors == nil {
		f.doctors = &fakeDoctorRepo{doctors: map[string]dvl.Doctor{}}
	}
	if f.employees == nil {
		f.employees = &fakeEmployeeRepo{}
	}
	if f.requests == nil {
		f.requests = &fakeLeaveRequestRepo{}
	}
	if f.attendances == nil {
		f.attendances = &fakeAttendanceRepo{entries: map[string]attendance.Entry{}}
	}
	if f.leaves == nil {
		f.leaves = &fakeLeaveService{}
	}
	if f.holidays == nil {
		f.holidays = &fakeHolidayRepo{dates: map[string]holiday.Holiday{}}
	}
	return &DCRServiceImpl{
		tx:               passThroughTx{},
		ReportRepository: f.reports,
		VisitRepository:  f.visits,
		employees:        f.employees,
		attendances:      f.attendances,
		leaveRequests:    f.requests,
		leaves:           f.leaves,
		holidays:         f.holidays,
		doctors:          f.doctors,
		geocoder:         fakeGeocoder{place: "Pune, Maharashtra"},
		distance:         fakeDistance{meters: 1000},
		now:              func() time.Time { return time.Date(2026, time.September, 3, 18, 30, 0, 0, time.UTC) },
	}
}

func fieldRep() employee.Employee {
	return employee.Employee{ID: "emp-tbm", Role: employee.RoleTBM, FullName: "Sunil Patil"}
}

func areaManager() employee.Employee {
	return employee.Employee{ID: "emp-abm", Role: employee.RoleABM, FullName: "Meera Kulkarni"}
}

func pendingReport(id, employeeID string) dcr.Report {
	return dcr.Report{
		ID:         id,
		EmployeeID: employeeID,
		Date:       time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC),
		WorkStatus: dcr.WorkStatusWorking,
		Status:     dcr.ReportPending,
		StartLat:   18.52,
		StartLon:   73.85,
		StartPlace: "Pune, Maharashtra",
	}
}

func TestCreateFromTourPlan(t *testing.T) {
	t.Parallel()

	t.Run("starts a working report with the planned place", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{}}
		svc := newTestService(dcrFixtures{reports: reports})

		report, err := svc.CreateFromTourPlan(context.Background(), fieldRep(), dcr.CreateFromPlanRequest{
			Date:  "2026-09-10",
			Place: "Nashik",
		})
		require.NoError(t, err)

		assert.Equal(t, dcr.WorkStatusWorking, report.WorkStatus)
		assert.Equal(t, dcr.ReportPending, report.Status)
		assert.Equal(t, "Nashik", report.StartPlace)
		assert.False(t, report.IsHoliday)
		assert.Zero(t, report.StartLat, "a planned day starts without a GPS fix")
		assert.Zero(t, report.StartLon)
		require.Len(t, reports.created, 1)
	})

	t.Run("stamps a calendar holiday", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			holidays: &fakeHolidayRepo{dates: map[string]holiday.Holiday{
				"2026-09-10": {ID: "hol-1", Name: "Festival"},
			}},
		})

		report, err := svc.CreateFromTourPlan(context.Background(), fieldRep(), dcr.CreateFromPlanRequest{
			Date:  "2026-09-10",
			Place: "Nashik",
		})
		require.NoError(t, err)
		assert.True(t, report.IsHoliday)
	})
}

func TestUpdateStartLocation(t *testing.T) {
	t.Parallel()

	t.Run("re-geocodes and rewrites the start point", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}}
		svc := newTestService(dcrFixtures{reports: reports})

		report, err := svc.UpdateStartLocation(context.Background(), fieldRep(), "rep-1", dcr.UpdateStartLocationRequest{
			StartLat: 19.99,
			StartLon: 73.78,
		})
		require.NoError(t, err)

		assert.Equal(t, 19.99, report.StartLat)
		assert.Equal(t, 73.78, report.StartLon)
		assert.Equal(t, "Pune, Maharashtra", report.StartPlace)
		require.NotNil(t, reports.updated)
		assert.Equal(t, 19.99, reports.updated.StartLat)
	})

	t.Run("someone else's report", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-other")}},
		})

		_, err := svc.UpdateStartLocation(context.Background(), fieldRep(), "rep-1", dcr.UpdateStartLocationRequest{
			StartLat: 19.99,
			StartLon: 73.78,
		})
		assert.ErrorIs(t, err, dcr.ErrNotReportOwner)
	})
}

func TestAddDoctorVisitSelf(t *testing.T) {
	t.Parallel()

	visits := &fakeVisitRepo{doctorVisits: map[string]dcr.DoctorVisit{}, csVisits: map[string]dcr.CSVisit{}}
	svc := newTestService(dcrFixtures{
		reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
		visits:  visits,
		doctors: &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Name: "Dr. Joshi", Approved: true}}},
	})

	visit, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
		DoctorID:    "doc-1",
		PartnerRole: "SELF",
	})
	require.NoError(t, err)

	assert.Equal(t, "emp-tbm", visit.WorkWith, "a solo call is worked with the reporter themselves")
	assert.Equal(t, dcr.VisitPending, visit.Status)
	assert.NotEmpty(t, visit.PairKey)
	assert.Len(t, visits.added, 1, "a solo call gets no mirrored copy")
}

func TestAddDoctorVisitMirrorsToPartner(t *testing.T) {
	t.Parallel()

	t.Run("partner already has a report for the day", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{doctorVisits: map[string]dcr.DoctorVisit{}, csVisits: map[string]dcr.CSVisit{}}
		reports := &fakeReportRepo{
			reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")},
			byDate:  map[string]dcr.Report{"emp-abm": pendingReport("rep-abm", "emp-abm")},
		}
		svc := newTestService(dcrFixtures{
			reports:   reports,
			visits:    visits,
			doctors:   &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
			employees: &fakeEmployeeRepo{ancestor: areaManager()},
		})

		visit, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-tbm", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "ABM",
		})
		require.NoError(t, err)

		require.Len(t, visits.added, 2, "a joint call lands on both reports")
		mine, theirs := visits.added[0], visits.added[1]
		assert.Equal(t, mine.PairKey, theirs.PairKey)
		assert.Equal(t, "rep-tbm", mine.ReportID)
		assert.Equal(t, "rep-abm", theirs.ReportID)
		assert.Equal(t, "emp-abm", mine.WorkWith, "the rep's copy names the manager")
		assert.Equal(t, "emp-tbm", theirs.WorkWith, "the manager's copy names the rep")
		assert.Equal(t, "emp-abm", visit.WorkWith)
		assert.Empty(t, reports.created, "no report is conjured when one exists")
	})

	t.Run("a missing partner report is created alongside", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{doctorVisits: map[string]dcr.DoctorVisit{}, csVisits: map[string]dcr.CSVisit{}}
		reports := &fakeReportRepo{
			reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")},
			byDate:  map[string]dcr.Report{},
		}
		svc := newTestService(dcrFixtures{
			reports:   reports,
			visits:    visits,
			doctors:   &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
			employees: &fakeEmployeeRepo{ancestor: areaManager()},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-tbm", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "ABM",
		})
		require.NoError(t, err)

		require.Len(t, reports.created, 1)
		mirror := reports.created[0]
		assert.Equal(t, "emp-abm", mirror.EmployeeID)
		assert.Equal(t, dcr.WorkStatusWorking, mirror.WorkStatus)
		assert.Equal(t, dcr.ReportPending, mirror.Status)
		assert.Equal(t, "Pune, Maharashtra", mirror.StartPlace, "the mirror inherits the caller's start")

		require.Len(t, visits.added, 2)
		assert.Equal(t, "rep-new", visits.added[1].ReportID)
	})

	t.Run("an admin ancestor gets no mirror", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{doctorVisits: map[string]dcr.DoctorVisit{}, csVisits: map[string]dcr.CSVisit{}}
		svc := newTestService(dcrFixtures{
			reports:   &fakeReportRepo{reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")}},
			visits:    visits,
			doctors:   &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
			employees: &fakeEmployeeRepo{ancestor: employee.Employee{ID: "emp-admin", Role: employee.RoleAdmin}},
		})

		visit, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-tbm", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "ZBM",
		})
		require.NoError(t, err)

		assert.Len(t, visits.added, 1)
		assert.Equal(t, "emp-admin", visit.WorkWith)
	})
}

func TestAddDoctorVisitGuards(t *testing.T) {
	t.Parallel()

	t.Run("unapproved doctor", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			doctors: &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: false}}},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "SELF",
		})
		assert.ErrorIs(t, err, dcr.ErrDoctorNotApproved)
	})

	t.Run("someone else's report", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-other")}},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "SELF",
		})
		assert.ErrorIs(t, err, dcr.ErrNotReportOwner)
	})

	t.Run("unknown partner role", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			doctors: &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "CEO",
		})
		assert.ErrorIs(t, err, dcr.ErrPartnerRole)
	})

	t.Run("partner on leave", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports:   &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			doctors:   &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
			employees: &fakeEmployeeRepo{ancestor: areaManager()},
			requests:  &fakeLeaveRequestRepo{onLeave: true},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "ABM",
		})
		assert.ErrorIs(t, err, dcr.ErrPartnerOnLeave)
	})

	t.Run("partner on week off", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports:   &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			doctors:   &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
			employees: &fakeEmployeeRepo{ancestor: areaManager()},
			attendances: &fakeAttendanceRepo{entries: map[string]attendance.Entry{
				"emp-abm": {EmployeeID: "emp-abm", Title: attendance.TitleWeekOff},
			}},
		})

		_, err := svc.AddDoctorVisit(context.Background(), fieldRep(), "rep-1", dcr.AddDoctorVisitRequest{
			DoctorID:    "doc-1",
			PartnerRole: "ABM",
		})
		assert.ErrorIs(t, err, dcr.ErrPartnerOnWeekOff)
	})
}

func TestDeleteDoctorVisit(t *testing.T) {
	t.Parallel()

	t.Run("a mirrored call loses both copies", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{
				"dv-tbm": {ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending, WorkWith: "emp-abm"},
				"dv-abm": {ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending, WorkWith: "emp-tbm"},
			},
			csVisits: map[string]dcr.CSVisit{},
		}
		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")}},
			visits:  visits,
		})

		require.NoError(t, svc.DeleteDoctorVisit(context.Background(), fieldRep(), "dv-tbm"))

		assert.ElementsMatch(t, []string{"dv-tbm", "dv-abm"}, visits.deletedDoctor)
		assert.Empty(t, visits.doctorVisits)
	})

	t.Run("a solo call loses only itself", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{
				"dv-tbm": {ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending, WorkWith: "emp-tbm"},
			},
			csVisits: map[string]dcr.CSVisit{},
		}
		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")}},
			visits:  visits,
		})

		require.NoError(t, svc.DeleteDoctorVisit(context.Background(), fieldRep(), "dv-tbm"))
		assert.Equal(t, []string{"dv-tbm"}, visits.deletedDoctor)
	})

	t.Run("someone else's visit", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{
				"dv-abm": {ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending, WorkWith: "emp-tbm"},
			},
			csVisits: map[string]dcr.CSVisit{},
		}
		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-abm": pendingReport("rep-abm", "emp-abm")}},
			visits:  visits,
		})

		err := svc.DeleteDoctorVisit(context.Background(), fieldRep(), "dv-abm")
		assert.ErrorIs(t, err, dcr.ErrNotReportOwner)
		assert.Empty(t, visits.deletedDoctor)
	})
}

func TestDeleteCSVisit(t *testing.T) {
	t.Parallel()

	visits := &fakeVisitRepo{
		doctorVisits: map[string]dcr.DoctorVisit{},
		csVisits: map[string]dcr.CSVisit{
			"cs-tbm": {ID: "cs-tbm", ReportID: "rep-tbm", PairKey: "pair-1", Name: "Mahesh Medicals", Kind: "CHEMIST", Status: dcr.VisitPending, WorkWith: "emp-abm"},
			"cs-abm": {ID: "cs-abm", ReportID: "rep-abm", PairKey: "pair-1", Name: "Mahesh Medicals", Kind: "CHEMIST", Status: dcr.VisitPending, WorkWith: "emp-tbm"},
		},
	}
	svc := newTestService(dcrFixtures{
		reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-tbm": pendingReport("rep-tbm", "emp-tbm")}},
		visits:  visits,
	})

	require.NoError(t, svc.DeleteCSVisit(context.Background(), fieldRep(), "cs-tbm"))

	assert.ElementsMatch(t, []string{"cs-tbm", "cs-abm"}, visits.deletedCS)
	assert.Empty(t, visits.csVisits)
}

func TestCompleteDoctorVisit(t *testing.T) {
	t.Parallel()

	// Mirrored pair: the manager's copy on rep-abm, the rep's on rep-tbm.
	pairedFixtures := func(partnerStatus dcr.VisitStatus) (dcrFixtures, *fakeVisitRepo, *fakeDoctorRepo) {
		visits := &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{
				"dv-abm": {ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending, WorkWith: "emp-tbm"},
				"dv-tbm": {ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", DoctorID: "doc-1", Status: partnerStatus, WorkWith: "emp-abm"},
			},
			csVisits: map[string]dcr.CSVisit{},
		}
		doctors := &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}}
		f := dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{
				"rep-abm": pendingReport("rep-abm", "emp-abm"),
				"rep-tbm": pendingReport("rep-tbm", "emp-tbm"),
			}},
			visits:  visits,
			doctors: doctors,
		}
		return f, visits, doctors
	}

	t.Run("already closed", func(t *testing.T) {
		t.Parallel()

		f, _, _ := pairedFixtures(dcr.VisitPending)
		f.visits.doctorVisits["dv-tbm"] = dcr.DoctorVisit{ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", Status: dcr.VisitCompleteCall}
		svc := newTestService(f)

		_, err := svc.CompleteDoctorVisit(context.Background(), fieldRep(), "dv-tbm", dcr.CompleteVisitRequest{})
		assert.ErrorIs(t, err, dcr.ErrVisitProcessed)
	})

	t.Run("manager blocked while the rep's copy is open", func(t *testing.T) {
		t.Parallel()

		f, _, _ := pairedFixtures(dcr.VisitPending)
		svc := newTestService(f)

		_, err := svc.CompleteDoctorVisit(context.Background(), areaManager(), "dv-abm", dcr.CompleteVisitRequest{Lat: 18.53, Lon: 73.86})
		assert.ErrorIs(t, err, dcr.ErrPartnerCallOpen)
	})

	t.Run("manager completes once the rep's copy is terminal", func(t *testing.T) {
		t.Parallel()

		f, visits, doctors := pairedFixtures(dcr.VisitCompleteCall)
		svc := newTestService(f)

		visit, err := svc.CompleteDoctorVisit(context.Background(), areaManager(), "dv-abm", dcr.CompleteVisitRequest{
			Lat:      18.53,
			Lon:      73.86,
			PhotoURL: "/uploads/visits/dv-abm.jpg",
		})
		require.NoError(t, err)

		assert.Equal(t, dcr.VisitCompleteCall, visit.Status)
		require.NotNil(t, visit.CompletedAt)
		require.NotNil(t, visit.PhotoURL)
		assert.Equal(t, "/uploads/visits/dv-abm.jpg", *visit.PhotoURL)
		require.NotNil(t, visits.updatedDoctor)
		assert.Equal(t, "doc-1", doctors.pinnedID, "the completed call pins the doctor's location")
	})

	t.Run("field rep completes regardless of the manager's copy", func(t *testing.T) {
		t.Parallel()

		f, _, _ := pairedFixtures(dcr.VisitPending)
		f.visits.doctorVisits["dv-abm"] = dcr.DoctorVisit{ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", DoctorID: "doc-1", Status: dcr.VisitPending}
		svc := newTestService(f)

		visit, err := svc.CompleteDoctorVisit(context.Background(), fieldRep(), "dv-tbm", dcr.CompleteVisitRequest{Lat: 18.53, Lon: 73.86})
		require.NoError(t, err)
		assert.Equal(t, dcr.VisitCompleteCall, visit.Status)
	})

	t.Run("unmirrored copy completes freely", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-abm": pendingReport("rep-abm", "emp-abm")}},
			visits: &fakeVisitRepo{
				doctorVisits: map[string]dcr.DoctorVisit{
					"dv-solo": {ID: "dv-solo", ReportID: "rep-abm", PairKey: "pair-solo", DoctorID: "doc-1", Status: dcr.VisitPending},
				},
				csVisits: map[string]dcr.CSVisit{},
			},
			doctors: &fakeDoctorRepo{doctors: map[string]dvl.Doctor{"doc-1": {ID: "doc-1", Approved: true}}},
		})

		visit, err := svc.CompleteDoctorVisit(context.Background(), areaManager(), "dv-solo", dcr.CompleteVisitRequest{Lat: 18.53, Lon: 73.86})
		require.NoError(t, err)
		assert.Equal(t, dcr.VisitCompleteCall, visit.Status)
	})
}

func TestIncompleteDoctorVisit(t *testing.T) {
	t.Parallel()

	t.Run("remarks are mandatory", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{})
		_, err := svc.IncompleteDoctorVisit(context.Background(), fieldRep(), "dv-1", dcr.IncompleteVisitRequest{})
		assert.ErrorIs(t, err, dcr.ErrRemarksRequired)
	})

	t.Run("manager cannot mark incomplete over a completed rep copy", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-abm": pendingReport("rep-abm", "emp-abm")}},
			visits: &fakeVisitRepo{
				doctorVisits: map[string]dcr.DoctorVisit{
					"dv-abm": {ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", Status: dcr.VisitPending},
					"dv-tbm": {ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", Status: dcr.VisitCompleteCall},
				},
				csVisits: map[string]dcr.CSVisit{},
			},
		})

		_, err := svc.IncompleteDoctorVisit(context.Background(), areaManager(), "dv-abm", dcr.IncompleteVisitRequest{Remarks: "doctor unavailable"})
		assert.ErrorIs(t, err, dcr.ErrPartnerCallOpen)
	})

	t.Run("manager follows the rep's incomplete call", func(t *testing.T) {
		t.Parallel()

		visits := &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{
				"dv-abm": {ID: "dv-abm", ReportID: "rep-abm", PairKey: "pair-1", Status: dcr.VisitPending},
				"dv-tbm": {ID: "dv-tbm", ReportID: "rep-tbm", PairKey: "pair-1", Status: dcr.VisitIncompleteCall},
			},
			csVisits: map[string]dcr.CSVisit{},
		}
		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-abm": pendingReport("rep-abm", "emp-abm")}},
			visits:  visits,
		})

		visit, err := svc.IncompleteDoctorVisit(context.Background(), areaManager(), "dv-abm", dcr.IncompleteVisitRequest{Remarks: "doctor unavailable"})
		require.NoError(t, err)

		assert.Equal(t, dcr.VisitIncompleteCall, visit.Status)
		require.NotNil(t, visit.Remarks)
		assert.Equal(t, "doctor unavailable", *visit.Remarks)
	})
}

func TestCompleteCSVisitPrecedence(t *testing.T) {
	t.Parallel()

	svc := newTestService(dcrFixtures{
		reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-abm": pendingReport("rep-abm", "emp-abm")}},
		visits: &fakeVisitRepo{
			doctorVisits: map[string]dcr.DoctorVisit{},
			csVisits: map[string]dcr.CSVisit{
				"cs-abm": {ID: "cs-abm", ReportID: "rep-abm", PairKey: "pair-1", Name: "Mahesh Medicals", Kind: "CHEMIST", Status: dcr.VisitPending},
				"cs-tbm": {ID: "cs-tbm", ReportID: "rep-tbm", PairKey: "pair-1", Name: "Mahesh Medicals", Kind: "CHEMIST", Status: dcr.VisitPending},
			},
		},
	})

	_, err := svc.CompleteCSVisit(context.Background(), areaManager(), "cs-abm", dcr.CompleteVisitRequest{Lat: 18.53, Lon: 73.86})
	assert.ErrorIs(t, err, dcr.ErrPartnerCallOpen)
}

func TestCompleteReport(t *testing.T) {
	t.Parallel()

	t.Run("open visits block completion", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			visits:  &fakeVisitRepo{openCount: 2},
		})

		_, err := svc.CompleteReport(context.Background(), fieldRep(), "rep-1", dcr.CompleteReportRequest{EndLat: 18.6, EndLon: 73.9})
		assert.ErrorIs(t, err, dcr.ErrVisitsNotTerminal)
	})

	t.Run("closes the day and marks attendance", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}}
		attendances := &fakeAttendanceRepo{entries: map[string]attendance.Entry{}}
		leaves := &fakeLeaveService{}
		svc := newTestService(dcrFixtures{
			reports: reports,
			visits: &fakeVisitRepo{points: []dcr.VisitPoint{
				{Lat: 18.53, Lon: 73.86},
				{Lat: 18.55, Lon: 73.88},
			}},
			attendances: attendances,
			leaves:      leaves,
		})

		result, err := svc.CompleteReport(context.Background(), fieldRep(), "rep-1", dcr.CompleteReportRequest{EndLat: 18.6, EndLon: 73.9})
		require.NoError(t, err)

		assert.Equal(t, dcr.ReportComplete, result.Report.Status)
		assert.Empty(t, result.Notice)
		require.NotNil(t, result.Report.TotalDistanceKM)
		// Start, two visits, end: three legs of 1000m each.
		assert.InDelta(t, 3.0, *result.Report.TotalDistanceKM, 0.001)
		require.NotNil(t, result.Report.EndPlace)
		assert.Equal(t, "Pune, Maharashtra", *result.Report.EndPlace)

		require.Len(t, attendances.marked, 1)
		assert.Equal(t, attendance.TitleWorkingDay, attendances.marked[0].Title)
		require.NotNil(t, attendances.marked[0].ReportID)
		assert.Equal(t, "rep-1", *attendances.marked[0].ReportID)

		assert.Equal(t, []string{"emp-tbm"}, leaves.accrualFor, "completion feeds the privileged leave accrual")
	})

	t.Run("already marked attendance becomes a notice", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports:     &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			attendances: &fakeAttendanceRepo{entries: map[string]attendance.Entry{}, conflict: true},
		})

		result, err := svc.CompleteReport(context.Background(), fieldRep(), "rep-1", dcr.CompleteReportRequest{EndLat: 18.6, EndLon: 73.9})
		require.NoError(t, err)
		assert.Equal(t, NoticeAlreadyMarked, result.Notice)
	})
}

func TestDeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("blocked while visits exist", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(dcrFixtures{
			reports: &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}},
			visits:  &fakeVisitRepo{visitCount: 1},
		})

		err := svc.DeleteReport(context.Background(), fieldRep(), "rep-1")
		assert.ErrorIs(t, err, dcr.ErrReportHasVisits)
	})

	t.Run("empty report deletes", func(t *testing.T) {
		t.Parallel()

		reports := &fakeReportRepo{reports: map[string]dcr.Report{"rep-1": pendingReport("rep-1", "emp-tbm")}}
		svc := newTestService(dcrFixtures{reports: reports})

		require.NoError(t, svc.DeleteReport(context.Background(), fieldRep(), "rep-1"))
		assert.Equal(t, []string{"rep-1"}, reports.deleted)
	})
}
