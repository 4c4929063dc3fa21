package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	entries     []attendance.Entry
	weekOffRefs []time.Time

	marked       *attendance.Entry
	markConflict bool
}

func (f *fakeAttendanceRepo) ListMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.Entry, error) {
	return f.entries, nil
}

func (f *fakeAttendanceRepo) ListWeekOffRefs(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error) {
	return f.weekOffRefs, nil
}

func (f *fakeAttendanceRepo) Mark(ctx context.Context, entry attendance.Entry) (bool, error) {
	if f.markConflict {
		return false, nil
	}
	f.marked = &entry
	return true, nil
}

type fakeLeaveRequestRepo struct {
	leave.RequestRepository
	approved []leave.Request
}

func (f *fakeLeaveRequestRepo) ListApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) ([]leave.Request, error) {
	return f.approved, nil
}

type fakeHolidayRepo struct {
	holiday.HolidayRepository
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

type fakeReportRepo struct {
	dcr.ReportRepository
	holidayWorkdays []time.Time
}

func (f *fakeReportRepo) ListCompletedHolidayDates(ctx context.Context, employeeID string, year int, month time.Month) ([]time.Time, error) {
	return f.holidayWorkdays, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthLayering(t *testing.T) {
	t.Parallel()

	reportID := "rep-1"
	attendances := &fakeAttendanceRepo{entries: []attendance.Entry{
		{Date: day(2026, time.September, 1), Title: attendance.TitleWorkingDay, ReportID: &reportID},
		// Explicit entry on a holiday wins over the holiday title.
		{Date: day(2026, time.September, 5), Title: attendance.TitleWorkingDay},
	}}
	leaves := &fakeLeaveRequestRepo{approved: []leave.Request{
		{FromDate: day(2026, time.September, 2), ToDate: day(2026, time.September, 3)},
	}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{
		{Date: day(2026, time.September, 3)},
		{Date: day(2026, time.September, 5)},
		{Date: day(2026, time.September, 20)},
	}}

	svc := NewAttendanceService(attendances, leaves, holidays, &fakeReportRepo{})

	days, err := svc.Month(context.Background(), "emp-1", 2026, time.September)
	require.NoError(t, err)

	byDate := make(map[string]attendance.DayStatus, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	// Explicit entry carries its report reference.
	require.Contains(t, byDate, "2026-09-01")
	assert.Equal(t, attendance.TitleWorkingDay, byDate["2026-09-01"].Title)
	require.NotNil(t, byDate["2026-09-01"].ReportID)
	assert.Equal(t, reportID, *byDate["2026-09-01"].ReportID)

	// Approved leave fills uncovered days.
	assert.Equal(t, attendance.TitleLeave, byDate["2026-09-02"].Title)

	// Leave beats the holiday for the title, the flag still set.
	assert.Equal(t, attendance.TitleLeave, byDate["2026-09-03"].Title)
	assert.True(t, byDate["2026-09-03"].IsHoliday)

	// Working a holiday keeps the entry title with the flag.
	assert.Equal(t, attendance.TitleWorkingDay, byDate["2026-09-05"].Title)
	assert.True(t, byDate["2026-09-05"].IsHoliday)

	// A bare holiday resolves to the holiday title.
	assert.Equal(t, attendance.TitleHoliday, byDate["2026-09-20"].Title)

	// Uncovered days are omitted entirely.
	assert.NotContains(t, byDate, "2026-09-10")
}

func TestWeekOffAvailabilityPartitionsEarnedDates(t *testing.T) {
	t.Parallel()

	now := time.Now()
	first := day(now.Year(), now.Month(), 1)
	second := day(now.Year(), now.Month(), 2)

	attendances := &fakeAttendanceRepo{weekOffRefs: []time.Time{first}}
	reports := &fakeReportRepo{holidayWorkdays: []time.Time{first, second}}

	svc := NewAttendanceService(attendances, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, reports)

	availability, err := svc.WeekOffAvailability(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.Equal(t, []string{second.Format("2006-01-02")}, availability.Available)
	assert.Equal(t, []string{first.Format("2006-01-02")}, availability.Used)
}

func TestTakeWeekOff(t *testing.T) {
	t.Parallel()

	now := time.Now()
	earned := day(now.Year(), now.Month(), 1)

	t.Run("rejects a date outside the current month", func(t *testing.T) {
		t.Parallel()
		svc := NewAttendanceService(&fakeAttendanceRepo{}, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, &fakeReportRepo{})

		_, err := svc.TakeWeekOff(context.Background(), "emp-1", day(now.Year(), now.Month(), 1).AddDate(0, -1, 0))
		assert.ErrorIs(t, err, attendance.ErrWeekOffOutsideMonth)
	})

	t.Run("rejects an unearned date", func(t *testing.T) {
		t.Parallel()
		svc := NewAttendanceService(&fakeAttendanceRepo{}, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, &fakeReportRepo{})

		_, err := svc.TakeWeekOff(context.Background(), "emp-1", earned)
		assert.ErrorIs(t, err, attendance.ErrWeekOffNotEarned)
	})

	t.Run("rejects a date already traded", func(t *testing.T) {
		t.Parallel()
		attendances := &fakeAttendanceRepo{weekOffRefs: []time.Time{earned}}
		reports := &fakeReportRepo{holidayWorkdays: []time.Time{earned}}
		svc := NewAttendanceService(attendances, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, reports)

		_, err := svc.TakeWeekOff(context.Background(), "emp-1", earned)
		assert.ErrorIs(t, err, attendance.ErrWeekOffAlreadyTaken)
	})

	t.Run("marks today with the traded reference", func(t *testing.T) {
		t.Parallel()
		attendances := &fakeAttendanceRepo{}
		reports := &fakeReportRepo{holidayWorkdays: []time.Time{earned}}
		svc := NewAttendanceService(attendances, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, reports)

		entry, err := svc.TakeWeekOff(context.Background(), "emp-1", earned)
		require.NoError(t, err)

		assert.Equal(t, attendance.TitleWeekOff, entry.Title)
		require.NotNil(t, entry.WeekOffFor)
		assert.Equal(t, earned, *entry.WeekOffFor)
		require.NotNil(t, attendances.marked)
	})

	t.Run("surfaces a conflict for an already marked day", func(t *testing.T) {
		t.Parallel()
		attendances := &fakeAttendanceRepo{markConflict: true}
		reports := &fakeReportRepo{holidayWorkdays: []time.Time{earned}}
		svc := NewAttendanceService(attendances, &fakeLeaveRequestRepo{}, &fakeHolidayRepo{}, reports)

		_, err := svc.TakeWeekOff(context.Background(), "emp-1", earned)
		assert.ErrorIs(t, err, attendance.ErrAlreadyMarked)
	})
}
