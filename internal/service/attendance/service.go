package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	leaveRequests leave.RequestRepository
	holidays      holiday.HolidayRepository
	reports       dcr.ReportRepository
}

func NewAttendanceService(attendanceRepository attendance.AttendanceRepository, requestRepository leave.RequestRepository, holidayRepository holiday.HolidayRepository, reportRepository dcr.ReportRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepository,
		leaveRequests:        requestRepository,
		holidays:             holidayRepository,
		reports:              reportRepository,
	}
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, entry attendance.Entry) (bool, error) {
	return s.AttendanceRepository.Mark(ctx, entry)
}

// Month implements attendance.AttendanceService. A date resolves from
// the first source that covers it: an explicit entry, an approved
// leave, then the holiday calendar. Dates no source covers are omitted.
// The holiday flag rides alongside whatever title wins, since a week
// off or a working day can land on a holiday.
func (s *AttendanceServiceImpl) Month(ctx context.Context, employeeID string, year int, month time.Month) ([]attendance.DayStatus, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	entries, err := s.AttendanceRepository.ListMonth(ctx, employeeID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	entryByDate := make(map[string]attendance.Entry, len(entries))
	for _, e := range entries {
		entryByDate[e.Date.Format("2006-01-02")] = e
	}

	leaves, err := s.leaveRequests.ListApprovedInRange(ctx, employeeID, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved leave: %w", err)
	}

	holidays, err := s.holidays.ListBetween(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	holidayDates := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidayDates[h.Date.Format("2006-01-02")] = true
	}

	var days []attendance.DayStatus
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		isHoliday := holidayDates[key]

		if entry, ok := entryByDate[key]; ok {
			days = append(days, attendance.DayStatus{
				Date:      key,
				Title:     entry.Title,
				IsHoliday: isHoliday,
				ReportID:  entry.ReportID,
			})
			continue
		}

		if leaveCovers(leaves, d) {
			days = append(days, attendance.DayStatus{
				Date:      key,
				Title:     attendance.TitleLeave,
				IsHoliday: isHoliday,
			})
			continue
		}

		if isHoliday {
			days = append(days, attendance.DayStatus{
				Date:      key,
				Title:     attendance.TitleHoliday,
				IsHoliday: true,
			})
		}
	}

	return days, nil
}

// WeekOffAvailability implements attendance.AttendanceService. Working
// a holiday to completion earns one tradeable week off; the allotment
// only counts the current month.
func (s *AttendanceServiceImpl) WeekOffAvailability(ctx context.Context, employeeID string) (attendance.WeekOffAvailability, error) {
	now := time.Now()

	earned, err := s.reports.ListCompletedHolidayDates(ctx, employeeID, now.Year(), now.Month())
	if err != nil {
		return attendance.WeekOffAvailability{}, fmt.Errorf("failed to list holiday workdays: %w", err)
	}

	used, err := s.AttendanceRepository.ListWeekOffRefs(ctx, employeeID, now.Year(), now.Month())
	if err != nil {
		return attendance.WeekOffAvailability{}, fmt.Errorf("failed to list taken week offs: %w", err)
	}
	usedSet := make(map[string]bool, len(used))
	for _, u := range used {
		usedSet[u.Format("2006-01-02")] = true
	}

	availability := attendance.WeekOffAvailability{
		Available: []string{},
		Used:      []string{},
	}
	for _, e := range earned {
		key := e.Format("2006-01-02")
		if usedSet[key] {
			availability.Used = append(availability.Used, key)
		} else {
			availability.Available = append(availability.Available, key)
		}
	}

	return availability, nil
}

// TakeWeekOff implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) TakeWeekOff(ctx context.Context, employeeID string, holidayDate time.Time) (attendance.Entry, error) {
	now := time.Now()
	if holidayDate.Year() != now.Year() || holidayDate.Month() != now.Month() {
		return attendance.Entry{}, attendance.ErrWeekOffOutsideMonth
	}

	availability, err := s.WeekOffAvailability(ctx, employeeID)
	if err != nil {
		return attendance.Entry{}, err
	}

	key := holidayDate.Format("2006-01-02")
	for _, u := range availability.Used {
		if u == key {
			return attendance.Entry{}, attendance.ErrWeekOffAlreadyTaken
		}
	}
	earned := false
	for _, a := range availability.Available {
		if a == key {
			earned = true
			break
		}
	}
	if !earned {
		return attendance.Entry{}, attendance.ErrWeekOffNotEarned
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	entry := attendance.Entry{
		EmployeeID: employeeID,
		Date:       today,
		Title:      attendance.TitleWeekOff,
		WeekOffFor: &holidayDate,
	}

	marked, err := s.AttendanceRepository.Mark(ctx, entry)
	if err != nil {
		return attendance.Entry{}, err
	}
	if !marked {
		return attendance.Entry{}, attendance.ErrAlreadyMarked
	}

	return entry, nil
}

func leaveCovers(leaves []leave.Request, date time.Time) bool {
	for _, l := range leaves {
		if !date.Before(l.FromDate) && !date.After(l.ToDate) {
			return true
		}
	}
	return false
}
