package dcr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medirep/sfa-backend-go/internal/domain/attendance"
	"github.com/medirep/sfa-backend-go/internal/domain/dcr"
	"github.com/medirep/sfa-backend-go/internal/domain/dvl"
	"github.com/medirep/sfa-backend-go/internal/domain/employee"
	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/medirep/sfa-backend-go/internal/domain/master/holiday"
	"github.com/medirep/sfa-backend-go/internal/pkg/geo"
	"github.com/medirep/sfa-backend-go/internal/repository/postgresql"
	"golang.org/x/sync/errgroup"
)

// NoticeAlreadyMarked is surfaced alongside a successful completion when
// the attendance slot for the day was taken before the report closed.
const NoticeAlreadyMarked = "attendance was already marked for today"

type DCRServiceImpl struct {
	tx postgresql.Transactor
	dcr.ReportRepository
	dcr.VisitRepository
	employees     employee.EmployeeRepository
	attendances   attendance.AttendanceRepository
	leaveRequests leave.RequestRepository
	leaves        leave.LeaveService
	holidays      holiday.HolidayRepository
	doctors       dvl.DoctorRepository
	geocoder      geo.Geocoder
	distance      geo.DistanceCalculator

	now func() time.Time
}

func NewDCRService(
	tx postgresql.Transactor,
	reportRepository dcr.ReportRepository,
	visitRepository dcr.VisitRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	requestRepository leave.RequestRepository,
	leaveService leave.LeaveService,
	holidayRepository holiday.HolidayRepository,
	doctorRepository dvl.DoctorRepository,
	geocoder geo.Geocoder,
	distance geo.DistanceCalculator,
) dcr.DCRService {
	return &DCRServiceImpl{
		tx:                 tx,
		ReportRepository:   reportRepository,
		VisitRepository:    visitRepository,
		employees:          employeeRepository,
		attendances:        attendanceRepository,
		leaveRequests:      requestRepository,
		leaves:             leaveService,
		holidays:           holidayRepository,
		doctors:            doctorRepository,
		geocoder:           geocoder,
		distance:           distance,
		now:                time.Now,
	}
}

// CreateDailyReport implements dcr.DCRService.
func (s *DCRServiceImpl) CreateDailyReport(ctx context.Context, viewer employee.Employee, req dcr.CreateDailyReportRequest) (dcr.Report, error) {
	today := s.today()

	place, err := s.geocoder.ReverseGeocode(ctx, req.StartLat, req.StartLon)
	if err != nil {
		return dcr.Report{}, fmt.Errorf("failed to resolve start location: %w", err)
	}

	isHoliday, err := s.isHoliday(ctx, today)
	if err != nil {
		return dcr.Report{}, err
	}

	return s.ReportRepository.Create(ctx, dcr.Report{
		EmployeeID: viewer.ID,
		Date:       today,
		WorkStatus: dcr.WorkStatus(req.WorkStatus),
		IsHoliday:  isHoliday,
		Status:     dcr.ReportPending,
		StartLat:   req.StartLat,
		StartLon:   req.StartLon,
		StartPlace: place,
	})
}

// CreateMeetingReport implements dcr.DCRService.
func (s *DCRServiceImpl) CreateMeetingReport(ctx context.Context, viewer employee.Employee, req dcr.CreateMeetingReportRequest) ([]dcr.Report, error) {
	from, _ := time.Parse("2006-01-02", req.FromDate)
	to, _ := time.Parse("2006-01-02", req.ToDate)
	if from.After(to) {
		return nil, dcr.ErrInvalidDateRange
	}

	place, err := s.geocoder.ReverseGeocode(ctx, req.StartLat, req.StartLon)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve start location: %w", err)
	}

	var reports []dcr.Report
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			isHoliday, err := s.isHoliday(txCtx, d)
			if err != nil {
				return err
			}
			created, err := s.ReportRepository.Create(txCtx, dcr.Report{
				EmployeeID:    viewer.ID,
				Date:          d,
				WorkStatus:    dcr.WorkStatusMeeting,
				IsHoliday:     isHoliday,
				Status:        dcr.ReportPending,
				StartLat:      req.StartLat,
				StartLon:      req.StartLon,
				StartPlace:    place,
				MeetingAgenda: &req.Agenda,
			})
			if err != nil {
				return err
			}
			reports = append(reports, created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// CreateTrainingReport implements dcr.DCRService. Both sides of the
// training get a report for the day.
func (s *DCRServiceImpl) CreateTrainingReport(ctx context.Context, viewer employee.Employee, req dcr.CreateTrainingReportRequest) (dcr.Report, error) {
	today := s.today()

	partner, err := s.resolvePartner(ctx, viewer, employee.Role(req.PartnerRole))
	if err != nil {
		return dcr.Report{}, err
	}
	if partner.Role == employee.RoleAdmin {
		return dcr.Report{}, dcr.ErrPartnerIsAdmin
	}

	if err := s.checkPartnerAvailable(ctx, partner.ID, today); err != nil {
		return dcr.Report{}, err
	}

	place, err := s.geocoder.ReverseGeocode(ctx, req.StartLat, req.StartLon)
	if err != nil {
		return dcr.Report{}, fmt.Errorf("failed to resolve start location: %w", err)
	}

	isHoliday, err := s.isHoliday(ctx, today)
	if err != nil {
		return dcr.Report{}, err
	}

	var created dcr.Report
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err = s.ReportRepository.Create(txCtx, dcr.Report{
			EmployeeID:   viewer.ID,
			Date:         today,
			WorkStatus:   dcr.WorkStatusTraining,
			IsHoliday:    isHoliday,
			Status:       dcr.ReportPending,
			StartLat:     req.StartLat,
			StartLon:     req.StartLon,
			StartPlace:   place,
			TrainingWith: &partner.ID,
		})
		if err != nil {
			return err
		}

		_, err = s.ReportRepository.GetByDate(txCtx, partner.ID, today)
		if err == nil {
			return nil
		}
		if !errors.Is(err, dcr.ErrReportNotFound) {
			return err
		}

		_, err = s.ReportRepository.Create(txCtx, dcr.Report{
			EmployeeID:   partner.ID,
			Date:         today,
			WorkStatus:   dcr.WorkStatusTraining,
			IsHoliday:    isHoliday,
			Status:       dcr.ReportPending,
			StartLat:     req.StartLat,
			StartLon:     req.StartLon,
			StartPlace:   place,
			TrainingWith: &viewer.ID,
		})
		return err
	})
	if err != nil {
		return dcr.Report{}, err
	}

	return created, nil
}

// CreateAdminDayReport implements dcr.DCRService. Admin days have no
// field calls, so attendance is settled at creation time.
func (s *DCRServiceImpl) CreateAdminDayReport(ctx context.Context, viewer employee.Employee, req dcr.CreateAdminDayReportRequest) (dcr.CompleteReportResult, error) {
	today := s.today()

	place, err := s.geocoder.ReverseGeocode(ctx, req.StartLat, req.StartLon)
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to resolve start location: %w", err)
	}

	isHoliday, err := s.isHoliday(ctx, today)
	if err != nil {
		return dcr.CompleteReportResult{}, err
	}

	created, err := s.ReportRepository.Create(ctx, dcr.Report{
		EmployeeID: viewer.ID,
		Date:       today,
		WorkStatus: dcr.WorkStatusAdminDay,
		IsHoliday:  isHoliday,
		Status:     dcr.ReportPending,
		StartLat:   req.StartLat,
		StartLon:   req.StartLon,
		StartPlace: place,
	})
	if err != nil {
		return dcr.CompleteReportResult{}, err
	}

	marked, err := s.attendances.Mark(ctx, attendance.Entry{
		EmployeeID: viewer.ID,
		Date:       today,
		Title:      attendance.TitleAdminDay,
		ReportID:   &created.ID,
	})
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	result := dcr.CompleteReportResult{Report: created}
	if !marked {
		result.Notice = NoticeAlreadyMarked
	}
	return result, nil
}

// CreateFromTourPlan implements dcr.DCRService. The plan entry already
// names the place, so the report starts without a GPS fix.
func (s *DCRServiceImpl) CreateFromTourPlan(ctx context.Context, viewer employee.Employee, req dcr.CreateFromPlanRequest) (dcr.Report, error) {
	date, _ := time.Parse("2006-01-02", req.Date)

	isHoliday, err := s.isHoliday(ctx, date)
	if err != nil {
		return dcr.Report{}, err
	}

	return s.ReportRepository.Create(ctx, dcr.Report{
		EmployeeID: viewer.ID,
		Date:       date,
		WorkStatus: dcr.WorkStatusWorking,
		IsHoliday:  isHoliday,
		Status:     dcr.ReportPending,
		StartPlace: req.Place,
	})
}

// AddDoctorVisit implements dcr.DCRService.
func (s *DCRServiceImpl) AddDoctorVisit(ctx context.Context, viewer employee.Employee, reportID string, req dcr.AddDoctorVisitRequest) (dcr.DoctorVisit, error) {
	report, err := s.ownedReport(ctx, viewer, reportID)
	if err != nil {
		return dcr.DoctorVisit{}, err
	}

	doctor, err := s.doctors.GetByID(ctx, req.DoctorID)
	if err != nil {
		return dcr.DoctorVisit{}, err
	}
	if !doctor.Approved {
		return dcr.DoctorVisit{}, dcr.ErrDoctorNotApproved
	}

	pairKey := uuid.NewString()

	if req.PartnerRole == "SELF" {
		return s.VisitRepository.AddDoctorVisit(ctx, dcr.DoctorVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			DoctorID: req.DoctorID,
			Status:   dcr.VisitPending,
			WorkWith: viewer.ID,
		})
	}

	partner, err := s.resolvePartner(ctx, viewer, employee.Role(req.PartnerRole))
	if err != nil {
		return dcr.DoctorVisit{}, err
	}
	// An admin ancestor carries no field constraints and gets no mirror.
	if partner.Role == employee.RoleAdmin {
		return s.VisitRepository.AddDoctorVisit(ctx, dcr.DoctorVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			DoctorID: req.DoctorID,
			Status:   dcr.VisitPending,
			WorkWith: partner.ID,
		})
	}

	if err := s.checkPartnerAvailable(ctx, partner.ID, report.Date); err != nil {
		return dcr.DoctorVisit{}, err
	}

	var visit dcr.DoctorVisit
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		visit, err = s.VisitRepository.AddDoctorVisit(txCtx, dcr.DoctorVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			DoctorID: req.DoctorID,
			Status:   dcr.VisitPending,
			WorkWith: partner.ID,
		})
		if err != nil {
			return err
		}

		partnerReport, err := s.partnerReport(txCtx, partner.ID, report)
		if err != nil {
			return err
		}

		_, err = s.VisitRepository.AddDoctorVisit(txCtx, dcr.DoctorVisit{
			ReportID: partnerReport.ID,
			PairKey:  pairKey,
			DoctorID: req.DoctorID,
			Status:   dcr.VisitPending,
			WorkWith: viewer.ID,
		})
		return err
	})
	if err != nil {
		return dcr.DoctorVisit{}, err
	}

	return visit, nil
}

// AddCSVisit implements dcr.DCRService.
func (s *DCRServiceImpl) AddCSVisit(ctx context.Context, viewer employee.Employee, reportID string, req dcr.AddCSVisitRequest) (dcr.CSVisit, error) {
	report, err := s.ownedReport(ctx, viewer, reportID)
	if err != nil {
		return dcr.CSVisit{}, err
	}

	pairKey := uuid.NewString()

	if req.PartnerRole == "SELF" {
		return s.VisitRepository.AddCSVisit(ctx, dcr.CSVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			Name:     req.Name,
			Kind:     req.Kind,
			Status:   dcr.VisitPending,
			WorkWith: viewer.ID,
		})
	}

	partner, err := s.resolvePartner(ctx, viewer, employee.Role(req.PartnerRole))
	if err != nil {
		return dcr.CSVisit{}, err
	}
	if partner.Role == employee.RoleAdmin {
		return s.VisitRepository.AddCSVisit(ctx, dcr.CSVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			Name:     req.Name,
			Kind:     req.Kind,
			Status:   dcr.VisitPending,
			WorkWith: partner.ID,
		})
	}

	if err := s.checkPartnerAvailable(ctx, partner.ID, report.Date); err != nil {
		return dcr.CSVisit{}, err
	}

	var visit dcr.CSVisit
	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		visit, err = s.VisitRepository.AddCSVisit(txCtx, dcr.CSVisit{
			ReportID: reportID,
			PairKey:  pairKey,
			Name:     req.Name,
			Kind:     req.Kind,
			Status:   dcr.VisitPending,
			WorkWith: partner.ID,
		})
		if err != nil {
			return err
		}

		partnerReport, err := s.partnerReport(txCtx, partner.ID, report)
		if err != nil {
			return err
		}

		_, err = s.VisitRepository.AddCSVisit(txCtx, dcr.CSVisit{
			ReportID: partnerReport.ID,
			PairKey:  pairKey,
			Name:     req.Name,
			Kind:     req.Kind,
			Status:   dcr.VisitPending,
			WorkWith: viewer.ID,
		})
		return err
	})
	if err != nil {
		return dcr.CSVisit{}, err
	}

	return visit, nil
}

// DeleteDoctorVisit implements dcr.DCRService. A mirrored call loses
// both copies so the pair never dangles.
func (s *DCRServiceImpl) DeleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string) error {
	visit, err := s.VisitRepository.GetDoctorVisit(ctx, visitID)
	if err != nil {
		return err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return err
	}

	partner, err := s.VisitRepository.GetDoctorVisitPairCopy(ctx, visit.PairKey, visit.ReportID)
	if errors.Is(err, dcr.ErrVisitNotFound) {
		return s.VisitRepository.DeleteDoctorVisit(ctx, visitID)
	}
	if err != nil {
		return fmt.Errorf("failed to get mirrored visit: %w", err)
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.VisitRepository.DeleteDoctorVisit(txCtx, visitID); err != nil {
			return err
		}
		return s.VisitRepository.DeleteDoctorVisit(txCtx, partner.ID)
	})
}

// DeleteCSVisit implements dcr.DCRService.
func (s *DCRServiceImpl) DeleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string) error {
	visit, err := s.VisitRepository.GetCSVisit(ctx, visitID)
	if err != nil {
		return err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return err
	}

	partner, err := s.VisitRepository.GetCSVisitPairCopy(ctx, visit.PairKey, visit.ReportID)
	if errors.Is(err, dcr.ErrVisitNotFound) {
		return s.VisitRepository.DeleteCSVisit(ctx, visitID)
	}
	if err != nil {
		return fmt.Errorf("failed to get mirrored visit: %w", err)
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.VisitRepository.DeleteCSVisit(txCtx, visitID); err != nil {
			return err
		}
		return s.VisitRepository.DeleteCSVisit(txCtx, partner.ID)
	})
}

// CompleteDoctorVisit implements dcr.DCRService.
func (s *DCRServiceImpl) CompleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string, req dcr.CompleteVisitRequest) (dcr.DoctorVisit, error) {
	visit, err := s.VisitRepository.GetDoctorVisit(ctx, visitID)
	if err != nil {
		return dcr.DoctorVisit{}, err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return dcr.DoctorVisit{}, err
	}
	if visit.Status.Terminal() {
		return dcr.DoctorVisit{}, dcr.ErrVisitProcessed
	}

	if err := s.checkCompletePrecedence(ctx, viewer, visit.PairKey, visit.ReportID, true); err != nil {
		return dcr.DoctorVisit{}, err
	}

	now := s.now()
	visit.Status = dcr.VisitCompleteCall
	visit.CompletedLat = &req.Lat
	visit.CompletedLon = &req.Lon
	visit.CompletedAt = &now
	if req.PhotoURL != "" {
		visit.PhotoURL = &req.PhotoURL
	}

	if err := s.VisitRepository.UpdateDoctorVisit(ctx, visit); err != nil {
		return dcr.DoctorVisit{}, err
	}

	// First completed call pins the doctor's location.
	if err := s.doctors.SetLocationIfEmpty(ctx, visit.DoctorID, req.Lat, req.Lon); err != nil {
		return dcr.DoctorVisit{}, fmt.Errorf("failed to record doctor location: %w", err)
	}

	return visit, nil
}

// IncompleteDoctorVisit implements dcr.DCRService.
func (s *DCRServiceImpl) IncompleteDoctorVisit(ctx context.Context, viewer employee.Employee, visitID string, req dcr.IncompleteVisitRequest) (dcr.DoctorVisit, error) {
	if req.Remarks == "" {
		return dcr.DoctorVisit{}, dcr.ErrRemarksRequired
	}

	visit, err := s.VisitRepository.GetDoctorVisit(ctx, visitID)
	if err != nil {
		return dcr.DoctorVisit{}, err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return dcr.DoctorVisit{}, err
	}
	if visit.Status.Terminal() {
		return dcr.DoctorVisit{}, dcr.ErrVisitProcessed
	}

	if err := s.checkCompletePrecedence(ctx, viewer, visit.PairKey, visit.ReportID, false); err != nil {
		return dcr.DoctorVisit{}, err
	}

	visit.Status = dcr.VisitIncompleteCall
	visit.Remarks = &req.Remarks

	if err := s.VisitRepository.UpdateDoctorVisit(ctx, visit); err != nil {
		return dcr.DoctorVisit{}, err
	}
	return visit, nil
}

// CompleteCSVisit implements dcr.DCRService.
func (s *DCRServiceImpl) CompleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string, req dcr.CompleteVisitRequest) (dcr.CSVisit, error) {
	visit, err := s.VisitRepository.GetCSVisit(ctx, visitID)
	if err != nil {
		return dcr.CSVisit{}, err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return dcr.CSVisit{}, err
	}
	if visit.Status.Terminal() {
		return dcr.CSVisit{}, dcr.ErrVisitProcessed
	}

	if err := s.checkCSPrecedence(ctx, viewer, visit.PairKey, visit.ReportID, true); err != nil {
		return dcr.CSVisit{}, err
	}

	now := s.now()
	visit.Status = dcr.VisitCompleteCall
	visit.CompletedLat = &req.Lat
	visit.CompletedLon = &req.Lon
	visit.CompletedAt = &now
	if req.PhotoURL != "" {
		visit.PhotoURL = &req.PhotoURL
	}

	if err := s.VisitRepository.UpdateCSVisit(ctx, visit); err != nil {
		return dcr.CSVisit{}, err
	}
	return visit, nil
}

// IncompleteCSVisit implements dcr.DCRService.
func (s *DCRServiceImpl) IncompleteCSVisit(ctx context.Context, viewer employee.Employee, visitID string, req dcr.IncompleteVisitRequest) (dcr.CSVisit, error) {
	if req.Remarks == "" {
		return dcr.CSVisit{}, dcr.ErrRemarksRequired
	}

	visit, err := s.VisitRepository.GetCSVisit(ctx, visitID)
	if err != nil {
		return dcr.CSVisit{}, err
	}
	if _, err := s.ownedReport(ctx, viewer, visit.ReportID); err != nil {
		return dcr.CSVisit{}, err
	}
	if visit.Status.Terminal() {
		return dcr.CSVisit{}, dcr.ErrVisitProcessed
	}

	if err := s.checkCSPrecedence(ctx, viewer, visit.PairKey, visit.ReportID, false); err != nil {
		return dcr.CSVisit{}, err
	}

	visit.Status = dcr.VisitIncompleteCall
	visit.Remarks = &req.Remarks

	if err := s.VisitRepository.UpdateCSVisit(ctx, visit); err != nil {
		return dcr.CSVisit{}, err
	}
	return visit, nil
}

// CompleteReport implements dcr.DCRService.
func (s *DCRServiceImpl) CompleteReport(ctx context.Context, viewer employee.Employee, reportID string, req dcr.CompleteReportRequest) (dcr.CompleteReportResult, error) {
	report, err := s.ownedReport(ctx, viewer, reportID)
	if err != nil {
		return dcr.CompleteReportResult{}, err
	}

	open, err := s.VisitRepository.CountOpenVisits(ctx, reportID)
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to count open visits: %w", err)
	}
	if open > 0 {
		return dcr.CompleteReportResult{}, dcr.ErrVisitsNotTerminal
	}

	endPlace, err := s.geocoder.ReverseGeocode(ctx, req.EndLat, req.EndLon)
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to resolve end location: %w", err)
	}

	points, err := s.VisitRepository.ListCompletedPoints(ctx, reportID)
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to list visit points: %w", err)
	}

	distanceKM, err := s.routeDistanceKM(ctx, report, points, req.EndLat, req.EndLon)
	if err != nil {
		return dcr.CompleteReportResult{}, err
	}

	report.Status = dcr.ReportComplete
	report.EndLat = &req.EndLat
	report.EndLon = &req.EndLon
	report.EndPlace = &endPlace
	report.TotalDistanceKM = &distanceKM

	if err := s.ReportRepository.Update(ctx, report); err != nil {
		return dcr.CompleteReportResult{}, err
	}

	marked, err := s.attendances.Mark(ctx, attendance.Entry{
		EmployeeID: viewer.ID,
		Date:       report.Date,
		Title:      attendanceTitle(report.WorkStatus),
		ReportID:   &report.ID,
	})
	if err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to mark attendance: %w", err)
	}

	if err := s.leaves.CheckPrivilegedAccrual(ctx, viewer.ID); err != nil {
		return dcr.CompleteReportResult{}, fmt.Errorf("failed to run leave accrual: %w", err)
	}

	result := dcr.CompleteReportResult{Report: report}
	if !marked {
		result.Notice = NoticeAlreadyMarked
	}
	return result, nil
}

// DeleteReport implements dcr.DCRService.
func (s *DCRServiceImpl) DeleteReport(ctx context.Context, viewer employee.Employee, reportID string) error {
	if _, err := s.ownedReport(ctx, viewer, reportID); err != nil {
		return err
	}

	count, err := s.VisitRepository.CountVisits(ctx, reportID)
	if err != nil {
		return fmt.Errorf("failed to count visits: %w", err)
	}
	if count > 0 {
		return dcr.ErrReportHasVisits
	}

	return s.ReportRepository.Delete(ctx, reportID)
}

// UpdateStartLocation implements dcr.DCRService.
func (s *DCRServiceImpl) UpdateStartLocation(ctx context.Context, viewer employee.Employee, reportID string, req dcr.UpdateStartLocationRequest) (dcr.Report, error) {
	report, err := s.ownedReport(ctx, viewer, reportID)
	if err != nil {
		return dcr.Report{}, err
	}

	place, err := s.geocoder.ReverseGeocode(ctx, req.StartLat, req.StartLon)
	if err != nil {
		return dcr.Report{}, fmt.Errorf("failed to resolve start location: %w", err)
	}

	report.StartLat = req.StartLat
	report.StartLon = req.StartLon
	report.StartPlace = place

	if err := s.ReportRepository.Update(ctx, report); err != nil {
		return dcr.Report{}, err
	}
	return report, nil
}

// Get implements dcr.DCRService.
func (s *DCRServiceImpl) Get(ctx context.Context, reportID string) (dcr.FullReport, error) {
	report, err := s.ReportRepository.GetByID(ctx, reportID)
	if err != nil {
		return dcr.FullReport{}, err
	}
	return s.assembleFull(ctx, report)
}

// Today implements dcr.DCRService.
func (s *DCRServiceImpl) Today(ctx context.Context, employeeID string) (dcr.FullReport, error) {
	report, err := s.ReportRepository.GetByDate(ctx, employeeID, s.today())
	if err != nil {
		return dcr.FullReport{}, err
	}
	return s.assembleFull(ctx, report)
}

// ListBetween implements dcr.DCRService.
func (s *DCRServiceImpl) ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]dcr.Report, error) {
	if from.After(to) {
		return nil, dcr.ErrInvalidDateRange
	}
	return s.ReportRepository.ListBetween(ctx, employeeID, from, to)
}

// Stats implements dcr.DCRService.
func (s *DCRServiceImpl) Stats(ctx context.Context, employeeID string, year int, month time.Month) (dcr.MonthlyStats, error) {
	return s.ReportRepository.MonthlyStats(ctx, employeeID, year, month)
}

// Route implements dcr.DCRService.
func (s *DCRServiceImpl) Route(ctx context.Context, reportID string) ([]dcr.VisitPoint, error) {
	return s.VisitRepository.ListCompletedPoints(ctx, reportID)
}

func (s *DCRServiceImpl) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *DCRServiceImpl) isHoliday(ctx context.Context, date time.Time) (bool, error) {
	_, err := s.holidays.GetByDate(ctx, date)
	if err != nil {
		if errors.Is(err, holiday.ErrHolidayNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check holiday calendar: %w", err)
	}
	return true, nil
}

func (s *DCRServiceImpl) ownedReport(ctx context.Context, viewer employee.Employee, reportID string) (dcr.Report, error) {
	report, err := s.ReportRepository.GetByID(ctx, reportID)
	if err != nil {
		return dcr.Report{}, err
	}
	if report.EmployeeID != viewer.ID {
		return dcr.Report{}, dcr.ErrNotReportOwner
	}
	return report, nil
}

func (s *DCRServiceImpl) resolvePartner(ctx context.Context, viewer employee.Employee, role employee.Role) (employee.Employee, error) {
	if !role.Valid() {
		return employee.Employee{}, dcr.ErrPartnerRole
	}
	partner, err := s.employees.AncestorByRole(ctx, viewer.ID, role)
	if err != nil {
		return employee.Employee{}, err
	}
	return partner, nil
}

// checkPartnerAvailable rejects partners who are on leave or week off
// for the report date.
func (s *DCRServiceImpl) checkPartnerAvailable(ctx context.Context, partnerID string, date time.Time) error {
	onLeave, err := s.leaveRequests.HasActiveCovering(ctx, partnerID, date)
	if err != nil {
		return fmt.Errorf("failed to check partner leave: %w", err)
	}
	if onLeave {
		return dcr.ErrPartnerOnLeave
	}

	entry, err := s.attendances.Get(ctx, partnerID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrEntryNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check partner attendance: %w", err)
	}
	if entry.Title == attendance.TitleWeekOff {
		return dcr.ErrPartnerOnWeekOff
	}
	return nil
}

// partnerReport fetches the partner's report for the date, creating one
// mirroring the caller's when none exists yet.
func (s *DCRServiceImpl) partnerReport(ctx context.Context, partnerID string, source dcr.Report) (dcr.Report, error) {
	report, err := s.ReportRepository.GetByDate(ctx, partnerID, source.Date)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, dcr.ErrReportNotFound) {
		return dcr.Report{}, err
	}

	return s.ReportRepository.Create(ctx, dcr.Report{
		EmployeeID: partnerID,
		Date:       source.Date,
		WorkStatus: dcr.WorkStatusWorking,
		IsHoliday:  source.IsHoliday,
		Status:     dcr.ReportPending,
		StartLat:   source.StartLat,
		StartLon:   source.StartLon,
		StartPlace: source.StartPlace,
	})
}

// checkCompletePrecedence encodes the closing order for mirrored doctor
// calls: a manager closing their copy first is rejected until the field
// rep's copy is terminal. Field reps close freely, as do copies without
// a mirror. Marking incomplete is stricter: the mirror must itself be
// an incomplete call.
func (s *DCRServiceImpl) checkCompletePrecedence(ctx context.Context, viewer employee.Employee, pairKey, reportID string, completing bool) error {
	if viewer.Role == employee.RoleTBM {
		return nil
	}

	partner, err := s.VisitRepository.GetDoctorVisitPairCopy(ctx, pairKey, reportID)
	if err != nil {
		if errors.Is(err, dcr.ErrVisitNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get mirrored visit: %w", err)
	}

	if completing {
		if !partner.Status.Terminal() {
			return dcr.ErrPartnerCallOpen
		}
		return nil
	}
	if partner.Status != dcr.VisitIncompleteCall {
		return dcr.ErrPartnerCallOpen
	}
	return nil
}

func (s *DCRServiceImpl) checkCSPrecedence(ctx context.Context, viewer employee.Employee, pairKey, reportID string, completing bool) error {
	if viewer.Role == employee.RoleTBM {
		return nil
	}

	partner, err := s.VisitRepository.GetCSVisitPairCopy(ctx, pairKey, reportID)
	if err != nil {
		if errors.Is(err, dcr.ErrVisitNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get mirrored visit: %w", err)
	}

	if completing {
		if !partner.Status.Terminal() {
			return dcr.ErrPartnerCallOpen
		}
		return nil
	}
	if partner.Status != dcr.VisitIncompleteCall {
		return dcr.ErrPartnerCallOpen
	}
	return nil
}

// routeDistanceKM sums the legs of start, each completed visit in
// completion order, then end. Legs only depend on their own two points,
// so they run concurrently and are summed afterwards.
func (s *DCRServiceImpl) routeDistanceKM(ctx context.Context, report dcr.Report, points []dcr.VisitPoint, endLat, endLon float64) (float64, error) {
	route := make([]geo.Point, 0, len(points)+2)
	route = append(route, geo.Point{Lat: report.StartLat, Lon: report.StartLon})
	for _, p := range points {
		route = append(route, geo.Point{Lat: p.Lat, Lon: p.Lon})
	}
	route = append(route, geo.Point{Lat: endLat, Lon: endLon})

	legs := make([]float64, len(route)-1)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < len(route)-1; i++ {
		g.Go(func() error {
			d, err := s.distance.Distance(gCtx, route[i], route[i+1])
			if err != nil {
				return fmt.Errorf("failed to compute leg %d: %w", i, err)
			}
			legs[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, leg := range legs {
		total += leg
	}
	return total / 1000, nil
}

func (s *DCRServiceImpl) assembleFull(ctx context.Context, report dcr.Report) (dcr.FullReport, error) {
	doctorVisits, err := s.VisitRepository.ListDoctorVisits(ctx, report.ID)
	if err != nil {
		return dcr.FullReport{}, fmt.Errorf("failed to list doctor visits: %w", err)
	}
	csVisits, err := s.VisitRepository.ListCSVisits(ctx, report.ID)
	if err != nil {
		return dcr.FullReport{}, fmt.Errorf("failed to list chemist visits: %w", err)
	}
	return dcr.FullReport{
		Report:       report,
		DoctorVisits: doctorVisits,
		CSVisits:     csVisits,
	}, nil
}

func attendanceTitle(status dcr.WorkStatus) string {
	if status == dcr.WorkStatusWorking {
		return attendance.TitleWorkingDay
	}
	return string(status)
}
