package dcr

import "time"

type WorkStatus string

const (
	WorkStatusWorking  WorkStatus = "WORKING" // field visit day
	WorkStatusCamp     WorkStatus = "CAMP"
	WorkStatusMeeting  WorkStatus = "MEETING"
	WorkStatusJoining  WorkStatus = "JOINING"
	WorkStatusTraining WorkStatus = "TRAINING"
	WorkStatusAdminDay WorkStatus = "ADMIN DAY"
)

var ValidWorkStatuses = []WorkStatus{
	WorkStatusWorking, WorkStatusCamp, WorkStatusMeeting,
	WorkStatusJoining, WorkStatusTraining, WorkStatusAdminDay,
}

func (s WorkStatus) Valid() bool {
	for _, v := range ValidWorkStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ReportStatus string

const (
	ReportPending    ReportStatus = "PENDING"
	ReportIncomplete ReportStatus = "INCOMPLETE"
	ReportComplete   ReportStatus = "COMPLETE"
)

type VisitStatus string

const (
	VisitPending        VisitStatus = "PENDING"
	VisitIncompleteCall VisitStatus = "INCOMPLETE CALL"
	VisitCompleteCall   VisitStatus = "COMPLETE CALL"
)

// Terminal reports whether a visit has reached a closing state.
func (s VisitStatus) Terminal() bool {
	return s == VisitCompleteCall || s == VisitIncompleteCall
}

type Report struct {
	ID              string       `json:"id"`
	EmployeeID      string       `json:"employee_id"`
	Date            time.Time    `json:"date"`
	WorkStatus      WorkStatus   `json:"work_status"`
	IsHoliday       bool         `json:"is_holiday"`
	Status          ReportStatus `json:"status"`
	StartLat        float64      `json:"start_lat"`
	StartLon        float64      `json:"start_lon"`
	StartPlace      string       `json:"start_place"`
	EndLat          *float64     `json:"end_lat,omitempty"`
	EndLon          *float64     `json:"end_lon,omitempty"`
	EndPlace        *string      `json:"end_place,omitempty"`
	TotalDistanceKM *float64     `json:"total_distance_km,omitempty"`
	MeetingAgenda   *string      `json:"meeting_agenda,omitempty"`
	TrainingWith    *string      `json:"training_with,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// DoctorVisit is one doctor call inside a report. Mirrored copies in two
// reports share a PairKey and complete independently.
type DoctorVisit struct {
	ID           string      `json:"id"`
	ReportID     string      `json:"report_id"`
	PairKey      string      `json:"pair_key"`
	DoctorID     string      `json:"doctor_id"`
	Status       VisitStatus `json:"status"`
	WorkWith     string      `json:"work_with"`
	Remarks      *string     `json:"remarks,omitempty"`
	PhotoURL     *string     `json:"photo_url,omitempty"`
	CompletedLat *float64    `json:"completed_lat,omitempty"`
	CompletedLon *float64    `json:"completed_lon,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`

	// Joined for responses
	DoctorName *string `json:"doctor_name,omitempty"`
}

const (
	CSKindChemist  = "CHEMIST"
	CSKindStockist = "STOCKIST"
)

// CSVisit is a chemist or stockist call; the target is free text rather
// than a roster reference.
type CSVisit struct {
	ID           string      `json:"id"`
	ReportID     string      `json:"report_id"`
	PairKey      string      `json:"pair_key"`
	Name         string      `json:"name"`
	Kind         string      `json:"kind"`
	Status       VisitStatus `json:"status"`
	WorkWith     string      `json:"work_with"`
	Remarks      *string     `json:"remarks,omitempty"`
	PhotoURL     *string     `json:"photo_url,omitempty"`
	CompletedLat *float64    `json:"completed_lat,omitempty"`
	CompletedLon *float64    `json:"completed_lon,omitempty"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// FullReport bundles a report with its visit lists.
type FullReport struct {
	Report       Report        `json:"report"`
	DoctorVisits []DoctorVisit `json:"doctor_visits"`
	CSVisits     []CSVisit     `json:"cs_visits"`
}

// MonthlyStats summarizes one month of reporting.
type MonthlyStats struct {
	CompleteReports   int     `json:"complete_reports"`
	IncompleteReports int     `json:"incomplete_reports"`
	PendingReports    int     `json:"pending_reports"`
	TotalDistanceKM   float64 `json:"total_distance_km"`
	DoctorCalls       int     `json:"doctor_calls"`
	CSCalls           int     `json:"cs_calls"`
}

// VisitPoint is a completed visit's coordinate with its completion time,
// used to reconstruct the traveled route in completion order.
type VisitPoint struct {
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	CompletedAt time.Time `json:"completed_at"`
}
