package attendance

import "time"

const (
	TitleWorkingDay = "WORKING DAY"
	TitleWeekOff    = "WEEK OFF"
	TitleAbsent     = "ABSENT"
	TitleAdminDay   = "ADMIN DAY"
	TitleLeave      = "LEAVE"
	TitleHoliday    = "HOLIDAY"
)

type Entry struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employee_id"`
	Date       time.Time  `json:"date"`
	Title      string     `json:"title"`
	ReportID   *string    `json:"report_id,omitempty"`
	WeekOffFor *time.Time `json:"week_off_for,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DayStatus is one resolved calendar day in the month view. A day can be
// both a holiday and something else, so IsHoliday rides alongside Title.
type DayStatus struct {
	Date      string  `json:"date"`
	Title     string  `json:"title"`
	IsHoliday bool    `json:"is_holiday"`
	ReportID  *string `json:"report_id,omitempty"`
}

// WeekOffAvailability lists the holiday workdays still tradeable this month.
type WeekOffAvailability struct {
	Available []string `json:"available_dates"`
	Used      []string `json:"used_dates"`
}
