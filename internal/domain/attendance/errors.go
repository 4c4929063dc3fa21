package attendance

import "errors"

var (
	ErrAlreadyMarked       = errors.New("attendance already marked for this date")
	ErrEntryNotFound       = errors.New("attendance entry not found")
	ErrWeekOffNotEarned    = errors.New("no completed holiday workday to trade for a week off")
	ErrWeekOffAlreadyTaken = errors.New("week off already taken for this holiday workday")
	ErrWeekOffOutsideMonth = errors.New("week off can only trade a holiday workday from the current month")
)
