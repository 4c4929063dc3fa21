package dvl

import "time"

const (
	ActionAdd    = "ADD"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Doctor is one roster entry. New entries and edits sit behind a pending
// action until a manager approves them; only approved doctors can be
// visited in a report.
type Doctor struct {
	ID             string    `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	Name           string    `json:"name"`
	Specialization *string   `json:"specialization,omitempty"`
	Place          string    `json:"place"`
	Lat            *float64  `json:"lat,omitempty"`
	Lon            *float64  `json:"lon,omitempty"`
	Approved       bool      `json:"approved"`
	PendingAction  *string   `json:"pending_action,omitempty"`
	PendingName    *string   `json:"pending_name,omitempty"`
	PendingPlace   *string   `json:"pending_place,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
