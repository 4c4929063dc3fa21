package leave

import "time"

type Type string

const (
	TypeCasual     Type = "CASUAL"
	TypePrivileged Type = "PRIVILEGED"
	TypeLWP        Type = "LEAVE WITHOUT PAY"
	TypeMedical    Type = "MEDICAL"
)

var ValidTypes = []Type{TypeCasual, TypePrivileged, TypeLWP, TypeMedical}

func (t Type) Valid() bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Ledger carries the running balances for one employee. AccrualMarker is
// the start of the current privileged-leave earning window.
type Ledger struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	CasualCount     int       `json:"casual_count"`
	PrivilegedCount int       `json:"privileged_count"`
	LWPCount        int       `json:"lwp_count"`
	AccrualMarker   time.Time `json:"accrual_marker"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Consumption is the per-type day breakdown frozen on a request at apply
// time. Balances move by exactly these amounts on approval.
type Consumption struct {
	Casual     int `json:"casual"`
	Privileged int `json:"privileged"`
	LWP        int `json:"lwp"`
}

func (c Consumption) Total() int {
	return c.Casual + c.Privileged + c.LWP
}

type Request struct {
	ID          string      `json:"id"`
	EmployeeID  string      `json:"employee_id"`
	Type        Type        `json:"type"`
	Status      Status      `json:"status"`
	FromDate    time.Time   `json:"from_date"`
	ToDate      time.Time   `json:"to_date"`
	Reason      string      `json:"reason"`
	Consumed    Consumption `json:"consumed"`
	RequestedAt time.Time   `json:"requested_at"`
	ApprovedBy  *string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	RejectedBy  *string     `json:"rejected_by,omitempty"`
	RejectedAt  *time.Time  `json:"rejected_at,omitempty"`

	// Joined for responses
	EmployeeName *string `json:"employee_name,omitempty"`
}

// Days returns the inclusive day count of the request range.
func (r Request) Days() int {
	return int(r.ToDate.Sub(r.FromDate).Hours()/24) + 1
}
