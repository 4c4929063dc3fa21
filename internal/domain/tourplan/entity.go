package tourplan

import "time"

type Entry struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Date       time.Time `json:"date"`
	Place      string    `json:"place"`
	Remarks    *string   `json:"remarks,omitempty"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Flags are one-shot window overrides granted by an admin; each is
// consumed by the next successful write it enables.
type Flags struct {
	EmployeeID         string `json:"employee_id"`
	ExtraDayForCreate  bool   `json:"extra_day_for_create"`
	ExtraDayForApprove bool   `json:"extra_day_for_approve"`
}
