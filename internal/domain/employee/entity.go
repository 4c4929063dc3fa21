package employee

import "time"

type Role string

const (
	RoleTBM   Role = "TBM"   // territory business manager, the field rep
	RoleABM   Role = "ABM"   // area business manager
	RoleRBM   Role = "RBM"   // regional business manager
	RoleZBM   Role = "ZBM"   // zonal business manager
	RoleHROH  Role = "HR/OH" // head office staff
	RoleAdmin Role = "ADMIN"
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RoleTBM, RoleABM, RoleRBM, RoleZBM, RoleHROH, RoleAdmin}

// IsManager reports whether the role sits above field reps in the hierarchy.
func (r Role) IsManager() bool {
	return r == RoleABM || r == RoleRBM || r == RoleZBM
}

// SeesWholeOrg reports whether downline queries expand to the entire organization.
func (r Role) SeesWholeOrg() bool {
	return r == RoleAdmin || r == RoleHROH
}

func (r Role) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

type Employee struct {
	ID            string     `json:"id"`
	EmployeeCode  string     `json:"employee_code"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Phone         *string    `json:"phone,omitempty"`
	Role          Role       `json:"role"`
	ParentID      *string    `json:"parent_id,omitempty"`
	HeadquarterID *string    `json:"headquarter_id,omitempty"`
	JoiningDate   time.Time  `json:"joining_date"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (e Employee) Archived() bool {
	return e.ArchivedAt != nil
}
