package leave

import "github.com/medirep/sfa-backend-go/internal/domain/leave"

// casualSpillCap bounds the casual days a single request may consume,
// both as the primary type and as spill from a privileged request.
const casualSpillCap = 3

// Allocate splits the requested days across the three counters. The
// order is significant: the requested type drains first, then the
// sibling paid type, and whatever is left becomes leave without pay.
// MEDICAL consumes nothing.
func Allocate(t leave.Type, days, casual, privileged int) leave.Consumption {
	var c leave.Consumption

	switch t {
	case leave.TypePrivileged:
		c.Privileged = min(days, privileged)
		remaining := days - c.Privileged
		c.Casual = min(remaining, min(casual, casualSpillCap))
		c.LWP = remaining - c.Casual
	case leave.TypeCasual:
		c.Casual = min(days, min(casual, casualSpillCap))
		remaining := days - c.Casual
		c.Privileged = min(remaining, privileged)
		c.LWP = remaining - c.Privileged
	case leave.TypeLWP:
		c.LWP = days
	case leave.TypeMedical:
	}

	return c
}
