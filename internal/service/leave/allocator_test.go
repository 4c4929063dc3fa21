package leave

import (
	"testing"

	"github.com/medirep/sfa-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
)

func TestAllocate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		leaveType  leave.Type
		days       int
		casual     int
		privileged int
		want       leave.Consumption
	}{
		{
			name:       "privileged covered fully",
			leaveType:  leave.TypePrivileged,
			days:       4,
			casual:     3,
			privileged: 10,
			want:       leave.Consumption{Privileged: 4},
		},
		{
			name:       "privileged spills into casual",
			leaveType:  leave.TypePrivileged,
			days:       5,
			casual:     3,
			privileged: 2,
			want:       leave.Consumption{Privileged: 2, Casual: 3},
		},
		{
			name:       "privileged spill respects casual cap",
			leaveType:  leave.TypePrivileged,
			days:       10,
			casual:     8,
			privileged: 2,
			want:       leave.Consumption{Privileged: 2, Casual: 3, LWP: 5},
		},
		{
			name:       "casual covered within cap",
			leaveType:  leave.TypeCasual,
			days:       2,
			casual:     5,
			privileged: 0,
			want:       leave.Consumption{Casual: 2},
		},
		{
			name:       "casual capped then spills into privileged",
			leaveType:  leave.TypeCasual,
			days:       5,
			casual:     10,
			privileged: 4,
			want:       leave.Consumption{Casual: 3, Privileged: 2},
		},
		{
			name:       "casual overflow lands on lwp",
			leaveType:  leave.TypeCasual,
			days:       6,
			casual:     10,
			privileged: 1,
			want:       leave.Consumption{Casual: 3, Privileged: 1, LWP: 2},
		},
		{
			name:       "casual limited by balance before cap",
			leaveType:  leave.TypeCasual,
			days:       4,
			casual:     2,
			privileged: 0,
			want:       leave.Consumption{Casual: 2, LWP: 2},
		},
		{
			name:      "lwp never touches balances",
			leaveType: leave.TypeLWP,
			days:      3,
			casual:    5, privileged: 5,
			want: leave.Consumption{LWP: 3},
		},
		{
			name:      "medical consumes nothing",
			leaveType: leave.TypeMedical,
			days:      7,
			casual:    5, privileged: 5,
			want: leave.Consumption{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Allocate(tt.leaveType, tt.days, tt.casual, tt.privileged)
			assert.Equal(t, tt.want, got)
			if tt.leaveType != leave.TypeMedical {
				assert.Equal(t, tt.days, got.Total(), "every requested day must be accounted for")
			}
		})
	}
}
