package reservation

import (
	"testing"

	"github.com/minhyannv/gate-agent-go/pkg/plan"
)

func TestHasBoundParameters(t *testing.T) {
	tests := []struct {
		name string
		plan plan.Plan
		want bool
	}{
		{name: "no steps", plan: plan.Plan{}, want: false},
		{
			name: "no parameters",
			plan: plan.Plan{Steps: []plan.Step{{Name: "find_pnr"}}},
			want: false,
		},
		{
			name: "placeholder value",
			plan: plan.Plan{Steps: []plan.Step{{
				Name:       "find_pnr",
				Parameters: map[string]any{"lastname": "Lastname", "firstname": "Jill"},
			}}},
			want: false,
		},
		{
			name: "concrete value",
			plan: plan.Plan{Steps: []plan.Step{{
				Name:       "change_seat",
				Parameters: map[string]any{"seat": "14C"},
			}}},
			want: true,
		},
		{
			name: "nil value skipped",
			plan: plan.Plan{Steps: []plan.Step{{
				Name:       "find_pnr",
				Parameters: map[string]any{"lastname": "Smith", "firstname": nil},
			}}},
			want: true,
		},
		{
			name: "only first step checked",
			plan: plan.Plan{Steps: []plan.Step{
				{Name: "find_pnr", Parameters: map[string]any{"lastname": "Smith"}},
				{Name: "find_pnr", Parameters: map[string]any{"lastname": "$NAME"}},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasBoundParameters(tt.plan); got != tt.want {
				t.Fatalf("HasBoundParameters() = %v, want %v", got, tt.want)
			}
		})
	}
}
