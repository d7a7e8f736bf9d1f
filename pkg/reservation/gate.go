package reservation

import (
	"fmt"
	"strings"

	"github.com/minhyannv/gate-agent-go/pkg/plan"
)

// HasBoundParameters reports whether the plan's first step carries concrete
// arguments. A value mentioning "name" is taken as an unresolved placeholder.
func HasBoundParameters(p plan.Plan) bool {
	step, ok := p.First()
	if !ok {
		return false
	}
	for _, value := range step.Parameters {
		if value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(fmt.Sprint(value)), "name") {
			return false
		}
	}
	return len(step.Parameters) > 0
}
