package agent

import (
	"time"

	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/openai/openai-go/option"
)

// AgentOption configures optional runtime dependencies for AgentLoop.
type AgentOption func(*agentDeps)

type agentDeps struct {
	logger         loggerpkg.Logger
	now            func() time.Time
	requestOptions []option.RequestOption
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) AgentOption {
	return func(d *agentDeps) {
		d.logger = l
	}
}

// WithClock sets the clock used to date the sample record in the system prompt.
func WithClock(now func() time.Time) AgentOption {
	return func(d *agentDeps) {
		d.now = now
	}
}

// WithRequestOptions appends openai-go request options to the client.
func WithRequestOptions(opts ...option.RequestOption) AgentOption {
	return func(d *agentDeps) {
		d.requestOptions = append(d.requestOptions, opts...)
	}
}
