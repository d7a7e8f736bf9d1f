// Package tools exposes the gate-agent skills as OpenAI tool definitions.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/openai/openai-go"
)

type tool interface {
	definition() openai.ChatCompletionToolParam
	execute(argText string) (string, error)
	name() string
}

// Forecaster is the weather skill surface the registry calls.
type Forecaster interface {
	GetForecast(ctx context.Context, latlon string) (string, error)
}

// Reservations is the reservation skill surface the registry calls.
type Reservations interface {
	FindRecord(lastName, firstName string) string
	ChangeSeatTo(seat string) string
	ChangeToAisleSeat() string
}

// Context carries the skills and runtime settings shared by every tool.
type Context struct {
	Verbose bool
	Ctx     context.Context
	Logger  loggerpkg.Logger

	// Weather is optional. get_weather is only registered when it is set.
	Weather      Forecaster
	Reservations Reservations
}

func (c Context) debugf(format string, args ...any) {
	loggerpkg.Debugf(c.Verbose, c.Logger, format, args...)
}

func (c Context) requestContext() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Registry holds registered tools and handles execution.
type Registry struct {
	registry map[string]tool
	ctx      Context
	params   []openai.ChatCompletionToolParam
	names    []string
}

type toolResponse struct {
	OK   bool        `json:"ok"`
	Tool string      `json:"tool,omitempty"`
	Data interface{} `json:"data,omitempty"`
	Err  string      `json:"error,omitempty"`
}

// New builds a registry with the tools the configured skills support.
func New(ctx Context) *Registry {
	if ctx.Logger == nil {
		ctx.Logger = loggerpkg.NopLogger{}
	}
	t := &Registry{
		registry: make(map[string]tool),
		ctx:      ctx,
	}

	if ctx.Weather != nil {
		t.register(&weatherTool{ctx: ctx})
	}
	if ctx.Reservations != nil {
		t.register(&findPNRTool{ctx: ctx})
		t.register(&changeSeatTool{ctx: ctx})
		t.register(&changeAisleSeatTool{ctx: ctx})
	}
	return t
}

func (t *Registry) register(toolImpl tool) {
	t.registry[toolImpl.name()] = toolImpl
	t.params = append(t.params, toolImpl.definition())
	t.names = append(t.names, toolImpl.name())
	t.ctx.debugf("[verbose] registered tool: %s", toolImpl.name())
}

func (t *Registry) Definitions() []openai.ChatCompletionToolParam {
	return t.params
}

// Names returns the registered tool names in registration order.
func (t *Registry) Names() []string {
	return append([]string(nil), t.names...)
}

func (t *Registry) Execute(call openai.ChatCompletionMessageToolCall) (string, error) {
	if t.ctx.Ctx != nil {
		select {
		case <-t.ctx.Ctx.Done():
			return marshalToolResponse(call.Function.Name, nil, t.ctx.Ctx.Err())
		default:
		}
	}

	toolImpl, ok := t.registry[call.Function.Name]
	if !ok {
		return marshalToolResponse(call.Function.Name, nil, fmt.Errorf("unknown tool: %s", call.Function.Name))
	}

	return toolImpl.execute(call.Function.Arguments)
}

func marshalToolResponse(toolName string, data interface{}, err error) (string, error) {
	resp := toolResponse{
		OK:   err == nil,
		Tool: toolName,
		Data: data,
	}
	if err != nil {
		resp.Err = err.Error()
	}
	payload, marshalErr := json.Marshal(resp)
	if marshalErr != nil {
		return "", marshalErr
	}
	return string(payload), nil
}

// decodeArgs parses a tool argument object. Empty input leaves v untouched.
func decodeArgs(argText string, v any) error {
	if argText == "" {
		return nil
	}
	return json.Unmarshal([]byte(argText), v)
}
