// Package agent runs the tool-calling chat loop behind the gate agent.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	configpkg "github.com/minhyannv/gate-agent-go/pkg/config"
	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/minhyannv/gate-agent-go/pkg/prompt"
	"github.com/minhyannv/gate-agent-go/pkg/reservation"
	"github.com/minhyannv/gate-agent-go/pkg/settings"
	"github.com/minhyannv/gate-agent-go/pkg/tools"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

// AgentLoop holds agent runtime state.
type AgentLoop struct {
	config       configpkg.Config
	record       settings.Record
	client       openai.Client
	tools        *tools.Registry
	SessionID    string
	SystemPrompt string
	history      []openai.ChatCompletionMessageParamUnion

	ctx     context.Context
	logger  loggerpkg.Logger
	verbose bool
}

// New initializes an AgentLoop for the backend described by record.
func New(ctx context.Context, cfg configpkg.Config, record settings.Record, registry *tools.Registry, opts ...AgentOption) (*AgentLoop, error) {
	cfg = configpkg.Normalize(cfg)
	deps := agentDeps{logger: loggerpkg.NopLogger{}, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}
	if deps.logger == nil {
		deps.logger = loggerpkg.NopLogger{}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "agent_loop init", map[string]any{
		"provider":  string(record.Provider),
		"model":     record.Model,
		"endpoint":  record.Endpoint,
		"apikey":    record.APIKey,
		"max_turns": cfg.MaxTurns,
	})
	if err := validateRecord(record); err != nil {
		return nil, err
	}
	if registry == nil {
		return nil, errors.New("tool registry is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	systemPrompt := prompt.BuildSystemPrompt(registry.Names(), reservation.SampleRecord(deps.now()))
	if strings.TrimSpace(systemPrompt) == "" {
		return nil, errors.New("system prompt is empty")
	}
	loggerpkg.Debug(cfg.Verbose, deps.logger, "system prompt ready", map[string]any{
		"bytes": len(systemPrompt),
		"tools": registry.Names(),
	})

	return &AgentLoop{
		config:       cfg,
		record:       record,
		client:       newOpenAIClient(cfg, record, deps.requestOptions),
		tools:        registry,
		SessionID:    uuid.NewString(),
		SystemPrompt: systemPrompt,
		history:      []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(systemPrompt)},

		ctx:     ctx,
		logger:  deps.logger,
		verbose: cfg.Verbose,
	}, nil
}

func validateRecord(record settings.Record) error {
	if strings.TrimSpace(record.APIKey) == "" {
		return errors.New("APIKey is not set")
	}
	if strings.TrimSpace(record.Model) == "" {
		return errors.New("Model is not set")
	}
	if record.UseAzure() && strings.TrimSpace(record.Endpoint) == "" {
		return errors.New("Endpoint is not set")
	}
	return nil
}

func newOpenAIClient(cfg configpkg.Config, record settings.Record, extra []option.RequestOption) openai.Client {
	opts := []option.RequestOption{}
	if record.UseAzure() {
		opts = append(opts,
			azure.WithEndpoint(strings.TrimSpace(record.Endpoint), cfg.AzureAPIVersion),
			azure.WithAPIKey(strings.TrimSpace(record.APIKey)),
		)
	} else {
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
		}
		opts = append(opts, option.WithAPIKey(strings.TrimSpace(record.APIKey)))
		if org := strings.TrimSpace(record.OrgID); org != "" {
			opts = append(opts, option.WithOrganization(org))
		}
	}
	opts = append(opts, option.WithRequestTimeout(cfg.HTTPTimeout))
	opts = append(opts, extra...)
	return openai.NewClient(opts...)
}

// runOnce performs one model completion request.
func (a *AgentLoop) runOnce(params openai.ChatCompletionNewParams) (openai.ChatCompletionMessage, error) {
	a.debugf("[verbose] iteration: sending request")
	completion, err := a.client.Chat.Completions.New(a.ctx, params)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}
	if len(completion.Choices) == 0 {
		return openai.ChatCompletionMessage{}, errors.New("empty completion choices")
	}
	return completion.Choices[0].Message, nil
}

// runIteration executes iterative model/tool turns for one user interaction.
func (a *AgentLoop) runIteration(
	messages []openai.ChatCompletionMessageParamUnion,
	maxTurns int,
) ([]openai.ChatCompletionMessageParamUnion, openai.ChatCompletionMessage, error) {
	currentMessages := append([]openai.ChatCompletionMessageParamUnion{}, messages...)

	for turn := 0; turn < maxTurns; turn++ {
		a.debugf("[verbose] iteration: %d/%d", turn+1, maxTurns)
		message, err := a.runOnce(a.newChatParams(currentMessages))
		if err != nil {
			return nil, openai.ChatCompletionMessage{}, err
		}

		if len(message.ToolCalls) == 0 {
			return currentMessages, message, nil
		}

		// Persist the assistant tool-call turn before appending tool responses.
		currentMessages = append(currentMessages, message.ToParam())
		a.debugf("[verbose] iteration: assistant requested %d tool call(s)", len(message.ToolCalls))
		currentMessages = a.appendToolResponses(currentMessages, message.ToolCalls)
	}

	return nil, openai.ChatCompletionMessage{}, errors.New("max turns reached before assistant produced a final response")
}

// Run processes one user input and returns a single final assistant message.
// Tool turns are kept in history so a bound reservation stays visible to the
// model on later inputs. Reset clears it.
func (a *AgentLoop) Run(userInput string) (openai.ChatCompletionMessage, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return openai.ChatCompletionMessage{}, errors.New("user input is required")
	}
	pending := append(append([]openai.ChatCompletionMessageParamUnion{}, a.history...), openai.UserMessage(userInput))

	messages, finalMessage, err := a.runIteration(pending, a.config.MaxTurns)
	if err != nil {
		loggerpkg.Error(a.logger, "chat turn failed", map[string]any{
			"session": a.SessionID,
			"error":   err.Error(),
		})
		return openai.ChatCompletionMessage{}, err
	}

	a.history = append(messages, finalMessage.ToParam())
	return finalMessage, nil
}

// Reset clears conversation history and keeps only the system prompt.
func (a *AgentLoop) Reset() {
	a.history = []openai.ChatCompletionMessageParamUnion{openai.SystemMessage(a.SystemPrompt)}
}

// HistoryLen reports how many messages the conversation currently holds.
func (a *AgentLoop) HistoryLen() int {
	return len(a.history)
}

func (a *AgentLoop) debugf(format string, args ...any) {
	loggerpkg.Debugf(a.verbose, a.logger, format, args...)
}

func (a *AgentLoop) newChatParams(messages []openai.ChatCompletionMessageParamUnion) openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(a.record.Model),
		Messages: messages,
		Tools:    a.tools.Definitions(),
	}
}

func (a *AgentLoop) appendToolResponses(
	messages []openai.ChatCompletionMessageParamUnion,
	toolCalls []openai.ChatCompletionMessageToolCall,
) []openai.ChatCompletionMessageParamUnion {
	updated := messages
	for _, call := range toolCalls {
		output, err := a.tools.Execute(call)
		if err != nil {
			output = fmt.Sprintf(`{"ok":false,"error":%q}`, err.Error())
		}
		loggerpkg.Debug(a.verbose, a.logger, "tool call", map[string]any{
			"session": a.SessionID,
			"tool":    call.Function.Name,
			"bytes":   len(output),
		})
		updated = append(updated, openai.ToolMessage(output, call.ID))
	}
	return updated
}
