package tools

import (
	"errors"
	"strings"

	"github.com/minhyannv/gate-agent-go/pkg/plan"
	"github.com/minhyannv/gate-agent-go/pkg/reservation"
	"github.com/openai/openai-go"
)

var errPassengerName = errors.New("passenger last name and first name are required; ask the user for them before calling find_pnr")

type findPNRTool struct {
	ctx Context
}

func (t *findPNRTool) name() string {
	return "find_pnr"
}

func (t *findPNRTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "find_pnr",
			Description: openai.String("Find the reservation (PNR) of a passenger by last and first name"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"lastname": map[string]any{
						"type":        "string",
						"description": "Passenger last name as given by the user.",
					},
					"firstname": map[string]any{
						"type":        "string",
						"description": "Passenger first name as given by the user.",
					},
				},
				"required": []string{"lastname", "firstname"},
			},
		},
	}
}

func (t *findPNRTool) execute(argText string) (string, error) {
	p, err := plan.FromToolCall(t.name(), argText)
	if err != nil {
		t.ctx.debugf("[verbose] find_pnr: failed to parse arguments: %v", err)
		return marshalToolResponse("find_pnr", nil, err)
	}
	if !reservation.HasBoundParameters(p) {
		t.ctx.debugf("[verbose] find_pnr: parameters not bound: %v", p.Steps[0].Parameters)
		return marshalToolResponse("find_pnr", nil, errPassengerName)
	}

	var args struct {
		LastName  string `json:"lastname"`
		FirstName string `json:"firstname"`
	}
	if err := decodeArgs(argText, &args); err != nil {
		return marshalToolResponse("find_pnr", nil, err)
	}
	last := strings.TrimSpace(args.LastName)
	first := strings.TrimSpace(args.FirstName)
	if last == "" || first == "" {
		return marshalToolResponse("find_pnr", nil, errPassengerName)
	}
	t.ctx.debugf("[verbose] find_pnr: lastname=%s, firstname=%s", last, first)
	return t.ctx.Reservations.FindRecord(last, first), nil
}

type changeSeatTool struct {
	ctx Context
}

func (t *changeSeatTool) name() string {
	return "change_seat"
}

func (t *changeSeatTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "change_seat",
			Description: openai.String("Change the seat on the passenger's current reservation"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"seat": map[string]any{
						"type":        "string",
						"description": "New seat, for example 14C.",
					},
				},
				"required": []string{"seat"},
			},
		},
	}
}

func (t *changeSeatTool) execute(argText string) (string, error) {
	var args struct {
		Seat string `json:"seat"`
	}
	if err := decodeArgs(argText, &args); err != nil {
		t.ctx.debugf("[verbose] change_seat: failed to parse arguments: %v", err)
		return marshalToolResponse("change_seat", nil, err)
	}
	seat := strings.ToUpper(strings.TrimSpace(args.Seat))
	if seat == "" {
		return marshalToolResponse("change_seat", nil, errors.New("seat is required"))
	}
	t.ctx.debugf("[verbose] change_seat: seat=%s", seat)
	return t.ctx.Reservations.ChangeSeatTo(seat), nil
}

type changeAisleSeatTool struct {
	ctx Context
}

func (t *changeAisleSeatTool) name() string {
	return "change_aisle_seat"
}

func (t *changeAisleSeatTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "change_aisle_seat",
			Description: openai.String("Move the passenger on the current reservation to an aisle seat"),
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

func (t *changeAisleSeatTool) execute(string) (string, error) {
	t.ctx.debugf("[verbose] change_aisle_seat")
	return t.ctx.Reservations.ChangeToAisleSeat(), nil
}
