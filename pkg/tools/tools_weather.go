package tools

import (
	"errors"
	"strings"

	"github.com/openai/openai-go"
)

type weatherTool struct {
	ctx Context
}

func (t *weatherTool) name() string {
	return "get_weather"
}

func (t *weatherTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name:        "get_weather",
			Description: openai.String("Get the daily weather forecast for a location given as latitude and longitude"),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"latlon": map[string]any{
						"type":        "string",
						"description": "Latitude and longitude separated by a comma, for example 47.6,-122.3.",
					},
				},
				"required": []string{"latlon"},
			},
		},
	}
}

func (t *weatherTool) execute(argText string) (string, error) {
	var args struct {
		LatLon string `json:"latlon"`
	}
	if err := decodeArgs(argText, &args); err != nil {
		t.ctx.debugf("[verbose] get_weather: failed to parse arguments: %v", err)
		return marshalToolResponse("get_weather", nil, err)
	}
	latlon := strings.ReplaceAll(strings.TrimSpace(args.LatLon), " ", "")
	if latlon == "" {
		return marshalToolResponse("get_weather", nil, errors.New("latlon is required"))
	}
	t.ctx.debugf("[verbose] get_weather: latlon=%s", latlon)

	forecast, err := t.ctx.Weather.GetForecast(t.ctx.requestContext(), latlon)
	if err != nil {
		t.ctx.debugf("[verbose] get_weather: request failed: %v", err)
		return marshalToolResponse("get_weather", nil, err)
	}
	t.ctx.debugf("[verbose] get_weather: success, %d bytes", len(forecast))
	return forecast, nil
}
