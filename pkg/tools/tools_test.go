package tools

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/minhyannv/gate-agent-go/pkg/reservation"
	"github.com/openai/openai-go"
)

// toolResponseTest is a minimal response shape for assertions.
type toolResponseTest struct {
	OK   bool            `json:"ok"`
	Tool string          `json:"tool"`
	Data json.RawMessage `json:"data"`
	Err  string          `json:"error"`
}

type fakeForecaster struct {
	latlon string
	body   string
	err    error
}

func (f *fakeForecaster) GetForecast(_ context.Context, latlon string) (string, error) {
	f.latlon = latlon
	return f.body, f.err
}

func newReservations(t *testing.T) *reservation.Skill {
	t.Helper()
	pool, err := reservation.DefaultFixtures()
	if err != nil {
		t.Fatalf("DefaultFixtures: %v", err)
	}
	skill, err := reservation.New(pool, reservation.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("reservation.New: %v", err)
	}
	return skill
}

func call(name, args string) openai.ChatCompletionMessageToolCall {
	return openai.ChatCompletionMessageToolCall{
		ID: "call_1",
		Function: openai.ChatCompletionMessageToolCallFunction{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResponse(t *testing.T, payload string) toolResponseTest {
	t.Helper()
	var resp toolResponseTest
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", payload, err)
	}
	return resp
}

func TestRegistryNames(t *testing.T) {
	withWeather := New(Context{Weather: &fakeForecaster{}, Reservations: newReservations(t)})
	got := strings.Join(withWeather.Names(), ",")
	if got != "get_weather,find_pnr,change_seat,change_aisle_seat" {
		t.Fatalf("unexpected tools %s", got)
	}
	if len(withWeather.Definitions()) != 4 {
		t.Fatalf("expected 4 definitions, got %d", len(withWeather.Definitions()))
	}

	noWeather := New(Context{Reservations: newReservations(t)})
	for _, name := range noWeather.Names() {
		if name == "get_weather" {
			t.Fatal("get_weather should not be registered without a weather skill")
		}
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	registry := New(Context{Reservations: newReservations(t)})
	out, err := registry.Execute(call("run_shell", `{}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	resp := decodeResponse(t, out)
	if resp.OK || !strings.Contains(resp.Err, "unknown tool") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	registry := New(Context{Ctx: ctx, Reservations: newReservations(t)})
	out, err := registry.Execute(call("change_aisle_seat", ""))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp := decodeResponse(t, out); resp.OK {
		t.Fatalf("expected failure for cancelled context, got %+v", resp)
	}
}

func TestFindPNRFlow(t *testing.T) {
	skill := newReservations(t)
	registry := New(Context{Reservations: skill})

	out, err := registry.Execute(call("find_pnr", `{"lastname":"Smith","firstname":"Jill"}`))
	if err != nil {
		t.Fatalf("Execute find_pnr: %v", err)
	}
	var record reservation.PNR
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("find_pnr returned %q: %v", out, err)
	}
	if record.Passenger.LastName != "Smith" || record.Passenger.FirstName != "Jill" {
		t.Fatalf("unexpected passenger %+v", record.Passenger)
	}

	out, err = registry.Execute(call("change_seat", `{"seat":"14c"}`))
	if err != nil {
		t.Fatalf("Execute change_seat: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("change_seat returned %q: %v", out, err)
	}
	if record.Seat != "14C" {
		t.Fatalf("seat = %q", record.Seat)
	}

	out, err = registry.Execute(call("change_aisle_seat", "{}"))
	if err != nil {
		t.Fatalf("Execute change_aisle_seat: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &record); err != nil {
		t.Fatalf("change_aisle_seat returned %q: %v", out, err)
	}
	if record.Seat != reservation.AisleSeat {
		t.Fatalf("seat = %q", record.Seat)
	}
}

func TestFindPNRRejectsUnboundParameters(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{name: "no arguments", args: ""},
		{name: "empty object", args: "{}"},
		{name: "placeholder", args: `{"lastname":"Lastname","firstname":"Firstname"}`},
		{name: "missing first name", args: `{"lastname":"Smith"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skill := newReservations(t)
			registry := New(Context{Reservations: skill})
			out, err := registry.Execute(call("find_pnr", tt.args))
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			resp := decodeResponse(t, out)
			if resp.OK || resp.Tool != "find_pnr" || !strings.Contains(resp.Err, "name") {
				t.Fatalf("unexpected response %+v", resp)
			}
			if _, bound := skill.Current(); bound {
				t.Fatal("record should not be bound")
			}
		})
	}
}

func TestSeatToolsBeforeFind(t *testing.T) {
	registry := New(Context{Reservations: newReservations(t)})
	out, err := registry.Execute(call("change_seat", `{"seat":"1A"}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != reservation.NoRecordPayload {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = registry.Execute(call("change_seat", `{"seat":" "}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp := decodeResponse(t, out); resp.OK || resp.Err != "seat is required" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestGetWeather(t *testing.T) {
	forecaster := &fakeForecaster{body: `{"timelines":{}}`}
	registry := New(Context{Weather: forecaster})

	out, err := registry.Execute(call("get_weather", `{"latlon":"47.6, -122.3"}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out != forecaster.body {
		t.Fatalf("unexpected output %q", out)
	}
	if forecaster.latlon != "47.6,-122.3" {
		t.Fatalf("unexpected latlon %q", forecaster.latlon)
	}

	forecaster.err = errors.New("forecast request failed: 401 Unauthorized")
	out, err = registry.Execute(call("get_weather", `{"latlon":"1,2"}`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp := decodeResponse(t, out); resp.OK || !strings.Contains(resp.Err, "401") {
		t.Fatalf("unexpected response %+v", resp)
	}

	out, err = registry.Execute(call("get_weather", `{bad`))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resp := decodeResponse(t, out); resp.OK {
		t.Fatalf("expected parse failure, got %+v", resp)
	}
}
