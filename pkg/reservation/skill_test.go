package reservation

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
	"time"
)

func newTestSkill(t *testing.T, opts ...Option) *Skill {
	t.Helper()
	pool, err := DefaultFixtures()
	if err != nil {
		t.Fatalf("DefaultFixtures: %v", err)
	}
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	skill, err := New(pool, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return skill
}

func decodePNR(t *testing.T, payload string) PNR {
	t.Helper()
	var record PNR
	if err := json.Unmarshal([]byte(payload), &record); err != nil {
		t.Fatalf("decode %q: %v", payload, err)
	}
	return record
}

func TestDefaultFixturesHasSixRecords(t *testing.T) {
	pool, err := DefaultFixtures()
	if err != nil {
		t.Fatalf("DefaultFixtures: %v", err)
	}
	if len(pool) != 6 {
		t.Fatalf("expected 6 records, got %d", len(pool))
	}
	for _, record := range pool {
		if record.Locator == "" || record.Seat == "" || record.Flight.FlightNumber == "" {
			t.Fatalf("incomplete fixture %+v", record)
		}
	}
}

func TestNewRejectsEmptyPool(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty pool")
	}
	if _, err := NewFromJSON("[]"); err == nil {
		t.Fatal("expected error for empty JSON pool")
	}
	if _, err := NewFromJSON("{bad"); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestNewFromJSONSinglePNR(t *testing.T) {
	payload := `[{"pnr":"QWERTY","passenger":{"firstName":"John","lastName":"Doe"},` +
		`"flight":{"flightNumber":"DL405","departureAirport":"JFK","arrivalAirport":"ATL",` +
		`"departureDate":"2024-03-12T08:15:00Z","arrivalDate":"2024-03-12T10:45:00Z"},` +
		`"seat":"14C","class":"Economy"}]`
	skill, err := NewFromJSON(payload)
	if err != nil {
		t.Fatalf("NewFromJSON: %v", err)
	}

	record := decodePNR(t, skill.FindRecord("Smith", "Jill"))
	if record.Locator != "QWERTY" || record.Flight.FlightNumber != "DL405" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Passenger.LastName != "Smith" || record.Passenger.FirstName != "Jill" {
		t.Fatalf("unexpected passenger %+v", record.Passenger)
	}

	record = decodePNR(t, skill.ChangeSeatTo("2B"))
	if record.Seat != "2B" || record.Action != "Seat changed from 14C to 2B" {
		t.Fatalf("unexpected seat change %+v", record)
	}
}

func TestFindRecordOverwritesNames(t *testing.T) {
	vars := NewVariables()
	skill := newTestSkill(t, WithContext(vars))

	out := skill.FindRecord("Smith", "Jill")
	record := decodePNR(t, out)
	if record.Passenger.LastName != "Smith" || record.Passenger.FirstName != "Jill" {
		t.Fatalf("unexpected passenger %+v", record.Passenger)
	}
	if record.Action != "PNR found for Jill Smith" {
		t.Fatalf("unexpected action %q", record.Action)
	}
	slot, ok := vars.Get(ContextKeyPNR)
	if !ok || slot != out {
		t.Fatalf("context slot = %q, %v; want %q", slot, ok, out)
	}
	current, bound := skill.Current()
	if !bound || current.Passenger.LastName != "Smith" {
		t.Fatalf("unexpected current record %+v bound=%v", current, bound)
	}
}

func TestFindRecordDoesNotMutatePool(t *testing.T) {
	pool, err := DefaultFixtures()
	if err != nil {
		t.Fatalf("DefaultFixtures: %v", err)
	}
	single := pool[:1]
	original := single[0]

	skill, err := New(single, WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	skill.FindRecord("Smith", "Jill")
	skill.ChangeSeatTo("1A")

	if single[0] != original {
		t.Fatalf("caller pool mutated: %+v", single[0])
	}
	if skill.pool[0] != original {
		t.Fatalf("skill pool mutated: %+v", skill.pool[0])
	}

	again := decodePNR(t, skill.FindRecord("Doe", "Jane"))
	if again.Seat != original.Seat {
		t.Fatalf("rebinding should start from fixture seat %q, got %q", original.Seat, again.Seat)
	}
}

func TestSeatChangesRequireBoundRecord(t *testing.T) {
	vars := NewVariables()
	skill := newTestSkill(t, WithContext(vars))

	if got := skill.ChangeSeatTo("14C"); got != NoRecordPayload {
		t.Fatalf("ChangeSeatTo unbound = %q", got)
	}
	if got := skill.ChangeToAisleSeat(); got != NoRecordPayload {
		t.Fatalf("ChangeToAisleSeat unbound = %q", got)
	}
	if _, ok := vars.Get(ContextKeyPNR); ok {
		t.Fatal("context slot should stay empty while unbound")
	}
	if _, bound := skill.Current(); bound {
		t.Fatal("skill should be unbound")
	}
}

func TestChangeSeatTo(t *testing.T) {
	vars := NewVariables()
	skill := newTestSkill(t, WithContext(vars))
	before := decodePNR(t, skill.FindRecord("Smith", "Jill"))

	out := skill.ChangeSeatTo("2B")
	record := decodePNR(t, out)
	if record.Seat != "2B" {
		t.Fatalf("seat = %q", record.Seat)
	}
	want := "Seat changed from " + before.Seat + " to 2B"
	if record.Action != want {
		t.Fatalf("action = %q, want %q", record.Action, want)
	}
	if record.Locator != before.Locator || record.Passenger != before.Passenger {
		t.Fatalf("unexpected field changes: %+v", record)
	}
	if slot, _ := vars.Get(ContextKeyPNR); slot != out {
		t.Fatalf("context slot not updated: %q", slot)
	}
}

func TestChangeToAisleSeat(t *testing.T) {
	skill := newTestSkill(t)
	skill.FindRecord("Smith", "Jill")

	record := decodePNR(t, skill.ChangeToAisleSeat())
	if record.Seat != AisleSeat {
		t.Fatalf("seat = %q", record.Seat)
	}
	if record.Action != "Seat changed to aisle seat 21C" {
		t.Fatalf("action = %q", record.Action)
	}
}

func TestFindRecordCoversPool(t *testing.T) {
	skill := newTestSkill(t)
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[decodePNR(t, skill.FindRecord("Smith", "Jill")).Locator] = true
	}
	if len(seen) != len(skill.pool) {
		t.Fatalf("expected every fixture to be reachable, saw %d of %d", len(seen), len(skill.pool))
	}
}

func TestSampleRecord(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	record := decodePNR(t, SampleRecord(now))
	if record.Locator != "FGDHKL" || record.Seat != "12A" || record.Class != "Economy" {
		t.Fatalf("unexpected sample %+v", record)
	}
	if record.Passenger.FirstName != "Jill" || record.Passenger.LastName != "Smith" {
		t.Fatalf("unexpected passenger %+v", record.Passenger)
	}
	if !record.Flight.DepartureDate.Equal(now) || !record.Flight.ArrivalDate.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected dates %+v", record.Flight)
	}
	if !strings.Contains(record.Action, "Smith") {
		t.Fatalf("unexpected action %q", record.Action)
	}
}
