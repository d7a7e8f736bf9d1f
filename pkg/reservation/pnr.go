package reservation

import (
	"encoding/json"
	"time"
)

// Passenger is the traveller named on a record.
type Passenger struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
}

// Flight is the booked segment.
type Flight struct {
	FlightNumber     string    `json:"flightNumber" yaml:"flightNumber"`
	DepartureAirport string    `json:"departureAirport" yaml:"departureAirport"`
	ArrivalAirport   string    `json:"arrivalAirport" yaml:"arrivalAirport"`
	DepartureDate    time.Time `json:"departureDate" yaml:"departureDate"`
	ArrivalDate      time.Time `json:"arrivalDate" yaml:"arrivalDate"`
}

// PNR is a passenger name record.
type PNR struct {
	Action    string    `json:"action" yaml:"action"`
	Locator   string    `json:"pnr" yaml:"pnr"`
	Passenger Passenger `json:"passenger" yaml:"passenger"`
	Flight    Flight    `json:"flight" yaml:"flight"`
	Seat      string    `json:"seat" yaml:"seat"`
	Class     string    `json:"class" yaml:"class"`
}

// JSON renders the record as compact JSON.
func (p PNR) JSON() (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SampleRecord returns an illustrative record that shows a model the shape
// of a PNR. It does not depend on any bound state.
func SampleRecord(now time.Time) string {
	sample := PNR{
		Locator:   "FGDHKL",
		Passenger: Passenger{FirstName: "Jill", LastName: "Smith"},
		Flight: Flight{
			FlightNumber:     "UA123",
			DepartureAirport: "SFO",
			ArrivalAirport:   "LAX",
			DepartureDate:    now,
			ArrivalDate:      now.Add(time.Hour),
		},
		Seat:  "12A",
		Class: "Economy",
	}
	sample.Action = "PNR found for " + sample.Passenger.LastName + ", " + sample.Passenger.FirstName
	out, _ := sample.JSON()
	return out
}
