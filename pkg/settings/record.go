// Package settings stores LLM and third-party API credentials in a local JSON
// file and prompts for missing values.
package settings

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Provider selects the backend used for language-model calls.
type Provider string

const (
	ProviderAzure  Provider = "azure"
	ProviderOpenAI Provider = "openai"
)

// ProviderFor maps the caller's azure preference to a Provider.
func ProviderFor(useAzure bool) Provider {
	if useAzure {
		return ProviderAzure
	}
	return ProviderOpenAI
}

// File keys. The on-disk object contains exactly these keys.
const (
	KeyType            = "type"
	KeyModel           = "model"
	KeyEndpoint        = "endpoint"
	KeyAPIKey          = "apikey"
	KeyOrg             = "org"
	KeyWeatherAPIKey   = "tomorrowio"
	KeyAmadeusClientID = "amadeusClientID"
	KeyAmadeusSecret   = "amadeusSecret"
)

var recordKeys = []string{
	KeyType,
	KeyModel,
	KeyEndpoint,
	KeyAPIKey,
	KeyOrg,
	KeyWeatherAPIKey,
	KeyAmadeusClientID,
	KeyAmadeusSecret,
}

// orgNone is the stored org value meaning "no organization".
const orgNone = "none"

// Record is the full set of stored credentials.
type Record struct {
	Provider Provider
	Model    string
	Endpoint string
	APIKey   string
	OrgID    string
	// OrgSkipped records that the user declined to give an org id; it is
	// stored as "none" and keeps OrgID empty in memory.
	OrgSkipped      bool
	WeatherAPIKey   string
	AmadeusClientID string
	AmadeusSecret   string
}

// EmptyRecord returns a record with every value blank and the provider set
// from the caller's preference.
func EmptyRecord(useAzure bool) Record {
	return Record{Provider: ProviderFor(useAzure)}
}

// UseAzure reports whether the record targets Azure OpenAI.
func (r Record) UseAzure() bool {
	return r.Provider == ProviderAzure
}

// Get returns the value stored under a file key.
func (r Record) Get(key string) string {
	switch key {
	case KeyType:
		return string(r.Provider)
	case KeyModel:
		return r.Model
	case KeyEndpoint:
		return r.Endpoint
	case KeyAPIKey:
		return r.APIKey
	case KeyOrg:
		return r.OrgID
	case KeyWeatherAPIKey:
		return r.WeatherAPIKey
	case KeyAmadeusClientID:
		return r.AmadeusClientID
	case KeyAmadeusSecret:
		return r.AmadeusSecret
	}
	return ""
}

// Set stores value under a file key. Unknown keys are ignored.
func (r *Record) Set(key, value string) {
	switch key {
	case KeyType:
		r.Provider = Provider(value)
	case KeyModel:
		r.Model = value
	case KeyEndpoint:
		r.Endpoint = value
	case KeyAPIKey:
		r.APIKey = value
	case KeyOrg:
		r.OrgID = value
	case KeyWeatherAPIKey:
		r.WeatherAPIKey = value
	case KeyAmadeusClientID:
		r.AmadeusClientID = value
	case KeyAmadeusSecret:
		r.AmadeusSecret = value
	}
}

// MalformedError reports a credential file that could not be decoded.
type MalformedError struct {
	Reason string
	Err    error
}

func (e *MalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed settings: %s: %v", e.Reason, e.Err)
	}
	return "malformed settings: " + e.Reason
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Decode parses a stored credential object. Every key must be present.
func Decode(data []byte) (Record, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, &MalformedError{Reason: "invalid JSON", Err: err}
	}

	var rec Record
	for _, key := range recordKeys {
		value, ok := raw[key]
		if !ok {
			return Record{}, &MalformedError{Reason: fmt.Sprintf("missing key %q", key)}
		}
		rec.Set(key, value)
	}

	if rec.Provider != ProviderAzure {
		rec.Provider = ProviderOpenAI
	}
	if isOrgNone(rec.OrgID) {
		rec.OrgID = ""
		rec.OrgSkipped = true
	}
	return rec, nil
}

// Encode renders a record as an indented JSON object.
func Encode(rec Record) ([]byte, error) {
	if rec.Provider != ProviderAzure {
		rec.Provider = ProviderOpenAI
	}
	if isOrgNone(rec.OrgID) || (rec.OrgID == "" && rec.OrgSkipped) {
		rec.OrgID = orgNone
	}
	data := make(map[string]string, len(recordKeys))
	for _, key := range recordKeys {
		data[key] = rec.Get(key)
	}
	return json.MarshalIndent(data, "", "  ")
}

// Missing reports whether the value under key still needs to be collected.
func (r Record) Missing(key string) bool {
	if key == KeyOrg && r.OrgSkipped {
		return false
	}
	return strings.TrimSpace(r.Get(key)) == ""
}

func isOrgNone(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), orgNone)
}
