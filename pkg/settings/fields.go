package settings

// statusText holds the success and failure wording of a field's status line.
type statusText struct {
	ok    string
	empty string
}

// field declares how one credential is collected. The table below is the
// only place that says which fields belong to which provider.
type field struct {
	key string
	// providers lists where the field applies; nil means every provider.
	providers []Provider
	secret    bool
	prompt    map[Provider]string
	// defaults are used instead of prompting when present for a provider.
	defaults map[Provider]string
	// status is keyed by provider; providers without an entry print nothing.
	status map[Provider]statusText
	// clearElsewhere forces the value empty for providers it does not apply to.
	clearElsewhere bool
}

var fieldTable = []field{
	{
		key:       KeyModel,
		providers: nil,
		prompt: map[Provider]string{
			ProviderAzure: "Please enter your Azure OpenAI deployment name",
		},
		defaults: map[Provider]string{
			ProviderOpenAI: "gpt-3.5-turbo",
		},
		status: map[Provider]statusText{
			ProviderAzure:  {ok: "deployment name configured", empty: "deployment name is empty"},
			ProviderOpenAI: {ok: "AI model configured", empty: "model name is empty"},
		},
	},
	{
		key:       KeyEndpoint,
		providers: []Provider{ProviderAzure},
		prompt: map[Provider]string{
			ProviderAzure: "Please enter your Azure OpenAI endpoint",
		},
		status: map[Provider]statusText{
			ProviderAzure: {ok: "Azure OpenAI endpoint configured", empty: "Azure OpenAI endpoint is empty"},
		},
	},
	{
		key:    KeyAPIKey,
		secret: true,
		prompt: map[Provider]string{
			ProviderAzure:  "Please enter your Azure OpenAI API key",
			ProviderOpenAI: "Please enter your OpenAI API key",
		},
		status: map[Provider]statusText{
			ProviderAzure:  {ok: "API key configured", empty: "API key is empty"},
			ProviderOpenAI: {ok: "API key configured", empty: "API key is empty"},
		},
	},
	{
		key:       KeyOrg,
		providers: []Provider{ProviderOpenAI},
		prompt: map[Provider]string{
			ProviderOpenAI: "Please enter your OpenAI Organization Id (enter 'NONE' to skip)",
		},
		clearElsewhere: true,
	},
	{
		key:    KeyWeatherAPIKey,
		secret: true,
		prompt: map[Provider]string{
			ProviderAzure:  "Please enter your tomorrow.io API key",
			ProviderOpenAI: "Please enter your tomorrow.io API key",
		},
		status: map[Provider]statusText{
			ProviderAzure:  {ok: "tomorrow.io API key configured", empty: "tomorrow.io API key is empty"},
			ProviderOpenAI: {ok: "tomorrow.io API key configured", empty: "tomorrow.io API key is empty"},
		},
	},
	{
		key: KeyAmadeusClientID,
		prompt: map[Provider]string{
			ProviderAzure:  "Please enter your Amadeus client ID",
			ProviderOpenAI: "Please enter your Amadeus client ID",
		},
		status: map[Provider]statusText{
			ProviderAzure:  {ok: "Amadeus client ID configured", empty: "Amadeus client ID is empty"},
			ProviderOpenAI: {ok: "Amadeus client ID configured", empty: "Amadeus client ID is empty"},
		},
	},
	{
		key:    KeyAmadeusSecret,
		secret: true,
		prompt: map[Provider]string{
			ProviderAzure:  "Please enter your Amadeus client secret",
			ProviderOpenAI: "Please enter your Amadeus client secret",
		},
		status: map[Provider]statusText{
			ProviderAzure:  {ok: "Amadeus client secret configured", empty: "Amadeus client secret is empty"},
			ProviderOpenAI: {ok: "Amadeus client secret configured", empty: "Amadeus client secret is empty"},
		},
	},
}

func lookupField(key string) (field, bool) {
	for _, f := range fieldTable {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

func (f field) appliesTo(p Provider) bool {
	if len(f.providers) == 0 {
		return true
	}
	for _, candidate := range f.providers {
		if candidate == p {
			return true
		}
	}
	return false
}

// applyProviderRules clears fields that must stay empty for the record's provider.
func applyProviderRules(rec Record) Record {
	for _, f := range fieldTable {
		if f.clearElsewhere && !f.appliesTo(rec.Provider) {
			rec.Set(f.key, "")
			if f.key == KeyOrg {
				rec.OrgSkipped = false
			}
		}
	}
	return rec
}
