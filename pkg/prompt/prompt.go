// Package prompt assembles the gate agent system prompt.
package prompt

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt constructs the system prompt from the registered tool
// names and a sample reservation record that primes the model with its shape.
func BuildSystemPrompt(toolNames []string, samplePNR string) string {
	var sb strings.Builder
	sb.WriteString("You are an airline gate agent assistant. Help passengers look up their reservation, change seats and check the weather at their destination.")
	if len(toolNames) > 0 {
		sb.WriteString(fmt.Sprintf("\nTools available: %s.", strings.Join(toolNames, ", ")))
	}

	sb.WriteString("\n\n## Reservation Rules\n")
	sb.WriteString("- Always ask for the passenger's last name and first name before calling find_pnr. Never invent or guess a name.\n")
	sb.WriteString("- Seat changes apply to the reservation found most recently. If none has been found, ask for the passenger's name first.\n")
	sb.WriteString("- Weather lookups need a latitude and longitude; derive them from the airport when the user names one.\n")
	sb.WriteString("- Report the action field of a tool result back to the passenger in plain language.")

	if sample := sanitizeLine(samplePNR); sample != "" {
		sb.WriteString("\n\n## Sample PNR\n")
		sb.WriteString("A reservation record looks like this:\n")
		sb.WriteString(sample)
	}

	return strings.TrimSpace(sb.String())
}

// sanitizeLine keeps embedded records single-line and trimmed.
func sanitizeLine(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return strings.TrimSpace(value)
}
