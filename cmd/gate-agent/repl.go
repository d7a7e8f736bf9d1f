package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
	"github.com/minhyannv/gate-agent-go/pkg/reservation"
	"github.com/openai/openai-go"
)

// chatSession is the part of the agent loop the REPL drives.
type chatSession interface {
	Run(userInput string) (openai.ChatCompletionMessage, error)
	Reset()
}

// replOptions configures REPL behavior.
type replOptions struct {
	Verbose   bool
	Logger    loggerpkg.Logger
	SessionID string
}

// runREPL starts an interactive REPL session. vars is the reservation
// context slot shown by /pnr and may be nil.
func runREPL(session chatSession, vars reservation.Context, opts replOptions, in io.Reader, out io.Writer) error {
	if session == nil {
		return fmt.Errorf("chat session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	loggerpkg.Debug(opts.Verbose, opts.Logger, "repl start", map[string]any{
		"session": opts.SessionID,
	})

	scanner := bufio.NewScanner(in)
	printWelcome(out, opts.SessionID)

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if shouldQuit := handleCommand(input, session, vars, out); shouldQuit {
				break
			}
			continue
		}

		finalMessage, err := session.Run(input)
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			continue
		}

		_, _ = fmt.Fprintf(out, "%s\n\n", finalMessage.Content)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func printWelcome(out io.Writer, sessionID string) {
	_, _ = fmt.Fprintln(out, "=== Gate Agent - Interactive Mode ===")
	if sessionID != "" {
		_, _ = fmt.Fprintf(out, "Session: %s\n", sessionID)
	}
	_, _ = fmt.Fprintln(out, "Type your message and press Enter. Commands:")
	printCommands(out)
}

// handleCommand runs a slash command and reports whether the REPL should exit.
func handleCommand(
	input string,
	session chatSession,
	vars reservation.Context,
	out io.Writer,
) bool {
	cmd := strings.ToLower(input)
	switch cmd {
	case "/help", "/h":
		_, _ = fmt.Fprintln(out, "Commands:")
		printCommands(out)
	case "/clear", "/c":
		session.Reset()
		_, _ = fmt.Fprintln(out, "Conversation history cleared.")
		_, _ = fmt.Fprintln(out)
	case "/pnr":
		printPNR(out, vars)
	case "/quit", "/exit", "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
	}
	return false
}

func printPNR(out io.Writer, vars reservation.Context) {
	if vars != nil {
		if pnr, ok := vars.Get(reservation.ContextKeyPNR); ok {
			_, _ = fmt.Fprintf(out, "%s\n\n", pnr)
			return
		}
	}
	_, _ = fmt.Fprintln(out, "No PNR in context yet.")
	_, _ = fmt.Fprintln(out)
}

func printCommands(out io.Writer) {
	_, _ = fmt.Fprintln(out, "  /help  - Show this help message")
	_, _ = fmt.Fprintln(out, "  /clear - Clear conversation history")
	_, _ = fmt.Fprintln(out, "  /pnr   - Show the reservation in context")
	_, _ = fmt.Fprintln(out, "  /quit  - Exit the program")
	_, _ = fmt.Fprintln(out, "  /exit  - Exit the program")
	_, _ = fmt.Fprintln(out)
}
