// Package interactive asks the user for configuration values on a terminal.
package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Terminal prompts on Out and reads answers line by line from In.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	once   sync.Once
	reader *bufio.Reader
}

// Input prints prompt and returns the next line of input.
func (t *Terminal) Input(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.printPrompt(prompt)
	return t.readLine()
}

// Password prints prompt and reads a line without echo when In is a terminal.
func (t *Terminal) Password(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t.printPrompt(prompt)

	if f, ok := t.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(t.out())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return strings.TrimSpace(string(secret)), nil
	}
	return t.readLine()
}

func (t *Terminal) printPrompt(prompt string) {
	_, _ = fmt.Fprintf(t.out(), "%s: ", prompt)
}

func (t *Terminal) out() io.Writer {
	if t.Out == nil {
		return io.Discard
	}
	return t.Out
}

func (t *Terminal) readLine() (string, error) {
	if t.In == nil {
		return "", io.EOF
	}
	t.once.Do(func() {
		t.reader = bufio.NewReader(t.In)
	})

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Scripted answers prompts from a queue, for non-interactive hosts.
type Scripted struct {
	mu      sync.Mutex
	answers []string
	// Asked records every prompt text in order.
	Asked []string
}

// NewScripted returns a Scripted prompter that yields answers in order.
func NewScripted(answers ...string) *Scripted {
	return &Scripted{answers: answers}
}

// Input returns the next queued answer.
func (s *Scripted) Input(ctx context.Context, prompt string) (string, error) {
	return s.next(ctx, prompt)
}

// Password returns the next queued answer.
func (s *Scripted) Password(ctx context.Context, prompt string) (string, error) {
	return s.next(ctx, prompt)
}

func (s *Scripted) next(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Asked = append(s.Asked, prompt)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}
