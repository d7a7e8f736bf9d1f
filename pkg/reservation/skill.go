// Package reservation is a mock airline reservation skill. It binds one PNR
// per session from a fixture pool and mutates it on request.
package reservation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	loggerpkg "github.com/minhyannv/gate-agent-go/pkg/logger"
)

// NoRecordPayload is returned by seat operations before a record is bound.
const NoRecordPayload = `{"error":"There is no PNR in context. Require find by name."}`

// AisleSeat is the seat assigned by ChangeToAisleSeat.
const AisleSeat = "21C"

// Option configures a Skill.
type Option func(*Skill)

// WithRand sets the randomness source used to pick fixture records.
func WithRand(r *rand.Rand) Option {
	return func(s *Skill) {
		s.rng = r
	}
}

// WithContext sets the shared context slot serialized records are mirrored into.
func WithContext(c Context) Option {
	return func(s *Skill) {
		s.ctx = c
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(s *Skill) {
		s.logger = l
	}
}

// Skill holds the fixture pool and the record bound to the current session.
type Skill struct {
	pool   []PNR
	rng    *rand.Rand
	ctx    Context
	logger loggerpkg.Logger

	// current is meaningful only when bound is true.
	current PNR
	bound   bool
}

// New builds a Skill over pool. The pool is copied and never mutated.
func New(pool []PNR, opts ...Option) (*Skill, error) {
	if len(pool) == 0 {
		return nil, errors.New("reservation fixture pool is empty")
	}
	s := &Skill{
		pool:   append([]PNR(nil), pool...),
		ctx:    NewVariables(),
		logger: loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = loggerpkg.NopLogger{}
	}
	return s, nil
}

// NewFromJSON builds a Skill from a serialized JSON array of records.
func NewFromJSON(payload string, opts ...Option) (*Skill, error) {
	var pool []PNR
	if err := json.Unmarshal([]byte(payload), &pool); err != nil {
		return nil, fmt.Errorf("parse reservation fixtures: %w", err)
	}
	return New(pool, opts...)
}

// Context returns the shared context slot.
func (s *Skill) Context() Context {
	return s.ctx
}

// Current returns the bound record, if any.
func (s *Skill) Current() (PNR, bool) {
	return s.current, s.bound
}

// FindRecord binds a record for the named passenger. The lookup is simulated:
// a fixture is picked at random but the names always match the request.
func (s *Skill) FindRecord(lastName, firstName string) string {
	index := s.rng.Intn(len(s.pool))
	s.logger.Info("find pnr", map[string]any{
		"last_name":  lastName,
		"first_name": firstName,
		"index":      index,
	})

	s.current = s.pool[index]
	s.bound = true
	s.current.Passenger.FirstName = firstName
	s.current.Passenger.LastName = lastName
	s.current.Action = "PNR found for " + firstName + " " + lastName
	return s.publish()
}

// ChangeSeatTo moves the bound passenger to seat.
func (s *Skill) ChangeSeatTo(seat string) string {
	if !s.bound {
		return NoRecordPayload
	}
	s.current.Action = fmt.Sprintf("Seat changed from %s to %s", s.current.Seat, seat)
	s.current.Seat = seat
	return s.publish()
}

// ChangeToAisleSeat moves the bound passenger to the aisle seat.
func (s *Skill) ChangeToAisleSeat() string {
	if !s.bound {
		return NoRecordPayload
	}
	s.current.Seat = AisleSeat
	s.current.Action = "Seat changed to aisle seat " + AisleSeat
	return s.publish()
}

// publish serializes the bound record and mirrors it into the context slot.
func (s *Skill) publish() string {
	out, err := s.current.JSON()
	if err != nil {
		s.logger.Error("serialize pnr failed", map[string]any{"error": err.Error()})
		payload, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(payload)
	}
	if s.ctx != nil {
		s.ctx.Set(ContextKeyPNR, out)
	}
	return out
}
