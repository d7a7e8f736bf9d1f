package reservation

import "sync"

// ContextKeyPNR is the slot the serialized record is mirrored into.
const ContextKeyPNR = "pnr"

// Context is the host-owned side channel skills write results into.
type Context interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Variables is a map-backed Context.
type Variables struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewVariables returns an empty Variables.
func NewVariables() *Variables {
	return &Variables{values: make(map[string]string)}
}

func (v *Variables) Get(key string) (string, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	value, ok := v.values[key]
	return value, ok
}

func (v *Variables) Set(key, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.values == nil {
		v.values = make(map[string]string)
	}
	v.values[key] = value
}
