package skill

import (
	"fmt"
	"strings"
)

// Context scopes where a skill takes effect.
type Context string

const (
	ContextBattle     Context = "battle"
	ContextExpedition Context = "expedition"
	ContextGlobal     Context = "global"
)

func (c Context) valid() bool {
	switch c {
	case ContextBattle, ContextExpedition, ContextGlobal:
		return true
	}
	return false
}

// Metadata describes one catalogue entry.
// Value, Values, Chance and PartnerID are freeform: only the behavior
// bound to the entry knows how to read them. Value and Chance are taken
// as given, zero included; catalogue defaults are applied by Load.
type Metadata struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Context     Context   `yaml:"context"`
	Behavior    string    `yaml:"behavior"`
	Value       float64   `yaml:"-"`
	Values      []float64 `yaml:"values"`
	Chance      float64   `yaml:"-"`
	PartnerID   int       `yaml:"partner_id"`
	Stackable   bool      `yaml:"stackable"`
	Overlap     bool      `yaml:"overlap"`
}

// IsBattle reports whether the engine should instantiate this entry.
func (m *Metadata) IsBattle() bool { return m.Context == ContextBattle }

// ValueAt returns Values[i] or def when the list is too short.
func (m *Metadata) ValueAt(i int, def float64) float64 {
	if i < 0 || i >= len(m.Values) {
		return def
	}
	return m.Values[i]
}

// Registry is the read-only skill catalogue.
// Names keep their canonical case; lookup ignores case.
// Safe for concurrent reads: nothing mutates it after NewRegistry.
type Registry struct {
	entries []*Metadata
	index   map[string]int
}

// NewRegistry builds a registry preserving the order of entries.
// Registration order is the tie-break for behaviors sharing a slot.
func NewRegistry(entries []Metadata) (*Registry, error) {
	r := &Registry{
		entries: make([]*Metadata, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i := range entries {
		m := entries[i]
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" {
			return nil, fmt.Errorf("skill entry %d: empty name", i)
		}
		if m.Context == "" {
			m.Context = ContextBattle
		}
		if !m.Context.valid() {
			return nil, fmt.Errorf("skill %q: unknown context %q", m.Name, m.Context)
		}
		key := normalize(m.Name)
		if _, dup := r.index[key]; dup {
			return nil, fmt.Errorf("skill %q: duplicate name", m.Name)
		}
		m.Values = append([]float64(nil), m.Values...)
		r.index[key] = len(r.entries)
		r.entries = append(r.entries, &m)
	}
	return r, nil
}

// Get looks a skill up by name, case-insensitively.
// The returned metadata must not be modified.
func (r *Registry) Get(name string) (*Metadata, bool) {
	i, ok := r.index[normalize(name)]
	if !ok {
		return nil, false
	}
	return r.entries[i], true
}

// Order returns the registration index of name, or -1.
func (r *Registry) Order(name string) int {
	i, ok := r.index[normalize(name)]
	if !ok {
		return -1
	}
	return i
}

// List returns canonical names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.entries))
	for i, m := range r.entries {
		names[i] = m.Name
	}
	return names
}

// ByContext returns entries of the given context in registration order.
func (r *Registry) ByContext(c Context) []*Metadata {
	var out []*Metadata
	for _, m := range r.entries {
		if m.Context == c {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of catalogue entries.
func (r *Registry) Len() int { return len(r.entries) }

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
