package regfeat

import (
	"fmt"
)

// Factory builds a new feature instance.
type Factory func() (Feature, error)

// Entry describes a registered feature.
type Entry struct {
	ID          ID
	Description string
	New         Factory
}

// Registry maps feature IDs to the factories that build them.
//
// A Registry is populated at startup and read afterwards; it is not safe to
// register features concurrently with analyses using the registry.
type Registry struct {
	entries map[ID]Entry
	order   []ID
}

// NewRegistry returns a registry holding the features of this package
// (ElementCount).
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[ID]Entry)}
	r.MustRegister(Entry{
		ID:          ElementCountID,
		Description: "Number of pixels of each region",
		New:         func() (Feature, error) { return ElementCount{}, nil },
	})
	return r
}

// Register adds a feature factory. Registering the same ID twice is an error.
func (r *Registry) Register(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("feature registration requires an ID")
	}
	if e.New == nil {
		return fmt.Errorf("feature %q registered without factory", e.ID)
	}
	if _, exists := r.entries[e.ID]; exists {
		return fmt.Errorf("feature %q already registered", e.ID)
	}
	r.entries[e.ID] = e
	r.order = append(r.order, e.ID)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// registrations at program start.
func (r *Registry) MustRegister(e Entry) {
	if err := r.Register(e); err != nil {
		panic(err)
	}
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.entries[id]
	return ok
}

// Entries returns the registered features in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.order))
	for i, id := range r.order {
		out[i] = r.entries[id]
	}
	return out
}

// New builds the feature registered under id. It returns an
// UnknownFeatureError if id is not registered, and wraps any construction
// failure of the factory.
func (r *Registry) New(id ID) (Feature, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, &UnknownFeatureError{ID: id}
	}
	f, err := e.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create feature %q: %w", id, err)
	}
	if f == nil {
		return nil, fmt.Errorf("failed to create feature %q: factory returned nil", id)
	}
	if f.ID() != id {
		return nil, fmt.Errorf("factory for feature %q built feature %q", id, f.ID())
	}
	return f, nil
}
