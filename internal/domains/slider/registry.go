package slider

import (
	"fmt"
	"sort"
)

// Registry holds the page's slider instances by key.
// Like Slider it is only touched from the page event loop.
type Registry struct {
	sliders map[string]*Slider
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{sliders: make(map[string]*Slider)}
}

// Register adds s, replacing a previous slider with the same key.
func (r *Registry) Register(s *Slider) {
	if _, exists := r.sliders[s.Key()]; !exists {
		r.order = append(r.order, s.Key())
	}
	r.sliders[s.Key()] = s
}

func (r *Registry) Get(key string) (*Slider, error) {
	s, ok := r.sliders[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSliderNotFound, key)
	}
	return s, nil
}

// Keys returns slider keys in registration order.
func (r *Registry) Keys() []string {
	return append([]string(nil), r.order...)
}

// Navigate is the arrow-click dispatch for one slider. Unknown keys are a
// no-op, as are disabled sliders.
func (r *Registry) Navigate(key string, direction int) {
	if s, ok := r.sliders[key]; ok {
		s.Navigate(direction)
	}
}

// States returns snapshots sorted by key.
func (r *Registry) States() []State {
	states := make([]State, 0, len(r.sliders))
	for _, s := range r.sliders {
		states = append(states, s.State())
	}
	sort.Slice(states, func(i, j int) bool { return states[i].Key < states[j].Key })
	return states
}
