package warming

import (
	"fmt"

	"synergyai.app/pkg/errors"
)

// Registry indexes warmers by entity name, keeping registration order
type Registry struct {
	warmers map[string]Warmer
	order   []string
}

func NewRegistry(warmers ...Warmer) (*Registry, error) {
	r := &Registry{warmers: make(map[string]Warmer, len(warmers))}
	for _, w := range warmers {
		if err := r.Register(w); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(w Warmer) error {
	if w == nil {
		return errors.NewValidationError("warmer is required")
	}
	if _, exists := r.warmers[w.Entity()]; exists {
		return errors.NewValidationError(fmt.Sprintf("warmer %s already registered", w.Entity()))
	}
	r.warmers[w.Entity()] = w
	r.order = append(r.order, w.Entity())
	return nil
}

func (r *Registry) Get(entity string) (Warmer, bool) {
	w, ok := r.warmers[entity]
	return w, ok
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// ByScope returns the warmers of the given scopes in registration order
func (r *Registry) ByScope(scopes ...Scope) []Warmer {
	var out []Warmer
	for _, name := range r.order {
		w := r.warmers[name]
		for _, s := range scopes {
			if w.Scope() == s {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
