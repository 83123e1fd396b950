// Package registry tracks registered model factories and resolves which one
// serves a given model name.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vidbrief/vidbrief/internal/domain"
)

// Registry implements the ModelRegistry interface.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]domain.ModelFactory
}

// NewRegistry creates a new model factory registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:        sync.RWMutex{},
		factories: make(map[string]domain.ModelFactory),
	}
}

// Register adds a factory to the registry.
func (r *Registry) Register(_ context.Context, factory domain.ModelFactory) error {
	if factory == nil {
		return errors.New("factory cannot be nil")
	}

	name := factory.Name()
	if name == "" {
		return errors.New("factory name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("factory %s already registered", name)
	}

	r.factories[name] = factory

	return nil
}

// GetByModel retrieves a factory that supports the given model. Factories
// are probed directly; with two providers a reverse index buys nothing.
func (r *Registry) GetByModel(_ context.Context, model string) (domain.ModelFactory, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, factory := range r.factories {
		if factory.Supports(model) {
			return factory, nil
		}
	}

	return nil, fmt.Errorf("no provider found for model: %s", model)
}

// List returns all registered factory names.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}

	return names, nil
}
