package report

import (
	"fmt"
	"sort"
	"sync"
)

// ControllerFactory builds a Controller from its dependencies.
type ControllerFactory func(deps Dependencies) (Controller, error)

// Registry manages report controller factories.
type Registry interface {
	// Register adds a new report factory
	Register(name string, factory ControllerFactory) error
	// Create instantiates the named report controller
	Create(name string, deps Dependencies) (Controller, error)
	// ListReports returns the registered report names, sorted
	ListReports() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]ControllerFactory
}

// NewRegistry creates a new controller registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[string]ControllerFactory),
	}
}

func (r *registry) Register(name string, factory ControllerFactory) error {
	if name == "" {
		return fmt.Errorf("report name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("report %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *registry) Create(name string, deps Dependencies) (Controller, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("report %q is not registered", name)
	}

	return factory(deps)
}

func (r *registry) ListReports() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
