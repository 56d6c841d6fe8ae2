package module

import (
	"fmt"
	"sort"
	"sync"
)

// Info contains metadata about a registered module.
type Info struct {
	ID      string
	Title   string
	Schemas []uint16 // nil when the module is not Versioned
}

// Factory creates a fresh module instance.
type Factory func() Module

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	schemas   = make(map[string][]uint16)
	mu        sync.RWMutex
)

// Register adds a module factory to the registry.
// Typically called from a module's init() function.
// Panics if a module with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("module: %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	inst := f()
	titles[id] = inst.Title()
	if v, ok := inst.(Versioned); ok {
		schemas[id] = v.Schemas()
	}
}

// List returns information about all registered modules, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{ID: id, Title: titles[id], Schemas: schemas[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new module by its ID.
func Create(id string) (Module, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("module: unknown module %q", id)
	}

	return f(), nil
}

// Exists checks if a module with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Schemas returns the state schemas the module resumes from, or nil.
func Schemas(id string) []uint16 {
	mu.RLock()
	defer mu.RUnlock()
	return schemas[id]
}

func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(factories, id)
	delete(titles, id)
	delete(schemas, id)
}
