package partsync

import (
	"sync"

	"github.com/agentstation/partsync/pkg/applier"
)

var _ applier.EventHandler = (*hooks)(nil)

// Hook function types for component events
type (
	// ComponentAddedHook is called when a component is created from the template
	ComponentAddedHook func(name string)

	// ComponentRemovedHook is called when a component is removed from the library
	ComponentRemovedHook func(name string)

	// ComponentRenamedHook is called when a component is replaced under a new name
	ComponentRenamedHook func(oldName, newName string)

	// ComponentUpdatedHook is called when fields of a component change
	ComponentUpdatedHook func(name string, changes int)
)

// hooks manages event callbacks for library changes
type hooks struct {
	mu        sync.RWMutex
	onAdded   []ComponentAddedHook
	onRemoved []ComponentRemovedHook
	onRenamed []ComponentRenamedHook
	onUpdated []ComponentUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnComponentAdded registers a callback for when components are added
func (h *hooks) OnComponentAdded(fn ComponentAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAdded = append(h.onAdded, fn)
}

// OnComponentRemoved registers a callback for when components are removed
func (h *hooks) OnComponentRemoved(fn ComponentRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRemoved = append(h.onRemoved, fn)
}

// OnComponentRenamed registers a callback for when components are replaced
func (h *hooks) OnComponentRenamed(fn ComponentRenamedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRenamed = append(h.onRenamed, fn)
}

// OnComponentUpdated registers a callback for when component fields change
func (h *hooks) OnComponentUpdated(fn ComponentUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdated = append(h.onUpdated, fn)
}

// ComponentAdded implements applier.EventHandler
func (h *hooks) ComponentAdded(name string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onAdded {
		fn(name)
	}
}

// ComponentRemoved implements applier.EventHandler
func (h *hooks) ComponentRemoved(name string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onRemoved {
		fn(name)
	}
}

// ComponentRenamed implements applier.EventHandler
func (h *hooks) ComponentRenamed(oldName, newName string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onRenamed {
		fn(oldName, newName)
	}
}

// ComponentUpdated implements applier.EventHandler
func (h *hooks) ComponentUpdated(name string, changes int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onUpdated {
		fn(name, changes)
	}
}
