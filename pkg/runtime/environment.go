package runtime

import (
	"sort"
	"sync"
)

type binding struct {
	value   Value
	mutable bool
}

// Environment provides lexical scoping with per-binding mutability.
// Bindings are guarded by a lock because strand bodies run on real OS
// threads and may share captured scopes.
type Environment struct {
	mu       sync.RWMutex
	values   map[string]binding
	parent   *Environment
	builtins map[string]Value
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]binding),
		parent: parent,
	}
}

// NewRootEnvironment creates a root environment that resolves names
// against the shared builtin table after its own bindings. The table is
// referenced, never copied.
func NewRootEnvironment(builtins map[string]Value) *Environment {
	env := NewEnvironment(nil)
	env.builtins = builtins
	return env
}

// Parent exposes the lexical parent (nil when root).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts a binding in the current scope. Redefinition in the same
// scope fails; shadowing an outer scope is legal.
func (e *Environment) Define(name string, value Value, mutable bool) *Error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; ok {
		return NewError(ErrDuplicateDefinition, "variable '%s' already defined in this scope", name)
	}
	e.values[name] = binding{value: value, mutable: mutable}
	return nil
}

// Get retrieves a binding, searching outward through the scope chain and
// falling back to the builtin table at the root.
func (e *Environment) Get(name string) (Value, *Error) {
	e.mu.RLock()
	b, ok := e.values[name]
	e.mu.RUnlock()
	if ok {
		return b.value, nil
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	if e.builtins != nil {
		if val, ok := e.builtins[name]; ok {
			return val, nil
		}
	}
	return nil, NewError(ErrUndefinedVariable, "undefined variable '%s'", name)
}

// Set updates the binding in the nearest scope owning the name.
func (e *Environment) Set(name string, value Value) *Error {
	e.mu.Lock()
	b, ok := e.values[name]
	if ok {
		if !b.mutable {
			e.mu.Unlock()
			return NewError(ErrImmutableReassignment, "cannot reassign immutable variable '%s'", name)
		}
		e.values[name] = binding{value: value, mutable: true}
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	if e.parent != nil {
		return e.parent.Set(name, value)
	}
	if e.builtins != nil {
		if _, ok := e.builtins[name]; ok {
			return NewError(ErrImmutableReassignment, "cannot reassign builtin '%s'", name)
		}
	}
	return NewError(ErrUndefinedVariable, "undefined variable '%s'", name)
}

// Has reports whether the name resolves anywhere in the chain.
func (e *Environment) Has(name string) bool {
	e.mu.RLock()
	_, ok := e.values[name]
	e.mu.RUnlock()
	if ok {
		return true
	}
	if e.parent != nil {
		return e.parent.Has(name)
	}
	if e.builtins != nil {
		_, ok := e.builtins[name]
		return ok
	}
	return false
}

// Keys returns this scope's own bindings in sorted order (useful for
// determinism in tests).
func (e *Environment) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Extend creates a new child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}
