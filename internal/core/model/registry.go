// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package model

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/yomira-cms/pkg/inflect"
)

var (
	// ErrSealed is returned when registering after [Registry.Seal].
	ErrSealed = errors.New("model: registry is sealed")
	// ErrDuplicate is returned when a name is registered twice with different descriptors.
	ErrDuplicate = errors.New("model: conflicting registration")
	// ErrInvalidName is returned for empty or malformed type names.
	ErrInvalidName = errors.New("model: invalid type name")
)

// Registry maps fully-qualified type names to their [Descriptor].
//
// # Concurrency
//
// All methods are safe for concurrent use. Writes are only accepted until
// [Registry.Seal] is called.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
	sealed      bool
}

// NewRegistry returns a registry that already contains the Portlet base type.
func NewRegistry() *Registry {
	registry := &Registry{descriptors: make(map[string]Descriptor)}
	registry.descriptors[PortletTypeName] = PortletBase()
	return registry
}

// Register adds a descriptor. Registering an identical descriptor twice is a no-op.
func (r *Registry) Register(descriptor Descriptor) error {
	if err := validateName(descriptor.Name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("%w: cannot register %q", ErrSealed, descriptor.Name)
	}

	if existing, ok := r.descriptors[descriptor.Name]; ok {
		if reflect.DeepEqual(existing, descriptor) {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrDuplicate, descriptor.Name)
	}

	r.descriptors[descriptor.Name] = descriptor
	return nil
}

// MustRegister is like [Registry.Register] but panics on error.
// It is meant for init-time registration of built-in types.
func (r *Registry) MustRegister(descriptors ...Descriptor) {
	for _, descriptor := range descriptors {
		if err := r.Register(descriptor); err != nil {
			panic(err)
		}
	}
}

// Seal freezes the registry. Subsequent registrations fail with [ErrSealed].
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Lookup resolves a fully-qualified type name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.descriptors[name]
	return descriptor, ok
}

// All returns every registered descriptor ordered by name.
func (r *Registry) All() []Descriptor {
	r.mu.RLock()
	all := make([]Descriptor, 0, len(r.descriptors))
	for _, descriptor := range r.descriptors {
		all = append(all, descriptor)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return all
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.descriptors)
}

// validateName accepts CamelCase segments joined by [inflect.Separator].
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	for _, segment := range strings.Split(name, inflect.Separator) {
		if segment == "" || strings.ContainsAny(segment, " /:") {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// # Process-wide Registry

// Default is the registry populated by model types at startup.
var Default = NewRegistry()

// MustRegister adds descriptors to [Default] and panics on error.
func MustRegister(descriptors ...Descriptor) {
	Default.MustRegister(descriptors...)
}
