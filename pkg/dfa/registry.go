package dfa

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// StateRegistry maps state labels to dense indices and back.
// The zero value is not usable; call NewStateRegistry.
type StateRegistry struct {
	labels  []string
	indices map[string]int
}

// NewStateRegistry creates an empty registry.
func NewStateRegistry() *StateRegistry {
	return &StateRegistry{
		indices: make(map[string]int),
	}
}

// Register adds label and returns its index.
// Registering a label that already exists is a no-op returning the original index.
func (r *StateRegistry) Register(label string) int {
	if idx, ok := r.indices[label]; ok {
		return idx
	}
	idx := len(r.labels)
	r.labels = append(r.labels, label)
	r.indices[label] = idx
	return idx
}

// Add is the strict form of Register: it fails with *domain.DuplicateStateError
// when label is already registered.
func (r *StateRegistry) Add(label string) (int, error) {
	if _, ok := r.indices[label]; ok {
		return 0, &domain.DuplicateStateError{Label: label}
	}
	return r.Register(label), nil
}

// Contains reports whether label is registered.
func (r *StateRegistry) Contains(label string) bool {
	_, ok := r.indices[label]
	return ok
}

// IndexOf returns the index of label.
func (r *StateRegistry) IndexOf(label string) (int, error) {
	idx, ok := r.indices[label]
	if !ok {
		return 0, &domain.UnknownStateError{Label: label}
	}
	return idx, nil
}

// LabelOf returns the label registered at index.
func (r *StateRegistry) LabelOf(index int) (string, error) {
	if index < 0 || index >= len(r.labels) {
		return "", &domain.UnknownStateError{Label: fmt.Sprintf("#%d", index)}
	}
	return r.labels[index], nil
}

// Labels returns all labels in registration order.
func (r *StateRegistry) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Len returns the number of registered states.
func (r *StateRegistry) Len() int {
	return len(r.labels)
}
