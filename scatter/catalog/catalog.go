// Package catalog registers every scattering model under its short name
// and hands out shared instances. Models are stateless apart from their
// internal caches, so one instance per family serves the whole process.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"scatgo/scatter"
	"scatgo/scatter/dcm"
	"scatgo/scatter/dwba"
	"scatgo/scatter/es"
	"scatgo/scatter/hp"
	"scatgo/scatter/ka"
	"scatgo/scatter/krm"
	"scatgo/scatter/mss"
	"scatgo/scatter/psms"
	"scatgo/scatter/ptdwba"
)

type Manager struct {
	mu     sync.RWMutex
	models map[string]scatter.Model
}

func NewManager() *Manager {
	m := &Manager{models: make(map[string]scatter.Model)}
	m.registerModels()
	return m
}

func (m *Manager) registerModels() {
	for _, model := range []scatter.Model{
		mss.New(),
		psms.New(),
		dcm.New(),
		krm.New(),
		ka.New(),
		es.New(),
		hp.New(),
		dwba.New(),
		dwba.NewStochastic(),
		ptdwba.New(),
	} {
		m.models[model.ShortName()] = model
	}
}

// Register adds a model under its short name, replacing any previous
// registration.
func (m *Manager) Register(model scatter.Model) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.models[model.ShortName()] = model
}

// Get returns the model registered under the given short name.
func (m *Manager) Get(name string) (scatter.Model, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if model, exists := m.models[name]; exists {
		return model, nil
	}
	return nil, fmt.Errorf("unknown model: %s", name)
}

// Names lists the registered short names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.models))
	for name := range m.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata returns the metadata of every registered model, ordered by
// short name.
func (m *Manager) Metadata() []scatter.Metadata {
	names := m.Names()

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]scatter.Metadata, len(names))
	for i, name := range names {
		out[i] = m.models[name].Metadata()
	}
	return out
}

var (
	defaultOnce    sync.Once
	defaultManager *Manager
)

// Default returns the process-wide manager.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultManager = NewManager()
	})
	return defaultManager
}
