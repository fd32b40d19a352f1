// Package assets resolves body systems to model files on disk and caches
// the parsed documents.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/model"
)

// Model file extensions, in lookup order.
var modelExts = []string{".glb", ".gltf"}

// Manager loads system models from a models directory. It implements the
// scene's Loader and is safe for use from the scene's load goroutines.
type Manager struct {
	dir string

	mu        sync.RWMutex
	cache     map[anatomy.System]*model.Model
	overrides map[anatomy.System]string
}

// NewManager creates a manager rooted at the given models directory.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:       dir,
		cache:     make(map[anatomy.System]*model.Model),
		overrides: make(map[anatomy.System]string),
	}
}

// Dir returns the models directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Load resolves a system to its model file, parses it, and caches the
// result. Subsequent loads of the same system are served from cache.
func (m *Manager) Load(system anatomy.System) (*model.Model, error) {
	m.mu.RLock()
	cached, ok := m.cache[system]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	path, err := m.Resolve(system)
	if err != nil {
		return nil, err
	}

	doc, err := model.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", system, err)
	}

	m.mu.Lock()
	m.cache[system] = doc
	m.mu.Unlock()
	return doc, nil
}

// Resolve returns the model file path for a system without loading it.
// Overrides set via SetOverride win; otherwise the file is looked up by
// system name under the models directory.
func (m *Manager) Resolve(system anatomy.System) (string, error) {
	m.mu.RLock()
	override := m.overrides[system]
	m.mu.RUnlock()
	if override != "" {
		return override, nil
	}

	for _, ext := range modelExts {
		path := filepath.Join(m.dir, string(system)+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no model file for system %q in %s", system, m.dir)
}

// SetOverride pins a system to an explicit model file, e.g. one chosen
// through a file dialog, and drops any cached document for it.
func (m *Manager) SetOverride(system anatomy.System, path string) {
	m.mu.Lock()
	m.overrides[system] = path
	delete(m.cache, system)
	m.mu.Unlock()
}

// Invalidate drops the cached document for one system, forcing a re-read
// on the next load.
func (m *Manager) Invalidate(system anatomy.System) {
	m.mu.Lock()
	delete(m.cache, system)
	m.mu.Unlock()
}

// Available lists the systems that currently resolve to a model file.
func (m *Manager) Available() []anatomy.System {
	var out []anatomy.System
	for _, sys := range anatomy.Systems() {
		if _, err := m.Resolve(sys); err == nil {
			out = append(out, sys)
		}
	}
	return out
}

// Clear empties the cache and the overrides.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.cache = make(map[anatomy.System]*model.Model)
	m.overrides = make(map[anatomy.System]string)
	m.mu.Unlock()
}
