package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// PanelGeometry is the saved placement of one panel.
type PanelGeometry struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Store persists named panel layouts to a single YAML file.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a layout store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// ValidateName rejects layout names that would escape the layouts file's
// namespace or read awkwardly in the CLI.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("layout name is required")
	}
	if name != filepath.Base(name) || strings.Contains(name, "..") {
		return fmt.Errorf("invalid layout name %q", name)
	}
	return nil
}

// Save stores the panel geometries under name, replacing any existing layout
// with that name.
func (s *Store) Save(name string, panels []PanelGeometry) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layouts, err := s.read()
	if err != nil {
		return err
	}
	layouts[name] = panels
	return s.write(layouts)
}

// Load returns the panel geometries saved under name.
func (s *Store) Load(name string) ([]PanelGeometry, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layouts, err := s.read()
	if err != nil {
		return nil, err
	}
	panels, ok := layouts[name]
	if !ok {
		return nil, fmt.Errorf("layout %q not found", name)
	}
	return panels, nil
}

// List returns the saved layout names, sorted.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	layouts, err := s.read()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(layouts))
	for name := range layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a saved layout.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	layouts, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := layouts[name]; !ok {
		return fmt.Errorf("layout %q not found", name)
	}
	delete(layouts, name)
	return s.write(layouts)
}

func (s *Store) read() (map[string][]PanelGeometry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string][]PanelGeometry), nil
		}
		return nil, fmt.Errorf("failed to read layouts file: %w", err)
	}

	layouts := make(map[string][]PanelGeometry)
	if err := yaml.Unmarshal(data, &layouts); err != nil {
		return nil, fmt.Errorf("failed to parse layouts file: %w", err)
	}
	return layouts, nil
}

func (s *Store) write(layouts map[string][]PanelGeometry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create layouts directory: %w", err)
	}

	data, err := yaml.Marshal(layouts)
	if err != nil {
		return fmt.Errorf("failed to encode layouts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write layouts file: %w", err)
	}
	return nil
}
