// Package profiles manages saved connection profiles with YAML
// persistence.
package profiles

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/sip/internal/connection"
)

// profilesFile represents the YAML file structure for stored profiles.
type profilesFile struct {
	Version  int                  `yaml:"version"`
	Profiles []connection.Profile `yaml:"profiles"`
}

// Store manages saved connection profiles backed by a YAML file.
type Store struct {
	profiles map[string]*connection.Profile // keyed by profile name
	filePath string
	mu       sync.RWMutex
}

// NewStore creates a profile store backed by the given YAML file,
// loading any existing profiles.
func NewStore(filePath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create profiles directory: %w", err)
	}

	s := &Store{
		profiles: make(map[string]*connection.Profile),
		filePath: filePath,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	return s, nil
}

// load reads profiles from the YAML file.
func (s *Store) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[string]*connection.Profile)
	for i := range file.Profiles {
		profile := file.Profiles[i]
		s.profiles[profile.Name] = &profile
	}

	return nil
}

// save writes profiles to the YAML file.
func (s *Store) save() error {
	s.mu.RLock()
	profiles := make([]connection.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, *p)
	}
	s.mu.RUnlock()

	// Sort by name for consistent ordering
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})

	file := profilesFile{
		Version:  1,
		Profiles: profiles,
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	// Saved passwords stay out of world-readable files.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	return nil
}

// Add saves a new profile. The profile name must be unique; an ID is
// assigned when missing.
func (s *Store) Add(p connection.Profile) (connection.Profile, error) {
	if p.Name == "" {
		return connection.Profile{}, fmt.Errorf("profile name cannot be empty")
	}

	s.mu.Lock()
	if _, exists := s.profiles[p.Name]; exists {
		s.mu.Unlock()
		return connection.Profile{}, fmt.Errorf("profile %q already exists", p.Name)
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	s.profiles[p.Name] = &p
	s.mu.Unlock()

	if err := s.save(); err != nil {
		return connection.Profile{}, err
	}
	return p, nil
}

// Update replaces an existing profile under the same name.
func (s *Store) Update(p connection.Profile) error {
	s.mu.Lock()
	existing, exists := s.profiles[p.Name]
	if !exists {
		s.mu.Unlock()
		return fmt.Errorf("profile %q not found", p.Name)
	}
	if p.ID == "" {
		p.ID = existing.ID
	}
	s.profiles[p.Name] = &p
	s.mu.Unlock()

	return s.save()
}

// Remove deletes a profile by name.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	if _, exists := s.profiles[name]; !exists {
		s.mu.Unlock()
		return fmt.Errorf("profile %q not found", name)
	}
	delete(s.profiles, name)
	s.mu.Unlock()

	return s.save()
}

// Get returns a profile by name.
func (s *Store) Get(name string) (connection.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[name]
	if !ok {
		return connection.Profile{}, false
	}
	return *p, true
}

// List returns all profiles sorted by name.
func (s *Store) List() []connection.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]connection.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.filePath
}
