package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomysaman/csvloader/internal/loader"
)

// Profile is a named preset of parse options, addressable from the HTTP
// API and the CLI. Zero-valued fields leave the server defaults in place.
type Profile struct {
	Name      string `yaml:"name"`
	Delimiter string `yaml:"delimiter"`
	RowLimit  int    `yaml:"rowLimit"`
	Cleanup   *bool  `yaml:"cleanupColumns"`
	Encoding  string `yaml:"encoding"`
	Format    string `yaml:"format"`
	RootName  string `yaml:"rootName"`
}

// profilesFile is the on-disk YAML shape:
//
//	profiles:
//	  - name: semicolon
//	    delimiter: ";"
//	    format: json
type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// ProfileSet holds the loaded profiles, preserving file order.
type ProfileSet struct {
	byName map[string]Profile
	names  []string
}

// LoadProfiles reads parse profiles from a YAML file. An empty path means
// profiles are not configured and yields an empty set.
func LoadProfiles(path string) (*ProfileSet, error) {
	set := &ProfileSet{byName: make(map[string]Profile)}
	if path == "" {
		return set, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("profiles file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profiles file: %w", err)
	}

	for _, p := range file.Profiles {
		if err := p.validate(); err != nil {
			return nil, err
		}
		if _, dup := set.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		set.byName[p.Name] = p
		set.names = append(set.names, p.Name)
	}

	return set, nil
}

func (p Profile) validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if _, err := loader.ParseDelimiter(p.Delimiter); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	if _, err := loader.ParseFormat(p.Format); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// Apply overlays the profile onto base options and returns the result.
func (p Profile) Apply(base loader.Options) loader.Options {
	if p.Delimiter != "" {
		// Validated at load time, cannot fail here.
		base.Delimiter, _ = loader.ParseDelimiter(p.Delimiter)
	}
	if p.RowLimit != 0 {
		base.RowLimit = p.RowLimit
	}
	if p.Cleanup != nil {
		base.CleanupColumns = *p.Cleanup
	}
	if p.Encoding != "" {
		base.Encoding = p.Encoding
	}
	if p.Format != "" {
		base.Format, _ = loader.ParseFormat(p.Format)
	}
	if p.RootName != "" {
		base.RootName = p.RootName
	}
	return base
}

// Get returns the named profile.
func (s *ProfileSet) Get(name string) (Profile, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// Names returns the profile names in file order.
func (s *ProfileSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of loaded profiles.
func (s *ProfileSet) Len() int {
	return len(s.names)
}
