// Package manifest reads the architecture manifest that
// budget.scope_from_arch_v1 and std.rr.with_policy_v1 consult by
// profile-id name: a small YAML document mapping each named budget
// profile to its mode and case cap. Same Load/Validate/Save shape and
// deterministic-output discipline as the rest of this module's
// document readers, with YAML (gopkg.in/yaml.v3) as this
// collaborator's actual interchange format.
package manifest

import (
	"fmt"
	"os"
	"sort"

	"github.com/x07lang/x07ast/internal/check"
	"gopkg.in/yaml.v3"
)

// SchemaVersion identifies the current architecture-manifest document
// shape this package accepts.
const SchemaVersion = "x07ast.archmanifest/v1"

// Profile is one named budget profile an architecture manifest binds:
// the mode a budget.scope_v1 derived from it runs in, and the generic
// numeric cap carried into its budget.cfg_v1 (case count, alloc
// bytes, or whatever the profile's domain calls for).
type Profile struct {
	ID       string `yaml:"id"`
	Mode     string `yaml:"mode"`
	MaxCases int    `yaml:"max_cases"`
}

// Manifest is the full architecture-manifest document.
type Manifest struct {
	SchemaVersion string    `yaml:"schema_version"`
	Profiles      []Profile `yaml:"profiles"`
}

// New returns an empty manifest stamped with the current schema
// version.
func New() *Manifest {
	return &Manifest{SchemaVersion: SchemaVersion, Profiles: []Profile{}}
}

// Load reads and validates an architecture manifest from path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest: %s: %w", path, err)
	}
	return &m, nil
}

// Save writes m to path as deterministic, sorted YAML.
func (m *Manifest) Save(path string) error {
	sort.Slice(m.Profiles, func(i, j int) bool { return m.Profiles[i].ID < m.Profiles[j].ID })
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks schema compatibility, duplicate profile ids, and
// that every profile names one of the checker's three closed budget
// modes.
func (m *Manifest) Validate() error {
	if m.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema version: %s (expected %s)", m.SchemaVersion, SchemaVersion)
	}
	seen := make(map[string]bool, len(m.Profiles))
	for _, p := range m.Profiles {
		if p.ID == "" {
			return fmt.Errorf("profile missing id")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate profile id: %s", p.ID)
		}
		seen[p.ID] = true
		switch check.BudgetMode(p.Mode) {
		case check.ModeTrap, check.ModeResultErr, check.ModeYield:
		default:
			return fmt.Errorf("profile %s: invalid mode %q", p.ID, p.Mode)
		}
	}
	return nil
}

// FindProfile locates a profile by id.
func (m *Manifest) FindProfile(id string) (*Profile, bool) {
	for i := range m.Profiles {
		if m.Profiles[i].ID == id {
			return &m.Profiles[i], true
		}
	}
	return nil, false
}

// Resolver adapts m into a check.ProfileResolver for
// budget.scope_from_arch_v1.
func (m *Manifest) Resolver() check.ProfileResolver {
	index := make(map[string]check.BudgetConfig, len(m.Profiles))
	for _, p := range m.Profiles {
		index[p.ID] = check.BudgetConfig{Mode: check.BudgetMode(p.Mode), MaxCases: p.MaxCases}
	}
	return func(profileID string) (check.BudgetConfig, bool) {
		cfg, ok := index[profileID]
		return cfg, ok
	}
}
