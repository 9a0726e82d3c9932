package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x07lang/x07ast/internal/check"
)

func TestNew_StampsCurrentSchemaVersion(t *testing.T) {
	m := New()
	require.Equal(t, SchemaVersion, m.SchemaVersion)
	require.Empty(t, m.Profiles)
	require.NoError(t, m.Validate())
}

func TestValidate_RejectsUnsupportedSchemaVersion(t *testing.T) {
	m := &Manifest{SchemaVersion: "x07ast.archmanifest/v2"}
	err := m.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported schema version")
}

func TestValidate_RejectsDuplicateProfileID(t *testing.T) {
	m := &Manifest{
		SchemaVersion: SchemaVersion,
		Profiles: []Profile{
			{ID: "fuzz.default", Mode: "trap_v1"},
			{ID: "fuzz.default", Mode: "yield_v1"},
		},
	}
	err := m.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate profile id")
}

func TestValidate_RejectsUnknownMode(t *testing.T) {
	m := &Manifest{
		SchemaVersion: SchemaVersion,
		Profiles:      []Profile{{ID: "p1", Mode: "explode_v1"}},
	}
	err := m.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid mode")
}

func TestSaveLoad_RoundTripsAndSortsProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arch.yaml")

	m := New()
	m.Profiles = []Profile{
		{ID: "zz.last", Mode: "trap_v1", MaxCases: 10},
		{ID: "aa.first", Mode: "result_err_v1", MaxCases: 5},
	}
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Profiles, 2)
	require.Equal(t, "aa.first", loaded.Profiles[0].ID)
	require.Equal(t, "zz.last", loaded.Profiles[1].ID)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), "aa.first")
}

func TestResolver_ResolvesKnownProfileAndRejectsUnknown(t *testing.T) {
	m := &Manifest{
		SchemaVersion: SchemaVersion,
		Profiles:      []Profile{{ID: "fuzz.default", Mode: "trap_v1", MaxCases: 1024}},
	}
	resolve := m.Resolver()

	cfg, ok := resolve("fuzz.default")
	require.True(t, ok)
	require.Equal(t, check.ModeTrap, cfg.Mode)
	require.Equal(t, 1024, cfg.MaxCases)

	_, ok = resolve("nope")
	require.False(t, ok)
}
