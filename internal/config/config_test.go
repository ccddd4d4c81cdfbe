package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ecs")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres", cfg.SequenceBackend)
	assert.False(t, cfg.PreviewPlaceholder)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ecs")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("SEQUENCE_BACKEND", "etcd")

	_, err := Load()
	assert.ErrorContains(t, err, "SEQUENCE_BACKEND")
}

func TestLoad_RequiresAuth(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/ecs")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_JWKS_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFirmProfile_MissingFileUsesDefaults(t *testing.T) {
	profile, err := LoadFirmProfile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFirmProfile(), profile)
}

func TestLoadFirmProfile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firm.toml")
	content := `
name = "Excel Care Solutions"
state = "Kerala"
document_prefix = "EC"

[bank]
ifsc_code = "HDFC0000001"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profile, err := LoadFirmProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "EC", profile.DocumentPrefix)
	assert.Equal(t, "HDFC0000001", profile.Bank.IFSCCode)
	assert.Equal(t, "State Bank of India", profile.Bank.BankName)
	assert.Equal(t, "32AAMFE1322R1ZB", profile.GSTIN)
}

func TestLoadFirmProfile_BadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firm.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = "), 0o600))

	_, err := LoadFirmProfile(path)
	assert.ErrorContains(t, err, "failed to load firm profile")
}
