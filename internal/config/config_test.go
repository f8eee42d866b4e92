package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gravel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("gravel", pflag.ContinueOnError)
	flags.String("driver", "", "")
	flags.String("host", "", "")
	flags.Int("port", 0, "")
	flags.String("user", "", "")
	flags.String("password", "", "")
	flags.String("db", "", "")
	flags.Int32("maxsize", 0, "")
	flags.Int32("minsize", 0, "")
	flags.Bool("verbose", false, "")
	return flags
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Driver)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "utf8", cfg.Charset)
	assert.True(t, cfg.AutocommitEnabled())
	assert.Equal(t, int32(10), cfg.MaxSize)
	assert.Equal(t, int32(1), cfg.PoolMinSize())
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
driver: postgres
user: www-data
password: www-data
db: awesome
autocommit: false
maxsize: 4
options:
  application_name: gravel
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, 5432, cfg.Port)
	assert.Equal(t, "www-data", cfg.User)
	assert.Equal(t, "awesome", cfg.DB)
	assert.False(t, cfg.AutocommitEnabled())
	assert.Equal(t, int32(4), cfg.MaxSize)
	assert.Equal(t, "gravel", cfg.Options["application_name"])
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DiscoversDefaultFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gravel.yml"), []byte("db: found\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "found", cfg.DB)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
user: from-file
password: from-file
db: from-file
maxsize: 4
`)
	t.Setenv("GRAVEL_PASSWORD", "from-env")
	t.Setenv("GRAVEL_DB", "from-env")
	t.Setenv("GRAVEL_MAXSIZE", "6")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--db", "from-flag", "--verbose"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.User)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "from-flag", cfg.DB)
	assert.Equal(t, int32(6), cfg.MaxSize)
	// Unset flags do not clobber lower layers.
	assert.Equal(t, 3306, cfg.Port)
}

func TestLoad_ZeroMinSize(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GRAVEL_MINSIZE", "0")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.NotNil(t, cfg.MinSize)
	assert.Equal(t, int32(0), cfg.PoolMinSize())
}

func TestLoad_SQLite(t *testing.T) {
	t.Chdir(t.TempDir())

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--driver", "sqlite", "--db", "awesome.db"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Empty(t, cfg.Host)
	assert.Zero(t, cfg.Port)
	assert.NoError(t, cfg.Validate())
}
