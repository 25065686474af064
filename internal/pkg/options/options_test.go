package options

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsascode/dsc/internal/pkg/env"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/filesystem/aferofs"
	"github.com/dsascode/dsc/internal/pkg/log"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("target", "data/raw", "target directory")
	flags.Bool("verbose", false, "print details")
	return flags
}

func TestDefaultValue(t *testing.T) {
	t.Parallel()
	o := loadOptions(t, env.Empty(), nil, nil)
	assert.Equal(t, "data/raw", o.GetString("target"))
	assert.False(t, o.GetBool("verbose"))
	assert.False(t, o.IsSet("target"))
}

func TestEnvOverDefault(t *testing.T) {
	t.Parallel()
	osEnvs := env.FromMap(map[string]string{"DSC_TARGET": "data/external"})
	o := loadOptions(t, osEnvs, nil, nil)
	assert.Equal(t, "data/external", o.GetString("target"))
	assert.True(t, o.IsSet("target"))
}

func TestEnvFileOverDefault(t *testing.T) {
	t.Parallel()
	o := loadOptions(t, env.Empty(), map[string]string{".env": "DSC_TARGET=from-file"}, nil)
	assert.Equal(t, "from-file", o.GetString("target"))
}

func TestOsEnvOverEnvFile(t *testing.T) {
	t.Parallel()
	osEnvs := env.FromMap(map[string]string{"DSC_TARGET": "from-os"})
	o := loadOptions(t, osEnvs, map[string]string{".env": "DSC_TARGET=from-file"}, nil)
	assert.Equal(t, "from-os", o.GetString("target"))
}

func TestFlagOverEnv(t *testing.T) {
	t.Parallel()
	osEnvs := env.FromMap(map[string]string{"DSC_TARGET": "from-os"})
	o := loadOptions(t, osEnvs, nil, []string{"--target", "from-flag"})
	assert.Equal(t, "from-flag", o.GetString("target"))
	assert.True(t, o.IsSet("target"))
}

func TestManualSetHasHighestPriority(t *testing.T) {
	t.Parallel()
	o := loadOptions(t, env.Empty(), nil, []string{"--target", "from-flag"})
	o.Set("target", "manual")
	assert.Equal(t, "manual", o.GetString("target"))
}

func TestDumpHidesSecrets(t *testing.T) {
	t.Parallel()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("api-key", "", "api key")
	require.NoError(t, flags.Parse([]string{"--api-key", "secret-value"}))

	o := NewOptions()
	logger := log.NewDebugLogger()
	fs := newMemoryFs(t, logger)
	require.NoError(t, o.Load(logger, env.Empty(), fs, flags))

	dump := o.Dump()
	assert.Contains(t, dump, "api-key = *****")
	assert.NotContains(t, dump, "secret-value")
}

func loadOptions(t *testing.T, osEnvs *env.Map, files map[string]string, args []string) *Options {
	t.Helper()
	logger := log.NewDebugLogger()
	fs := newMemoryFs(t, logger)

	for path, content := range files {
		require.NoError(t, fs.WriteFile(filesystem.NewFile(path, content)))
	}

	flags := testFlags()
	require.NoError(t, flags.Parse(args))

	o := NewOptions()
	require.NoError(t, o.Load(logger, osEnvs, fs, flags))
	return o
}

func newMemoryFs(t *testing.T, logger log.Logger) filesystem.Fs {
	t.Helper()
	fs, err := aferofs.NewMemoryFs(logger, "")
	require.NoError(t, err)
	return fs
}
