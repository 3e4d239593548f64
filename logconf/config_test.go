package logconf_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golift.io/applog"
	"golift.io/applog/logconf"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	config, err := logconf.Load(writeConfig(t, "log.yml", `
level: debug
dir: /var/log/service
file_name: service.log
file_size: 2048
file_count: 5
check_interval: 250ms
`))
	require.NoError(t, err)
	assert.Equal(applog.LevelDebug, config.Level)
	assert.Equal("/var/log/service", config.Dir)
	assert.Equal("service.log", config.FileName)
	assert.EqualValues(2048, config.FileSize)
	assert.Equal(5, config.FileCount)
	assert.Equal(250*time.Millisecond, config.Interval)
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	config, err := logconf.Load(writeConfig(t, "log.JSON", `{"level": 0, "check_interval": "-1s"}`))
	require.NoError(t, err)
	assert.Equal(applog.LevelError, config.Level)
	assert.Equal(-time.Second, config.Interval)
	assert.Equal(applog.DefaultDir, config.Dir)
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	config, err := logconf.Load(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(applog.DefaultLevel, config.Level)
	assert.Equal(applog.DefaultDir, config.Dir)
	assert.Empty(config.FileName)
	assert.Zero(config.FileSize)
	assert.Zero(config.FileCount)
	assert.Zero(config.Interval)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := logconf.Load("")
	assert.ErrorIs(err, logconf.ErrEmptyPath)

	_, err = logconf.Load("/etc/app.toml")
	assert.ErrorIs(err, logconf.ErrUnsupportedFormat)

	_, err = logconf.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(err, logconf.ErrLoad)
	assert.ErrorIs(err, os.ErrNotExist)

	_, err = logconf.Load(writeConfig(t, "bad.json", `{"level": `))
	assert.ErrorIs(err, logconf.ErrParse)

	_, err = logconf.Load(writeConfig(t, "level.yaml", "level: trace\n"))
	assert.ErrorIs(err, logconf.ErrParse)
	assert.ErrorIs(err, applog.ErrUnknownLevel)

	_, err = logconf.Load(writeConfig(t, "interval.yaml", "check_interval: soon\n"))
	assert.ErrorIs(err, logconf.ErrParse)

	_, err = logconf.Load(writeConfig(t, "count.yaml", "file_count: -3\n"))
	assert.ErrorIs(err, logconf.ErrParse)

	_, err = logconf.Parse([]byte("level: info"), "toml")
	assert.ErrorIs(err, logconf.ErrUnsupportedFormat)
}
