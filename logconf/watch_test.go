package logconf_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golift.io/applog"
	"golift.io/applog/logconf"
)

// changes collects Watcher callbacks.
type changes struct {
	mu      sync.Mutex
	configs []*applog.Config
	errs    []error
}

func (c *changes) change(config *applog.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.configs = append(c.configs, config)
}

func (c *changes) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs = append(c.errs, err)
}

func (c *changes) last() *applog.Config {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.configs) == 0 {
		return nil
	}

	return c.configs[len(c.configs)-1]
}

func (c *changes) errCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.errs)
}

func TestWatch(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "log.yaml", "level: info\n")
	got := &changes{}

	watcher, err := logconf.Watch(path, got.change, got.fail, logconf.WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	watcher.Start()
	watcher.Start() // no-op.

	defer func() { assert.NoError(t, watcher.Stop()) }()

	require.NoError(t, os.WriteFile(path, []byte("level: verbose\n"), 0o600))
	require.Eventually(t, func() bool {
		config := got.last()
		return config != nil && config.Level == applog.LevelVerbose
	}, 5*time.Second, 10*time.Millisecond)

	// Other files in the folder are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("level: x\n"), 0o600))

	// A broken file is reported and the last good config stays.
	require.NoError(t, os.WriteFile(path, []byte("level: trace\n"), 0o600))
	require.Eventually(t, func() bool { return got.errCount() > 0 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, applog.LevelVerbose, got.last().Level)
}

func TestWatchErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := logconf.Watch("", func(*applog.Config) {}, nil)
	assert.ErrorIs(err, logconf.ErrEmptyPath)

	_, err = logconf.Watch("/tmp/log.yaml", nil, nil)
	assert.ErrorIs(err, logconf.ErrNilCallback)

	_, err = logconf.Watch("/tmp/log.ini", func(*applog.Config) {}, nil)
	assert.ErrorIs(err, logconf.ErrUnsupportedFormat)

	_, err = logconf.Watch(filepath.Join(t.TempDir(), "missing", "log.yaml"), func(*applog.Config) {}, nil)
	assert.ErrorIs(err, logconf.ErrWatch)
}

// Stop works without Start, and twice.
func TestWatchStop(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	watcher, err := logconf.Watch(writeConfig(t, "log.json", "{}"), func(*applog.Config) {}, nil)
	require.NoError(t, err)
	assert.NoError(watcher.Stop())
	assert.NoError(watcher.Stop())
}
