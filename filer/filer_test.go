package filer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"golift.io/applog/filer"
)

// Our interface must satify a filer.Filer.
var _ filer.Filer = (*MyFiler)(nil)

// Create a custom Filer that overrides only the Rename method.
type MyFiler struct {
	filer.File
}

func (f *MyFiler) Rename(oldpath, newpath string) error {
	fmt.Printf("Renamed %s -> %s\n", oldpath, newpath)

	return nil
}

func ExampleFile() {
	// Pass s into any package that uses a filer.Filer.
	s := &MyFiler{}
	_ = s.Rename("old.file", "new.file")
	// Output:
	// Renamed old.file -> new.file
}

func TestExists(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "app.log")
	f := filer.Default()

	ok, err := filer.Exists(f, name)
	assert.NoError(err, "a missing file is not an error")
	assert.False(ok)

	assert.NoError(os.WriteFile(name, []byte("x"), 0o600))

	ok, err = filer.Exists(f, name)
	assert.NoError(err)
	assert.True(ok)
}
