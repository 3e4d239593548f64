package introtator

import (
	"fmt"

	"golift.io/applog/filer"
)

// Rotate moves fileName to backup 1 and returns its new name.
// The oldest backup is deleted, then backups FileCount-1 through 1 are each
// renamed one integer higher. The walk must go down; going up would clobber
// a file before it was moved. Missing backups are skipped, so gaps are fine.
// An empty string and nil error are returned if fileName does not exist,
// and the backups are left alone.
func (l *Layout) Rotate(fileName string) (string, error) {
	var (
		files = l.getFiler()
		count = l.fileCount()
	)

	exists, err := filer.Exists(files, fileName)
	if err != nil {
		return "", fmt.Errorf("checking log file: %w", err)
	} else if !exists {
		return "", nil
	}

	if err := removeIfExists(files, l.Backup(fileName, count)); err != nil {
		return "", err
	}

	for idx := count - 1; idx >= 1; idx-- {
		if err := renameIfExists(files, l.Backup(fileName, idx), l.Backup(fileName, idx+1)); err != nil {
			return "", fmt.Errorf("error rotating backup file: %w", err)
		}
	}

	newPath := l.Backup(fileName, 1)
	if err := files.Rename(fileName, newPath); err != nil {
		return "", fmt.Errorf("error rotating file: %w", err)
	}

	return newPath, nil
}

func removeIfExists(files filer.Filer, fileName string) error {
	exists, err := filer.Exists(files, fileName)
	if err != nil {
		return fmt.Errorf("checking oldest file: %w", err)
	} else if !exists {
		return nil
	}

	if err := files.Remove(fileName); err != nil {
		return fmt.Errorf("error removing file: %w", err)
	}

	return nil
}

func renameIfExists(files filer.Filer, oldPath, newPath string) error {
	exists, err := filer.Exists(files, oldPath)
	if err != nil || !exists {
		return err
	}

	return files.Rename(oldPath, newPath) //nolint:wrapcheck // wrapped by caller.
}
