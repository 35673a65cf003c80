package installer

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogFileName is the install log kept in the temporary directory.
const LogFileName = ".fsmd_install_log"

// OpenLog creates a fresh install log in dir, keeping the previous one as "<name>_old".
func OpenLog(dir string) (*os.File, error) {
	current := filepath.Join(dir, LogFileName)
	old := current + "_old"

	if _, err := os.Stat(current); err == nil {
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove old install log: %w", err)
		}
		if err := os.Rename(current, old); err != nil {
			return nil, fmt.Errorf("failed to rotate install log: %w", err)
		}
	}

	f, err := os.Create(current)
	if err != nil {
		return nil, fmt.Errorf("failed to create install log: %w", err)
	}
	return f, nil
}
