package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the application paths derived from the executable location.
type Paths struct {
	ExecutableDir string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable location
// All paths are relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)
	return &Paths{
		ExecutableDir: exeDir,
		LogsDir:       filepath.Join(exeDir, "logs"),
	}, nil
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
