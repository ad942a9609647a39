package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DirStatus reports what CheckDirStatus found.
type DirStatus struct {
	Exists   bool
	Writable bool
	Err      error
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func EnsureDir(dir string) error { return os.MkdirAll(dir, 0o755) }

// GetAbsolutePath is path made absolute, "unknown" when empty.
func GetAbsolutePath(path string) string {
	if path == "" {
		return "unknown"
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func GetExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// CheckDirStatus makes sure dir exists and that files can be created in it.
func CheckDirStatus(dir string) DirStatus {
	if err := EnsureDir(dir); err != nil {
		log.Warnf("Cannot create directory %s: %v", dir, err)
		return DirStatus{Err: err}
	}
	probe, err := os.CreateTemp(dir, ".typr-probe-*")
	if err != nil {
		log.Debugf("Directory %s is not writable: %v", dir, err)
		return DirStatus{Exists: true, Err: err}
	}
	probe.Close()
	os.Remove(probe.Name())
	return DirStatus{Exists: true, Writable: true}
}
