package home

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// HellodConfiguration defines the directories hellod keeps under its home dir
type HellodConfiguration struct {
	Dir      string
	LogDir   string
	CacheDir string
}

func createDirIfNeeded(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return errors.WithStack(os.MkdirAll(path, 0755))
	}
	return nil
}

// NewConfiguration creates a HellodConfiguration rooted at homeDir,
// falling back to ~/.hellod when homeDir is empty.
func NewConfiguration(homeDir string) (*HellodConfiguration, error) {
	cfg := &HellodConfiguration{}
	if homeDir != "" {
		return cfg, errors.WithStack(cfg.initializeWithDir(homeDir))
	}
	return cfg, errors.WithStack(cfg.Initialize())
}

// Initialize sets up the configuration based on the location of .hellod in the user's home dir
func (h *HellodConfiguration) Initialize() error {
	userHome, err := homedir.Dir()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(h.initializeWithDir(filepath.Join(userHome, ".hellod")))
}

func (h *HellodConfiguration) initializeWithDir(dir string) error {
	h.Dir = dir
	h.LogDir = filepath.Join(dir, "logs")
	h.CacheDir = filepath.Join(dir, "cache")
	for _, d := range []string{h.Dir, h.LogDir, h.CacheDir} {
		if err := createDirIfNeeded(d); err != nil {
			return errors.Wrapf(err, "could not create %v", d)
		}
	}
	return nil
}
