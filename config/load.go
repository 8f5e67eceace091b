package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileName is the name of the settings file searched for when no path is given.
const FileName = "hellod.yaml"

// GetConfigPathFromWorkingDirectory locates a settings file relative to the current working directory
func GetConfigPathFromWorkingDirectory(homeDir string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WithStack(err)
	}
	return GetConfigPath(homeDir, wd)
}

// GetConfigPath identifies the location of hellod.yaml, if any exists.
// The working directory and its parents are searched first, then homeDir.
// An empty path is returned when no file is found.
func GetConfigPath(homeDir string, wd string) (string, error) {
	var pathOptions []string

	pathOptions = append(pathOptions, filepath.Join(wd, FileName))
	for filepath.Dir(wd) != wd {
		wd = filepath.Dir(wd)
		pathOptions = append(pathOptions, filepath.Join(wd, FileName))
	}
	if homeDir != "" {
		pathOptions = append(pathOptions, filepath.Join(homeDir, FileName))
	}

	for _, path := range pathOptions {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		absfp, err := filepath.Abs(path)
		if err != nil {
			return "", errors.Wrap(err, "could not resolve config path")
		}
		return absfp, nil
	}

	return "", nil
}
