package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://localhost:8080"
	profileDir     = "farmctl"
	profileFile    = "config.yaml"
	sessionFile    = "session.json"
)

// Profile is the farmctl configuration file.
type Profile struct {
	BaseURL     string `yaml:"base_url"`
	SessionFile string `yaml:"session_file,omitempty"`
}

func defaultProfilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, profileDir, profileFile)
}

// loadProfile falls back to the defaults when path does not exist.
func loadProfile(path string) (Profile, error) {
	profile := Profile{BaseURL: defaultBaseURL}

	raw, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return profile, fmt.Errorf("failed to read profile: %w", err)
	}

	if err == nil {
		if err = yaml.Unmarshal(raw, &profile); err != nil {
			return profile, fmt.Errorf("failed to parse profile %s: %w", path, err)
		}
	}

	if profile.BaseURL == "" {
		profile.BaseURL = defaultBaseURL
	}

	if profile.SessionFile == "" {
		profile.SessionFile = filepath.Join(filepath.Dir(path), sessionFile)
	}

	return profile, nil
}
