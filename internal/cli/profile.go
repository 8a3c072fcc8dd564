// Package cli holds shared state for the estately command line tool:
// named connection profiles pointing at landlord API environments.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	configDirName = "estately"
	profilesDir   = "profiles"
	stateFile     = "state.json"
)

// Profile is a saved landlord API connection.
type Profile struct {
	Name       string `json:"name"`
	APIURL     string `json:"api_url"`
	APIKey     string `json:"api_key,omitempty"`
	BaseDomain string `json:"base_domain"`
}

// State holds the active profile selection.
type State struct {
	ActiveProfile string `json:"active_profile"`
}

// configDir returns the base config directory (~/.config/estately/).
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return filepath.Join(xdgConfig, configDirName), nil
}

// ensureConfigDir creates the config directory structure if needed.
func ensureConfigDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Join(dir, profilesDir), 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return dir, nil
}

// SaveProfile stores a connection profile. The name is sanitized to a
// filesystem-safe slug; the sanitized profile is returned.
func SaveProfile(p Profile) (*Profile, error) {
	dir, err := ensureConfigDir()
	if err != nil {
		return nil, err
	}

	p.Name = sanitizeName(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("profile name is required")
	}
	if p.APIURL == "" {
		return nil, fmt.Errorf("profile API URL is required")
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	path := filepath.Join(dir, profilesDir, p.Name+".json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("write profile: %w", err)
	}

	return &p, nil
}

// ListProfiles returns all saved profiles.
func ListProfiles() ([]Profile, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	pDir := filepath.Join(dir, profilesDir)
	entries, err := os.ReadDir(pDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profiles directory: %w", err)
	}

	var profiles []Profile
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(pDir, entry.Name()))
		if err != nil {
			continue
		}

		var p Profile
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// LoadProfile loads a profile by name.
func LoadProfile(name string) (*Profile, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, profilesDir, name+".json"))
	if err != nil {
		return nil, fmt.Errorf("profile %q not found: %w", name, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	return &p, nil
}

// DeleteProfile removes a saved profile.
func DeleteProfile(name string) error {
	dir, err := configDir()
	if err != nil {
		return err
	}

	os.Remove(filepath.Join(dir, profilesDir, name+".json"))

	// If this was the active profile, clear it.
	state, _ := loadState()
	if state != nil && state.ActiveProfile == name {
		state.ActiveProfile = ""
		saveState(state)
	}

	return nil
}

// SetActive sets the active profile.
func SetActive(name string) error {
	// Verify profile exists.
	if _, err := LoadProfile(name); err != nil {
		return err
	}

	return saveState(&State{ActiveProfile: name})
}

// GetActive returns the currently active profile name.
func GetActive() (string, error) {
	state, err := loadState()
	if err != nil {
		return "", nil // no state file = no active profile
	}
	return state.ActiveProfile, nil
}

// ActiveProfile loads the currently active profile, or nil when none is set.
func ActiveProfile() (*Profile, error) {
	name, err := GetActive()
	if err != nil || name == "" {
		return nil, err
	}
	return LoadProfile(name)
}

func loadState() (*State, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, stateFile))
	if err != nil {
		return nil, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}

	return &state, nil
}

func saveState(state *State) error {
	dir, err := ensureConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, stateFile), data, 0600)
}

func sanitizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
	return strings.Trim(name, "-")
}
