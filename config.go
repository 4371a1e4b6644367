package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a whole profile layout for the apply command: how many
// profiles are active, which one is selected, and the DPI stored in each
// slot.
type Config struct {
	ProfileCount  int   `yaml:"profile_count"`
	ActiveProfile int   `yaml:"active_profile"`
	Profiles      []int `yaml:"profiles"`
}

func LoadConfig(filename string) (*Config, error) {
	// Default configuration
	config := &Config{
		ProfileCount:  4,
		ActiveProfile: 0,
		Profiles:      []int{800, 1600, 3200, 6400},
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// Create default config file
			if err := SaveConfig(config, filename); err != nil {
				return nil, fmt.Errorf("failed to create default config: %w", err)
			}
			fmt.Printf("📄 Created default config file: %s\n", filename)
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filename, err)
	}

	return config, nil
}

func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filename, data, 0644)
}

// Validate applies the same ranges as the CLI arguments. Nothing touches
// the device until the whole layout checks out.
func (c *Config) Validate() error {
	if err := validateProfileCount(c.ProfileCount); err != nil {
		return err
	}
	if err := validateProfile(c.ActiveProfile); err != nil {
		return err
	}
	if len(c.Profiles) == 0 || len(c.Profiles) > MAX_PROFILES {
		return fmt.Errorf("invalid profile list: %d entries (valid: 1-%d)",
			len(c.Profiles), MAX_PROFILES)
	}
	for i, dpi := range c.Profiles {
		if err := validateDPI(dpi); err != nil {
			return fmt.Errorf("profile %d: %w", i, err)
		}
	}
	return nil
}

// Reports encodes the layout as the report sequence apply sends: per-profile
// DPI values first, then the active count, then the profile selection.
func (c *Config) Reports() [][]byte {
	var reports [][]byte
	for i, dpi := range c.Profiles {
		reports = append(reports, encodeProfileDPI(i, dpi))
	}
	reports = append(reports, encodeProfileCount(c.ProfileCount))
	reports = append(reports, encodeActiveProfile(c.ActiveProfile))
	return reports
}
