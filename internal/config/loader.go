package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".linkguard"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Organization names the site owner shown in the confirmation message.
type Organization struct {
	// Name is the full organisation name.
	Name string `yaml:"name,omitempty"`

	// Abbreviation is the short organisation name.
	Abbreviation string `yaml:"abbreviation,omitempty"`
}

// File represents the structure of the .linkguard configuration file.
type File struct {
	// BaseURL is the URL the documents are served from.
	BaseURL string `yaml:"base_url,omitempty"`

	// OutDir is the default output directory.
	OutDir string `yaml:"out_dir,omitempty"`

	// Organization is shown in the confirmation message.
	Organization Organization `yaml:"organization,omitempty"`

	// InlineConfirm overrides the onclick default when set.
	InlineConfirm *bool `yaml:"inline_confirm,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, if specified
//  2. .linkguard in the current directory
//  3. config.yaml in the XDG config directory (~/.config/linkguard)
//  4. .linkguard in the user's home directory
//
// Returns the path of the first existing file, or empty string.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	return ""
}
