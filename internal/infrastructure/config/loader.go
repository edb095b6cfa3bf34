// Package config loads ~/.byteagent/config.yaml and the .env files that hold
// summarizer credentials.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "BYTEAGENT_CONFIG"

// FileLoader loads YAML configuration from ~/.byteagent/config.yaml (overridable via BYTEAGENT_CONFIG).
type FileLoader struct {
	overridePath string
	envFiles     []string
}

// NewFileLoader builds a new loader. An empty path defers to BYTEAGENT_CONFIG
// and then the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{
		overridePath: path,
		envFiles:     []string{".env", homedir.AppPath(".env")},
	}
}

// WithEnvFiles replaces the .env files read before the config.
func (l *FileLoader) WithEnvFiles(files ...string) *FileLoader {
	l.envFiles = files
	return l
}

// Load implements ports.ConfigProvider. A missing file is created with the
// defaults.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	if _, err := LoadDotEnv(l.envFiles...); err != nil {
		return domain.Config{}, err
	}

	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := writeConfig(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return hydrateDefaults(cfg), nil
}

// LoadDotEnv loads the existing files among paths into the process
// environment. Variables already set are never overwritten. It returns the
// files that were read.
func LoadDotEnv(paths ...string) ([]string, error) {
	var loaded []string
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return loaded, fmt.Errorf("load %s: %w", path, err)
		}
		loaded = append(loaded, path)
	}
	return loaded, nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return homedir.Expand(l.overridePath)
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return homedir.Expand(custom)
	}
	return homedir.AppPath("config.yaml")
}

// Save writes cfg to the config file.
func (l *FileLoader) Save(cfg domain.Config) error {
	path := l.Path()
	if err := ensureConfigDir(path); err != nil {
		return err
	}
	return writeConfig(path, cfg)
}

// Reset overwrites the config file with the defaults.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := DefaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Backup copies the current config file next to itself with a timestamp suffix.
func (l *FileLoader) Backup() (string, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeConfig(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
