package helpers

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/byte-agent-go/internal/app"
	configapp "github.com/doeshing/byte-agent-go/internal/application/config"
	"github.com/doeshing/byte-agent-go/internal/domain"
	configinfra "github.com/doeshing/byte-agent-go/internal/infrastructure/config"
)

// ErrUnknownSetting is returned for dotted keys that name nothing in the
// config schema.
var ErrUnknownSetting = errors.New("unknown setting")

// ConfigLoader returns the file loader behind the container's configuration.
func ConfigLoader(container *app.Container) (*configinfra.FileLoader, error) {
	if container == nil || container.ConfigLoader == nil {
		return nil, errors.New("config loader unavailable")
	}
	return container.ConfigLoader, nil
}

// SaveConfig validates cfg, backs up the current file and writes cfg. It
// returns the backup path, empty when there was no file to back up.
func SaveConfig(container *app.Container, cfg domain.Config) (string, error) {
	loader, err := ConfigLoader(container)
	if err != nil {
		return "", err
	}
	if err := configapp.Validate(cfg); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}

	var backup string
	if _, err := os.Stat(loader.Path()); err == nil {
		if backup, err = loader.Backup(); err != nil {
			return "", fmt.Errorf("back up %s: %w", loader.Path(), err)
		}
	}
	if err := loader.Save(cfg); err != nil {
		return backup, fmt.Errorf("save %s: %w", loader.Path(), err)
	}
	return backup, nil
}

// LookupSetting returns the value at a dotted key such as "chunking.size".
func LookupSetting(cfg domain.Config, key string) (interface{}, error) {
	tree, err := settingsTree(cfg)
	if err != nil {
		return nil, err
	}
	var node interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		if node, ok = m[part]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
	}
	return node, nil
}

// AssignSetting returns a copy of cfg with key set to raw, parsed as YAML (a
// value that is not valid YAML is kept as a plain string). Keys must already
// exist, so a misspelt key is an error instead of being dropped on decode. The
// result is validated before it is returned.
func AssignSetting(cfg domain.Config, key, raw string) (domain.Config, error) {
	tree, err := settingsTree(cfg)
	if err != nil {
		return domain.Config{}, err
	}

	parts := strings.Split(key, ".")
	parent := tree
	for _, part := range parts[:len(parts)-1] {
		child, ok := parent[part].(map[string]interface{})
		if !ok {
			return domain.Config{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
		}
		parent = child
	}
	leaf := parts[len(parts)-1]
	if _, ok := parent[leaf]; !ok {
		return domain.Config{}, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	parent[leaf] = parseScalar(raw)

	data, err := yaml.Marshal(tree)
	if err != nil {
		return domain.Config{}, fmt.Errorf("encode config: %w", err)
	}
	var updated domain.Config
	if err := yaml.Unmarshal(data, &updated); err != nil {
		return domain.Config{}, fmt.Errorf("%s: %w", key, err)
	}
	if err := configapp.Validate(updated); err != nil {
		return domain.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return updated, nil
}

func settingsTree(cfg domain.Config) (map[string]interface{}, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	var tree map[string]interface{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return tree, nil
}

func parseScalar(raw string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw
	}
	return parsed
}
