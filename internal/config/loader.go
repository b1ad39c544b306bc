package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"infobubble/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/infobubble"
	projectConfigDir = ".infobubble"
	configFileName   = "config.yaml"
)

// LoadConfig layers the defaults, the user config, the project config and
// finally explicitPath, when it is not empty. Missing user and project
// files are skipped; a missing explicit file is an error.
func LoadConfig(explicitPath string) (Config, error) {
	config := GetDefaultConfig()

	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{"user", getUserConfigPath},
		{"project", getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			logging.Warn("Config", "could not determine %s config path: %v", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := LoadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		logging.Debug("Config", "applied %s config %s", layer.name, path)
		config = mergeConfigs(config, overlay)
	}

	if explicitPath != "" {
		overlay, err := LoadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// LoadConfigFromFile reads a single file, TOML when it ends in .toml and
// YAML otherwise, and expands environment references in its strings.
func LoadConfigFromFile(filePath string) (Config, error) {
	var config Config
	if strings.EqualFold(filepath.Ext(filePath), ".toml") {
		if _, err := toml.DecodeFile(filePath, &config); err != nil {
			return Config{}, err
		}
	} else {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, err
		}
	}
	expandConfig(&config)
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config.
func mergeConfigs(base, overlay Config) Config {
	merged := base
	merged.Bubble = mergeBubble(base.Bubble, overlay.Bubble)

	if overlay.Map.Center != nil {
		c := *overlay.Map.Center
		merged.Map.Center = &c
	}
	if overlay.Map.Zoom != nil {
		merged.Map.Zoom = overlay.Map.Zoom
	}
	if overlay.Map.Width > 0 {
		merged.Map.Width = overlay.Map.Width
	}
	if overlay.Map.Height > 0 {
		merged.Map.Height = overlay.Map.Height
	}

	// Markers keep their first position; a later layer replaces by name.
	merged.Markers = append([]MarkerDefinition(nil), base.Markers...)
	index := make(map[string]int, len(merged.Markers))
	for i, m := range merged.Markers {
		index[m.Name] = i
	}
	for _, m := range overlay.Markers {
		if i, ok := index[m.Name]; ok {
			merged.Markers[i] = m
			continue
		}
		index[m.Name] = len(merged.Markers)
		merged.Markers = append(merged.Markers, m)
	}

	return merged
}

func mergeBubble(base, overlay BubbleSettings) BubbleSettings {
	pick := func(dst **int, src *int) {
		if src != nil {
			*dst = src
		}
	}
	pickString := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	pickBool := func(dst **bool, src *bool) {
		if src != nil {
			*dst = src
		}
	}

	m := base
	pick(&m.ArrowSize, overlay.ArrowSize)
	pick(&m.ArrowStyle, overlay.ArrowStyle)
	pick(&m.ArrowPosition, overlay.ArrowPosition)
	pick(&m.ShadowStyle, overlay.ShadowStyle)
	pick(&m.Padding, overlay.Padding)
	pick(&m.BorderWidth, overlay.BorderWidth)
	pick(&m.BorderRadius, overlay.BorderRadius)
	pickString(&m.BorderColor, overlay.BorderColor)
	pickString(&m.BackgroundColor, overlay.BackgroundColor)
	pickString(&m.CloseSrc, overlay.CloseSrc)
	pick(&m.MinWidth, overlay.MinWidth)
	pick(&m.MinHeight, overlay.MinHeight)
	pick(&m.MaxWidth, overlay.MaxWidth)
	pick(&m.MaxHeight, overlay.MaxHeight)
	pick(&m.ZIndex, overlay.ZIndex)
	pickBool(&m.DisableAutoPan, overlay.DisableAutoPan)
	pickBool(&m.DisableAnimation, overlay.DisableAnimation)
	pickBool(&m.HideCloseButton, overlay.HideCloseButton)
	pickString(&m.TabClassName, overlay.TabClassName)
	pickString(&m.BackgroundClassName, overlay.BackgroundClassName)
	return m
}

// expandConfig resolves ${VAR} and ${VAR:-default} in every string value.
func expandConfig(c *Config) {
	for _, p := range []*string{
		c.Bubble.BorderColor,
		c.Bubble.BackgroundColor,
		c.Bubble.CloseSrc,
		c.Bubble.TabClassName,
		c.Bubble.BackgroundClassName,
	} {
		if p != nil {
			*p = expandEnvVars(*p)
		}
	}
	for i := range c.Markers {
		m := &c.Markers[i]
		m.Name = expandEnvVars(m.Name)
		m.Glyph = expandEnvVars(m.Glyph)
		m.Content = expandEnvVars(m.Content)
		for j := range m.Tabs {
			m.Tabs[j].Label = expandEnvVars(m.Tabs[j].Label)
			m.Tabs[j].Content = expandEnvVars(m.Tabs[j].Content)
		}
	}
}

func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, func(key string) string {
		name, fallback, hasDefault := strings.Cut(key, ":-")
		if v, ok := os.LookupEnv(name); ok && (v != "" || !hasDefault) {
			return v
		}
		return fallback
	})
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
