package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/habiliai/assistantchat/errors"
)

// DefaultSelector is the selector used when the caller does not pick a
// named assistant explicitly.
const DefaultSelector = "default"

// AssistantsConfig maps logical assistant selectors to remote assistant
// identifiers. The default entry comes from ASSISTANT_ID; additional named
// assistants come from a YAML directory file.
type AssistantsConfig struct {
	Default    string            `yaml:"default" env:"ASSISTANT_ID"`
	Assistants map[string]string `yaml:"assistants"`
}

func NewAssistantsConfig() *AssistantsConfig {
	conf := &AssistantsConfig{
		Assistants: map[string]string{},
	}
	_ = resolveConfig(conf)
	return conf
}

// LoadAssistantsFromFile reads a YAML assistant directory file.
func LoadAssistantsFromFile(file string) (*AssistantsConfig, error) {
	yamlBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", file)
	}

	conf := &AssistantsConfig{}
	if err := yaml.Unmarshal(yamlBytes, conf); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal file %s", file)
	}
	if conf.Assistants == nil {
		conf.Assistants = map[string]string{}
	}

	return conf, nil
}

// Lookup resolves a selector to a remote assistant id. An empty selector
// resolves to the default entry.
func (c *AssistantsConfig) Lookup(selector string) (string, bool) {
	if selector == "" || selector == DefaultSelector {
		return c.Default, c.Default != ""
	}
	id, ok := c.Assistants[selector]
	return id, ok && id != ""
}

// Merge overlays non-empty entries of other onto c and returns c.
func (c *AssistantsConfig) Merge(other *AssistantsConfig) *AssistantsConfig {
	if other == nil {
		return c
	}
	if other.Default != "" {
		c.Default = other.Default
	}
	for name, id := range other.Assistants {
		if id != "" {
			c.Assistants[name] = id
		}
	}
	return c
}
