package config

import (
	"fmt"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// tree is c as nested yaml maps, keyed by yaml tag.
func (c Config) tree() (map[string]any, error) {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return nil, err
	}
	var t map[string]any
	err = yaml.Unmarshal(data, &t)
	return t, err
}

// lookup walks a dotted key such as api_config.port and returns the map
// holding the last segment.
func lookup(t map[string]any, key string) (map[string]any, string, error) {
	parts := strings.Split(key, ".")
	for _, part := range parts[:len(parts)-1] {
		sub, ok := t[part].(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("unknown config key: %s", key)
		}
		t = sub
	}
	leaf := parts[len(parts)-1]
	if _, ok := t[leaf]; !ok {
		return nil, "", fmt.Errorf("unknown config key: %s", key)
	}
	return t, leaf, nil
}

// Get renders the value at a dotted key. Sections come back as yaml, lists
// comma separated.
func (c Config) Get(key string) (string, error) {
	t, err := c.tree()
	if err != nil {
		return "", err
	}
	parent, leaf, err := lookup(t, key)
	if err != nil {
		return "", err
	}

	switch v := parent[leaf].(type) {
	case map[string]any:
		data, err := yaml.Marshal(v)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = fmt.Sprint(item)
		}
		return strings.Join(items, ","), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// Set returns a copy of c with the value at a dotted key replaced. Strings
// are taken verbatim, lists are comma separated and everything else is
// parsed as a yaml scalar. The result is validated.
func (c Config) Set(key string, value string) (*Config, error) {
	t, err := c.tree()
	if err != nil {
		return nil, err
	}
	parent, leaf, err := lookup(t, key)
	if err != nil {
		return nil, err
	}

	switch parent[leaf].(type) {
	case map[string]any:
		return nil, fmt.Errorf("%s is a section, set one of its keys", key)
	case []any:
		items := make([]any, 0)
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		parent[leaf] = items
	case string:
		parent[leaf] = value
	default:
		var v any
		err := yaml.Unmarshal([]byte(value), &v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		parent[leaf] = v
	}

	data, err := yaml.Marshal(t)
	if err != nil {
		return nil, err
	}
	cfg, err := ReadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return cfg, nil
}
