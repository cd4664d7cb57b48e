package config

import (
	"errors"
	"os"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

func (c Config) Validate() error {
	if c.HomeDirectory == "" {
		return errors.New("invalid home directory")
	}
	if c.CacheDirectory == "" {
		return errors.New("invalid cache directory")
	}
	if c.StashCfg.MenuMaxAge <= 0 || c.StashCfg.LandingMaxAge <= 0 {
		return errors.New("stash ages must be positive")
	}
	if c.NetworkCfg.CloneTimeout <= 0 || c.NetworkCfg.FetchTimeout <= 0 {
		return errors.New("network timeouts must be positive")
	}
	if c.APICfg.ListenAddress == "" {
		return errors.New("invalid api listen address")
	}
	if c.APICfg.Port <= 0 || c.APICfg.Port > 65535 {
		return errors.New("invalid api port")
	}
	if c.APICfg.PathPrefix != "" && !strings.HasPrefix(c.APICfg.PathPrefix, "/") {
		return errors.New("api path prefix must start with /")
	}
	return nil
}

// ReadConfig parses data on top of the defaults and returns the Config.
// Error during parsing or an invalid configuration will return an error.
func ReadConfig(data []byte) (*Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, config.Validate()
}

// Export converts the config to yaml format
func (c Config) Export() ([]byte, error) {
	sb := strings.Builder{}
	sb.WriteString("############################\n")
	sb.WriteString("### RSP Tutorials Config ###\n")
	sb.WriteString("############################\n\n")

	d, err := yaml.Marshal(&c)
	if err != nil {
		return nil, err
	}

	sb.Write(d)

	sb.WriteString("\n############################\n")

	return []byte(sb.String()), nil
}

// envOr returns the value of the environment variable key, or fallback when
// it is unset or empty.
func envOr(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
