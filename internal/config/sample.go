package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const sampleHeader = "cueconvert configuration; every key is optional"

// Sample renders the default configuration as "yaml" or "toml" so users
// can bootstrap a config file.
func Sample(format string) ([]byte, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		body, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to render yaml sample: %w", err)
		}
		return append([]byte("# "+sampleHeader+"\n"), body...), nil
	case "toml":
		body, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to render toml sample: %w", err)
		}
		return append([]byte("# "+sampleHeader+"\n"), body...), nil
	default:
		return nil, fmt.Errorf("unknown sample format %q (want yaml or toml)", format)
	}
}
