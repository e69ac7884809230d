package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the YAML config file shape read by LoadConfig, grounded in
// the teacher's scenario.go YAML config loading. No command of the CLI
// reads a config file: there is no --config flag, and every setting is
// taken from the command's own flags.
type Config struct {
	DBPath      string `yaml:"db_path"`
	SchemaDir   string `yaml:"schema_dir"`
	SinceMillis int64  `yaml:"since_millis"`
	PageSize    int    `yaml:"page_size"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return &cfg, nil
}
