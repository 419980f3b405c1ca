package guard

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates an unusable guard configuration.
var ErrInvalidConfig = errors.New("guard.invalid_config")

// Config defines one protected subtree. BlockedUsers is a static
// exclusion list of login handles, not an RBAC ruleset.
type Config struct {
	BlockedUsers []string `yaml:"blocked_users"`
	RedirectTo   string   `yaml:"redirect_to"`
	RequireAuth  bool     `yaml:"require_auth"`
}

// LoadConfig reads a guard configuration from a YAML file.
//
//	blocked_users: [GESNEU]
//	redirect_to: /
//	require_auth: false
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if cfg.RedirectTo == "" {
		cfg.RedirectTo = "/"
	}
	return cfg, nil
}
