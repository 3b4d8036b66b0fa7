package cli

import "github.com/biofabric/biofabric/pkg/config"

// loadConfig reads a TOML configuration file, or returns the package
// defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}
