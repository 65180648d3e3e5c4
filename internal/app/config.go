package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ContractsPath string // optional path to extra .hcl contract manifests

	Call     string // "namespace/name" of the function to invoke, empty to just list
	ArgsJSON string // JSON array of arguments for Call

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ArgsJSON != "" && cfg.Call == "" {
		return nil, errors.New("arguments were provided but no function to call; set Call as well")
	}

	return &cfg, nil
}
