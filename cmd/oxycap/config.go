package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig holds the subset of settings that can default from a
// config file. Precedence, highest first: CLI flag, environment
// variable, config file, built-in default.
type fileConfig struct {
	Interface string `yaml:"interface"`
	PcapFile  string `yaml:"pcap_file"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func loadFileConfig(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileConfig{}, nil
		}
		return fileConfig{}, err
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, err
	}
	return cfg, nil
}

// envOr returns the named environment variable's value, or fallback if
// it is unset.
func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
