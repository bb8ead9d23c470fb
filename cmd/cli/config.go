package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type cliConfig struct {
	APIURL    string `mapstructure:"api_url"`
	TokenFile string `mapstructure:"token_file"`
}

// loadConfig reads ~/.devlink/config.yml when present. DEVLINK_API_URL and
// DEVLINK_TOKEN_FILE override it.
func loadConfig() (*cliConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".devlink")

	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvPrefix("DEVLINK")
	v.AutomaticEnv()

	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("token_file", filepath.Join(dir, "token"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
