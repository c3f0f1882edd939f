// Package config provides configuration management for the attest CLI.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/meigma/attest"
)

// Config represents the attest CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	Sign SignConfig `mapstructure:"sign"`
}

// SignConfig holds signing endpoint settings.
type SignConfig struct {
	Fulcio string `mapstructure:"fulcio"`
	Rekor  string `mapstructure:"rekor"`
}

// Load wires defaults, environment variables (ATTEST_ prefix), and the
// optional config file into Viper. A missing config file is not an
// error.
func Load() error {
	viper.SetDefault("sign.fulcio", attest.DefaultFulcioURL)
	viper.SetDefault("sign.rekor", attest.DefaultRekorURL)

	viper.SetEnvPrefix("ATTEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	dir, err := Dir()
	if err != nil {
		return err
	}
	viper.AddConfigPath(dir)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}
