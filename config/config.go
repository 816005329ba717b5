// Package config loads cuelink.toml and environment overrides on top of the registered defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cuelink/cuelink/constant"
	"github.com/cuelink/cuelink/filesystem"
	"github.com/cuelink/cuelink/where"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults and env bindings, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.Cuelink)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Cuelink)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return Validate()
}

// Validate checks every registered key against its rule.
func Validate() error {
	for _, name := range lo.Keys(rules) {
		if err := Check(name, viper.Get(name)); err != nil {
			return err
		}
	}
	return nil
}
