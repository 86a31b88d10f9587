// Package config registers liveurl's settings and loads them from the TOML file in
// where.Config() and from LIVEURL_* variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/liveurl/liveurl/constant"
	"github.com/liveurl/liveurl/filesystem"
	"github.com/liveurl/liveurl/key"
	"github.com/liveurl/liveurl/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to variable names: network.timeout is NETWORK_TIMEOUT.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup applies defaults, binds every key to its variable and reads the config file
// when there is one. Precedence is flag, variable, file, default.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())
	viper.SetTypeByDefaultValue(true)

	for name, field := range Default {
		viper.SetDefault(name, field.Value)
		if err := viper.BindEnv(name, field.Env()); err != nil {
			return err
		}
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}

// Timeout returns network.timeout as a duration, falling back to the default for
// non-positive values.
func Timeout() time.Duration {
	seconds := viper.GetInt(key.NetworkTimeout)
	if seconds <= 0 {
		seconds = Default[key.NetworkTimeout].Value.(int)
	}
	return time.Duration(seconds) * time.Second
}
