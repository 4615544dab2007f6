package flags

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "JSONHTTP"

// loadConfig layers environment variables (and a .env file in the working
// directory) over an optional config file over built-in defaults.
func loadConfig(configFile string) (*viper.Viper, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("timeout", "30s")
	v.SetDefault("verify", "yes")
	v.SetDefault("log-level", "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file '%s'", configFile)
		}
	}
	return v, nil
}

// loadDotEnv exports the variables of path. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "loading '%s'", path)
	}
	return nil
}
