package packages

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env"
	"github.com/spf13/viper"
)

// ViperRead loads fileName as a dotenv file when it exists, exports its keys
// that the process environment leaves empty, then parses config from the
// environment.
func ViperRead(fileName string, config interface{}) error {
	v := viper.New()
	v.SetConfigFile(fileName)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	for _, key := range v.AllKeys() {
		name := strings.ToUpper(key)

		if os.Getenv(name) == "" {
			if err := os.Setenv(name, v.GetString(key)); err != nil {
				return err
			}
		}
	}

	return env.Parse(config)
}
