// Package config resolves where the contacts file lives.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DefaultFile is the contacts file used when nothing else is configured.
const DefaultFile = "contacts.txt"

// Config holds the resolved settings for a run.
type Config struct {
	File string // contacts file path
}

// Load resolves the contacts file path. Precedence, highest first:
// the flagFile argument (the parsed --file flag, empty when unset),
// the ROLODEX_FILE environment variable, the "file" key of a
// .rolodex.yaml in the working directory or $HOME, then DefaultFile.
// A missing config file is not an error; an unreadable one is.
func Load(flagFile string) (Config, error) {
	if flagFile != "" {
		return Config{File: flagFile}, nil
	}

	v := viper.New()
	v.SetDefault("file", DefaultFile)
	v.SetEnvPrefix("ROLODEX")
	v.AutomaticEnv()

	v.SetConfigName(".rolodex")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return Config{File: v.GetString("file")}, nil
}
