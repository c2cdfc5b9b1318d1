package store

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the storage directory. The SQLite database and the
// diskv fallback live side by side under the base path.
type Config interface {
	BasePath() string
}

// LoadConfig resolves the base path from a .okr config file, OKR_*
// environment variables, or the default under the home directory.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.okr")
	viper.SetConfigName(".okr") // .yaml is implicit
	viper.SetEnvPrefix("OKR")
	viper.AutomaticEnv()

	if override := os.Getenv("OKR_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	return &fileConfig{Path: path}, nil
}

type fileConfig struct {
	Path string `json:"path"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// SQLitePath is the database file under the base path.
func SQLitePath(cfg Config) string {
	return filepath.Join(cfg.BasePath(), "okr.sqlite")
}

// DiskvPath is the fallback store directory under the base path.
func DiskvPath(cfg Config) string {
	return filepath.Join(cfg.BasePath(), "fallback")
}
