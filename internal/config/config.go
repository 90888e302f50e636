// Package config loads CLI configuration from YAML files and CKAN_*
// environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/opendata-io/ckan-client/internal/constants"
	"github.com/opendata-io/ckan-client/pkg/ckan"
)

// FileName is the config file looked up in the search paths.
const FileName = "ckan.yaml"

// Load builds a client configuration from the given file (or the discovered
// one when path is empty), environment variables, and defaults, in that
// order of precedence from lowest to highest for env over file.
//
// A missing file is normal and silently falls back to defaults. A file that
// exists but does not parse is logged and ignored rather than failing the
// command; a broken config should not lock the user out of the CLI.
func Load(path string, logger ckan.Logger) *ckan.Config {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("CKAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".ckan"))
		}
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && logger != nil {
			logger.Warn("ignoring unreadable config file", map[string]interface{}{
				"path":  v.ConfigFileUsed(),
				"error": err.Error(),
			})
		}
	}

	return buildConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("connection.base_url", constants.DefaultEndpoint)
	v.SetDefault("connection.timeout_seconds", int(constants.DefaultHTTPTimeout/time.Second))
	v.SetDefault("connection.max_retries", constants.DefaultRetryMax)
	v.SetDefault("connection.rate_limit_ms", int(constants.DefaultRateLimit/time.Millisecond))
	v.SetDefault("defaults.page_size", constants.DefaultPageSize)
	v.SetDefault("defaults.export_format", constants.FormatCSV)
	v.SetDefault("presentation.color", true)
}

func buildConfig(v *viper.Viper) *ckan.Config {
	return &ckan.Config{
		BaseURL:      v.GetString("connection.base_url"),
		Timeout:      positiveDuration(v.GetInt("connection.timeout_seconds"), time.Second, constants.DefaultHTTPTimeout),
		MaxRetries:   positiveInt(v.GetInt("connection.max_retries"), constants.DefaultRetryMax),
		RateLimit:    positiveDuration(v.GetInt("connection.rate_limit_ms"), time.Millisecond, constants.DefaultRateLimit),
		PageSize:     positiveInt(v.GetInt("defaults.page_size"), constants.DefaultPageSize),
		ExportFormat: v.GetString("defaults.export_format"),
		Color:        v.GetBool("presentation.color"),
	}
}

func positiveInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}

	return value
}

func positiveDuration(value int, unit, fallback time.Duration) time.Duration {
	if value <= 0 {
		return fallback
	}

	return time.Duration(value) * unit
}
