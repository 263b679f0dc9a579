package config

import (
	"reflect"
	"strings"

	"media-tracker/core/database"
	"media-tracker/core/logger"
	"media-tracker/core/server"
	"media-tracker/core/storage"
	"media-tracker/feature/catalog"
	"media-tracker/feature/importer"
	"media-tracker/feature/metadata"
	"media-tracker/feature/refresh"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is owned by the package that consumes it.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used to archive imports.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// Metadata holds configuration for the Jikan metadata client.
	Metadata metadata.Config `mapstructure:"metadata"`
	// Import holds configuration for list imports.
	Import importer.Config `mapstructure:"import"`
	// Catalog holds search, cache and ranking settings.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Refresh holds configuration for the scheduled metadata refresh.
	Refresh refresh.Config `mapstructure:"refresh"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every 'mapstructure' key in Viper
// with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set, even if empty, so AutomaticEnv sees the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
