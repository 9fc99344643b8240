package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

type ExportConfig struct {
	Format       string             `mapstructure:"format"`
	OutputFile   string             `mapstructure:"output_file_path"`
	OutputFolder string             `mapstructure:"output_folder"`
	Destination  string             `mapstructure:"destination"`
	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`
}

type GenerateConfig struct {
	Restaurants    int     `mapstructure:"restaurants"`
	MaxInspections int     `mapstructure:"max_inspections"`
	UrbanRadius    float64 `mapstructure:"urban_radius"`
	Seed           int64   `mapstructure:"seed"`
}

type Config struct {
	DatasetPath    string   `mapstructure:"dataset_path"`
	ListenAddr     string   `mapstructure:"listen_addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	WatchDataset   bool     `mapstructure:"watch_dataset"`
	DefaultSort    string   `mapstructure:"default_sort"`
	// StalenessThreshold is how old lastUpdated may get before validate
	// flags the dataset as stale.
	StalenessThreshold time.Duration  `mapstructure:"staleness_threshold"`
	Generate           GenerateConfig `mapstructure:"generate"`
	Export             ExportConfig   `mapstructure:"export"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("dataset_path", "data/inspections.json")
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("default_sort", "name")
	viper.SetDefault("staleness_threshold", "720h")
	viper.SetDefault("export.format", "console")
	viper.SetDefault("export.destination", "local")
	viper.SetDefault("generate.restaurants", 150)
	viper.SetDefault("generate.max_inspections", 6)
	viper.SetDefault("generate.urban_radius", 12.0)

	if err := viper.ReadInConfig(); err != nil {
		// A missing file on the search path is fine, the defaults and
		// environment cover everything. An explicit --config that cannot
		// be read is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}
