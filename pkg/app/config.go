package app

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds daemon-wide configuration for the checkpoint/bow core.
type Config struct {
	Daemon       string `mapstructure:"daemon"`
	MetadataPath string `mapstructure:"metadata_path"`
	SysfsRoot    string `mapstructure:"sysfs_root"`
	MountTable   string `mapstructure:"mount_table_path"`
	DefaultRetry int    `mapstructure:"default_retry"`
}

// LoadConfig loads daemon configuration using Viper, following the same
// named-config/multiple-search-path/env-override pattern used elsewhere in
// this tree for small ambient config files.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("vold-bow-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.vold-bow")
	viper.AddConfigPath("/etc/vold-bow")

	viper.SetDefault("daemon", "vold")
	viper.SetDefault("metadata_path", "/metadata/vold/checkpoint")
	viper.SetDefault("sysfs_root", "/sys")
	viper.SetDefault("mount_table_path", "/proc/mounts")
	viper.SetDefault("default_retry", 1)

	viper.SetEnvPrefix("VOLD_BOW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}
