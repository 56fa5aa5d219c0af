package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"grimoire/internal/validate"
)

type DBConfig struct {
	Name   string `mapstructure:"name"`
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Active bool   `mapstructure:"active"`
}

// GetActiveDBConfig returns the currently active database configuration.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// SatelliteConfig declares one side relation of an entity table: where
// the join rows live and which record key holds the posted member ids.
type SatelliteConfig struct {
	Table  string `mapstructure:"table"`
	Owner  string `mapstructure:"owner"`
	Member string `mapstructure:"member"`
	Key    string `mapstructure:"key"`
}

// GetSatellites returns the declared satellite relations for a table.
func GetSatellites(table string) ([]SatelliteConfig, error) {
	var sats []SatelliteConfig
	if err := viper.UnmarshalKey("satellites."+table, &sats); err != nil {
		return nil, fmt.Errorf("failed to parse satellites config for %s: %w", table, err)
	}
	return sats, nil
}

// GetHousekeeping returns the columns excluded from validation and
// forms, defaulting to the import identity and soft-delete flag.
func GetHousekeeping() []string {
	if cols := viper.GetStringSlice("validation.housekeeping"); len(cols) > 0 {
		return cols
	}
	return validate.DefaultHousekeeping()
}
