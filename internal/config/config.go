/*
 * config.go, part of gochemkit.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the gochemkit settings from an optional YAML file and
// GOCHEMKIT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

const envPrefix = "GOCHEMKIT"

//Config is the complete configuration of the command line tool.
type Config struct {
	//Backend is the toolkit backend, ob or rdk.
	Backend string         `mapstructure:"backend"`
	Log     logging.Config `mapstructure:"log"`
	Golden  Golden         `mapstructure:"golden"`
}

//Golden holds the settings of the golden fixture comparator.
type Golden struct {
	//Dir is the root of the snapshot directories, one per backend.
	Dir       string   `mapstructure:"dir"`
	Tolerance float64  `mapstructure:"tolerance"`
	Exclude   []string `mapstructure:"exclude"`
}

//Defaults for every key. Keys need a default for viper to see their environment variables.
var defaults = map[string]interface{}{
	"backend":          "ob",
	"log.level":        "info",
	"log.format":       "console",
	"log.output_paths": []string{"stderr"},
	"golden.dir":       "testdata/golden",
	"golden.tolerance": 1e-6,
	"golden.exclude":   []string{"coords", "neighbors", "radius", "charge"},
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

//Load reads the YAML file at path (skipped if path is empty), applies the GOCHEMKIT_*
//environment overrides (GOCHEMKIT_BACKEND, GOCHEMKIT_GOLDEN_DIR...) and the defaults,
//and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %q: %w", path, err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

//Validate checks the backend name, the log settings and the tolerance.
//The backend name is lowercased.
func (c *Config) Validate() error {
	var errs []error
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if !toolkit.Supported(c.Backend) {
		errs = append(errs, fmt.Errorf("backend %q: %w", c.Backend, toolkit.ErrNoSupportedToolkit))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log format %q: must be console or json", c.Log.Format))
	}
	if c.Golden.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("golden tolerance must be positive, got %g", c.Golden.Tolerance))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
