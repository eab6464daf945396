/*
 * config_test.go, part of gochemkit.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gochemkit/internal/logging"
	"github.com/rmera/gochemkit/toolkit"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ob", cfg.Backend)
	assert.Equal(t, 1e-6, cfg.Golden.Tolerance)
	assert.Equal(t, []string{"coords", "neighbors", "radius", "charge"}, cfg.Golden.Exclude)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"stderr"}, cfg.Log.OutputPaths)
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gochemkit.yaml")
	yaml := "backend: rdk\nlog:\n  level: debug\n  format: json\ngolden:\n  dir: /tmp/snap\n  tolerance: 0.001\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rdk", cfg.Backend)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/tmp/snap", cfg.Golden.Dir)
	assert.Equal(t, 0.001, cfg.Golden.Tolerance)

	t.Setenv("GOCHEMKIT_BACKEND", "ob")
	t.Setenv("GOCHEMKIT_GOLDEN_EXCLUDE", "coords,charge")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ob", cfg.Backend)
	assert.Equal(t, []string{"coords", "charge"}, cfg.Golden.Exclude)
}

func TestValidate(t *testing.T) {
	t.Setenv("GOCHEMKIT_BACKEND", "cdk")
	_, err := Load("")
	assert.ErrorIs(t, err, toolkit.ErrNoSupportedToolkit)

	cfg := &Config{Backend: "rdk", Log: logging.Config{Level: "info"}, Golden: Golden{Tolerance: 0}}
	assert.Error(t, cfg.Validate())
	cfg.Golden.Tolerance = 1e-3
	assert.NoError(t, cfg.Validate())
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = &Config{Backend: " RDK ", Log: logging.Config{Level: "info"}, Golden: Golden{Tolerance: 1e-3}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "rdk", cfg.Backend)
	t.Setenv("GOCHEMKIT_BACKEND", "OB")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "ob", cfg.Backend)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
