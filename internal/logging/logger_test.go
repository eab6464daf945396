/*
 * logger_test.go, part of gochemkit.
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

package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromCore(core).Named("golden").With(String("backend", "ob"))
	l.Warn("column mismatch", String("column", "atomtype"), Ints("rows", []int{1, 4}), Float64("max", 0.5), Err(errors.New("boom")))
	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "column mismatch", e.Message)
	assert.Equal(t, "golden", e.LoggerName)
	ctx := e.ContextMap()
	assert.Equal(t, "ob", ctx["backend"])
	assert.Equal(t, "atomtype", ctx["column"])
	assert.Equal(t, 0.5, ctx["max"])
	assert.Equal(t, "boom", ctx["error"])
	assert.Len(t, ctx["rows"], 2)
}

func TestLevels(t *testing.T) {
	for _, s := range []string{"", "info", "DEBUG", "warn", "error"} {
		_, err := ParseLevel(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)

	core, logs := observer.New(zapcore.WarnLevel)
	l := NewFromCore(core)
	l.Info("hidden")
	l.Error("shown")
	assert.Equal(t, 1, logs.Len())
}

func TestNew(t *testing.T) {
	l, err := New(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l)
	_, err = New(Config{Format: "xml"})
	assert.Error(t, err)
	_, err = New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	old := Default()
	defer SetDefault(old)
	SetDefault(nil)
	assert.Equal(t, old, Default())
	n := NewNop()
	n.Info("nothing")
	SetDefault(n)
	assert.Equal(t, n, Default())
	assert.NoError(t, n.Sync())
}
