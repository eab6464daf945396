/*
 * compare_test.go, part of gochemkit.
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

package golden

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmera/gochemkit/features"
)

func newTable(t *testing.T, cols ...*features.Column) *features.Table {
	t.Helper()
	tab := features.NewTable()
	for _, c := range cols {
		require.NoError(t, tab.Add(c))
	}
	return tab
}

func liveTable(t *testing.T) *features.Table {
	return newTable(t,
		features.NumericColumn("id", []float64{0, 1, 2}),
		features.NumericColumn("coords_x", []float64{0.1, 1.2, -3.5}),
		features.CategoricalColumn("atomtype", []string{"C.3", "C.ar", "O.3"}),
		features.BooleanColumn("isdonor", []bool{false, false, true}),
	)
}

func TestCompareEqual(t *testing.T) {
	live := liveTable(t)
	assert.NoError(t, Compare(live, liveTable(t), DefaultOptions()))
	assert.Empty(t, Diff(live, live, Options{}))

	var buf bytes.Buffer
	require.NoError(t, features.WriteCSV(&buf, live))
	gold, err := features.ReadCSV(&buf)
	require.NoError(t, err)
	assert.NoError(t, Compare(live, gold, Options{}))
}

func TestCompareCategorical(t *testing.T) {
	gold := liveTable(t)
	c, _ := gold.Column("atomtype")
	c.Str[1] = "C.3"
	err := Compare(liveTable(t), gold, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, `atom_dict's column: "atomtype" is not equal (row 1: live "C.ar", golden "C.3")`, err.Error())
	assert.True(t, errors.Is(err, ErrNotEqual))
	var cerr *ColumnError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "atomtype", cerr.Column)
	assert.Equal(t, []int{1}, cerr.Rows)
	assert.True(t, math.IsNaN(cerr.MaxDeviation))

	c.Str[1] = ""
	err = Compare(liveTable(t), gold, Options{Table: "res_dict"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `res_dict's column: "atomtype"`)
}

func TestCompareTolerance(t *testing.T) {
	gold := liveTable(t)
	id, _ := gold.Column("id")
	id.Num[2] += 5e-7
	assert.NoError(t, Compare(liveTable(t), gold, DefaultOptions()))

	id.Num[0] = 1e-6
	var cerr *ColumnError
	require.True(t, errors.As(Compare(liveTable(t), gold, DefaultOptions()), &cerr))
	assert.Equal(t, "id", cerr.Column)
	assert.Equal(t, 0, cerr.Row)
	assert.Equal(t, []int{0}, cerr.Rows)
	assert.Equal(t, 1e-6, cerr.MaxDeviation)

	assert.NoError(t, Compare(liveTable(t), gold, Options{Tolerance: 1e-3}))

	id.Num[0], id.Num[2] = 0.5, 2.25
	require.True(t, errors.As(Compare(liveTable(t), gold, Options{}), &cerr))
	assert.Equal(t, []int{0, 2}, cerr.Rows)
	assert.Equal(t, 0.5, cerr.MaxDeviation)
}

func TestCompareExcluded(t *testing.T) {
	gold := liveTable(t)
	x, _ := gold.Column("coords_x")
	x.Num[1] = 100
	assert.NoError(t, Compare(liveTable(t), gold, DefaultOptions()))
	err := Compare(liveTable(t), gold, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"coords_x"`)

	o := DefaultOptions()
	assert.True(t, o.Excluded("neighbors_3"))
	assert.True(t, o.Excluded("charge"))
	assert.False(t, o.Excluded("formalcharge"))
	assert.False(t, o.Excluded("coordsx"))
}

func TestCompareRowCount(t *testing.T) {
	live := liveTable(t)
	gold := live.Filter(func(row int) bool { return row < 2 })
	diffs := Diff(live, gold, DefaultOptions())
	require.Len(t, diffs, 3)
	for _, d := range diffs {
		assert.Equal(t, 2, d.Row)
		assert.Equal(t, "3 live rows, 2 golden rows", d.Reason)
	}
	assert.Equal(t, "id", diffs[0].Column)
}

func TestCompareMissingColumns(t *testing.T) {
	live := liveTable(t)
	gold := newTable(t,
		features.NumericColumn("id", []float64{0, 1, 2}),
		features.CategoricalColumn("atomtype", []string{"C.3", "C.ar", "O.3"}),
		features.NumericColumn("numhs", []float64{3, 1, 1}),
	)
	diffs := Diff(live, gold, DefaultOptions())
	require.Len(t, diffs, 2)
	assert.Equal(t, "isdonor", diffs[0].Column)
	assert.Equal(t, -1, diffs[0].Row)
	assert.Equal(t, `atom_dict's column: "isdonor" is not equal (missing from the snapshot)`, diffs[0].Error())
	assert.Equal(t, "numhs", diffs[1].Column)
	assert.Equal(t, "missing from the live table", diffs[1].Reason)
}

func TestCompareMissingValues(t *testing.T) {
	v := features.NumericColumn("partial", []float64{0, math.NaN(), 2})
	v.Null = []bool{true, false, false}
	live := newTable(t, v)
	g := features.NumericColumn("partial", []float64{0, math.NaN(), 2})
	g.Null = []bool{true, false, false}
	assert.NoError(t, Compare(live, newTable(t, g), Options{}))

	//a column read from a CSV with empty and NaN cells.
	gold := newTable(t, features.CategoricalColumn("partial", []string{"", "NaN", "2"}))
	assert.NoError(t, Compare(live, gold, Options{}))

	g.Null = nil
	var cerr *ColumnError
	require.True(t, errors.As(Compare(live, newTable(t, g), Options{}), &cerr))
	assert.Equal(t, 0, cerr.Row)
	assert.Equal(t, "", cerr.Live)
	assert.Equal(t, "0", cerr.Golden)
}
