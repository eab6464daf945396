/*
 * compare.go, part of gochemkit.
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

// Package golden compares freshly computed feature tables with stored snapshots
// (golden fixtures), column by column, and records new snapshots.
package golden

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/rmera/gochemkit/features"
)

//ErrNotEqual is wrapped by every ColumnError.
var ErrNotEqual = errors.New("column is not equal")

//DefaultTolerance is the absolute tolerance for numeric columns.
const DefaultTolerance = 1e-6

//DefaultExclude returns the column groups that are not compared unless asked for.
func DefaultExclude() []string {
	return []string{"coords", "neighbors", "radius", "charge"}
}

//Options sets how two tables are compared.
type Options struct {
	//Table is the name of the table in error messages ("atom_dict" if empty).
	Table string
	//Numeric values are equal if their absolute difference is strictly smaller
	//than Tolerance. DefaultTolerance is used if Tolerance is not positive.
	Tolerance float64
	//Exclude holds column groups (see features.InGroup) that are not compared.
	Exclude []string
}

//DefaultOptions returns the options for the atom table with the default tolerance
//and excluded columns.
func DefaultOptions() Options {
	return Options{Table: "atom_dict", Tolerance: DefaultTolerance, Exclude: DefaultExclude()}
}

func (o Options) table() string {
	if o.Table == "" {
		return "atom_dict"
	}
	return o.Table
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

//Excluded returns true if the column name belongs to one of the excluded groups.
func (o Options) Excluded(name string) bool {
	for _, g := range o.Exclude {
		if features.InGroup(name, g) {
			return true
		}
	}
	return false
}

//ColumnError describes a column of the live table that doesn't match its snapshot.
//Row is the first differing row, or -1 if the column is missing from one of the tables.
//Rows holds every differing row.
type ColumnError struct {
	Table  string
	Column string
	Row    int
	Live   string
	Golden string
	Rows   []int
	//MaxDeviation is the largest absolute difference of a numeric column, NaN otherwise.
	MaxDeviation float64
	Reason       string
}

func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("%s's column: %q is not equal", e.Table, e.Column)
	switch {
	case e.Reason != "":
		return msg + " (" + e.Reason + ")"
	case e.Row >= 0:
		return fmt.Sprintf("%s (row %d: live %q, golden %q)", msg, e.Row, e.Live, e.Golden)
	}
	return msg
}

func (e *ColumnError) Unwrap() error {
	return ErrNotEqual
}

//Diff compares every non-excluded column of live with the column of the same name
//in gold and returns the columns that differ, in the order of live. Columns of gold
//that are missing from live are reported after those. If the tables have different
//numbers of rows every compared column differs.
func Diff(live, gold *features.Table, opts Options) []*ColumnError {
	var ret []*ColumnError
	for _, lc := range live.Columns() {
		if opts.Excluded(lc.Name) {
			continue
		}
		gc, ok := gold.Column(lc.Name)
		if !ok {
			ret = append(ret, &ColumnError{Table: opts.table(), Column: lc.Name, Row: -1, MaxDeviation: math.NaN(), Reason: "missing from the snapshot"})
			continue
		}
		if e := compareColumn(lc, gc, opts); e != nil {
			ret = append(ret, e)
		}
	}
	for _, gc := range gold.Columns() {
		if opts.Excluded(gc.Name) {
			continue
		}
		if _, ok := live.Column(gc.Name); !ok {
			ret = append(ret, &ColumnError{Table: opts.table(), Column: gc.Name, Row: -1, MaxDeviation: math.NaN(), Reason: "missing from the live table"})
		}
	}
	return ret
}

//Compare returns nil if live matches gold, or the ColumnError of the first column
//that differs.
func Compare(live, gold *features.Table, opts Options) error {
	if d := Diff(live, gold, opts); len(d) > 0 {
		return d[0]
	}
	return nil
}

func compareColumn(lc, gc *features.Column, opts Options) *ColumnError {
	e := &ColumnError{Table: opts.table(), Column: lc.Name, Row: -1, MaxDeviation: math.NaN()}
	n, m := lc.Len(), gc.Len()
	if n != m {
		e.Reason = fmt.Sprintf("%d live rows, %d golden rows", n, m)
		e.Row = min(n, m)
		return e
	}
	var devs []float64
	for i := 0; i < n; i++ {
		var equal bool
		if lc.Kind == features.Numeric {
			var dev float64
			equal, dev = numericEqual(lc, gc, i, opts.tolerance())
			if !math.IsNaN(dev) {
				devs = append(devs, dev)
			}
		} else {
			equal = lc.Format(i) == gc.Format(i)
		}
		if equal {
			continue
		}
		if e.Row < 0 {
			e.Row = i
			e.Live = lc.Format(i)
			e.Golden = gc.Format(i)
		}
		e.Rows = append(e.Rows, i)
	}
	if len(e.Rows) == 0 {
		return nil
	}
	if len(devs) > 0 {
		e.MaxDeviation = floats.Max(devs)
	}
	return e
}

//numericEqual compares row i of two numeric columns. Missing values are only equal to
//missing values, and NaN to NaN. It also returns the absolute difference, NaN if
//it isn't defined.
func numericEqual(lc, gc *features.Column, i int, tol float64) (bool, float64) {
	a, aok := lc.Float(i)
	b, bok := gc.Float(i)
	if !aok || !bok {
		//the golden column may not be numeric.
		return !aok && !bok && gc.Format(i) == "", math.NaN()
	}
	if scalar.Same(a, b) {
		return true, 0
	}
	dev := math.Abs(a - b)
	return dev < tol, dev
}
