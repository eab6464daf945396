/*
 * table.go, part of gochemkit.
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

// Package features builds per-atom and per-residue feature tables of molecules and
// reads and writes them as CSV or Parquet.
package features

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

//ErrColumnLength is returned when a column does not have as many rows as its table.
var ErrColumnLength = errors.New("column length does not match the table")

//ErrColumnMismatch is returned when tables to be stacked have different columns.
var ErrColumnMismatch = errors.New("tables have different columns")

//MolIdx is the name of the column added by Stack.
const MolIdx = "mol_idx"

//Kind is the type of the values in a column.
type Kind int

const (
	Numeric Kind = iota
	Categorical
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Boolean:
		return "boolean"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

//Column is a named, typed column. Only the slice corresponding to
//Kind is used. Null is nil when no value is missing.
type Column struct {
	Name string
	Kind Kind
	Num  []float64
	Str  []string
	Bool []bool
	Null []bool
}

func NumericColumn(name string, v []float64) *Column {
	return &Column{Name: name, Kind: Numeric, Num: v}
}

func CategoricalColumn(name string, v []string) *Column {
	return &Column{Name: name, Kind: Categorical, Str: v}
}

func BooleanColumn(name string, v []bool) *Column {
	return &Column{Name: name, Kind: Boolean, Bool: v}
}

//Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case Numeric:
		return len(c.Num)
	case Boolean:
		return len(c.Bool)
	}
	return len(c.Str)
}

//IsNull returns true if the value in row i is missing.
func (c *Column) IsNull(i int) bool {
	return c.Null != nil && c.Null[i]
}

//Format returns the value in row i as text: booleans as True/False,
//numbers in their shortest exact form and missing values as the empty string.
func (c *Column) Format(i int) string {
	if c.IsNull(i) {
		return ""
	}
	switch c.Kind {
	case Numeric:
		return strconv.FormatFloat(c.Num[i], 'g', -1, 64)
	case Boolean:
		if c.Bool[i] {
			return "True"
		}
		return "False"
	}
	return c.Str[i]
}

//Float returns the numeric value in row i. For non numeric columns, the text
//of the value is parsed. The second value is false if the value is missing
//or is not a number.
func (c *Column) Float(i int) (float64, bool) {
	if c.IsNull(i) {
		return 0, false
	}
	switch c.Kind {
	case Numeric:
		return c.Num[i], true
	case Boolean:
		if c.Bool[i] {
			return 1, true
		}
		return 0, true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Str[i]), 64)
	return f, err == nil
}

func (c *Column) empty() *Column {
	return &Column{Name: c.Name, Kind: c.Kind}
}

//appendRow appends row i of o to c. Both must have the same Kind.
func (c *Column) appendRow(o *Column, i int) {
	switch c.Kind {
	case Numeric:
		c.Num = append(c.Num, o.Num[i])
	case Boolean:
		c.Bool = append(c.Bool, o.Bool[i])
	default:
		c.Str = append(c.Str, o.Str[i])
	}
	if o.IsNull(i) && c.Null == nil {
		c.Null = make([]bool, c.Len()-1, c.Len())
	}
	if c.Null != nil {
		c.Null = append(c.Null, o.IsNull(i))
	}
}

//Table is a set of columns with the same number of rows, in insertion order.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

//Add appends c to the table, replacing any column with the same name.
//The first column added sets the number of rows of the table.
func (t *Table) Add(c *Column) error {
	if len(t.cols) > 0 && c.Len() != t.rows {
		return fmt.Errorf("%w: %q has %d rows, table has %d", ErrColumnLength, c.Name, c.Len(), t.rows)
	}
	if c.Null != nil && len(c.Null) != c.Len() {
		return fmt.Errorf("%w: null mask of %q", ErrColumnLength, c.Name)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	}
	if i, ok := t.index[c.Name]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

//mustAdd is used by the table builders of this package, where lengths are right by construction.
func (t *Table) mustAdd(c *Column) {
	if err := t.Add(c); err != nil {
		panic(err.Error())
	}
}

//Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

//Columns returns the columns of the table in order. The slice must not be modified.
func (t *Table) Columns() []*Column {
	return t.cols
}

//Names returns the names of the columns of the table, in order.
func (t *Table) Names() []string {
	ret := make([]string, len(t.cols))
	for i, c := range t.cols {
		ret[i] = c.Name
	}
	return ret
}

//Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

//Filter returns a new table with the rows for which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	ret := NewTable()
	cols := make([]*Column, len(t.cols))
	for j, c := range t.cols {
		cols[j] = c.empty()
	}
	for i := 0; i < t.rows; i++ {
		if !keep(i) {
			continue
		}
		for j, c := range t.cols {
			cols[j].appendRow(c, i)
		}
	}
	for _, c := range cols {
		ret.mustAdd(c)
	}
	if len(cols) == 0 {
		return ret
	}
	ret.rows = cols[0].Len()
	return ret
}

//NotHydrogen is a row filter for atom tables that drops hydrogen atoms.
func NotHydrogen(t *Table, row int) bool {
	c, ok := t.Column("atomicnum")
	if !ok {
		return true
	}
	v, ok := c.Float(row)
	return !ok || v != 1
}

//Stack concatenates the rows of tables for which keep returns true (all of them if keep is nil)
//into a new table, adding a numeric MolIdx column with the position of the source table
//in tables. The MolIdx of each row is set while the row is copied. All the tables must have
//the same columns, with the same kinds, in the same order.
func Stack(tables []*Table, keep func(t *Table, row int) bool) (*Table, error) {
	ret := NewTable()
	if len(tables) == 0 {
		return ret, nil
	}
	ref := tables[0]
	cols := make([]*Column, len(ref.cols))
	for j, c := range ref.cols {
		cols[j] = c.empty()
	}
	molidx := NumericColumn(MolIdx, nil)
	for m, t := range tables {
		if len(t.cols) != len(ref.cols) {
			return nil, fmt.Errorf("%w: table %d has %d columns, expected %d", ErrColumnMismatch, m, len(t.cols), len(ref.cols))
		}
		for j, c := range t.cols {
			if c.Name != ref.cols[j].Name || c.Kind != ref.cols[j].Kind {
				return nil, fmt.Errorf("%w: table %d, column %d is %q (%s), expected %q (%s)", ErrColumnMismatch, m, j, c.Name, c.Kind, ref.cols[j].Name, ref.cols[j].Kind)
			}
		}
		for i := 0; i < t.rows; i++ {
			if keep != nil && !keep(t, i) {
				continue
			}
			for j, c := range t.cols {
				cols[j].appendRow(c, i)
			}
			molidx.Num = append(molidx.Num, float64(m))
		}
	}
	for _, c := range cols {
		ret.mustAdd(c)
	}
	ret.mustAdd(molidx)
	ret.rows = molidx.Len()
	return ret, nil
}

//InGroup returns true if the column name belongs to the group, i.e. it is the
//group name itself or the group name followed by an underscore and a suffix
//(the group "coords" contains "coords_x").
func InGroup(name, group string) bool {
	return name == group || strings.HasPrefix(name, group+"_")
}
