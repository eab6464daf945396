/*
 * csv.go, part of gochemkit.
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

package features

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//WriteCSV writes t to w as CSV with a header row. Booleans are written as
//True/False and missing values as empty fields.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	record := make([]string, len(t.cols))
	for i := 0; i < t.rows; i++ {
		for j, c := range t.cols {
			record[j] = c.Format(i)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	return nil
}

//ReadCSV reads a table written by WriteCSV (or any CSV file with a header row).
//The kind of each column is inferred from its non empty values: a column where all of them
//are True/False is Boolean, one where all of them are numbers is Numeric, anything
//else is Categorical. Empty fields are missing values, except in categorical columns,
//where they are empty strings.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading CSV: %w", io.ErrUnexpectedEOF)
	}
	header := records[0]
	rows := records[1:]
	t := NewTable()
	for j, name := range header {
		raw := make([]string, len(rows))
		for i, rec := range rows {
			raw[i] = rec[j]
		}
		if err := t.Add(inferColumn(name, raw)); err != nil {
			return nil, err
		}
	}
	t.rows = len(rows)
	return t, nil
}

func inferColumn(name string, raw []string) *Column {
	isbool, isnum, nulls := true, true, false
	nums := make([]float64, len(raw))
	for i, v := range raw {
		v = strings.TrimSpace(v)
		if v == "" {
			nulls = true
			continue
		}
		if v != "True" && v != "False" {
			isbool = false
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			isnum = false
		}
		nums[i] = f
	}
	var null []bool
	if nulls {
		null = make([]bool, len(raw))
		for i, v := range raw {
			null[i] = strings.TrimSpace(v) == ""
		}
	}
	switch {
	case len(raw) > 0 && isbool && !allEmpty(null):
		b := make([]bool, len(raw))
		for i, v := range raw {
			b[i] = strings.TrimSpace(v) == "True"
		}
		return &Column{Name: name, Kind: Boolean, Bool: b, Null: null}
	case len(raw) > 0 && isnum && !allEmpty(null):
		return &Column{Name: name, Kind: Numeric, Num: nums, Null: null}
	}
	return CategoricalColumn(name, raw)
}

//allEmpty returns true if null is set and every value is missing.
func allEmpty(null []bool) bool {
	if null == nil {
		return false
	}
	for _, v := range null {
		if !v {
			return false
		}
	}
	return true
}
