/*
 * file.go, part of gochemkit.
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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	chem "github.com/rmera/gochemkit"
)

//ErrUnknownTableFormat is returned for table files that are neither CSV nor Parquet.
var ErrUnknownTableFormat = errors.New("unknown table format")

//TableFormat returns "csv" or "parquet" depending on the extension of name,
//ignoring a compression extension (.gz, .zst) after a CSV one.
func TableFormat(name string) (string, error) {
	_, base := chem.CompressionExt(name)
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv":
		return "csv", nil
	case ".parquet", ".pq":
		return "parquet", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTableFormat, name)
}

//ReadFile reads a table from a CSV (possibly compressed) or Parquet file.
func ReadFile(name string) (*Table, error) {
	format, err := TableFormat(name)
	if err != nil {
		return nil, err
	}
	if format == "parquet" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		t, err := ReadParquet(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return t, nil
	}
	f, err := chem.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

//WriteFile writes t to a CSV (possibly compressed) or Parquet file, creating
//the parent directories if needed.
func WriteFile(name string, t *Table) error {
	format, err := TableFormat(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
		return err
	}
	if format == "parquet" {
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		err = WriteParquet(f, t)
		f.Close() //the parquet writer may have closed it already
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
	f, err := chem.Create(name)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	return f.Close()
}
