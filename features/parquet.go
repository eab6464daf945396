/*
 * parquet.go, part of gochemkit.
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
	"context"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/compress"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"
)

func arrowType(k Kind) arrow.DataType {
	switch k {
	case Numeric:
		return arrow.PrimitiveTypes.Float64
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	}
	return arrow.BinaryTypes.String
}

//Schema returns the Arrow schema of t: float64 for numeric columns, utf8 for
//categorical ones and bool for boolean ones. All the fields are nullable.
func (t *Table) Schema() *arrow.Schema {
	fields := make([]arrow.Field, len(t.cols))
	for i, c := range t.cols {
		fields[i] = arrow.Field{Name: c.Name, Type: arrowType(c.Kind), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

//Record returns t as an Arrow record. The caller must release it.
func (t *Table) Record(mem memory.Allocator) arrow.Record {
	arrays := make([]arrow.Array, len(t.cols))
	for j, c := range t.cols {
		switch c.Kind {
		case Numeric:
			b := array.NewFloat64Builder(mem)
			for i, v := range c.Num {
				if c.IsNull(i) {
					b.AppendNull()
					continue
				}
				b.Append(v)
			}
			arrays[j] = b.NewArray()
			b.Release()
		case Boolean:
			b := array.NewBooleanBuilder(mem)
			for i, v := range c.Bool {
				if c.IsNull(i) {
					b.AppendNull()
					continue
				}
				b.Append(v)
			}
			arrays[j] = b.NewArray()
			b.Release()
		default:
			b := array.NewStringBuilder(mem)
			for i, v := range c.Str {
				if c.IsNull(i) {
					b.AppendNull()
					continue
				}
				b.Append(v)
			}
			arrays[j] = b.NewArray()
			b.Release()
		}
	}
	rec := array.NewRecord(t.Schema(), arrays, int64(t.rows))
	for _, a := range arrays {
		a.Release()
	}
	return rec
}

//WriteParquet writes t to w as a zstd-compressed Parquet file.
func WriteParquet(w io.Writer, t *Table) error {
	mem := memory.NewGoAllocator()
	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Zstd),
		parquet.WithDictionaryDefault(true),
		parquet.WithCreatedBy("gochemkit"),
	)
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	fw, err := pqarrow.NewFileWriter(t.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	rec := t.Record(mem)
	defer rec.Release()
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("writing parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return nil
}

//ReadParquet reads a table from a Parquet file. Float, integer, string and bool
//columns are supported; integers are read as numeric columns.
func ReadParquet(r parquet.ReaderAtSeeker) (*Table, error) {
	pf, err := file.NewParquetReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}
	defer pf.Close()
	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("reading parquet: %w", err)
	}
	defer tbl.Release()
	t := NewTable()
	for j := 0; j < int(tbl.NumCols()); j++ {
		col := tbl.Column(j)
		c, err := columnFromChunks(col.Name(), col.Data().Chunks())
		if err != nil {
			return nil, err
		}
		if err := t.Add(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func columnFromChunks(name string, chunks []arrow.Array) (*Column, error) {
	var c *Column
	var null []bool
	hasNull := false
	for _, ch := range chunks {
		switch a := ch.(type) {
		case *array.Float64:
			if c == nil {
				c = NumericColumn(name, nil)
			}
			for i := 0; i < a.Len(); i++ {
				c.Num = append(c.Num, a.Value(i))
			}
		case *array.Int64:
			if c == nil {
				c = NumericColumn(name, nil)
			}
			for i := 0; i < a.Len(); i++ {
				c.Num = append(c.Num, float64(a.Value(i)))
			}
		case *array.Int32:
			if c == nil {
				c = NumericColumn(name, nil)
			}
			for i := 0; i < a.Len(); i++ {
				c.Num = append(c.Num, float64(a.Value(i)))
			}
		case *array.String:
			if c == nil {
				c = CategoricalColumn(name, nil)
			}
			for i := 0; i < a.Len(); i++ {
				c.Str = append(c.Str, a.Value(i))
			}
		case *array.Boolean:
			if c == nil {
				c = BooleanColumn(name, nil)
			}
			for i := 0; i < a.Len(); i++ {
				c.Bool = append(c.Bool, a.Value(i))
			}
		default:
			return nil, fmt.Errorf("parquet column %q: unsupported type %s", name, ch.DataType())
		}
		for i := 0; i < ch.Len(); i++ {
			null = append(null, ch.IsNull(i))
			hasNull = hasNull || ch.IsNull(i)
		}
	}
	if c == nil {
		c = CategoricalColumn(name, nil)
	}
	if hasNull {
		c.Null = null
	}
	return c, nil
}
