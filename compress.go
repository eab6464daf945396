/*
 * compress.go, part of gochemkit.
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

package chem

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdReadCloser struct {
	*zstd.Decoder
}

//Close closes the decoder. It can not be used after this call.
func (s zstdReadCloser) Close() error {
	s.Decoder.Close()
	return nil
}

//fileCloser closes a (de)compressor and then the file under it.
type fileCloser struct {
	io.Reader
	io.Writer
	inner io.Closer
	f     *os.File
}

func (c *fileCloser) Read(p []byte) (int, error)  { return c.Reader.Read(p) }
func (c *fileCloser) Write(p []byte) (int, error) { return c.Writer.Write(p) }

func (c *fileCloser) Close() error {
	var err error
	if c.inner != nil {
		err = c.inner.Close()
	}
	if err2 := c.f.Close(); err == nil {
		err = err2
	}
	return err
}

//CompressionExt returns the compression extension of name (".gz" or ".zst") and
//name without it. If name is not compressed, the extension is the empty string.
func CompressionExt(name string) (ext, base string) {
	for _, e := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(name, e) {
			return e, strings.TrimSuffix(name, e)
		}
	}
	return "", name
}

//Open opens the file name for reading. Files with the .gz, .zst or .zstd extensions
//are decompressed on the fly.
func Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, wrapCError(err, "Couldn't open file", "Open")
	}
	ext, _ := CompressionExt(name)
	switch ext {
	case ".gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, wrapCError(err, "Couldn't read gzip file "+name, "Open")
		}
		return &fileCloser{Reader: r, inner: r, f: f}, nil
	case ".zst", ".zstd":
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, wrapCError(err, "Couldn't read zstd file "+name, "Open")
		}
		zr := zstdReadCloser{r}
		return &fileCloser{Reader: zr, inner: zr, f: f}, nil
	}
	return f, nil
}

//Create creates the file name for writing. Files with the .gz, .zst or .zstd extensions
//are compressed on the fly. The returned writer must be closed for the data to be flushed.
func Create(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, wrapCError(err, "Couldn't create file", "Create")
	}
	ext, _ := CompressionExt(name)
	switch ext {
	case ".gz":
		w := gzip.NewWriter(f)
		return &fileCloser{Writer: w, inner: w, f: f}, nil
	case ".zst", ".zstd":
		w, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, wrapCError(err, "Couldn't create zstd file "+name, "Create")
		}
		return &fileCloser{Writer: w, inner: w, f: f}, nil
	}
	return f, nil
}
