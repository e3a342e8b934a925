/*
 * source.go, part of topological-excitons.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package qm

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//stacked closes the decompressor and then the file under it.
type stacked struct {
	io.Reader
	closers []io.Closer
}

func (s stacked) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

//prepSource opens fname and returns a reader for its text, decompressing
//it first if needed. If format is empty it is deduced from the file
//extension: "zst" (zstandard) and "gz" (gzip) are decompressed, anything
//else is read as is.
func prepSource(fname, format string) (io.ReadCloser, error) {
	fk := format
	if fk == "" {
		temp := strings.Split(fname, ".")
		fk = strings.ToLower(temp[len(temp)-1])
	}
	fhandle, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	reader := bufio.NewReader(fhandle)
	switch fk {
	case "zst", "zstd":
		dec, err := zstd.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, err
		}
		d := dec.IOReadCloser()
		return stacked{d, []io.Closer{d, fhandle}}, nil
	case "gz":
		dec, err := gzip.NewReader(reader)
		if err != nil {
			fhandle.Close()
			return nil, err
		}
		return stacked{dec, []io.Closer{dec, fhandle}}, nil
	default:
		return stacked{reader, []io.Closer{fhandle}}, nil
	}
}

//ReadCrystal parses the CRYSTAL output in the file fname, which can be
//compressed with gzip (.gz) or zstandard (.zst). Errors carry the file name.
func ReadCrystal(fname string, opts *CrystalOptions) (*Snapshot, error) {
	return ReadCrystalFormat(fname, "", opts)
}

//ReadCrystalFormat is ReadCrystal with the compression given explicitly
//("gz", "zst" or "" to use the extension; anything else means plain text).
func ReadCrystalFormat(fname, format string, opts *CrystalOptions) (*Snapshot, error) {
	src, err := prepSource(fname, format)
	if err != nil {
		return nil, withFile(err, fname)
	}
	defer src.Close()
	S, err := ParseCrystal(src, opts)
	if err != nil {
		return nil, withFile(err, fname)
	}
	return S, nil
}
