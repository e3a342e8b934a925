/*
 * source_test.go, part of topological-excitons.
 *
 *
 * Copyright 2024 The topological-excitons Authors
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
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

func compressTo(Te *testing.T, fname string, wrap func(io.Writer) (io.WriteCloser, error)) {
	Te.Helper()
	src, err := os.ReadFile("../test/multi.out")
	if err != nil {
		Te.Fatal(err)
	}
	f, err := os.Create(fname)
	if err != nil {
		Te.Fatal(err)
	}
	defer f.Close()
	w, err := wrap(f)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := w.Write(src); err != nil {
		Te.Fatal(err)
	}
	if err := w.Close(); err != nil {
		Te.Fatal(err)
	}
}

func TestCompressedReports(Te *testing.T) {
	plain, err := ReadCrystal("../test/multi.out", nil)
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	gz := filepath.Join(dir, "multi.out.gz")
	compressTo(Te, gz, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })
	zst := filepath.Join(dir, "multi.out.zst")
	compressTo(Te, zst, func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) })
	//no telling extension, the format is given
	odd := filepath.Join(dir, "multi.crystal")
	compressTo(Te, odd, func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) })

	read := map[string]func() (*Snapshot, error){
		"gzip":     func() (*Snapshot, error) { return ReadCrystal(gz, nil) },
		"zstd":     func() (*Snapshot, error) { return ReadCrystal(zst, nil) },
		"explicit": func() (*Snapshot, error) { return ReadCrystalFormat(odd, "zst", nil) },
	}
	for name, f := range read {
		S, err := f()
		if err != nil {
			Te.Errorf("%s: %v", name, err)
			continue
		}
		a, b := plain.HamiltonianCube(), S.HamiltonianCube()
		if len(a) != len(b) {
			Te.Errorf("%s: %d matrix elements, expected %d", name, len(b), len(a))
			continue
		}
		for i := range a {
			if a[i] != b[i] {
				Te.Errorf("%s: element %d differs", name, i)
				break
			}
		}
		if S.Filling() != plain.Filling() || S.NCells() != plain.NCells() {
			Te.Errorf("%s: the compressed report reads differently", name)
		}
	}
}

func TestReadCrystalFileErrors(Te *testing.T) {
	_, err := ReadCrystal("../test/there-is-no-such-report.out", nil)
	var e Error
	if !errors.As(err, &e) || e.FileName() != "../test/there-is-no-such-report.out" {
		Te.Errorf("a missing file should give an error with its name, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		Te.Errorf("the cause should be kept, got %v", err)
	}
	dir := Te.TempDir()
	fname := filepath.Join(dir, "broken.out")
	if err := os.WriteFile(fname, []byte(" DIRECT LATTICE VECTOR COMPONENTS\n 1.0 0.0\n"), 0o644); err != nil {
		Te.Fatal(err)
	}
	_, err = ReadCrystal(fname, nil)
	if !errors.As(err, &e) || e.FileName() != fname || e.Line() != 2 || !errors.Is(err, ErrMalformed) {
		Te.Errorf("expected a malformed lattice at %s:2, got %v", fname, err)
	}
}
