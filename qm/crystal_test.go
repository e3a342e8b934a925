/*
 * crystal_test.go, part of topological-excitons.
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
	"math"
	"os"
	"regexp"
	"strings"
	"testing"
)

func readFixture(Te *testing.T, name string) string {
	Te.Helper()
	b, err := os.ReadFile("../test/" + name)
	if err != nil {
		Te.Fatal(err)
	}
	return string(b)
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestCrystalTwoBands(Te *testing.T) {
	S, err := ReadCrystal("../test/e2e.out", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Dim() != 2 {
		Te.Errorf("expected a 2D system, got %dD", S.Dim())
	}
	if ax := S.Axes(); len(ax) != 2 || ax[0] != 0 || ax[1] != 1 {
		Te.Errorf("wrong retained axes %v", ax)
	}
	if S.NAtoms() != 2 || S.NSpecies() != 1 || S.BasisDim() != 2 {
		Te.Errorf("atoms %d species %d basis %d, expected 2 1 2", S.NAtoms(), S.NSpecies(), S.BasisDim())
	}
	if S.Filling() != 1 || S.OddElectrons() {
		Te.Errorf("wrong filling %d", S.Filling())
	}
	motif, sp := S.Motif()
	if motif.Vec(0) != [3]float64{0, 0, 0} || sp[0] != 0 || sp[1] != 0 {
		Te.Errorf("wrong motif\n%v %v", motif, sp)
	}
	if v := motif.Vec(1); !near(v[0], 1.23, 1e-9) || !near(v[1], 0.710140831, 1e-9) {
		Te.Errorf("wrong second atom %v", v)
	}
	if S.NCells() != 3 {
		Te.Fatalf("expected 3 cells, got %d", S.NCells())
	}
	R := S.Translations()
	if R[0] != [3]float64{} || !near(R[1][0], 2.46, 1e-12) || !near(R[2][0], -2.46, 1e-12) {
		Te.Errorf("wrong translations %v", R)
	}
	H := S.HamiltonianBlocks()[0]
	if H.At(0, 0) != 1 || H.At(1, 1) != -1 || H.At(0, 1) != 0 {
		Te.Errorf("wrong zero-cell Fock matrix %v", H.RawCMatrix().Data)
	}
	O := S.OverlapBlocks()[0]
	if O.At(0, 0) != 1 || O.At(1, 1) != 1 || O.At(1, 0) != 0 {
		Te.Errorf("wrong zero-cell overlap %v", O.RawCMatrix().Data)
	}
	//the snapshot hands out copies
	H.Set(0, 0, 42)
	if S.HamiltonianBlocks()[0].At(0, 0) != 1 {
		Te.Error("changing a returned block changed the snapshot")
	}
	sh := S.Species()
	if len(sh[0].Shells) != 1 || sh[0].Shells[0].Type != "S" || len(sh[0].Shells[0].Primitives) != 3 {
		Te.Errorf("wrong basis %+v", sh[0])
	}
	sh[0].Shells[0].Primitives[0].Exponent = -1
	if S.Species()[0].Shells[0].Primitives[0].Exponent != 3.425 {
		Te.Error("changing a returned species changed the snapshot")
	}
}

func TestCrystalCellCutoff(Te *testing.T) {
	rep := readFixture(Te, "e2e.out")
	for cut, want := range map[int]int{1: 1, 2: 2, 3: 3, 50: 3} {
		S, err := ParseCrystal(strings.NewReader(rep), &CrystalOptions{Cells: cut, NormThreshold: DefaultNormThreshold})
		if err != nil {
			Te.Fatal(err)
		}
		if S.NCells() != want {
			Te.Errorf("cutoff %d: expected %d cells, got %d", cut, want, S.NCells())
		}
		for _, c := range S.Cells() {
			if c.Index > cut {
				Te.Errorf("cutoff %d: cell %d was kept", cut, c.Index)
			}
		}
	}
	if _, err := ParseCrystal(strings.NewReader(rep), &CrystalOptions{Cells: 0, NormThreshold: 1}); !errors.Is(err, ErrMalformed) {
		Te.Errorf("a zero cutoff should be rejected, got %v", err)
	}
	if _, err := ParseCrystal(strings.NewReader(rep), &CrystalOptions{Cells: 3, NormThreshold: -1}); !errors.Is(err, ErrMalformed) {
		Te.Errorf("a negative norm threshold should be rejected, got %v", err)
	}
}

//multi.out has a discarded middle lattice vector, two species (the second
//C atom gets no printed basis) and matrices split over two pages.
func TestCrystalMultiSpecies(Te *testing.T) {
	S, err := ReadCrystal("../test/multi.out", nil)
	if err != nil {
		Te.Fatal(err)
	}
	if ax := S.Axes(); len(ax) != 2 || ax[0] != 0 || ax[1] != 2 {
		Te.Errorf("wrong retained axes %v", ax)
	}
	if v := S.Lattice().Vec(1); v != [3]float64{0, 0, 3} {
		Te.Errorf("wrong second lattice vector %v", v)
	}
	sp := S.Species()
	if len(sp) != 2 || sp[0].Label != "C" || sp[1].Label != "N" || sp[1].AtomicNumber != 7 {
		Te.Fatalf("wrong species %+v", sp)
	}
	if sp[0].NShells != 2 {
		Te.Errorf("the first C row should define the species, got %d shells", sp[0].NShells)
	}
	if sp[0].Shells[1].Type != "SP" || sp[0].Shells[1].Orbitals != 4 || sp[0].Shells[1].Primitives[2].P != 0.6 {
		Te.Errorf("wrong SP shell %+v", sp[0].Shells[1])
	}
	per := S.OrbitalsPerAtom()
	if len(per) != 3 || per[0] != 5 || per[1] != 5 || per[2] != 1 {
		Te.Errorf("wrong orbitals per atom %v", per)
	}
	if S.BasisDim() != 11 {
		Te.Errorf("expected 11 orbitals, got %d", S.BasisDim())
	}
	motif, _ := S.Motif()
	if v := motif.Vec(1); !near(v[0], 1.25, 1e-9) || !near(v[2], 1.5, 1e-9) {
		Te.Errorf("motif not shifted to the first atom %v", v)
	}
	if S.Filling() != 7 || !S.OddElectrons() {
		Te.Errorf("15 electrons should give filling 7 and be flagged, got %d %v", S.Filling(), S.OddElectrons())
	}
	if R := S.Translations(); R[3] != [3]float64{0, 0, 3} || R[4] != [3]float64{0, 0, -3} {
		Te.Errorf("cells along the third vector have wrong translations %v", R)
	}
	H := S.HamiltonianBlocks()
	n := S.BasisDim()
	for i := 0; i < n; i++ {
		if d := real(H[0].At(i, i)); !near(d, -2+0.3*float64(i), 1e-9) {
			Te.Errorf("diagonal %d is %f", i, d)
		}
		for j := 0; j < n; j++ {
			if want := 0.05 * math.Cos(float64(i+2*j)); !near(real(H[1].At(i, j)), want, 1e-6) {
				Te.Errorf("H_1(%d,%d)=%f, expected %f", i, j, real(H[1].At(i, j)), want)
			}
			if H[1].At(i, j) != H[2].At(j, i) || H[3].At(i, j) != H[4].At(j, i) {
				Te.Errorf("opposite cells should be transposed at %d %d", i, j)
			}
		}
	}
	if len(S.HamiltonianCube()) != 5*n*n || len(S.OverlapCube()) != 5*n*n {
		Te.Error("wrong cube sizes")
	}
}

func TestCrystalLegacyRowStop(Te *testing.T) {
	rep := readFixture(Te, "multi.out")
	opts := DefaultCrystalOptions()
	opts.LegacyRowStop = true
	S, err := ParseCrystal(strings.NewReader(rep), opts)
	if err != nil {
		Te.Fatal(err)
	}
	H := S.HamiltonianBlocks()[0]
	if H.At(10, 10) != 0 || H.At(0, 10) != 0 {
		Te.Error("the legacy stop should leave the last row and the second page unread")
	}
	if H.At(9, 5) == 0 {
		Te.Error("the first page should have been read")
	}
}

func TestCrystalErrors(Te *testing.T) {
	rep := readFixture(Te, "e2e.out")
	cases := []struct {
		name string
		text string
		opts *CrystalOptions
		want error
	}{
		{"atoms before count", strings.Replace(rep, markAtoms, "N. OF THINGS", 1), nil, ErrOrder},
		{"short lattice vector", strings.Replace(rep, "500.000000000", "", 1), nil, ErrMalformed},
		{"no periodic vector", rep, &CrystalOptions{Cells: 3, NormThreshold: 1}, ErrMalformed},
		{"orbital count", regexp.MustCompile(`NUMBER OF AO\s+2`).ReplaceAllString(rep, "NUMBER OF AO 3"), nil, ErrInconsistent},
		{"short row", strings.Replace(rep, "     2  0.0000E+00 -1.0000E+00", "     2  0.0000E+00", 1), nil, ErrMalformed},
		{"non-periodic cell", strings.Replace(rep, "CELL N.   2(  1  0  0)", "CELL N.   2(  0  0  1)", 1), nil, ErrInconsistent},
		{"missing Fock block", rep[:strings.Index(rep, " FOCK MATRIX - CELL N.   3")], nil, ErrInconsistent},
		{"no Fock matrices", rep[:strings.Index(rep, " FOCK MATRIX")], nil, ErrMissingSection},
		{"no lattice", strings.Replace(rep, markLattice, "LATTICE", 1), nil, ErrOrder},
		{"no basis set", rep[:strings.Index(rep, " "+markBasis)] + rep[strings.Index(rep, " INFORMATION **** END OF BASIS SET"):], nil, ErrMissingSection},
		{"truncated matrix", rep[:strings.LastIndex(rep, "     2  1.0000E-01")], nil, ErrTruncated},
	}
	for _, c := range cases {
		S, err := ParseCrystal(strings.NewReader(c.text), c.opts)
		if err == nil {
			Te.Errorf("%s: expected an error", c.name)
			continue
		}
		if S != nil {
			Te.Errorf("%s: a partial snapshot was returned", c.name)
		}
		if !errors.Is(err, c.want) {
			Te.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}
	_, err := ParseCrystal(strings.NewReader(strings.Replace(rep, "     2  0.0000E+00 -1.0000E+00", "     2  x -1.0000E+00", 1)), nil)
	var e Error
	if !errors.As(err, &e) || e.Line() == 0 || !e.Critical() {
		Te.Errorf("parse errors should carry the line, got %v", err)
	}
}
