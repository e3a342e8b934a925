/*
 * matrix_test.go, part of topological-excitons.
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
	"strings"
	"testing"
)

//tinyReport is a 1D system with a single atom carrying three S orbitals.
func tinyReport(body string) string {
	return ` DIRECT LATTICE VECTOR COMPONENTS (BOHR)
     3.0    0.0    0.0
     0.0  500.0    0.0
     0.0    0.0  500.0
 N. OF ATOMS PER CELL     1
 NUMBER OF AO             3
 N. OF ELECTRONS PER CELL 2
 CORE ELECTRONS PER CELL  0
   ATOM  AT. N.  LABEL  SHELLS  X  Y  Z
 ****************************************
    1    1 X    3   0.0  0.0  0.0
 LOCAL ATOMIC FUNCTIONS BASIS SET
 ****************************************
   ATOM  X(AU) Y(AU) Z(AU)  N. TYPE  EXPONENT  S COEF  P COEF  D/F/G COEF
 ****************************************
   1 X  0.0 0.0 0.0
     1 S
        1.0  1.0  0.0  0.0
     2 S
        2.0  1.0  0.0  0.0
     3 S
        3.0  1.0  0.0  0.0
` + body
}

//two pages, two columns then one. The second page has no blank line
//between the column numbers and the rows.
const pagedBody = `
           1         2

    1   1.0  0.1
    2   0.1  2.0
    3   0.2  0.3

           3
    1   0.4
    2   0.5
    3   3.0
`

func TestMatrixPages(Te *testing.T) {
	rep := tinyReport(" OVERLAP MATRIX - CELL N.   1(  0  0  0)\n" + pagedBody + " FOCK MATRIX - CELL N.   1(  0  0  0)\n" + pagedBody)
	S, err := ParseCrystal(strings.NewReader(rep), nil)
	if err != nil {
		Te.Fatal(err)
	}
	if S.Dim() != 1 || S.BasisDim() != 3 {
		Te.Fatalf("expected a 1D system with 3 orbitals, got %d %d", S.Dim(), S.BasisDim())
	}
	want := [][]float64{{1, 0.1, 0.4}, {0.1, 2, 0.5}, {0.2, 0.3, 3}}
	H := S.HamiltonianBlocks()[0]
	for i := range want {
		for j := range want[i] {
			if H.At(i, j) != complex(want[i][j], 0) {
				Te.Errorf("H(%d,%d)=%v, expected %v", i, j, H.At(i, j), want[i][j])
			}
		}
	}
	opts := DefaultCrystalOptions()
	opts.LegacyRowStop = true
	S, err = ParseCrystal(strings.NewReader(rep), opts)
	if err != nil {
		Te.Fatal(err)
	}
	H = S.HamiltonianBlocks()[0]
	if H.At(1, 1) != 2 || H.At(2, 0) != 0 || H.At(0, 2) != 0 {
		Te.Errorf("the legacy stop should end at the second row of the first page: %v", H.RawCMatrix().Data)
	}
}

func TestMatrixMalformed(Te *testing.T) {
	bodies := map[string]string{
		"column out of range": strings.Replace(pagedBody, "           3\n", "           4\n", 1),
		"row out of range":    strings.Replace(pagedBody, "    3   0.2  0.3", "    7   0.2  0.3", 1),
		"extra value":         strings.Replace(pagedBody, "    2   0.5", "    2   0.5 0.6", 1),
		"not a number":        strings.Replace(pagedBody, "0.3", "0.3a", 1),
	}
	for name, body := range bodies {
		rep := tinyReport(" OVERLAP MATRIX - CELL N.   1(  0  0  0)\n" + body + " FOCK MATRIX - CELL N.   1(  0  0  0)\n" + pagedBody)
		_, err := ParseCrystal(strings.NewReader(rep), nil)
		if !errors.Is(err, ErrMalformed) {
			Te.Errorf("%s: expected a malformed matrix, got %v", name, err)
		}
	}
}

func TestShellHeaders(Te *testing.T) {
	rep := tinyReport("")
	rep = strings.Replace(rep, "     2 S\n", "     2-  2 S\n", 1)
	rep = strings.Replace(rep, "     3 S\n", "     3 - 3 S\n", 1)
	rep += " OVERLAP MATRIX - CELL N.   1(  0  0  0)\n" + pagedBody + " FOCK MATRIX - CELL N.   1(  0  0  0)\n" + pagedBody
	S, err := ParseCrystal(strings.NewReader(rep), nil)
	if err != nil {
		Te.Fatal(err)
	}
	sh := S.Species()[0].Shells
	if len(sh) != 3 || sh[1].Orbitals != 1 || sh[2].Primitives[0].Exponent != 3 {
		Te.Errorf("wrong shells %+v", sh)
	}
	bad := strings.Replace(rep, "     2-  2 S\n        2.0  1.0  0.0  0.0\n", "     2-  2 S\n", 1)
	if _, err := ParseCrystal(strings.NewReader(bad), nil); !errors.Is(err, ErrMalformed) {
		Te.Errorf("a shell without primitives should be rejected, got %v", err)
	}
}
